package driver

import (
	"strings"
	"testing"

	"quill/internal/java"
	"quill/internal/layout"
	"quill/internal/manifest"
)

func TestEngineConfig(t *testing.T) {
	cfg, err := EngineConfig(manifest.GenerateConfig{})
	if err != nil {
		t.Fatalf("EngineConfig: %v", err)
	}
	if cfg != java.Default() {
		t.Errorf("empty section should yield the default config, got %+v", cfg)
	}

	cfg, err = EngineConfig(manifest.GenerateConfig{Style: "expanded", Indent: "\t", ShowImplicitImports: true})
	if err != nil {
		t.Fatalf("EngineConfig: %v", err)
	}
	if cfg.Layout != layout.StyleExpanded || cfg.Indent != "\t" || !cfg.ShowImplicitImports {
		t.Errorf("got %+v", cfg)
	}

	if _, err := EngineConfig(manifest.GenerateConfig{Style: "fancy"}); err == nil {
		t.Error("unknown style should fail")
	}
}

func TestParseType(t *testing.T) {
	cfg := java.Default()
	cases := []struct {
		in   string
		want string
	}{
		{"int", "int"},
		{"long[]", "long[]"},
		{"boolean[][]", "boolean[][]"},
		{"java.util.List", "java.util.List"},
		{"java.lang.String[]", "java.lang.String[]"},
	}
	for _, tc := range cases {
		typ, err := parseType(cfg, tc.in)
		if err != nil {
			t.Errorf("parseType(%q): %v", tc.in, err)
			continue
		}
		if got := typ.String(); got != tc.want {
			t.Errorf("parseType(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}

	if _, err := parseType(cfg, "List"); err == nil {
		t.Error("bare simple name should fail")
	}
	if _, err := parseType(cfg, "string"); err == nil {
		t.Error("unknown keyword should fail")
	}
}

func sampleClass() manifest.ClassConfig {
	return manifest.ClassConfig{
		Name:      "Widget",
		Package:   "com.example",
		Final:     true,
		Accessors: true,
		Fields: []manifest.FieldConfig{
			{Name: "id", Type: "long", Visibility: "private", Final: true},
		},
		Annotations: []manifest.AnnotationConfig{
			{Type: "javax.annotation.processing.Generated", Value: "quill"},
		},
	}
}

func TestBuildClassRendering(t *testing.T) {
	cfg := java.Default()
	file, err := BuildClass(cfg, sampleClass())
	if err != nil {
		t.Fatalf("BuildClass: %v", err)
	}
	text, err := file.Render()
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := "// Generated by quill. Do not edit.\n" +
		"package com.example;\n" +
		"\n" +
		"import javax.annotation.processing.Generated;\n" +
		"\n" +
		"@Generated(\"quill\")\n" +
		"public final class Widget {\n" +
		"  private final long id;\n" +
		"\n" +
		"  public long getId() {\n" +
		"    return id;\n" +
		"  }\n" +
		"}\n"
	if text != want {
		t.Errorf("got %q, want %q", text, want)
	}
}

func TestBuildClassSetterForMutableField(t *testing.T) {
	cfg := java.Default()
	cc := manifest.ClassConfig{
		Name:      "Counter",
		Package:   "com.example",
		Accessors: true,
		Fields: []manifest.FieldConfig{
			{Name: "count", Type: "int", Init: "0"},
		},
	}
	file, err := BuildClass(cfg, cc)
	if err != nil {
		t.Fatalf("BuildClass: %v", err)
	}
	text, err := file.Render()
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if !strings.Contains(text, "private int count = 0;\n") {
		t.Errorf("initializer missing: %q", text)
	}
	if !strings.Contains(text, "public int getCount() {\n    return count;\n  }") {
		t.Errorf("getter missing: %q", text)
	}
	if !strings.Contains(text, "public void setCount(int count) {\n    this.count = count;\n  }") {
		t.Errorf("setter missing: %q", text)
	}
}

func TestBuildClassErrors(t *testing.T) {
	cfg := java.Default()

	cc := sampleClass()
	cc.Fields[0].Type = "void"
	if _, err := BuildClass(cfg, cc); err == nil {
		t.Error("void field type should fail")
	}

	cc = sampleClass()
	cc.Annotations[0].Type = "lowercase.name"
	if _, err := BuildClass(cfg, cc); err == nil {
		t.Error("unparseable annotation type should fail")
	}
}
