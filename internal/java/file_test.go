package java

import (
	"errors"
	"strings"
	"testing"

	"quill/internal/layout"
)

func buildFile(t *testing.T, b *SourceFileBuilder) *SourceFile {
	t.Helper()
	f, err := b.Build()
	if err != nil {
		t.Fatalf("file: %v", err)
	}
	return f
}

func renderFile(t *testing.T, f *SourceFile) string {
	t.Helper()
	text, err := f.Render()
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return text
}

func fieldOf(t *testing.T, cfg Config, typ *TypeName, name string) *FieldSpec {
	t.Helper()
	f, err := cfg.Field(typ, name, Private).Build()
	if err != nil {
		t.Fatalf("field: %v", err)
	}
	return f
}

func TestFileRenderImportsAndShortNames(t *testing.T) {
	cfg := Default()
	list := mustClass(t, cfg, "java.util.List")
	str := mustClass(t, cfg, "java.lang.String")
	names, err := cfg.Parameterized(list, str)
	if err != nil {
		t.Fatal(err)
	}

	ts := mustType(t, cfg.ClassDecl("Widget", Public).AddField(fieldOf(t, cfg, names, "names")))
	f := buildFile(t, cfg.File("com.example", ts))

	want := "package com.example;\n" +
		"\n" +
		"import java.util.List;\n" +
		"\n" +
		"public class Widget {\n" +
		"  private List<String> names;\n" +
		"}\n"
	if got := renderFile(t, f); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFileSamePackageNeedsNoImport(t *testing.T) {
	cfg := Default()
	gadget := mustClass(t, cfg, "com.example.Gadget")
	ts := mustType(t, cfg.ClassDecl("Widget", Public).AddField(fieldOf(t, cfg, gadget, "g")))
	f := buildFile(t, cfg.File("com.example", ts))

	got := renderFile(t, f)
	if strings.Contains(got, "import ") {
		t.Errorf("no import section expected, got %q", got)
	}
	if !strings.Contains(got, "private Gadget g;") {
		t.Errorf("same-package type should render short, got %q", got)
	}
}

func TestFileSimpleNameConflictKeepsSecondQualified(t *testing.T) {
	cfg := Default()
	awt := mustClass(t, cfg, "java.awt.List")
	util := mustClass(t, cfg, "java.util.List")
	ts := mustType(t, cfg.ClassDecl("Frame", Public).
		AddField(fieldOf(t, cfg, awt, "a")).
		AddField(fieldOf(t, cfg, util, "b")))
	f := buildFile(t, cfg.File("com.example", ts))

	got := renderFile(t, f)
	if !strings.Contains(got, "import java.awt.List;") {
		t.Errorf("first claimant should be imported, got %q", got)
	}
	if strings.Contains(got, "import java.util.List;") {
		t.Errorf("losing claimant must not be imported, got %q", got)
	}
	if !strings.Contains(got, "private List a;") {
		t.Errorf("winner renders short, got %q", got)
	}
	if !strings.Contains(got, "private java.util.List b;") {
		t.Errorf("loser stays qualified, got %q", got)
	}
}

func TestFileImplicitImportsListedOnRequest(t *testing.T) {
	cfg := Default()
	str := mustClass(t, cfg, "java.lang.String")
	ts := mustType(t, cfg.ClassDecl("Widget", Public).AddField(fieldOf(t, cfg, str, "s")))

	f := buildFile(t, cfg.File("com.example", ts))
	if got := renderFile(t, f); strings.Contains(got, "import java.lang.String;") {
		t.Errorf("java.lang import listed without the flag: %q", got)
	}

	cfg.ShowImplicitImports = true
	ts = mustType(t, cfg.ClassDecl("Widget", Public).AddField(fieldOf(t, cfg, str, "s")))
	f = buildFile(t, cfg.File("com.example", ts))
	if got := renderFile(t, f); !strings.Contains(got, "import java.lang.String;") {
		t.Errorf("java.lang import missing with the flag: %q", got)
	}
}

func TestFileExpandedLayoutAppendsMarker(t *testing.T) {
	cfg := Default()
	cfg.Layout = layout.StyleExpanded
	ts := mustType(t, cfg.ClassDecl("Widget", Public))
	f := buildFile(t, cfg.File("com.example", ts))

	got := renderFile(t, f)
	if !strings.HasSuffix(got, "}\n\n// EOF\n") {
		t.Errorf("expanded output should end with the marker, got %q", got)
	}
}

func TestFileStaticImports(t *testing.T) {
	cfg := Default()
	ts := mustType(t, cfg.ClassDecl("Widget", Public))
	f := buildFile(t, cfg.File("com.example", ts).
		AddStaticImport("java.util.Collections.emptyList").
		AddStaticImport("java.lang.Math.*"))

	got := renderFile(t, f)
	want := "import static java.lang.Math.*;\nimport static java.util.Collections.emptyList;\n"
	if !strings.Contains(got, want) {
		t.Errorf("static import section missing, got %q", got)
	}
}

func TestFileExplicitImportOverride(t *testing.T) {
	cfg := Default()
	widget := mustClass(t, cfg, "com.a.Widget")
	ts := mustType(t, cfg.ClassDecl("Holder", Public).AddField(fieldOf(t, cfg, widget, "w")))
	f := buildFile(t, cfg.File("com.example", ts).AddImport("com.b.Widget"))

	got := renderFile(t, f)
	if !strings.Contains(got, "import com.b.Widget;") {
		t.Errorf("explicit import missing, got %q", got)
	}
	// The displaced reference degrades to its qualified form.
	if !strings.Contains(got, "private com.a.Widget w;") {
		t.Errorf("displaced reference should stay qualified, got %q", got)
	}
}

func TestFileDefaultPackage(t *testing.T) {
	cfg := Default()
	ts := mustType(t, cfg.ClassDecl("Main", Public))
	f := buildFile(t, cfg.File("", ts))
	if got := renderFile(t, f); strings.Contains(got, "package ") {
		t.Errorf("default package must not declare, got %q", got)
	}

	if _, err := cfg.File("com.9bad", ts).Build(); err == nil {
		t.Error("invalid package segment should fail")
	}
}

func TestFileComment(t *testing.T) {
	cfg := Default()
	ts := mustType(t, cfg.ClassDecl("Widget", Public))
	f := buildFile(t, cfg.File("com.example", ts).
		FileComment("Generated by $L.\nDo not edit.", "quill"))

	got := renderFile(t, f)
	if !strings.HasPrefix(got, "// Generated by quill.\n// Do not edit.\npackage com.example;\n") {
		t.Errorf("got %q", got)
	}
}

func TestCollectDetectsUnbalancedIndent(t *testing.T) {
	cfg := Default()
	leaky := mustMethod(t, cfg.Method("bad").Code("$>x();\n"))
	ts := mustType(t, cfg.ClassDecl("Widget", Public).AddMethod(leaky))
	f := buildFile(t, cfg.File("com.example", ts))

	if _, err := f.Collect(); err == nil {
		t.Fatal("unbalanced indent flow should fail the collect pass")
	}
	if _, err := f.Render(); err == nil {
		t.Fatal("render must refuse an AST that does not emit cleanly")
	}
}

func TestWriteToIsAllOrNothing(t *testing.T) {
	cfg := Default()
	ts := mustType(t, cfg.ClassDecl("Widget", Public))
	f := buildFile(t, cfg.File("com.example", ts))

	var sb strings.Builder
	n, err := f.WriteTo(&sb)
	if err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	if n != int64(sb.Len()) {
		t.Errorf("n = %d, written = %d", n, sb.Len())
	}

	if _, err := f.WriteTo(failingWriter{}); err == nil {
		t.Fatal("expected sink error")
	} else {
		var serr *SinkError
		if !errors.As(err, &serr) {
			t.Errorf("error %v is not a SinkError", err)
		}
	}

	// A failing destination from a broken AST sees nothing at all.
	leaky := mustMethod(t, cfg.Method("bad").Code("$>x();\n"))
	broken := mustType(t, cfg.ClassDecl("B", Public).AddMethod(leaky))
	bf := buildFile(t, cfg.File("com.example", broken))
	var out strings.Builder
	if _, err := bf.WriteTo(&out); err == nil {
		t.Fatal("expected collect failure")
	}
	if out.Len() != 0 {
		t.Errorf("partial output written: %q", out.String())
	}
}
