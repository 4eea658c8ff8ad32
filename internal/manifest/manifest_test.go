package manifest

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleManifest = `
[package]
name = "demo"

[generate]
out = "src/main/java"
style = "expanded"

[[class]]
name = "Widget"
package = "com.example"
final = true
accessors = true

[[class.field]]
name = "id"
type = "long"
visibility = "private"
final = true

[[class.annotation]]
type = "javax.annotation.processing.Generated"
value = "quill"
`

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, sampleManifest)

	m, ok, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !ok {
		t.Fatal("manifest not found")
	}
	if m.Path != path {
		t.Errorf("Path = %q, want %q", m.Path, path)
	}
	if m.Root != dir {
		t.Errorf("Root = %q, want %q", m.Root, dir)
	}
	if m.Config.Package.Name != "demo" {
		t.Errorf("package name = %q", m.Config.Package.Name)
	}
	if len(m.Config.Classes) != 1 {
		t.Fatalf("classes = %d", len(m.Config.Classes))
	}
	c := m.Config.Classes[0]
	if c.Name != "Widget" || c.Package != "com.example" || !c.Final || !c.Accessors {
		t.Errorf("class = %+v", c)
	}
	if len(c.Fields) != 1 || c.Fields[0].Type != "long" {
		t.Errorf("fields = %+v", c.Fields)
	}
	if len(c.Annotations) != 1 || c.Annotations[0].Value != "quill" {
		t.Errorf("annotations = %+v", c.Annotations)
	}
	want := filepath.Join(dir, "src", "main", "java")
	if got := m.OutDir(); got != want {
		t.Errorf("OutDir = %q, want %q", got, want)
	}
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, sampleManifest)
	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	path, ok, err := Find(nested)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if !ok {
		t.Fatal("manifest not found from nested dir")
	}
	if path != filepath.Join(root, FileName) {
		t.Errorf("path = %q", path)
	}
}

func TestLoadReportsMissing(t *testing.T) {
	_, ok, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ok {
		t.Fatal("found a manifest in an empty dir")
	}
}

func TestLoadValidation(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"missing package", "[[class]]\nname = \"A\"\npackage = \"p\"\n"},
		{"missing package name", "[package]\n\n[[class]]\nname = \"A\"\npackage = \"p\"\n"},
		{"no classes", "[package]\nname = \"x\"\n"},
		{"bad style", "[package]\nname = \"x\"\n[generate]\nstyle = \"fancy\"\n[[class]]\nname = \"A\"\npackage = \"p\"\n"},
		{"class without name", "[package]\nname = \"x\"\n[[class]]\npackage = \"p\"\n"},
		{"class without package", "[package]\nname = \"x\"\n[[class]]\nname = \"A\"\n"},
		{"field without type", "[package]\nname = \"x\"\n[[class]]\nname = \"A\"\npackage = \"p\"\n[[class.field]]\nname = \"f\"\n"},
		{"bad visibility", "[package]\nname = \"x\"\n[[class]]\nname = \"A\"\npackage = \"p\"\n[[class.field]]\nname = \"f\"\ntype = \"int\"\nvisibility = \"shy\"\n"},
	}
	for _, tc := range cases {
		dir := t.TempDir()
		path := writeManifest(t, dir, tc.content)
		if _, err := LoadConfig(path); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}
}

func TestIdentifiersNormalizedToNFC(t *testing.T) {
	dir := t.TempDir()
	// "Cafe" with a combining acute accent (NFD) normalizes to the
	// precomposed form.
	content := "[package]\nname = \"x\"\n[[class]]\nname = \"Cafe\u0301\"\npackage = \"com.example\"\n"
	path := writeManifest(t, dir, content)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got := cfg.Classes[0].Name; got != "Caf\u00e9" {
		t.Errorf("name = %q, want precomposed form", got)
	}
}

func TestOutDirDefaults(t *testing.T) {
	dir := t.TempDir()
	content := "[package]\nname = \"x\"\n[[class]]\nname = \"A\"\npackage = \"p\"\n"
	writeManifest(t, dir, content)
	m, _, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if got := m.OutDir(); got != filepath.Join(dir, "generated") {
		t.Errorf("OutDir = %q", got)
	}
}
