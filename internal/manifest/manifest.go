// Package manifest loads quill.toml, the generation manifest: which
// classes to emit, where to put them, and how the engine is configured.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/unicode/norm"
)

// FileName is the manifest file looked up by discovery.
const FileName = "quill.toml"

// Manifest is a loaded quill.toml plus where it was found.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config mirrors the TOML document.
type Config struct {
	Package  PackageConfig  `toml:"package"`
	Generate GenerateConfig `toml:"generate"`
	Classes  []ClassConfig  `toml:"class"`
}

type PackageConfig struct {
	Name string `toml:"name"`
}

// GenerateConfig carries the engine knobs.
type GenerateConfig struct {
	Out                 string `toml:"out"`
	Style               string `toml:"style"`
	Indent              string `toml:"indent"`
	ShowImplicitImports bool   `toml:"show_implicit_imports"`
}

// ClassConfig describes one class to generate.
type ClassConfig struct {
	Name        string             `toml:"name"`
	Package     string             `toml:"package"`
	Doc         string             `toml:"doc"`
	Final       bool               `toml:"final"`
	Accessors   bool               `toml:"accessors"`
	Fields      []FieldConfig      `toml:"field"`
	Annotations []AnnotationConfig `toml:"annotation"`
}

// FieldConfig describes one field of a generated class. Type is either a
// Java primitive keyword or a canonical class name.
type FieldConfig struct {
	Name       string `toml:"name"`
	Type       string `toml:"type"`
	Init       string `toml:"init"`
	Visibility string `toml:"visibility"`
	Final      bool   `toml:"final"`
}

// AnnotationConfig describes one annotation on a generated class; Value,
// when set, becomes the sole "value" member.
type AnnotationConfig struct {
	Type  string `toml:"type"`
	Value string `toml:"value"`
}

// Find walks up from startDir to locate quill.toml.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load discovers and parses the manifest starting from startDir. The
// second result reports whether a manifest was found at all.
func Load(startDir string) (*Manifest, bool, error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
	}, true, nil
}

// LoadConfig parses and validates one manifest file.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return Config{}, fmt.Errorf("%s: missing [package]", path)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return Config{}, fmt.Errorf("%s: missing [package].name", path)
	}
	if len(cfg.Classes) == 0 {
		return Config{}, fmt.Errorf("%s: no [[class]] entries", path)
	}
	if cfg.Generate.Style != "" {
		switch cfg.Generate.Style {
		case "compact", "expanded":
		default:
			return Config{}, fmt.Errorf("%s: [generate].style must be compact or expanded, got %q", path, cfg.Generate.Style)
		}
	}
	for i := range cfg.Classes {
		if err := normalizeClass(path, &cfg.Classes[i]); err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}

// normalizeClass validates one class entry and NFC-normalizes every
// identifier, so visually identical manifests emit identical source.
func normalizeClass(path string, c *ClassConfig) error {
	c.Name = norm.NFC.String(strings.TrimSpace(c.Name))
	c.Package = norm.NFC.String(strings.TrimSpace(c.Package))
	if c.Name == "" {
		return fmt.Errorf("%s: [[class]] entry without a name", path)
	}
	if c.Package == "" {
		return fmt.Errorf("%s: class %q has no package", path, c.Name)
	}
	for j := range c.Fields {
		f := &c.Fields[j]
		f.Name = norm.NFC.String(strings.TrimSpace(f.Name))
		f.Type = strings.TrimSpace(f.Type)
		if f.Name == "" {
			return fmt.Errorf("%s: class %q has a field without a name", path, c.Name)
		}
		if f.Type == "" {
			return fmt.Errorf("%s: field %q of class %q has no type", path, f.Name, c.Name)
		}
		switch f.Visibility {
		case "", "public", "protected", "private":
		default:
			return fmt.Errorf("%s: field %q of class %q: bad visibility %q", path, f.Name, c.Name, f.Visibility)
		}
	}
	for j := range c.Annotations {
		a := &c.Annotations[j]
		a.Type = strings.TrimSpace(a.Type)
		if a.Type == "" {
			return fmt.Errorf("%s: class %q has an annotation without a type", path, c.Name)
		}
	}
	return nil
}

// OutDir returns the absolute output root for generated sources.
func (m *Manifest) OutDir() string {
	out := m.Config.Generate.Out
	if out == "" {
		out = "generated"
	}
	if filepath.IsAbs(out) {
		return out
	}
	return filepath.Join(m.Root, filepath.FromSlash(out))
}
