package java

import "quill/internal/layout"

// javaLang is the always-implicit package: its types may render unqualified
// without claiming an import line.
const javaLang = "java.lang"

// Config is the engine configuration. Renderable nodes remember the Config
// they were built under; node equality requires equal configurations, so
// two differently configured engines never produce equal nodes even when
// the rendered text matches.
//
// Config is a comparable value: factories hang off it and copy it into
// every node they produce.
type Config struct {
	// Layout selects the formatting policy table.
	Layout layout.Style

	// Indent is the indentation unit, repeated per depth level.
	Indent string

	// ShowImplicitImports lists java.lang imports explicitly instead of
	// relying on the implicit import.
	ShowImplicitImports bool

	// WrapColumn is the column past which $W wrap points break the line.
	WrapColumn int
}

// Default returns the configuration used when the caller has no opinion:
// compact layout, two-space indent, implicit java.lang imports.
func Default() Config {
	return Config{
		Layout:     layout.StyleCompact,
		Indent:     "  ",
		WrapColumn: 100,
	}
}

func (c Config) withDefaults() Config {
	if c.Indent == "" {
		c.Indent = "  "
	}
	if c.WrapColumn == 0 {
		c.WrapColumn = 100
	}
	return c
}

func (c Config) policy() layout.Policy {
	return layout.For(c.Layout)
}
