package driver

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"quill/internal/java"
	"quill/internal/layout"
	"quill/internal/manifest"
)

// fileComment goes above every generated compilation unit.
const fileComment = "Generated by quill. Do not edit."

// EngineConfig maps the manifest's [generate] section onto an engine
// configuration.
func EngineConfig(gen manifest.GenerateConfig) (java.Config, error) {
	cfg := java.Default()
	if gen.Style != "" {
		style, err := layout.ParseStyle(gen.Style)
		if err != nil {
			return java.Config{}, err
		}
		cfg.Layout = style
	}
	if gen.Indent != "" {
		cfg.Indent = gen.Indent
	}
	cfg.ShowImplicitImports = gen.ShowImplicitImports
	return cfg, nil
}

var primitives = map[string]*java.TypeName{
	"boolean": java.Boolean,
	"byte":    java.Byte,
	"short":   java.Short,
	"int":     java.Int,
	"long":    java.Long,
	"char":    java.Char,
	"float":   java.Float,
	"double":  java.Double,
}

// parseType resolves a manifest type string: a primitive keyword, a
// canonical class name, or either with trailing [] pairs.
func parseType(cfg java.Config, s string) (*java.TypeName, error) {
	if base, ok := strings.CutSuffix(s, "[]"); ok {
		component, err := parseType(cfg, base)
		if err != nil {
			return nil, err
		}
		return cfg.ArrayOf(component)
	}
	if t, ok := primitives[s]; ok {
		return t, nil
	}
	if !strings.Contains(s, ".") {
		return nil, fmt.Errorf("type %q is neither a primitive nor a canonical class name", s)
	}
	return cfg.Class(s)
}

// BuildClass turns one manifest class entry into a renderable
// compilation unit.
func BuildClass(cfg java.Config, cc manifest.ClassConfig) (*java.SourceFile, error) {
	mods := []java.Modifier{java.Public}
	if cc.Final {
		mods = append(mods, java.Final)
	}
	tb := cfg.ClassDecl(cc.Name, mods...)
	if cc.Doc != "" {
		tb.Doc("$L", cc.Doc)
	}
	for _, ac := range cc.Annotations {
		ab := cfg.AnnotationFor(ac.Type)
		if ac.Value != "" {
			ab.MemberValue("value", ac.Value)
		}
		ann, err := ab.Build()
		if err != nil {
			return nil, fmt.Errorf("class %s: %w", cc.Name, err)
		}
		tb.Annotate(ann)
	}

	for _, fc := range cc.Fields {
		typ, err := parseType(cfg, fc.Type)
		if err != nil {
			return nil, fmt.Errorf("class %s, field %s: %w", cc.Name, fc.Name, err)
		}
		fb := cfg.Field(typ, fc.Name, fieldModifiers(fc)...)
		if fc.Init != "" {
			fb.Initializer("$L", fc.Init)
		}
		field, err := fb.Build()
		if err != nil {
			return nil, fmt.Errorf("class %s, field %s: %w", cc.Name, fc.Name, err)
		}
		tb.AddField(field)

		if cc.Accessors {
			if err := addAccessors(cfg, tb, typ, fc); err != nil {
				return nil, fmt.Errorf("class %s, field %s: %w", cc.Name, fc.Name, err)
			}
		}
	}

	typ, err := tb.Build()
	if err != nil {
		return nil, fmt.Errorf("class %s: %w", cc.Name, err)
	}
	file, err := cfg.File(cc.Package, typ).FileComment("$L", fileComment).Build()
	if err != nil {
		return nil, fmt.Errorf("class %s: %w", cc.Name, err)
	}
	return file, nil
}

func fieldModifiers(fc manifest.FieldConfig) []java.Modifier {
	var mods []java.Modifier
	switch fc.Visibility {
	case "public":
		mods = append(mods, java.Public)
	case "protected":
		mods = append(mods, java.Protected)
	case "private", "":
		mods = append(mods, java.Private)
	}
	if fc.Final {
		mods = append(mods, java.Final)
	}
	return mods
}

// addAccessors appends a getter, and a setter for non-final fields.
func addAccessors(cfg java.Config, tb *java.TypeSpecBuilder, typ *java.TypeName, fc manifest.FieldConfig) error {
	getter, err := cfg.Method(accessorName("get", fc.Name), java.Public).
		Returns(typ).
		Statement("return $N", fc.Name).
		Build()
	if err != nil {
		return err
	}
	tb.AddMethod(getter)

	if fc.Final {
		return nil
	}
	setter, err := cfg.Method(accessorName("set", fc.Name), java.Public).
		AddParam(typ, fc.Name).
		Statement("this.$N = $N", fc.Name, fc.Name).
		Build()
	if err != nil {
		return err
	}
	tb.AddMethod(setter)
	return nil
}

func accessorName(prefix, field string) string {
	r, size := utf8.DecodeRuneInString(field)
	return prefix + string(unicode.ToUpper(r)) + field[size:]
}
