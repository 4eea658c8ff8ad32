package java

import (
	"reflect"
	"strings"
)

// TypeNameOf translates a Go reflect.Type mirror into a type reference:
// fixed-size integers and floats map to the matching Java primitives,
// strings to java.lang.String, slices and arrays to Java arrays, and
// named struct or interface types to classes derived from their package
// path. Channels, funcs, maps and unsized integers have no Java
// counterpart and are construction errors.
func (c Config) TypeNameOf(t reflect.Type) (*TypeName, error) {
	c = c.withDefaults()
	if t == nil {
		return nil, buildErrorf("nil reflect.Type")
	}
	switch t.Kind() {
	case reflect.Bool:
		return Boolean, nil
	case reflect.Int8:
		return Byte, nil
	case reflect.Int16:
		return Short, nil
	case reflect.Int32:
		return Int, nil
	case reflect.Int64:
		return Long, nil
	case reflect.Float32:
		return Float, nil
	case reflect.Float64:
		return Double, nil
	case reflect.String:
		return c.ClassIn(javaLang, "String")
	case reflect.Slice, reflect.Array:
		component, err := c.TypeNameOf(t.Elem())
		if err != nil {
			return nil, err
		}
		return c.ArrayOf(component)
	case reflect.Pointer:
		return c.TypeNameOf(t.Elem())
	case reflect.Struct, reflect.Interface:
		if t.Name() == "" {
			return nil, buildErrorf("anonymous %s type has no Java name", t.Kind())
		}
		pkg := strings.ReplaceAll(t.PkgPath(), "/", ".")
		pkg = strings.ReplaceAll(pkg, "-", "_")
		if pkg == "" {
			return c.ClassIn("", t.Name())
		}
		return c.ClassIn(pkg, t.Name())
	default:
		return nil, buildErrorf("no Java type for Go kind %s", t.Kind())
	}
}
