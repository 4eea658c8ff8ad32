package java

import (
	"reflect"
	"strings"
	"testing"

	"quill/internal/layout"
)

func mustClass(t *testing.T, cfg Config, canonical string) *TypeName {
	t.Helper()
	tn, err := cfg.Class(canonical)
	if err != nil {
		t.Fatalf("Class(%q): %v", canonical, err)
	}
	return tn
}

func TestClassParsing(t *testing.T) {
	cfg := Default()

	tn := mustClass(t, cfg, "com.example.Widget")
	if tn.PackageName() != "com.example" {
		t.Errorf("package = %q", tn.PackageName())
	}
	if tn.SimpleName() != "Widget" {
		t.Errorf("simple = %q", tn.SimpleName())
	}
	if tn.Canonical() != "com.example.Widget" {
		t.Errorf("canonical = %q", tn.Canonical())
	}

	nested := mustClass(t, cfg, "com.example.Widget.Knob")
	if nested.SimpleName() != "Knob" {
		t.Errorf("nested simple = %q", nested.SimpleName())
	}
	if got := nested.TopLevel().Canonical(); got != "com.example.Widget" {
		t.Errorf("top level = %q", got)
	}

	if _, err := cfg.Class("com.example"); err == nil {
		t.Error("all-lowercase canonical should fail")
	}
	if _, err := cfg.Class("com.example.Widget.knob"); err == nil {
		t.Error("lower-case nested link should fail")
	}
}

func TestStandaloneRenderIsQualified(t *testing.T) {
	cfg := Default()
	tn := mustClass(t, cfg, "java.util.List")
	if got := tn.String(); got != "java.util.List" {
		t.Errorf("String() = %q, want fully qualified", got)
	}
}

func TestParameterizedRendering(t *testing.T) {
	cfg := Default()
	list := mustClass(t, cfg, "java.util.List")
	str := mustClass(t, cfg, "java.lang.String")

	p, err := cfg.Parameterized(list, str)
	if err != nil {
		t.Fatalf("Parameterized: %v", err)
	}
	want := "java.util.List<java.lang.String>"
	if got := p.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestParameterizedConstraints(t *testing.T) {
	cfg := Default()
	list := mustClass(t, cfg, "java.util.List")

	if _, err := cfg.Parameterized(list); err == nil {
		t.Error("empty argument list without enclosing type should fail")
	}
	if _, err := cfg.Parameterized(list, Int); err == nil {
		t.Error("primitive type argument should fail")
	}
	if _, err := cfg.Parameterized(list, Void); err == nil {
		t.Error("void type argument should fail")
	}
}

func TestNestedParameterized(t *testing.T) {
	cfg := Default()
	mp := mustClass(t, cfg, "java.util.Map")
	k := mustClass(t, cfg, "java.lang.String")
	v := mustClass(t, cfg, "java.lang.Long")

	outer, err := cfg.Parameterized(mp, k, v)
	if err != nil {
		t.Fatalf("Parameterized: %v", err)
	}
	entry, err := outer.NestedParameterized("Entry", k, v)
	if err != nil {
		t.Fatalf("NestedParameterized: %v", err)
	}
	want := "java.util.Map<java.lang.String, java.lang.Long>.Entry<java.lang.String, java.lang.Long>"
	if got := entry.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	// An enclosing instance excuses an empty argument list.
	bare, err := outer.NestedParameterized("Entry")
	if err != nil {
		t.Fatalf("NestedParameterized without args: %v", err)
	}
	if !strings.HasSuffix(bare.String(), ".Entry") {
		t.Errorf("got %q", bare.String())
	}
}

func TestArrayRendering(t *testing.T) {
	cfg := Default()
	arr, err := cfg.ArrayOf(Int)
	if err != nil {
		t.Fatalf("ArrayOf: %v", err)
	}
	if got := arr.String(); got != "int[]" {
		t.Errorf("got %q, want int[]", got)
	}

	arr2, err := cfg.ArrayOf(arr)
	if err != nil {
		t.Fatalf("ArrayOf: %v", err)
	}
	if got := arr2.String(); got != "int[][]" {
		t.Errorf("got %q, want int[][]", got)
	}

	if _, err := cfg.ArrayOf(Void); err == nil {
		t.Error("array of void should fail")
	}
}

func TestArrayVarargsRendering(t *testing.T) {
	cfg := Default()
	arr, _ := cfg.ArrayOf(Int)
	arr2, _ := cfg.ArrayOf(arr)

	var sb strings.Builder
	w := newWriter(cfg, &sb, nil)
	if err := arr2.emitVarargs(w, true); err != nil {
		t.Fatalf("emit: %v", err)
	}
	if got := sb.String(); got != "int[]..." {
		t.Errorf("got %q, want int[]...", got)
	}
}

func TestTypeVariable(t *testing.T) {
	cfg := Default()
	cmp := mustClass(t, cfg, "java.lang.Comparable")
	tv, err := cfg.TypeVar("T", cmp)
	if err != nil {
		t.Fatalf("TypeVar: %v", err)
	}
	if got := tv.String(); got != "T" {
		t.Errorf("use-site rendering = %q, want bare name", got)
	}
	if len(tv.Bounds()) != 1 {
		t.Fatalf("bounds = %d", len(tv.Bounds()))
	}

	if _, err := cfg.TypeVar("T", Int); err == nil {
		t.Error("primitive bound should fail")
	}
}

func TestEqualityByRenderedText(t *testing.T) {
	cfg := Default()
	a := mustClass(t, cfg, "java.util.List")
	b, err := cfg.ClassIn("java.util", "List")
	if err != nil {
		t.Fatalf("ClassIn: %v", err)
	}
	if !a.Equal(b) {
		t.Error("distinct instances with identical rendering should be equal")
	}
	if a.Hash() != b.Hash() {
		t.Error("equal values must share a hash")
	}

	c := mustClass(t, cfg, "java.util.Lists")
	if a.Equal(c) {
		t.Error("one changed character should break equality")
	}
}

func TestEqualityDependsOnConfig(t *testing.T) {
	compact := Default()
	expanded := Default()
	expanded.Layout = layout.StyleExpanded

	a := mustClass(t, compact, "java.util.List")
	b := mustClass(t, expanded, "java.util.List")
	if a.String() != b.String() {
		t.Fatalf("renderings differ: %q vs %q", a, b)
	}
	if a.Equal(b) {
		t.Error("identical text under different configurations must not be equal")
	}
}

func TestRenderMemoizedOnce(t *testing.T) {
	cfg := Default()
	tn := mustClass(t, cfg, "com.example.Widget")
	first := tn.String()
	second := tn.String()
	if first != second {
		t.Fatalf("renders differ: %q vs %q", first, second)
	}
	if got := tn.render.computations(); got != 1 {
		t.Errorf("render computed %d times, want 1", got)
	}
}

func TestAnnotatedCopies(t *testing.T) {
	cfg := Default()
	tn := mustClass(t, cfg, "java.lang.String")
	ann, err := cfg.AnnotationFor("javax.annotation.Nullable").Build()
	if err != nil {
		t.Fatalf("annotation: %v", err)
	}

	annotated := tn.Annotated(ann)
	if tn.IsAnnotated() {
		t.Error("original must stay untouched")
	}
	if !annotated.IsAnnotated() {
		t.Error("derived copy should carry the annotation")
	}
	want := "@javax.annotation.Nullable java.lang.String"
	if got := annotated.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	stripped := annotated.WithoutAnnotations()
	if stripped.IsAnnotated() {
		t.Error("WithoutAnnotations should strip")
	}
	if !stripped.Equal(tn) {
		t.Errorf("stripped copy should equal the original: %q vs %q", stripped, tn)
	}
}

func TestTypeNameOf(t *testing.T) {
	cfg := Default()
	cases := []struct {
		in   reflect.Type
		want string
	}{
		{reflect.TypeOf(true), "boolean"},
		{reflect.TypeOf(int8(0)), "byte"},
		{reflect.TypeOf(int16(0)), "short"},
		{reflect.TypeOf(int32(0)), "int"},
		{reflect.TypeOf(int64(0)), "long"},
		{reflect.TypeOf(float32(0)), "float"},
		{reflect.TypeOf(float64(0)), "double"},
		{reflect.TypeOf(""), "java.lang.String"},
		{reflect.TypeOf([]int64{}), "long[]"},
		{reflect.TypeOf([][]bool{}), "boolean[][]"},
	}
	for _, tc := range cases {
		tn, err := cfg.TypeNameOf(tc.in)
		if err != nil {
			t.Errorf("TypeNameOf(%v): %v", tc.in, err)
			continue
		}
		if got := tn.String(); got != tc.want {
			t.Errorf("TypeNameOf(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}

	if _, err := cfg.TypeNameOf(reflect.TypeOf(map[string]int{})); err == nil {
		t.Error("map should have no Java counterpart")
	}
	if _, err := cfg.TypeNameOf(reflect.TypeOf(0)); err == nil {
		t.Error("unsized int should have no Java counterpart")
	}
}
