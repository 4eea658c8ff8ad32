package java

import "testing"

func mustParameter(t *testing.T, b *ParameterBuilder) *ParameterSpec {
	t.Helper()
	p, err := b.Build()
	if err != nil {
		t.Fatalf("parameter: %v", err)
	}
	return p
}

func TestParameterRendering(t *testing.T) {
	cfg := Default()

	p := mustParameter(t, cfg.Parameter(Int, "count"))
	if got := p.String(); got != "int count" {
		t.Errorf("got %q", got)
	}

	p = mustParameter(t, cfg.Parameter(Int, "count").Final())
	if got := p.String(); got != "final int count" {
		t.Errorf("final: got %q", got)
	}

	nullable := mustAnnotation(t, cfg.AnnotationFor("javax.annotation.Nullable"))
	str := mustClass(t, cfg, "java.lang.String")
	p = mustParameter(t, cfg.Parameter(str, "s").Annotate(nullable))
	if got := p.String(); got != "@javax.annotation.Nullable java.lang.String s" {
		t.Errorf("annotated: got %q", got)
	}
}

func TestParameterVarargsRendering(t *testing.T) {
	cfg := Default()
	arr, err := cfg.ArrayOf(Int)
	if err != nil {
		t.Fatal(err)
	}
	p := mustParameter(t, cfg.Parameter(arr, "nums"))

	got := renderToString(cfg, emitFunc(func(w *Writer) error {
		return p.emitVarargs(w, true)
	}))
	if got != "int... nums" {
		t.Errorf("got %q", got)
	}
}

type emitFunc func(*Writer) error

func (f emitFunc) emit(w *Writer) error { return f(w) }

func TestParameterErrors(t *testing.T) {
	cfg := Default()
	if _, err := cfg.Parameter(nil, "x").Build(); err == nil {
		t.Error("nil type should fail")
	}
	if _, err := cfg.Parameter(Void, "x").Build(); err == nil {
		t.Error("void parameter should fail")
	}
	if _, err := cfg.Parameter(Int, "1x").Build(); err == nil {
		t.Error("invalid name should fail")
	}
}
