package java

// ParameterSpec is one formal parameter: annotations, an optional final
// modifier, a type and a name.
type ParameterSpec struct {
	cfg         Config
	typ         *TypeName
	name        string
	mods        []Modifier
	annotations []*AnnotationSpec
	render      *renderCell
}

// ParameterBuilder accumulates one ParameterSpec.
type ParameterBuilder struct {
	cfg   Config
	typ   *TypeName
	name  string
	mods  []Modifier
	anns  []*AnnotationSpec
	err   error
	done  bool
}

// Parameter starts a parameter of the given type and name.
func (c Config) Parameter(typ *TypeName, name string) *ParameterBuilder {
	c = c.withDefaults()
	b := &ParameterBuilder{cfg: c, typ: typ, name: name}
	switch {
	case typ == nil:
		b.err = buildErrorf("parameter %q needs a type", name)
	case typ.IsVoid():
		b.err = buildErrorf("parameter %q cannot be void", name)
	case !isIdentifier(name):
		b.err = buildErrorf("parameter name %q is not an identifier", name)
	}
	return b
}

// Final marks the parameter final. Only final is legal on parameters.
func (b *ParameterBuilder) Final() *ParameterBuilder {
	if b.err == nil && !b.done {
		b.mods = append(b.mods, Final)
	}
	return b
}

// Annotate attaches an annotation.
func (b *ParameterBuilder) Annotate(a *AnnotationSpec) *ParameterBuilder {
	if b.err == nil && !b.done {
		if a == nil {
			b.err = buildErrorf("nil annotation on parameter %q", b.name)
		} else {
			b.anns = append(b.anns, a)
		}
	}
	return b
}

// Build finishes the spec and consumes the builder.
func (b *ParameterBuilder) Build() (*ParameterSpec, error) {
	if b.done {
		return nil, buildErrorf("parameter builder already consumed")
	}
	b.done = true
	if b.err != nil {
		return nil, b.err
	}
	return &ParameterSpec{
		cfg:         b.cfg,
		typ:         b.typ,
		name:        b.name,
		mods:        normalizeModifiers(b.mods),
		annotations: append([]*AnnotationSpec(nil), b.anns...),
		render:      &renderCell{},
	}, nil
}

// Name satisfies the $N placeholder.
func (p *ParameterSpec) Name() string { return p.name }

// Type returns the declared type.
func (p *ParameterSpec) Type() *TypeName { return p.typ }

func (p *ParameterSpec) emit(w *Writer) error {
	return p.emitVarargs(w, false)
}

// emitVarargs renders the parameter; in varargs position an array type's
// last dimension becomes an ellipsis.
func (p *ParameterSpec) emitVarargs(w *Writer, varargs bool) error {
	for _, a := range p.annotations {
		if err := a.emitInline(w); err != nil {
			return err
		}
		if err := w.writeText(" "); err != nil {
			return err
		}
	}
	if err := emitModifiers(w, p.mods); err != nil {
		return err
	}
	if err := p.typ.emitVarargs(w, varargs); err != nil {
		return err
	}
	if err := w.writeText(" "); err != nil {
		return err
	}
	return w.writeText(p.name)
}

// String renders standalone, memoized.
func (p *ParameterSpec) String() string {
	return p.render.get(func() string { return renderToString(p.cfg, p) })
}

// Equal is rendered-text equality under the owning configuration.
func (p *ParameterSpec) Equal(o *ParameterSpec) bool {
	if p == nil || o == nil {
		return p == o
	}
	return p.cfg == o.cfg && p.String() == o.String()
}

// Hash is consistent with Equal.
func (p *ParameterSpec) Hash() uint64 {
	return hashConfigText(p.cfg, p.String())
}
