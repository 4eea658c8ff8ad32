package java

// FieldSpec is one field declaration: doc, annotations, modifiers, type,
// name and an optional initializer.
type FieldSpec struct {
	cfg         Config
	typ         *TypeName
	name        string
	mods        []Modifier
	annotations []*AnnotationSpec
	doc         *CodeBlock
	initializer *CodeBlock
	render      *renderCell
}

// FieldBuilder accumulates one FieldSpec.
type FieldBuilder struct {
	cfg  Config
	typ  *TypeName
	name string
	mods []Modifier
	anns []*AnnotationSpec
	doc  *CodeBlock
	init *CodeBlock
	err  error
	done bool
}

// Field starts a field of the given type, name and modifiers.
func (c Config) Field(typ *TypeName, name string, mods ...Modifier) *FieldBuilder {
	c = c.withDefaults()
	b := &FieldBuilder{cfg: c, typ: typ, name: name, mods: mods}
	switch {
	case typ == nil:
		b.err = buildErrorf("field %q needs a type", name)
	case typ.IsVoid():
		b.err = buildErrorf("field %q cannot be void", name)
	case !isIdentifier(name):
		b.err = buildErrorf("field name %q is not an identifier", name)
	default:
		b.err = checkVisibility("field "+name, mods)
	}
	if b.err == nil && hasModifier(mods, Abstract) {
		b.err = buildErrorf("field %q cannot be abstract", name)
	}
	return b
}

// Doc sets the javadoc block.
func (b *FieldBuilder) Doc(format string, args ...any) *FieldBuilder {
	if b.err != nil || b.done {
		return b
	}
	block, err := b.cfg.Code(format, args...)
	if err != nil {
		b.err = err
		return b
	}
	b.doc = block
	return b
}

// Annotate attaches an annotation.
func (b *FieldBuilder) Annotate(a *AnnotationSpec) *FieldBuilder {
	if b.err == nil && !b.done {
		if a == nil {
			b.err = buildErrorf("nil annotation on field %q", b.name)
		} else {
			b.anns = append(b.anns, a)
		}
	}
	return b
}

// Initializer sets the field initializer; at most one is allowed.
func (b *FieldBuilder) Initializer(format string, args ...any) *FieldBuilder {
	if b.err != nil || b.done {
		return b
	}
	if b.init != nil {
		b.err = buildErrorf("field %q initializer set twice", b.name)
		return b
	}
	block, err := b.cfg.Code(format, args...)
	if err != nil {
		b.err = err
		return b
	}
	b.init = block
	return b
}

// Build finishes the spec and consumes the builder.
func (b *FieldBuilder) Build() (*FieldSpec, error) {
	if b.done {
		return nil, buildErrorf("field builder already consumed")
	}
	b.done = true
	if b.err != nil {
		return nil, b.err
	}
	return &FieldSpec{
		cfg:         b.cfg,
		typ:         b.typ,
		name:        b.name,
		mods:        normalizeModifiers(b.mods),
		annotations: append([]*AnnotationSpec(nil), b.anns...),
		doc:         b.doc,
		initializer: b.init,
		render:      &renderCell{},
	}, nil
}

// Name satisfies the $N placeholder.
func (f *FieldSpec) Name() string { return f.name }

// Type returns the declared type.
func (f *FieldSpec) Type() *TypeName { return f.typ }

func (f *FieldSpec) emit(w *Writer) error {
	if err := emitDoc(w, f.doc); err != nil {
		return err
	}
	for _, a := range f.annotations {
		if err := a.emit(w); err != nil {
			return err
		}
		if err := w.writeText("\n"); err != nil {
			return err
		}
	}
	if err := emitModifiers(w, f.mods); err != nil {
		return err
	}
	if err := f.typ.emit(w); err != nil {
		return err
	}
	if err := w.writeText(" " + f.name); err != nil {
		return err
	}
	if f.initializer != nil {
		if err := w.writeText(" = "); err != nil {
			return err
		}
		if err := f.initializer.emit(w); err != nil {
			return err
		}
	}
	return w.writeText(";\n")
}

// emitDoc renders a javadoc block with leading " * " line prefixes.
func emitDoc(w *Writer, doc *CodeBlock) error {
	if doc == nil || doc.IsEmpty() {
		return nil
	}
	if err := w.writeText("/**\n"); err != nil {
		return err
	}
	// Render the block standalone, then prefix each line.
	text := doc.String()
	var lineErr error
	linesOf(text)(func(line string) bool {
		if err := w.writeText(" * " + line + "\n"); err != nil {
			lineErr = err
			return false
		}
		return true
	})
	if lineErr != nil {
		return lineErr
	}
	return w.writeText(" */\n")
}

// linesOf iterates the lines of text without a trailing empty line.
func linesOf(text string) func(func(string) bool) {
	return func(yield func(string) bool) {
		start := 0
		for i := 0; i < len(text); i++ {
			if text[i] == '\n' {
				if !yield(text[start:i]) {
					return
				}
				start = i + 1
			}
		}
		if start < len(text) {
			yield(text[start:])
		}
	}
}

// String renders standalone, memoized.
func (f *FieldSpec) String() string {
	return f.render.get(func() string { return renderToString(f.cfg, f) })
}

// Equal is rendered-text equality under the owning configuration.
func (f *FieldSpec) Equal(o *FieldSpec) bool {
	if f == nil || o == nil {
		return f == o
	}
	return f.cfg == o.cfg && f.String() == o.String()
}

// Hash is consistent with Equal.
func (f *FieldSpec) Hash() uint64 {
	return hashConfigText(f.cfg, f.String())
}
