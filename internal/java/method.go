package java

// MethodSpec is one method or constructor declaration.
type MethodSpec struct {
	cfg         Config
	name        string // "" for constructors
	mods        []Modifier
	annotations []*AnnotationSpec
	typeVars    []*TypeName
	returns     *TypeName
	params      []*ParameterSpec
	varargs     bool
	throws      []*TypeName
	body        []*CodeBlock
	doc         *CodeBlock
	render      *renderCell
}

// MethodBuilder accumulates one MethodSpec.
type MethodBuilder struct {
	cfg         Config
	name        string
	constructor bool
	mods        []Modifier
	anns        []*AnnotationSpec
	typeVars    []*TypeName
	returns     *TypeName
	params      []*ParameterSpec
	varargs     bool
	throws      []*TypeName
	body        []*CodeBlock
	doc         *CodeBlock
	err         error
	done        bool
}

// Method starts a method declaration. The return type defaults to void.
func (c Config) Method(name string, mods ...Modifier) *MethodBuilder {
	c = c.withDefaults()
	b := &MethodBuilder{cfg: c, name: name, mods: mods, returns: Void}
	if !isIdentifier(name) {
		b.err = buildErrorf("method name %q is not an identifier", name)
		return b
	}
	b.err = checkMethodModifiers("method "+name, mods)
	return b
}

// Constructor starts a constructor declaration; the emitting type supplies
// the name.
func (c Config) Constructor(mods ...Modifier) *MethodBuilder {
	c = c.withDefaults()
	b := &MethodBuilder{cfg: c, constructor: true, mods: mods}
	b.err = checkVisibility("constructor", mods)
	if b.err == nil && (hasModifier(mods, Abstract) || hasModifier(mods, Static) || hasModifier(mods, Final)) {
		b.err = buildErrorf("constructor cannot be abstract, static or final")
	}
	return b
}

func checkMethodModifiers(what string, mods []Modifier) error {
	if err := checkVisibility(what, mods); err != nil {
		return err
	}
	if hasModifier(mods, Abstract) {
		for _, m := range []Modifier{Private, Static, Final, Synchronized, Native} {
			if hasModifier(mods, m) {
				return buildErrorf("%s cannot be both abstract and %s", what, m)
			}
		}
	}
	return nil
}

// Doc sets the javadoc block.
func (b *MethodBuilder) Doc(format string, args ...any) *MethodBuilder {
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
func (b *MethodBuilder) Annotate(a *AnnotationSpec) *MethodBuilder {
	if b.err == nil && !b.done {
		if a == nil {
			b.err = buildErrorf("nil annotation on method %q", b.name)
		} else {
			b.anns = append(b.anns, a)
		}
	}
	return b
}

// TypeVariable declares a type variable on the method.
func (b *MethodBuilder) TypeVariable(tv *TypeName) *MethodBuilder {
	if b.err == nil && !b.done {
		if tv == nil || tv.Kind() != KindTypeVariable {
			b.err = buildErrorf("method %q: type variable expected", b.name)
		} else {
			b.typeVars = append(b.typeVars, tv)
		}
	}
	return b
}

// Returns sets the return type. Constructors have none.
func (b *MethodBuilder) Returns(t *TypeName) *MethodBuilder {
	if b.err != nil || b.done {
		return b
	}
	if b.constructor {
		b.err = buildErrorf("constructor cannot declare a return type")
		return b
	}
	if t == nil {
		b.err = buildErrorf("method %q: nil return type", b.name)
		return b
	}
	b.returns = t
	return b
}

// Param appends a parameter.
func (b *MethodBuilder) Param(p *ParameterSpec) *MethodBuilder {
	if b.err == nil && !b.done {
		if p == nil {
			b.err = buildErrorf("nil parameter on %q", b.name)
		} else {
			b.params = append(b.params, p)
		}
	}
	return b
}

// AddParam builds and appends a parameter in one step.
func (b *MethodBuilder) AddParam(typ *TypeName, name string) *MethodBuilder {
	if b.err != nil || b.done {
		return b
	}
	p, err := b.cfg.Parameter(typ, name).Build()
	if err != nil {
		b.err = err
		return b
	}
	return b.Param(p)
}

// Varargs marks the last parameter variadic; its type must be an array.
func (b *MethodBuilder) Varargs() *MethodBuilder {
	if b.err == nil && !b.done {
		b.varargs = true
	}
	return b
}

// Throws declares a thrown exception type.
func (b *MethodBuilder) Throws(t *TypeName) *MethodBuilder {
	if b.err == nil && !b.done {
		if t == nil || t.IsPrimitive() {
			b.err = buildErrorf("method %q: thrown type must be a reference type", b.name)
		} else {
			b.throws = append(b.throws, t)
		}
	}
	return b
}

// Statement appends one body statement; the semicolon and newline are
// added here.
func (b *MethodBuilder) Statement(format string, args ...any) *MethodBuilder {
	return b.Code(format+";\n", args...)
}

// Code appends a raw body fragment, including any $>/$< flow the caller
// wants.
func (b *MethodBuilder) Code(format string, args ...any) *MethodBuilder {
	if b.err != nil || b.done {
		return b
	}
	block, err := b.cfg.Code(format, args...)
	if err != nil {
		b.err = err
		return b
	}
	b.body = append(b.body, block)
	return b
}

// Build finishes the spec and consumes the builder.
func (b *MethodBuilder) Build() (*MethodSpec, error) {
	if b.done {
		return nil, buildErrorf("method builder already consumed")
	}
	b.done = true
	if b.err != nil {
		return nil, b.err
	}
	if hasModifier(b.mods, Abstract) && len(b.body) > 0 {
		return nil, buildErrorf("abstract method %q cannot have a body", b.name)
	}
	if b.varargs {
		if len(b.params) == 0 {
			return nil, buildErrorf("varargs method %q needs at least one parameter", b.name)
		}
		last := b.params[len(b.params)-1]
		if last.Type().Kind() != KindArray {
			return nil, buildErrorf("varargs parameter %q must have an array type", last.Name())
		}
	}
	return &MethodSpec{
		cfg:         b.cfg,
		name:        b.name,
		mods:        normalizeModifiers(b.mods),
		annotations: append([]*AnnotationSpec(nil), b.anns...),
		typeVars:    append([]*TypeName(nil), b.typeVars...),
		returns:     b.returns,
		params:      append([]*ParameterSpec(nil), b.params...),
		varargs:     b.varargs,
		throws:      append([]*TypeName(nil), b.throws...),
		body:        append([]*CodeBlock(nil), b.body...),
		doc:         b.doc,
		render:      &renderCell{},
	}, nil
}

// Name satisfies the $N placeholder; constructors answer "<init>".
func (m *MethodSpec) Name() string {
	if m.IsConstructor() {
		return "<init>"
	}
	return m.name
}

// IsConstructor reports whether the spec was started with Constructor.
func (m *MethodSpec) IsConstructor() bool { return m.name == "" && m.returns == nil }

func (m *MethodSpec) emit(w *Writer) error {
	return m.emitIn(w, "")
}

// emitIn renders the declaration; enclosingName names constructors.
func (m *MethodSpec) emitIn(w *Writer, enclosingName string) error {
	if err := emitDoc(w, m.doc); err != nil {
		return err
	}
	for _, a := range m.annotations {
		if err := a.emit(w); err != nil {
			return err
		}
		if err := w.writeText("\n"); err != nil {
			return err
		}
	}
	if err := emitModifiers(w, m.mods); err != nil {
		return err
	}
	if err := emitTypeVariableDecls(w, m.typeVars); err != nil {
		return err
	}
	if m.IsConstructor() {
		name := enclosingName
		if name == "" {
			name = "Constructor"
		}
		if err := w.writeText(name); err != nil {
			return err
		}
	} else {
		if err := m.returns.emit(w); err != nil {
			return err
		}
		if err := w.writeText(" " + m.name); err != nil {
			return err
		}
	}
	if err := w.writeText("("); err != nil {
		return err
	}
	for i, p := range m.params {
		if i > 0 {
			if err := w.writeText(", "); err != nil {
				return err
			}
		}
		varargs := m.varargs && i == len(m.params)-1
		if err := p.emitVarargs(w, varargs); err != nil {
			return err
		}
	}
	if err := w.writeText(")"); err != nil {
		return err
	}
	if len(m.throws) > 0 {
		if err := w.writeText(" throws "); err != nil {
			return err
		}
		for i, t := range m.throws {
			if i > 0 {
				if err := w.writeText(", "); err != nil {
					return err
				}
			}
			if err := t.emit(w); err != nil {
				return err
			}
		}
	}
	if hasModifier(m.mods, Abstract) || hasModifier(m.mods, Native) {
		return w.writeText(";\n")
	}
	if err := w.writeText(w.policy.BlockOpen); err != nil {
		return err
	}
	w.Indent(1)
	for _, b := range m.body {
		if err := b.emit(w); err != nil {
			return err
		}
	}
	w.Unindent(1)
	return w.writeText("}\n")
}

// emitTypeVariableDecls renders "<T extends A & B, R> " declarations.
func emitTypeVariableDecls(w *Writer, vars []*TypeName) error {
	if len(vars) == 0 {
		return nil
	}
	if err := w.writeText("<"); err != nil {
		return err
	}
	for i, tv := range vars {
		if i > 0 {
			if err := w.writeText(", "); err != nil {
				return err
			}
		}
		if err := w.writeText(tv.SimpleName()); err != nil {
			return err
		}
		for j, bound := range tv.Bounds() {
			sep := " extends "
			if j > 0 {
				sep = " & "
			}
			if err := w.writeText(sep); err != nil {
				return err
			}
			if err := bound.emit(w); err != nil {
				return err
			}
		}
	}
	return w.writeText("> ")
}

// String renders standalone, memoized. The rendering is nameless for
// constructors.
func (m *MethodSpec) String() string {
	return m.render.get(func() string { return renderToString(m.cfg, m) })
}

// Equal is rendered-text equality under the owning configuration.
func (m *MethodSpec) Equal(o *MethodSpec) bool {
	if m == nil || o == nil {
		return m == o
	}
	return m.cfg == o.cfg && m.String() == o.String()
}

// Hash is consistent with Equal.
func (m *MethodSpec) Hash() uint64 {
	return hashConfigText(m.cfg, m.String())
}
