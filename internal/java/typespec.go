package java

// TypeSpecKind distinguishes the declarable type forms.
type TypeSpecKind uint8

const (
	ClassKind TypeSpecKind = iota
	InterfaceKind
	EnumKind
	AnnotationDeclKind
)

func (k TypeSpecKind) keyword() string {
	switch k {
	case InterfaceKind:
		return "interface"
	case EnumKind:
		return "enum"
	case AnnotationDeclKind:
		return "@interface"
	default:
		return "class"
	}
}

type enumConstant struct {
	name string
	args *CodeBlock // nil when the constant has no arguments
}

// TypeSpec is one type declaration with its members and nested types.
type TypeSpec struct {
	cfg           Config
	kind          TypeSpecKind
	name          string
	mods          []Modifier
	annotations   []*AnnotationSpec
	typeVars      []*TypeName
	superclass    *TypeName
	interfaces    []*TypeName
	enumConstants []enumConstant
	fields        []*FieldSpec
	methods       []*MethodSpec
	types         []*TypeSpec
	doc           *CodeBlock
	render        *renderCell
}

// TypeSpecBuilder accumulates one TypeSpec.
type TypeSpecBuilder struct {
	cfg           Config
	kind          TypeSpecKind
	name          string
	mods          []Modifier
	anns          []*AnnotationSpec
	typeVars      []*TypeName
	superclass    *TypeName
	interfaces    []*TypeName
	enumConstants []enumConstant
	fields        []*FieldSpec
	methods       []*MethodSpec
	types         []*TypeSpec
	doc           *CodeBlock
	err           error
	done          bool
}

// ClassDecl starts a class declaration.
func (c Config) ClassDecl(name string, mods ...Modifier) *TypeSpecBuilder {
	return c.typeDecl(ClassKind, name, mods)
}

// InterfaceDecl starts an interface declaration.
func (c Config) InterfaceDecl(name string, mods ...Modifier) *TypeSpecBuilder {
	return c.typeDecl(InterfaceKind, name, mods)
}

// EnumDecl starts an enum declaration.
func (c Config) EnumDecl(name string, mods ...Modifier) *TypeSpecBuilder {
	return c.typeDecl(EnumKind, name, mods)
}

// AnnotationDecl starts an @interface declaration.
func (c Config) AnnotationDecl(name string, mods ...Modifier) *TypeSpecBuilder {
	return c.typeDecl(AnnotationDeclKind, name, mods)
}

func (c Config) typeDecl(kind TypeSpecKind, name string, mods []Modifier) *TypeSpecBuilder {
	c = c.withDefaults()
	b := &TypeSpecBuilder{cfg: c, kind: kind, name: name, mods: mods}
	if !isIdentifier(name) {
		b.err = buildErrorf("type name %q is not an identifier", name)
		return b
	}
	b.err = checkVisibility("type "+name, mods)
	if b.err == nil && kind != ClassKind && hasModifier(mods, Final) && kind != EnumKind {
		b.err = buildErrorf("%s %q cannot be final", kind.keyword(), name)
	}
	return b
}

// Doc sets the javadoc block.
func (b *TypeSpecBuilder) Doc(format string, args ...any) *TypeSpecBuilder {
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

// Annotate attaches an annotation to the declaration.
func (b *TypeSpecBuilder) Annotate(a *AnnotationSpec) *TypeSpecBuilder {
	if b.err == nil && !b.done {
		if a == nil {
			b.err = buildErrorf("nil annotation on type %q", b.name)
		} else {
			b.anns = append(b.anns, a)
		}
	}
	return b
}

// TypeVariable declares a type variable on the type.
func (b *TypeSpecBuilder) TypeVariable(tv *TypeName) *TypeSpecBuilder {
	if b.err == nil && !b.done {
		if tv == nil || tv.Kind() != KindTypeVariable {
			b.err = buildErrorf("type %q: type variable expected", b.name)
		} else {
			b.typeVars = append(b.typeVars, tv)
		}
	}
	return b
}

// Extends sets the superclass (classes only).
func (b *TypeSpecBuilder) Extends(t *TypeName) *TypeSpecBuilder {
	if b.err != nil || b.done {
		return b
	}
	if b.kind != ClassKind {
		b.err = buildErrorf("only classes extend a superclass")
		return b
	}
	if t == nil || t.IsPrimitive() {
		b.err = buildErrorf("type %q: superclass must be a reference type", b.name)
		return b
	}
	b.superclass = t
	return b
}

// Implements adds a superinterface. On interfaces this becomes an extends
// clause.
func (b *TypeSpecBuilder) Implements(t *TypeName) *TypeSpecBuilder {
	if b.err == nil && !b.done {
		if t == nil || t.IsPrimitive() {
			b.err = buildErrorf("type %q: superinterface must be a reference type", b.name)
		} else {
			b.interfaces = append(b.interfaces, t)
		}
	}
	return b
}

// EnumConstant adds a constant to an enum declaration; format/args render
// the constructor arguments, if any.
func (b *TypeSpecBuilder) EnumConstant(name string, format string, args ...any) *TypeSpecBuilder {
	if b.err != nil || b.done {
		return b
	}
	if b.kind != EnumKind {
		b.err = buildErrorf("type %q is not an enum", b.name)
		return b
	}
	if !isIdentifier(name) {
		b.err = buildErrorf("enum constant %q is not an identifier", name)
		return b
	}
	var block *CodeBlock
	if format != "" {
		parsed, err := b.cfg.Code(format, args...)
		if err != nil {
			b.err = err
			return b
		}
		block = parsed
	}
	b.enumConstants = append(b.enumConstants, enumConstant{name: name, args: block})
	return b
}

// AddField appends a field member.
func (b *TypeSpecBuilder) AddField(f *FieldSpec) *TypeSpecBuilder {
	if b.err == nil && !b.done {
		if f == nil {
			b.err = buildErrorf("nil field on type %q", b.name)
		} else {
			b.fields = append(b.fields, f)
		}
	}
	return b
}

// AddMethod appends a method member.
func (b *TypeSpecBuilder) AddMethod(m *MethodSpec) *TypeSpecBuilder {
	if b.err == nil && !b.done {
		if m == nil {
			b.err = buildErrorf("nil method on type %q", b.name)
		} else {
			b.methods = append(b.methods, m)
		}
	}
	return b
}

// AddType appends a nested type.
func (b *TypeSpecBuilder) AddType(t *TypeSpec) *TypeSpecBuilder {
	if b.err == nil && !b.done {
		if t == nil {
			b.err = buildErrorf("nil nested type on %q", b.name)
		} else {
			b.types = append(b.types, t)
		}
	}
	return b
}

// Build finishes the spec and consumes the builder.
func (b *TypeSpecBuilder) Build() (*TypeSpec, error) {
	if b.done {
		return nil, buildErrorf("type builder already consumed")
	}
	b.done = true
	if b.err != nil {
		return nil, b.err
	}
	if b.kind == InterfaceKind {
		for _, m := range b.methods {
			if hasModifier(m.mods, Final) {
				return nil, buildErrorf("interface method %q cannot be final", m.name)
			}
		}
	}
	return &TypeSpec{
		cfg:           b.cfg,
		kind:          b.kind,
		name:          b.name,
		mods:          normalizeModifiers(b.mods),
		annotations:   append([]*AnnotationSpec(nil), b.anns...),
		typeVars:      append([]*TypeName(nil), b.typeVars...),
		superclass:    b.superclass,
		interfaces:    append([]*TypeName(nil), b.interfaces...),
		enumConstants: append([]enumConstant(nil), b.enumConstants...),
		fields:        append([]*FieldSpec(nil), b.fields...),
		methods:       append([]*MethodSpec(nil), b.methods...),
		types:         append([]*TypeSpec(nil), b.types...),
		doc:           b.doc,
		render:        &renderCell{},
	}, nil
}

// Name satisfies the $N placeholder.
func (t *TypeSpec) Name() string { return t.name }

func (t *TypeSpec) emit(w *Writer) error {
	if err := emitDoc(w, t.doc); err != nil {
		return err
	}
	for _, a := range t.annotations {
		if err := a.emit(w); err != nil {
			return err
		}
		if err := w.writeText("\n"); err != nil {
			return err
		}
	}
	if err := emitModifiers(w, t.mods); err != nil {
		return err
	}
	if err := w.writeText(t.kind.keyword() + " " + t.name); err != nil {
		return err
	}
	if len(t.typeVars) > 0 {
		// Declared without the trailing space of the method form.
		if err := w.writeText("<"); err != nil {
			return err
		}
		for i, tv := range t.typeVars {
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
		if err := w.writeText(">"); err != nil {
			return err
		}
	}
	if t.superclass != nil {
		if err := w.writeText(" extends "); err != nil {
			return err
		}
		if err := t.superclass.emit(w); err != nil {
			return err
		}
	}
	if len(t.interfaces) > 0 {
		clause := " implements "
		if t.kind == InterfaceKind {
			clause = " extends "
		}
		if err := w.writeText(clause); err != nil {
			return err
		}
		for i, iface := range t.interfaces {
			if i > 0 {
				if err := w.writeText(", "); err != nil {
					return err
				}
			}
			if err := iface.emit(w); err != nil {
				return err
			}
		}
	}
	if err := w.writeText(w.policy.BlockOpen); err != nil {
		return err
	}
	w.Indent(1)
	if err := t.emitMembers(w); err != nil {
		return err
	}
	w.Unindent(1)
	return w.writeText("}\n")
}

func (t *TypeSpec) emitMembers(w *Writer) error {
	first := true
	gap := func() error {
		if first {
			first = false
			return nil
		}
		return w.writeText("\n")
	}

	if len(t.enumConstants) > 0 {
		if err := gap(); err != nil {
			return err
		}
		for i, ec := range t.enumConstants {
			if err := w.writeText(ec.name); err != nil {
				return err
			}
			if ec.args != nil && !ec.args.IsEmpty() {
				if err := w.writeText("("); err != nil {
					return err
				}
				if err := ec.args.emit(w); err != nil {
					return err
				}
				if err := w.writeText(")"); err != nil {
					return err
				}
			}
			if i < len(t.enumConstants)-1 {
				if err := w.writeText(",\n"); err != nil {
					return err
				}
			}
		}
		if err := w.writeText(";\n"); err != nil {
			return err
		}
	}

	for _, f := range t.fields {
		if err := gap(); err != nil {
			return err
		}
		if err := f.emit(w); err != nil {
			return err
		}
	}
	for _, m := range t.methods {
		if err := gap(); err != nil {
			return err
		}
		if err := m.emitIn(w, t.name); err != nil {
			return err
		}
	}
	for _, nested := range t.types {
		if err := gap(); err != nil {
			return err
		}
		if err := nested.emit(w); err != nil {
			return err
		}
	}
	return nil
}

// String renders standalone, memoized.
func (t *TypeSpec) String() string {
	return t.render.get(func() string { return renderToString(t.cfg, t) })
}

// Equal is rendered-text equality under the owning configuration.
func (t *TypeSpec) Equal(o *TypeSpec) bool {
	if t == nil || o == nil {
		return t == o
	}
	return t.cfg == o.cfg && t.String() == o.String()
}

// Hash is consistent with Equal.
func (t *TypeSpec) Hash() uint64 {
	return hashConfigText(t.cfg, t.String())
}
