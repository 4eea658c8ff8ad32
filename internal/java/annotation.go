package java

import "strings"

// AnnotationSpec is an annotation use: a type plus an insertion-ordered
// mapping from member name to one or more value fragments. Immutable; all
// mutation happens on the builder, which Build consumes.
type AnnotationSpec struct {
	cfg     Config
	typ     *TypeName
	members []annotationMember
	render  *renderCell
}

type annotationMember struct {
	name   string
	values []*CodeBlock
}

// AnnotationBuilder accumulates members for one AnnotationSpec. Errors are
// collected and reported by Build; the builder is dead after Build.
type AnnotationBuilder struct {
	cfg     Config
	typ     *TypeName
	members []annotationMember
	err     error
	done    bool
}

// Annotation starts an annotation use of the given class type.
func (c Config) Annotation(t *TypeName) *AnnotationBuilder {
	c = c.withDefaults()
	b := &AnnotationBuilder{cfg: c, typ: t}
	if t == nil || t.Kind() != KindClass {
		b.err = buildErrorf("annotation type must be a class reference")
	}
	return b
}

// AnnotationFor is Annotation over a canonical class name.
func (c Config) AnnotationFor(canonical string) *AnnotationBuilder {
	c = c.withDefaults()
	t, err := c.Class(canonical)
	if err != nil {
		return &AnnotationBuilder{cfg: c, err: err}
	}
	return c.Annotation(t)
}

// Member adds one value fragment to the named member, parsed from a
// placeholder template. Repeated calls for one name accumulate values.
func (b *AnnotationBuilder) Member(name, format string, args ...any) *AnnotationBuilder {
	if b.err != nil || b.done {
		return b
	}
	if !isIdentifier(name) {
		b.err = buildErrorf("annotation member name %q is not an identifier", name)
		return b
	}
	block, err := b.cfg.Code(format, args...)
	if err != nil {
		b.err = err
		return b
	}
	b.addValue(name, block)
	return b
}

// MemberValue adds a value of the member from a Go value: strings become
// string literals, type references become $T renderings, code blocks pass
// through; a value of unknown kind falls back to literal emission.
func (b *AnnotationBuilder) MemberValue(name string, v any) *AnnotationBuilder {
	switch val := v.(type) {
	case string:
		return b.Member(name, "$S", val)
	case *TypeName:
		return b.Member(name, "$T", val)
	case *CodeBlock:
		if b.err == nil && !b.done {
			if !isIdentifier(name) {
				b.err = buildErrorf("annotation member name %q is not an identifier", name)
			} else {
				b.addValue(name, val)
			}
		}
		return b
	case float32:
		return b.Member(name, "$Lf", val)
	default:
		return b.Member(name, "$L", v)
	}
}

func (b *AnnotationBuilder) addValue(name string, block *CodeBlock) {
	for i := range b.members {
		if b.members[i].name == name {
			b.members[i].values = append(b.members[i].values, block)
			return
		}
	}
	b.members = append(b.members, annotationMember{name: name, values: []*CodeBlock{block}})
}

// Build finishes the spec and consumes the builder.
func (b *AnnotationBuilder) Build() (*AnnotationSpec, error) {
	if b.done {
		return nil, buildErrorf("annotation builder already consumed")
	}
	b.done = true
	if b.err != nil {
		return nil, b.err
	}
	members := make([]annotationMember, len(b.members))
	for i, m := range b.members {
		members[i] = annotationMember{
			name:   m.name,
			values: append([]*CodeBlock(nil), m.values...),
		}
	}
	return &AnnotationSpec{
		cfg:     b.cfg,
		typ:     b.typ,
		members: members,
		render:  &renderCell{},
	}, nil
}

// Type returns the annotation's type reference.
func (a *AnnotationSpec) Type() *TypeName { return a.typ }

// emit renders per the owning layout policy: compact keeps members on one
// line, expanded puts one member per line.
func (a *AnnotationSpec) emit(w *Writer) error {
	return a.emitSep(w, w.policy.MemberSeparator, w.policy.SingleValueGap)
}

// emitInline forces the single-line form, used for annotations attached to
// types and parameters.
func (a *AnnotationSpec) emitInline(w *Writer) error {
	return a.emitSep(w, ", ", "")
}

func (a *AnnotationSpec) emitSep(w *Writer, separator, gap string) error {
	if err := w.writeText("@"); err != nil {
		return err
	}
	if err := a.typ.emit(w); err != nil {
		return err
	}
	if len(a.members) == 0 {
		return nil
	}
	if err := w.writeText("("); err != nil {
		return err
	}
	if a.isSoleValue() {
		if err := w.writeText(gap); err != nil {
			return err
		}
		if err := a.members[0].values[0].emit(w); err != nil {
			return err
		}
		if err := w.writeText(gap); err != nil {
			return err
		}
		return w.writeText(")")
	}
	multiline := strings.Contains(separator, "\n")
	if multiline {
		if err := w.writeText("\n"); err != nil {
			return err
		}
		w.Indent(2)
	}
	for i, m := range a.members {
		if i > 0 {
			if err := w.writeText(separator); err != nil {
				return err
			}
		}
		if err := w.writeText(m.name + " = "); err != nil {
			return err
		}
		if err := emitMemberValues(w, m.values); err != nil {
			return err
		}
	}
	if multiline {
		w.Unindent(2)
		if err := w.writeText("\n"); err != nil {
			return err
		}
	}
	return w.writeText(")")
}

// isSoleValue reports the shorthand case: exactly one member named
// "value" with exactly one value.
func (a *AnnotationSpec) isSoleValue() bool {
	return len(a.members) == 1 && a.members[0].name == "value" && len(a.members[0].values) == 1
}

// emitMemberValues joins multiple values of one member in braces.
func emitMemberValues(w *Writer, values []*CodeBlock) error {
	if len(values) == 1 {
		return values[0].emit(w)
	}
	if err := w.writeText("{"); err != nil {
		return err
	}
	for i, v := range values {
		if i > 0 {
			if err := w.writeText(", "); err != nil {
				return err
			}
		}
		if err := v.emit(w); err != nil {
			return err
		}
	}
	return w.writeText("}")
}

// String renders standalone, memoized; the basis for Equal and Hash.
func (a *AnnotationSpec) String() string {
	return a.render.get(func() string { return renderToString(a.cfg, a) })
}

// Equal is rendered-text equality under the owning configuration.
func (a *AnnotationSpec) Equal(o *AnnotationSpec) bool {
	if a == nil || o == nil {
		return a == o
	}
	return a.cfg == o.cfg && a.String() == o.String()
}

// Hash is consistent with Equal.
func (a *AnnotationSpec) Hash() uint64 {
	return hashConfigText(a.cfg, a.String())
}

// isIdentifier is a light syntactic check, not full JLS validation.
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		letter := r == '_' || r == '$' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r > 0x7f
		if i == 0 {
			if !letter {
				return false
			}
			continue
		}
		if !letter && !(r >= '0' && r <= '9') {
			return false
		}
	}
	return true
}
