package java

import (
	"hash/fnv"
	"strings"
)

// TypeKind tags the closed set of type-reference variants.
type TypeKind uint8

const (
	KindPrimitive TypeKind = iota
	KindClass
	KindParameterized
	KindArray
	KindTypeVariable
)

// TypeName is a reference to a Java type: a primitive or void keyword, a
// declared class (possibly nested), a parameterized instantiation, an
// array, or a type variable. It is one struct with a kind tag rather than
// an interface hierarchy; emission and equality dispatch on the tag.
//
// TypeNames are immutable. Derived forms (Annotated, WithoutAnnotations,
// Nested, ArrayOf, ...) allocate new values and leave the receiver
// untouched. Equality is defined by rendered text under the owning
// configuration, not by field-wise comparison.
type TypeName struct {
	cfg  Config
	kind TypeKind

	// KindPrimitive: the keyword ("int", "void", ...).
	keyword string

	// KindClass: package ("" for the default package) and the simple-name
	// chain from the top-level class inward.
	packageName string
	names       []string

	// KindParameterized: raw class, type arguments, and the optional
	// enclosing parameterized instance for nested generics.
	raw       *TypeName
	typeArgs  []*TypeName
	enclosing *TypeName

	// KindArray.
	component *TypeName

	// KindTypeVariable.
	varName string
	bounds  []*TypeName

	annotations []*AnnotationSpec

	render *renderCell
}

func primitive(keyword string) *TypeName {
	return &TypeName{kind: KindPrimitive, keyword: keyword, render: &renderCell{}}
}

// The primitive and void singletons. They carry the zero configuration:
// their rendering never depends on layout.
var (
	Void    = primitive("void")
	Boolean = primitive("boolean")
	Byte    = primitive("byte")
	Short   = primitive("short")
	Int     = primitive("int")
	Long    = primitive("long")
	Char    = primitive("char")
	Float   = primitive("float")
	Double  = primitive("double")
)

// Kind returns the variant tag.
func (t *TypeName) Kind() TypeKind { return t.kind }

// IsPrimitive reports whether t is a primitive keyword (including void).
func (t *TypeName) IsPrimitive() bool { return t.kind == KindPrimitive }

// IsVoid reports whether t is the void singleton.
func (t *TypeName) IsVoid() bool { return t.kind == KindPrimitive && t.keyword == "void" }

// Class parses a canonical class name like "com.example.Widget.Inner".
// Leading segments starting with a lower-case letter form the package; the
// remainder is the simple-name chain and every link must start upper-case.
func (c Config) Class(canonical string) (*TypeName, error) {
	c = c.withDefaults()
	segments := strings.Split(canonical, ".")
	split := 0
	for split < len(segments) && startsLower(segments[split]) {
		split++
	}
	if split == len(segments) {
		return nil, buildErrorf("no class name in %q", canonical)
	}
	for _, s := range segments[split:] {
		if !startsUpper(s) {
			return nil, buildErrorf("couldn't make a guess for %q", canonical)
		}
	}
	return &TypeName{
		cfg:         c,
		kind:        KindClass,
		packageName: strings.Join(segments[:split], "."),
		names:       append([]string(nil), segments[split:]...),
		render:      &renderCell{},
	}, nil
}

// ClassIn builds a class reference from an explicit package and simple-name
// chain, with no case guessing.
func (c Config) ClassIn(pkg string, names ...string) (*TypeName, error) {
	c = c.withDefaults()
	if len(names) == 0 {
		return nil, buildErrorf("class in %q needs at least one simple name", pkg)
	}
	for _, n := range names {
		if n == "" {
			return nil, buildErrorf("empty simple name in class chain %v", names)
		}
	}
	return &TypeName{
		cfg:         c,
		kind:        KindClass,
		packageName: pkg,
		names:       append([]string(nil), names...),
		render:      &renderCell{},
	}, nil
}

func startsLower(s string) bool {
	return s != "" && s[0] >= 'a' && s[0] <= 'z'
}

func startsUpper(s string) bool {
	return s != "" && s[0] >= 'A' && s[0] <= 'Z'
}

// PackageName returns the declaring package, "" for the default package.
// Only meaningful for class references.
func (t *TypeName) PackageName() string { return t.packageName }

// SimpleName returns the innermost simple name of a class, the raw class's
// simple name of a parameterized type, or the variable name.
func (t *TypeName) SimpleName() string {
	switch t.kind {
	case KindClass:
		return t.names[len(t.names)-1]
	case KindParameterized:
		return t.raw.SimpleName()
	case KindTypeVariable:
		return t.varName
	case KindPrimitive:
		return t.keyword
	default:
		return ""
	}
}

// Canonical returns the fully qualified name of a class reference, the key
// used for import-conflict detection.
func (t *TypeName) Canonical() string {
	joined := strings.Join(t.names, ".")
	if t.packageName == "" {
		return joined
	}
	return t.packageName + "." + joined
}

// TopLevel returns the outermost class of a nested chain.
func (t *TypeName) TopLevel() *TypeName {
	if t.kind != KindClass || len(t.names) == 1 {
		return t
	}
	top := *t
	top.names = t.names[:1]
	top.annotations = nil
	top.render = &renderCell{}
	return &top
}

// Nested derives a reference to a member class of t.
func (t *TypeName) Nested(name string) (*TypeName, error) {
	if t.kind != KindClass {
		return nil, buildErrorf("cannot nest %q inside non-class type %s", name, t)
	}
	if name == "" {
		return nil, buildErrorf("empty nested class name in %s", t)
	}
	n := &TypeName{
		cfg:         t.cfg,
		kind:        KindClass,
		packageName: t.packageName,
		names:       append(append([]string(nil), t.names...), name),
		render:      &renderCell{},
	}
	return n, nil
}

// Parameterized instantiates a generic class: raw must be a class reference
// and at least one argument is required. Type arguments may not be
// primitive or void.
func (c Config) Parameterized(raw *TypeName, args ...*TypeName) (*TypeName, error) {
	c = c.withDefaults()
	if raw == nil || raw.kind != KindClass {
		return nil, buildErrorf("parameterized type needs a class as its raw type")
	}
	if len(args) == 0 {
		return nil, buildErrorf("parameterized type %s needs at least one type argument", raw)
	}
	if err := checkTypeArgs(args); err != nil {
		return nil, err
	}
	return &TypeName{
		cfg:      c,
		kind:     KindParameterized,
		raw:      raw,
		typeArgs: append([]*TypeName(nil), args...),
		render:   &renderCell{},
	}, nil
}

// NestedParameterized derives an instantiation of a member class enclosed
// by the parameterized receiver, e.g. Map<K, V>.Entry<K, V>. With an
// enclosing instance present the argument list may be empty.
func (t *TypeName) NestedParameterized(name string, args ...*TypeName) (*TypeName, error) {
	if t.kind != KindParameterized {
		return nil, buildErrorf("enclosing type of %q must be parameterized", name)
	}
	raw, err := t.raw.Nested(name)
	if err != nil {
		return nil, err
	}
	if err := checkTypeArgs(args); err != nil {
		return nil, err
	}
	return &TypeName{
		cfg:       t.cfg,
		kind:      KindParameterized,
		raw:       raw,
		typeArgs:  append([]*TypeName(nil), args...),
		enclosing: t,
		render:    &renderCell{},
	}, nil
}

func checkTypeArgs(args []*TypeName) error {
	for _, a := range args {
		if a == nil {
			return buildErrorf("nil type argument")
		}
		if a.IsPrimitive() {
			return buildErrorf("type argument %s must not be primitive or void", a)
		}
	}
	return nil
}

// ArrayOf derives an array type with the given component.
func (c Config) ArrayOf(component *TypeName) (*TypeName, error) {
	c = c.withDefaults()
	if component == nil {
		return nil, buildErrorf("array needs a component type")
	}
	if component.IsVoid() {
		return nil, buildErrorf("array of void is not a type")
	}
	return &TypeName{cfg: c, kind: KindArray, component: component, render: &renderCell{}}, nil
}

// Component returns the component type of an array reference, nil for
// other kinds.
func (t *TypeName) Component() *TypeName {
	if t.kind != KindArray {
		return nil
	}
	return t.component
}

// TypeVar builds a type-variable reference. Bounds may not be primitive.
func (c Config) TypeVar(name string, bounds ...*TypeName) (*TypeName, error) {
	c = c.withDefaults()
	if name == "" {
		return nil, buildErrorf("type variable needs a name")
	}
	for _, b := range bounds {
		if b == nil || b.IsPrimitive() {
			return nil, buildErrorf("bound of type variable %s must be a reference type", name)
		}
	}
	return &TypeName{
		cfg:     c,
		kind:    KindTypeVariable,
		varName: name,
		bounds:  append([]*TypeName(nil), bounds...),
		render:  &renderCell{},
	}, nil
}

// Bounds returns the declared bounds of a type variable.
func (t *TypeName) Bounds() []*TypeName { return t.bounds }

// Annotated returns a copy of t carrying the given annotations in addition
// to any it already has.
func (t *TypeName) Annotated(annotations ...*AnnotationSpec) *TypeName {
	n := *t
	n.annotations = append(append([]*AnnotationSpec(nil), t.annotations...), annotations...)
	n.render = &renderCell{}
	return &n
}

// WithoutAnnotations returns a copy of t stripped of annotations at every
// level.
func (t *TypeName) WithoutAnnotations() *TypeName {
	n := *t
	n.annotations = nil
	n.render = &renderCell{}
	if t.component != nil {
		n.component = t.component.WithoutAnnotations()
	}
	if t.raw != nil {
		n.raw = t.raw.WithoutAnnotations()
	}
	if t.enclosing != nil {
		n.enclosing = t.enclosing.WithoutAnnotations()
	}
	if len(t.typeArgs) > 0 {
		n.typeArgs = make([]*TypeName, len(t.typeArgs))
		for i, a := range t.typeArgs {
			n.typeArgs[i] = a.WithoutAnnotations()
		}
	}
	return &n
}

// IsAnnotated reports whether t carries type-use annotations.
func (t *TypeName) IsAnnotated() bool { return len(t.annotations) > 0 }

// emit writes the reference in the current writer context, consulting the
// import table for class names.
func (t *TypeName) emit(w *Writer) error {
	return t.emitVarargs(w, false)
}

func (t *TypeName) emitVarargs(w *Writer, varargs bool) error {
	switch t.kind {
	case KindPrimitive:
		if err := t.emitAnnotations(w); err != nil {
			return err
		}
		return w.writeText(t.keyword)
	case KindClass:
		if err := t.emitAnnotations(w); err != nil {
			return err
		}
		return w.writeText(w.lookupName(t))
	case KindParameterized:
		return t.emitParameterized(w)
	case KindArray:
		if err := t.emitArrayLeaf(w); err != nil {
			return err
		}
		return t.emitArrayBrackets(w, varargs)
	case KindTypeVariable:
		if err := t.emitAnnotations(w); err != nil {
			return err
		}
		return w.writeText(t.varName)
	default:
		return buildErrorf("unknown type kind %d", t.kind)
	}
}

func (t *TypeName) emitAnnotations(w *Writer) error {
	for _, a := range t.annotations {
		if err := a.emitInline(w); err != nil {
			return err
		}
		if err := w.writeText(" "); err != nil {
			return err
		}
	}
	return nil
}

func (t *TypeName) emitParameterized(w *Writer) error {
	if t.enclosing != nil {
		if err := t.enclosing.emit(w); err != nil {
			return err
		}
		if err := w.writeText("."); err != nil {
			return err
		}
		if err := t.emitAnnotations(w); err != nil {
			return err
		}
		// Only the member's simple name: qualification came from the
		// enclosing instance.
		if err := w.writeText(t.raw.SimpleName()); err != nil {
			return err
		}
	} else {
		if err := t.raw.emit(w); err != nil {
			return err
		}
	}
	if len(t.typeArgs) == 0 {
		return nil
	}
	if err := w.writeText("<"); err != nil {
		return err
	}
	for i, a := range t.typeArgs {
		if i > 0 {
			if err := w.writeText(", "); err != nil {
				return err
			}
		}
		if err := a.emit(w); err != nil {
			return err
		}
	}
	return w.writeText(">")
}

// emitArrayLeaf renders the innermost non-array component exactly once.
func (t *TypeName) emitArrayLeaf(w *Writer) error {
	inner := t.component
	for inner.kind == KindArray {
		inner = inner.component
	}
	return inner.emit(w)
}

// emitArrayBrackets appends one bracket pair per dimension; in varargs
// mode the innermost dimension becomes an ellipsis. Annotations attached
// to an array level precede that level's brackets.
func (t *TypeName) emitArrayBrackets(w *Writer, varargs bool) error {
	if t.IsAnnotated() {
		if err := w.writeText(" "); err != nil {
			return err
		}
		if err := t.emitAnnotations(w); err != nil {
			return err
		}
	}
	if t.component.kind != KindArray {
		if varargs {
			return w.writeText("...")
		}
		return w.writeText("[]")
	}
	if err := w.writeText("[]"); err != nil {
		return err
	}
	return t.component.emitArrayBrackets(w, varargs)
}

// String renders t fully qualified, memoized. The memoized form is the
// basis for Equal and Hash.
func (t *TypeName) String() string {
	return t.render.get(func() string { return renderToString(t.cfg, t) })
}

// Equal reports rendered-text equality under the owning configuration.
// Structurally different references that print the same are equal; equal
// structures under different configurations are not.
func (t *TypeName) Equal(o *TypeName) bool {
	if t == nil || o == nil {
		return t == o
	}
	return t.cfg == o.cfg && t.String() == o.String()
}

// Hash is consistent with Equal.
func (t *TypeName) Hash() uint64 {
	return hashConfigText(t.cfg, t.String())
}

func hashConfigText(cfg Config, text string) uint64 {
	h := fnv.New64a()
	h.Write([]byte{byte(cfg.Layout)})
	h.Write([]byte(cfg.Indent))
	if cfg.ShowImplicitImports {
		h.Write([]byte{1})
	} else {
		h.Write([]byte{0})
	}
	h.Write([]byte(text))
	return h.Sum64()
}
