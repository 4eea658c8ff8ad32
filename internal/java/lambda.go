package java

// LambdaSpec is a lambda expression: a parameter list and either an
// expression body or a block of statements. Parameters are either all
// typed or all untyped, as Java requires.
type LambdaSpec struct {
	cfg        Config
	params     []*ParameterSpec
	paramNames []string
	expression *CodeBlock
	statements []*CodeBlock
	render     *renderCell
}

// LambdaBuilder accumulates one LambdaSpec.
type LambdaBuilder struct {
	cfg        Config
	params     []*ParameterSpec
	paramNames []string
	expression *CodeBlock
	statements []*CodeBlock
	err        error
	done       bool
}

// Lambda starts a lambda expression.
func (c Config) Lambda() *LambdaBuilder {
	return &LambdaBuilder{cfg: c.withDefaults()}
}

// Param adds an untyped (inferred) parameter.
func (b *LambdaBuilder) Param(name string) *LambdaBuilder {
	if b.err != nil || b.done {
		return b
	}
	if !isIdentifier(name) {
		b.err = buildErrorf("lambda parameter %q is not an identifier", name)
		return b
	}
	if len(b.params) > 0 {
		b.err = buildErrorf("lambda mixes typed and untyped parameters")
		return b
	}
	b.paramNames = append(b.paramNames, name)
	return b
}

// TypedParam adds an explicitly typed parameter.
func (b *LambdaBuilder) TypedParam(p *ParameterSpec) *LambdaBuilder {
	if b.err != nil || b.done {
		return b
	}
	if p == nil {
		b.err = buildErrorf("nil lambda parameter")
		return b
	}
	if len(b.paramNames) > 0 {
		b.err = buildErrorf("lambda mixes typed and untyped parameters")
		return b
	}
	b.params = append(b.params, p)
	return b
}

// Expression sets an expression body. Mutually exclusive with Statement.
func (b *LambdaBuilder) Expression(format string, args ...any) *LambdaBuilder {
	if b.err != nil || b.done {
		return b
	}
	if b.expression != nil || len(b.statements) > 0 {
		b.err = buildErrorf("lambda body set twice")
		return b
	}
	block, err := b.cfg.Code(format, args...)
	if err != nil {
		b.err = err
		return b
	}
	b.expression = block
	return b
}

// Statement appends one statement to a block body; the terminating
// semicolon and newline are added here.
func (b *LambdaBuilder) Statement(format string, args ...any) *LambdaBuilder {
	if b.err != nil || b.done {
		return b
	}
	if b.expression != nil {
		b.err = buildErrorf("lambda already has an expression body")
		return b
	}
	block, err := b.cfg.Code(format+";\n", args...)
	if err != nil {
		b.err = err
		return b
	}
	b.statements = append(b.statements, block)
	return b
}

// Build finishes the spec and consumes the builder.
func (b *LambdaBuilder) Build() (*LambdaSpec, error) {
	if b.done {
		return nil, buildErrorf("lambda builder already consumed")
	}
	b.done = true
	if b.err != nil {
		return nil, b.err
	}
	if b.expression == nil && len(b.statements) == 0 {
		return nil, buildErrorf("lambda needs a body")
	}
	return &LambdaSpec{
		cfg:        b.cfg,
		params:     append([]*ParameterSpec(nil), b.params...),
		paramNames: append([]string(nil), b.paramNames...),
		expression: b.expression,
		statements: append([]*CodeBlock(nil), b.statements...),
		render:     &renderCell{},
	}, nil
}

func (l *LambdaSpec) emit(w *Writer) error {
	if err := l.emitParams(w); err != nil {
		return err
	}
	if err := w.writeText(" -> "); err != nil {
		return err
	}
	if l.expression != nil {
		return l.expression.emit(w)
	}
	if err := w.writeText("{\n"); err != nil {
		return err
	}
	w.Indent(1)
	for _, s := range l.statements {
		if err := s.emit(w); err != nil {
			return err
		}
	}
	w.Unindent(1)
	return w.writeText("}")
}

func (l *LambdaSpec) emitParams(w *Writer) error {
	// A single inferred parameter may drop its parentheses.
	if len(l.params) == 0 && len(l.paramNames) == 1 {
		return w.writeText(l.paramNames[0])
	}
	if err := w.writeText("("); err != nil {
		return err
	}
	for i, name := range l.paramNames {
		if i > 0 {
			if err := w.writeText(", "); err != nil {
				return err
			}
		}
		if err := w.writeText(name); err != nil {
			return err
		}
	}
	for i, p := range l.params {
		if i > 0 {
			if err := w.writeText(", "); err != nil {
				return err
			}
		}
		if err := p.emit(w); err != nil {
			return err
		}
	}
	return w.writeText(")")
}

// String renders standalone, memoized.
func (l *LambdaSpec) String() string {
	return l.render.get(func() string { return renderToString(l.cfg, l) })
}

// Equal is rendered-text equality under the owning configuration.
func (l *LambdaSpec) Equal(o *LambdaSpec) bool {
	if l == nil || o == nil {
		return l == o
	}
	return l.cfg == o.cfg && l.String() == o.String()
}

// Hash is consistent with Equal.
func (l *LambdaSpec) Hash() uint64 {
	return hashConfigText(l.cfg, l.String())
}
