package java

import (
	"io"
	"strings"
)

// SourceFile assembles one compilation unit: a package declaration, the
// import section computed by the collect pass, and a single top-level
// type. Rendering is two sequential passes over the same immutable AST:
//
//	Collect(file) -> ImportTable     (discarding sink, tracking on)
//	RenderWith(file, table) -> text  (real sink, table read-only)
//
// Render runs both in order and applies explicit caller imports in
// between.
type SourceFile struct {
	cfg           Config
	packageName   string
	typ           *TypeSpec
	fileComment   *CodeBlock
	extraImports  []string
	staticImports []string
}

// SourceFileBuilder accumulates one SourceFile.
type SourceFileBuilder struct {
	cfg           Config
	packageName   string
	typ           *TypeSpec
	fileComment   *CodeBlock
	extraImports  []string
	staticImports []string
	err           error
	done          bool
}

// File starts a compilation unit for the given package ("" for the
// default package) around one top-level type.
func (c Config) File(packageName string, typ *TypeSpec) *SourceFileBuilder {
	c = c.withDefaults()
	b := &SourceFileBuilder{cfg: c, packageName: packageName, typ: typ}
	if typ == nil {
		b.err = buildErrorf("source file needs a top-level type")
		return b
	}
	if packageName != "" {
		for _, seg := range strings.Split(packageName, ".") {
			if !isIdentifier(seg) {
				b.err = buildErrorf("package name %q is not valid", packageName)
				break
			}
		}
	}
	return b
}

// FileComment sets a comment emitted above the package declaration; each
// line is prefixed with "// ".
func (b *SourceFileBuilder) FileComment(format string, args ...any) *SourceFileBuilder {
	if b.err != nil || b.done {
		return b
	}
	block, err := b.cfg.Code(format, args...)
	if err != nil {
		b.err = err
		return b
	}
	b.fileComment = block
	return b
}

// AddImport records an explicit import request applied between the two
// passes, overriding the suggested binding for its simple name.
func (b *SourceFileBuilder) AddImport(canonical string) *SourceFileBuilder {
	if b.err == nil && !b.done {
		if canonical == "" {
			b.err = buildErrorf("empty explicit import")
		} else {
			b.extraImports = append(b.extraImports, canonical)
		}
	}
	return b
}

// AddStaticImport records a static import line, e.g.
// "java.util.Collections.emptyList".
func (b *SourceFileBuilder) AddStaticImport(canonical string) *SourceFileBuilder {
	if b.err == nil && !b.done {
		if canonical == "" {
			b.err = buildErrorf("empty static import")
		} else {
			b.staticImports = append(b.staticImports, canonical)
		}
	}
	return b
}

// Build finishes the file and consumes the builder.
func (b *SourceFileBuilder) Build() (*SourceFile, error) {
	if b.done {
		return nil, buildErrorf("source file builder already consumed")
	}
	b.done = true
	if b.err != nil {
		return nil, b.err
	}
	return &SourceFile{
		cfg:           b.cfg,
		packageName:   b.packageName,
		typ:           b.typ,
		fileComment:   b.fileComment,
		extraImports:  append([]string(nil), b.extraImports...),
		staticImports: append([]string(nil), b.staticImports...),
	}, nil
}

// PackageName returns the declared package.
func (f *SourceFile) PackageName() string { return f.packageName }

// Type returns the top-level type.
func (f *SourceFile) Type() *TypeSpec { return f.typ }

// Collect runs the first pass: full emission into a discarding sink with
// import tracking enabled, producing the suggested-imports table.
func (f *SourceFile) Collect() (*ImportTable, error) {
	table := NewImportTable()
	w := newCollectingWriter(f.cfg, table)
	if err := f.emitBody(w, table); err != nil {
		return nil, err
	}
	if !w.Balanced() {
		return nil, buildErrorf("emission left %d unbalanced indent levels", w.IndentDepth())
	}
	return table, nil
}

// RenderWith runs the second pass against the given table, which is
// sealed first.
func (f *SourceFile) RenderWith(table *ImportTable) (string, error) {
	table.seal()
	var sb strings.Builder
	w := newWriter(f.cfg, &sb, table)
	if err := f.emitBody(w, table); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Render performs the complete two-pass emission: collect, apply explicit
// imports, render.
func (f *SourceFile) Render() (string, error) {
	table, err := f.Collect()
	if err != nil {
		return "", err
	}
	for _, imp := range f.extraImports {
		if err := table.Add(imp); err != nil {
			return "", err
		}
	}
	for _, imp := range f.staticImports {
		if err := table.AddStatic(imp); err != nil {
			return "", err
		}
	}
	return f.RenderWith(table)
}

// WriteTo renders fully in memory first, then writes once, so a failing
// destination never observes partial output.
func (f *SourceFile) WriteTo(out io.Writer) (int64, error) {
	text, err := f.Render()
	if err != nil {
		return 0, err
	}
	n, err := io.WriteString(out, text)
	return int64(n), sinkErr(err)
}

func (f *SourceFile) emitBody(w *Writer, table *ImportTable) error {
	if f.fileComment != nil && !f.fileComment.IsEmpty() {
		var lineErr error
		linesOf(f.fileComment.String())(func(line string) bool {
			if err := w.writeText("// " + line + "\n"); err != nil {
				lineErr = err
				return false
			}
			return true
		})
		if lineErr != nil {
			return lineErr
		}
	}
	if f.packageName != "" {
		if err := w.writeText("package " + f.packageName + ";\n\n"); err != nil {
			return err
		}
	}
	if statics := table.StaticLines(); len(statics) > 0 {
		for _, s := range statics {
			if err := w.writeText("import static " + s + ";\n"); err != nil {
				return err
			}
		}
		if err := w.writeText("\n"); err != nil {
			return err
		}
	}
	if imports := table.ImportLines(f.cfg.ShowImplicitImports); len(imports) > 0 {
		for _, imp := range imports {
			if err := w.writeText("import " + imp + ";\n"); err != nil {
				return err
			}
		}
		if err := w.writeText("\n"); err != nil {
			return err
		}
	}
	w.PushPackage(f.packageName)
	err := f.typ.emit(w)
	w.PopPackage()
	if err != nil {
		return err
	}
	if marker := w.policy.EOFMarker; marker != "" {
		return w.writeText("\n" + marker)
	}
	return nil
}
