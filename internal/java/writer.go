package java

import (
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"quill/internal/layout"
)

// Writer is the stateful text sink for one emission pass. It tracks
// indentation depth, the current output column (display width, for wrap
// decisions), a stack of open packages for name resolution, and the import
// table being collected or consulted.
//
// One Writer serves exactly one pass; the two passes of a render never
// share a Writer.
type Writer struct {
	cfg        Config
	policy     layout.Policy
	out        io.Writer
	imports    *ImportTable
	collecting bool

	indentLevel int
	atLineStart bool
	column      int
	packages    []string
}

// newWriter returns a render-pass writer: the import table (may be nil for
// standalone rendering) is consulted read-only.
func newWriter(cfg Config, out io.Writer, imports *ImportTable) *Writer {
	cfg = cfg.withDefaults()
	return &Writer{
		cfg:         cfg,
		policy:      cfg.policy(),
		out:         out,
		imports:     imports,
		atLineStart: true,
	}
}

// newCollectingWriter returns a collect-pass writer: output is discarded
// and every class reference claims a binding in the table.
func newCollectingWriter(cfg Config, imports *ImportTable) *Writer {
	w := newWriter(cfg, io.Discard, imports)
	w.collecting = true
	return w
}

// Indent pushes n levels of indentation.
func (w *Writer) Indent(n int) {
	w.indentLevel += n
}

// Unindent pops n levels. Calls must balance Indent over a pass; Balanced
// exposes the invariant for tests.
func (w *Writer) Unindent(n int) {
	w.indentLevel -= n
}

// IndentDepth returns the current depth. Negative depth means the caller
// popped more than it pushed.
func (w *Writer) IndentDepth() int { return w.indentLevel }

// Balanced reports whether every Indent has been matched by an Unindent.
func (w *Writer) Balanced() bool { return w.indentLevel == 0 }

// PushPackage opens a lexical package scope for name resolution.
func (w *Writer) PushPackage(name string) {
	w.packages = append(w.packages, name)
}

// PopPackage closes the innermost package scope.
func (w *Writer) PopPackage() {
	if len(w.packages) > 0 {
		w.packages = w.packages[:len(w.packages)-1]
	}
}

func (w *Writer) currentPackage() (string, bool) {
	if len(w.packages) == 0 {
		return "", false
	}
	return w.packages[len(w.packages)-1], true
}

// Column returns the current output column in display cells.
func (w *Writer) Column() int { return w.column }

// Emit interprets a placeholder template against args and writes the
// result. With a plain string (no placeholders) it degenerates to raw
// emission.
func (w *Writer) Emit(format string, args ...any) error {
	block, err := w.cfg.Code(format, args...)
	if err != nil {
		return err
	}
	return block.emit(w)
}

// Raw writes a pre-rendered segment, still honoring indentation and
// column tracking.
func (w *Writer) Raw(s string) error {
	return w.writeText(s)
}

// writeText is the single funnel to the sink. Each newline resets the
// column; indentation is emitted lazily before the first visible character
// of a line, so blank lines never carry trailing indent.
func (w *Writer) writeText(s string) error {
	for s != "" {
		i := strings.IndexByte(s, '\n')
		var line string
		if i < 0 {
			line, s = s, ""
		} else {
			line, s = s[:i], s[i+1:]
		}
		if line != "" {
			if w.atLineStart {
				if err := w.writeIndent(); err != nil {
					return err
				}
			}
			if err := w.writeRaw(line); err != nil {
				return err
			}
			w.column += runewidth.StringWidth(line)
		}
		if i >= 0 {
			if err := w.writeRaw("\n"); err != nil {
				return err
			}
			w.column = 0
			w.atLineStart = true
		}
	}
	return nil
}

func (w *Writer) writeIndent() error {
	w.atLineStart = false
	depth := w.indentLevel
	if depth <= 0 {
		return nil
	}
	indent := strings.Repeat(w.cfg.Indent, depth)
	if err := w.writeRaw(indent); err != nil {
		return err
	}
	w.column += runewidth.StringWidth(indent)
	return nil
}

func (w *Writer) writeRaw(s string) error {
	_, err := io.WriteString(w.out, s)
	return sinkErr(err)
}

// wrap realizes a wrap point: past the configured column it breaks the
// line and indents the continuation two extra levels; otherwise it emits a
// single space (or nothing, for a zero-width point).
func (w *Writer) wrap(zeroWidth bool) error {
	if w.column <= w.cfg.WrapColumn {
		if zeroWidth {
			return nil
		}
		return w.writeText(" ")
	}
	if err := w.writeRaw("\n"); err != nil {
		return err
	}
	// The continuation is indented two levels past the current depth.
	w.atLineStart = false
	indent := strings.Repeat(w.cfg.Indent, max(w.indentLevel+2, 0))
	if err := w.writeRaw(indent); err != nil {
		return err
	}
	w.column = runewidth.StringWidth(indent)
	return nil
}

// continuationIndent is the extra prefix for split string literals.
func (w *Writer) continuationIndent() string {
	return strings.Repeat(w.cfg.Indent, 2)
}

// lookupName resolves a class reference to the text to emit: the simple
// name chain when the reference is (or can be) bound to its simple name,
// the canonical name otherwise. During the collect pass the first
// reference for a given simple name claims it; later distinct types with
// the same simple name stay fully qualified for the whole document.
func (w *Writer) lookupName(t *TypeName) string {
	short := strings.Join(t.names, ".")
	if w.imports == nil {
		return t.Canonical()
	}

	top := t.TopLevel()
	canonical := top.Canonical()
	simple := top.SimpleName()

	kind := importForeign
	if pkg, open := w.currentPackage(); open && pkg == t.packageName {
		kind = importSamePackage
	} else if t.packageName == javaLang {
		kind = importJavaLang
	}

	if w.collecting {
		if w.imports.claim(simple, canonical, kind) {
			return short
		}
		return t.Canonical()
	}
	if w.imports.resolves(simple, canonical) {
		return short
	}
	// Unseen in pass 1 (the AST changed between passes): degrade to the
	// qualified form rather than fail.
	return t.Canonical()
}
