package java

import (
	"fmt"
	"reflect"

	"quill/internal/literal"
)

// CodeBlock is a parsed template: literal text interleaved with typed
// placeholders already bound to their arguments. Supported placeholders:
//
//	$L  literal: renderable nodes recurse through the writer, anything
//	    else goes through fmt
//	$S  string: escaped and quoted at the current indentation
//	$T  type: a *TypeName (or reflect.Type), resolved via the import table
//	$N  name: the identifier of a named node, or a plain string
//	$$  a literal dollar sign
//	$>  indent one level      $<  unindent one level
//	$W  wrap point (space or line break)   $Z  zero-width wrap point
//
// Arguments are consumed strictly left to right; a count or kind mismatch
// is a TemplateError raised while the template is processed.
type CodeBlock struct {
	cfg    Config
	ops    []codeOp
	render *renderCell
}

type opKind uint8

const (
	opText opKind = iota
	opLiteral
	opString
	opType
	opName
	opIndent
	opUnindent
	opWrap
	opZeroWrap
)

type codeOp struct {
	kind opKind
	text string
	arg  any
}

// Code parses format against args into an immutable CodeBlock.
func (c Config) Code(format string, args ...any) (*CodeBlock, error) {
	c = c.withDefaults()
	var ops []codeOp
	next := 0
	text := func(s string) {
		if s == "" {
			return
		}
		if n := len(ops); n > 0 && ops[n-1].kind == opText {
			ops[n-1].text += s
			return
		}
		ops = append(ops, codeOp{kind: opText, text: s})
	}
	takeArg := func(placeholder byte) (any, error) {
		if next >= len(args) {
			return nil, templateErrorf(format, "placeholder $%c has no argument (got %d)", placeholder, len(args))
		}
		a := args[next]
		next++
		return a, nil
	}

	start := 0
	for i := 0; i < len(format); i++ {
		if format[i] != '$' {
			continue
		}
		text(format[start:i])
		if i+1 >= len(format) {
			return nil, templateErrorf(format, "dangling $ at end of format")
		}
		i++
		start = i + 1
		switch ch := format[i]; ch {
		case '$':
			text("$")
		case '>':
			ops = append(ops, codeOp{kind: opIndent})
		case '<':
			ops = append(ops, codeOp{kind: opUnindent})
		case 'W':
			ops = append(ops, codeOp{kind: opWrap})
		case 'Z':
			ops = append(ops, codeOp{kind: opZeroWrap})
		case 'L':
			a, err := takeArg(ch)
			if err != nil {
				return nil, err
			}
			ops = append(ops, codeOp{kind: opLiteral, arg: a})
		case 'S':
			a, err := takeArg(ch)
			if err != nil {
				return nil, err
			}
			s, ok := a.(string)
			if !ok {
				return nil, templateErrorf(format, "$S wants a string, got %T", a)
			}
			ops = append(ops, codeOp{kind: opString, arg: s})
		case 'T':
			a, err := takeArg(ch)
			if err != nil {
				return nil, err
			}
			tn, err := c.coerceType(a)
			if err != nil {
				return nil, templateErrorf(format, "$T: %v", err)
			}
			ops = append(ops, codeOp{kind: opType, arg: tn})
		case 'N':
			a, err := takeArg(ch)
			if err != nil {
				return nil, err
			}
			name, err := nameOf(a)
			if err != nil {
				return nil, templateErrorf(format, "$N: %v", err)
			}
			ops = append(ops, codeOp{kind: opName, arg: name})
		default:
			return nil, templateErrorf(format, "unknown placeholder $%c", ch)
		}
	}
	text(format[start:])
	if next < len(args) {
		return nil, templateErrorf(format, "%d unused arguments", len(args)-next)
	}
	return &CodeBlock{cfg: c, ops: ops, render: &renderCell{}}, nil
}

// coerceType resolves a $T argument to a type reference.
func (c Config) coerceType(a any) (*TypeName, error) {
	switch v := a.(type) {
	case *TypeName:
		if v == nil {
			return nil, fmt.Errorf("nil *TypeName")
		}
		return v, nil
	case reflect.Type:
		return c.TypeNameOf(v)
	default:
		return nil, fmt.Errorf("expected *TypeName or reflect.Type, got %T", a)
	}
}

func nameOf(a any) (string, error) {
	switch v := a.(type) {
	case string:
		if v == "" {
			return "", fmt.Errorf("empty name")
		}
		return v, nil
	case named:
		return v.Name(), nil
	default:
		return "", fmt.Errorf("expected a string or a named node, got %T", a)
	}
}

// IsEmpty reports whether the block produces no output at all.
func (b *CodeBlock) IsEmpty() bool {
	return len(b.ops) == 0
}

func (b *CodeBlock) emit(w *Writer) error {
	for _, op := range b.ops {
		var err error
		switch op.kind {
		case opText:
			err = w.writeText(op.text)
		case opLiteral:
			if e, ok := op.arg.(emitter); ok {
				// Nested renderables go through the writer so the
				// collect pass sees their type references too.
				err = e.emit(w)
			} else {
				err = w.writeText(fmt.Sprintf("%v", op.arg))
			}
		case opString:
			err = w.writeText(literal.QuoteString(op.arg.(string), w.continuationIndent()))
		case opType:
			err = op.arg.(*TypeName).emit(w)
		case opName:
			err = w.writeText(op.arg.(string))
		case opIndent:
			w.Indent(1)
		case opUnindent:
			w.Unindent(1)
		case opWrap:
			err = w.wrap(false)
		case opZeroWrap:
			err = w.wrap(true)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// String renders the block standalone (fully qualified types), memoized.
func (b *CodeBlock) String() string {
	return b.render.get(func() string { return renderToString(b.cfg, b) })
}

// Equal is rendered-text equality under the owning configuration.
func (b *CodeBlock) Equal(o *CodeBlock) bool {
	if b == nil || o == nil {
		return b == o
	}
	return b.cfg == o.cfg && b.String() == o.String()
}

// Hash is consistent with Equal.
func (b *CodeBlock) Hash() uint64 {
	return hashConfigText(b.cfg, b.String())
}
