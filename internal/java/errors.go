package java

import "fmt"

// The engine distinguishes three error categories so callers can tell a
// malformed AST apart from a failing destination:
//
//   - BuildError: invalid arguments to a factory or builder, raised at
//     construction time, never deferred to render time;
//   - TemplateError: placeholder/argument mismatch in a format string,
//     raised when the template is processed;
//   - SinkError: the output sink refused characters; wraps the sink's
//     own error.

// BuildError reports invalid input to a type factory or spec builder.
type BuildError struct {
	msg string
}

func buildErrorf(format string, args ...any) *BuildError {
	return &BuildError{msg: fmt.Sprintf(format, args...)}
}

func (e *BuildError) Error() string {
	return "java: " + e.msg
}

// TemplateError reports a malformed format string or an argument that does
// not match its placeholder.
type TemplateError struct {
	format string
	msg    string
}

func templateErrorf(tmpl, format string, args ...any) *TemplateError {
	return &TemplateError{format: tmpl, msg: fmt.Sprintf(format, args...)}
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("java: template %q: %s", e.format, e.msg)
}

// Format returns the offending template string.
func (e *TemplateError) Format() string {
	return e.format
}

// SinkError wraps a write failure of the underlying output sink.
type SinkError struct {
	Err error
}

func (e *SinkError) Error() string {
	return "java: sink: " + e.Err.Error()
}

func (e *SinkError) Unwrap() error {
	return e.Err
}

func sinkErr(err error) error {
	if err == nil {
		return nil
	}
	return &SinkError{Err: err}
}
