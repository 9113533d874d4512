package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseScan     Phase = "scan"     // tokenizing table source
	PhaseValidate Phase = "validate" // table and mesh shape checks
	PhaseEncode   Phase = "encode"   // table emission
	PhasePack     Phase = "pack"     // buffer packing
	PhaseBuild    Phase = "build"    // container assembly
	PhaseDecode   Phase = "decode"   // container reading
	PhaseRead     Phase = "read"     // input files
	PhaseWrite    Phase = "write"    // output artifacts
	PhaseFetch    Phase = "fetch"    // external asset retrieval
)

// Kind categorizes the error
type Kind string

const (
	KindShape        Kind = "shape"
	KindOutOfRange   Kind = "out_of_range"
	KindInvalidToken Kind = "invalid_token"
	KindNotFound     Kind = "not_found"
	KindUnterminated Kind = "unterminated"
	KindInvalidData  Kind = "invalid_data"
	KindInvalidInput Kind = "invalid_input"
	KindIO           Kind = "io"
	KindUnsupported  Kind = "unsupported"
)

// Error is the structured error type used throughout the generators
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Table  string
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Table != "" {
		b.WriteString(" in ")
		b.WriteString(e.Table)
	}

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Table sets the table or artifact name
func (b *Builder) Table(name string) *Builder {
	b.err.Table = name
	return b
}

// Path sets the element path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Validation creates a table shape error. It is fatal: the artifact is not written.
func Validation(table string, detail string, args ...any) *Error {
	return New(PhaseValidate, KindShape).Table(table).Detail(detail, args...).Build()
}

// RowTooLong creates a shape error naming the offending row.
func RowTooLong(table string, row, length, maxWidth int) *Error {
	return &Error{
		Phase:  PhaseValidate,
		Kind:   KindShape,
		Table:  table,
		Path:   []string{"row", fmt.Sprint(row)},
		Detail: fmt.Sprintf("row %d has %d entries, max %d", row, length, maxWidth),
		Value:  length,
	}
}

// CountMismatch creates a shape error for a wrong entry or row count.
func CountMismatch(table, what string, want, got int) *Error {
	return &Error{
		Phase:  PhaseValidate,
		Kind:   KindShape,
		Table:  table,
		Detail: fmt.Sprintf("expected %d %s, got %d", want, what, got),
		Value:  got,
	}
}

// OutOfRange creates an error for a literal that does not fit the target width.
func OutOfRange(table string, path []string, value int64, targetType string) *Error {
	return &Error{
		Phase:  PhaseValidate,
		Kind:   KindOutOfRange,
		Table:  table,
		Path:   path,
		Detail: fmt.Sprintf("value %d overflows %s", value, targetType),
		Value:  value,
	}
}

// InvalidToken creates a scan error for a non-numeric token inside a table region.
func InvalidToken(table string, line int, token string) *Error {
	return &Error{
		Phase:  PhaseScan,
		Kind:   KindInvalidToken,
		Table:  table,
		Detail: fmt.Sprintf("line %d: unexpected %q in numeric literal list", line, token),
		Value:  token,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Table:  name,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
		Detail: detail,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// IO creates an input/output error for op ("read", "write", "fetch") on path.
func IO(op, path string, cause error) *Error {
	phase := PhaseWrite
	switch op {
	case "read":
		phase = PhaseRead
	case "fetch":
		phase = PhaseFetch
	}
	return &Error{
		Phase:  phase,
		Kind:   KindIO,
		Detail: fmt.Sprintf("%s %s", op, path),
		Cause:  cause,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// IsValidation reports whether err is a table or mesh shape failure.
func IsValidation(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Phase == PhaseValidate || e.Phase == PhaseScan
}

// IsIO reports whether err is an unreadable input or unwritable output.
func IsIO(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindIO
}
