package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseParse   Phase = "parse"   // declaration text grammar
	PhaseResolve Phase = "resolve" // type resolution
	PhaseLayout  Phase = "layout"  // struct layout
	PhaseRead    Phase = "read"    // memory to Go
	PhaseWrite   Phase = "write"   // Go to memory
	PhaseProject Phase = "project" // descriptor to WIT
)

// Kind categorizes the error
type Kind string

const (
	KindSyntax           Kind = "syntax"
	KindDeclarationCount Kind = "declaration_count"
	KindUnsupported      Kind = "unsupported"
	KindMissingName      Kind = "missing_name"
	KindLayoutConstraint Kind = "layout_constraint"
	KindUnknownType      Kind = "unknown_type"
	KindTypeMismatch     Kind = "type_mismatch"
	KindOutOfBounds      Kind = "out_of_bounds"
	KindFieldUnknown     Kind = "field_unknown"
	KindNotFound         Kind = "not_found"
	KindOverflow         Kind = "overflow"
	KindInvalidInput     Kind = "invalid_input"
)

// Span is a byte range inside a source file
type Span struct {
	Start int
	End   int
}

// Location identifies the declaration a diagnostic belongs to.
// Line and Column are 1-based; zero means unknown.
type Location struct {
	File   string
	Span   Span
	Line   int
	Column int
}

// IsZero reports whether no location information is present
func (l Location) IsZero() bool {
	return l.File == "" && l.Line == 0 && l.Span == (Span{})
}

func (l Location) String() string {
	if l.IsZero() {
		return "<unknown>"
	}
	file := l.File
	if file == "" {
		file = "<input>"
	}
	if l.Line == 0 {
		return fmt.Sprintf("%s[%d:%d]", file, l.Span.Start, l.Span.End)
	}
	if l.Column == 0 {
		return fmt.Sprintf("%s:%d", file, l.Line)
	}
	return fmt.Sprintf("%s:%d:%d", file, l.Line, l.Column)
}

// Error is the structured error type used throughout the library
type Error struct {
	Value    any
	Cause    error
	Phase    Phase
	Kind     Kind
	Type     string
	Detail   string
	Path     []string
	Location Location
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	if !e.Location.IsZero() {
		b.WriteString(e.Location.String())
		b.WriteString(": ")
	}

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Type != "" {
		b.WriteString(": type ")
		b.WriteString(e.Type)
	}

	if e.Detail != "" {
		if e.Type != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
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

// At sets the declaration location
func (b *Builder) At(loc Location) *Builder {
	b.err.Location = loc
	return b
}

// Path sets the sub-expression path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Type sets the offending type name
func (b *Builder) Type(t string) *Builder {
	b.err.Type = t
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

// Declaration diagnostics

// Syntax creates a syntax error diagnostic
func Syntax(loc Location, detail string) *Error {
	return &Error{
		Phase:    PhaseParse,
		Kind:     KindSyntax,
		Location: loc,
		Detail:   detail,
	}
}

// DeclarationCount creates a diagnostic for a parse that did not yield exactly one declaration
func DeclarationCount(loc Location, got int) *Error {
	return &Error{
		Phase:    PhaseParse,
		Kind:     KindDeclarationCount,
		Location: loc,
		Detail:   fmt.Sprintf("expected exactly one declaration, got %d", got),
		Value:    got,
	}
}

// Unsupported creates an unsupported construct diagnostic
func Unsupported(loc Location, path []string, what string) *Error {
	return &Error{
		Phase:    PhaseResolve,
		Kind:     KindUnsupported,
		Location: loc,
		Path:     path,
		Detail:   what,
	}
}

// MissingName creates a diagnostic for an unnamed function or parameter
func MissingName(loc Location, path []string, what string) *Error {
	return &Error{
		Phase:    PhaseResolve,
		Kind:     KindMissingName,
		Location: loc,
		Path:     path,
		Detail:   fmt.Sprintf("%s must have a name", what),
	}
}

// LayoutConstraint creates a diagnostic for a container that cannot have C layout
func LayoutConstraint(loc Location, path []string, detail string) *Error {
	return &Error{
		Phase:    PhaseLayout,
		Kind:     KindLayoutConstraint,
		Location: loc,
		Path:     path,
		Detail:   detail,
	}
}

// UnknownType creates a diagnostic for an identifier that names no known type
func UnknownType(loc Location, path []string, name string) *Error {
	return &Error{
		Phase:    PhaseResolve,
		Kind:     KindUnknownType,
		Location: loc,
		Path:     path,
		Type:     name,
		Detail:   "not a scalar type or declared extern struct",
	}
}

// Memory access errors

// TypeMismatch creates a type mismatch error
func TypeMismatch(phase Phase, path []string, goType, declType string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTypeMismatch,
		Path:   path,
		Type:   declType,
		Detail: fmt.Sprintf("cannot use Go type %s", goType),
	}
}

// OutOfBounds creates an out of bounds error
func OutOfBounds(phase Phase, path []string, offset, length uint32) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Path:   path,
		Detail: fmt.Sprintf("access at %d out of bounds (length %d)", offset, length),
		Value:  offset,
	}
}

// FieldUnknown creates an unknown field error
func FieldUnknown(phase Phase, path []string, fieldName string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindFieldUnknown,
		Path:   path,
		Detail: fmt.Sprintf("unknown field %q", fieldName),
	}
}

// Overflow creates an overflow error
func Overflow(phase Phase, path []string, value any, targetType string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOverflow,
		Path:   path,
		Type:   targetType,
		Detail: fmt.Sprintf("value %v overflows %s", value, targetType),
		Value:  value,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
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

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
