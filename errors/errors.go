package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseEncode Phase = "encode" // Go value to wire
	PhaseDecode Phase = "decode" // wire to Go value
	PhaseSchema Phase = "schema" // schema validation and compilation
	PhaseLoad   Phase = "load"   // schema and value document loading
)

// Kind categorizes the error
type Kind string

const (
	KindOverflow     Kind = "overflow"      // not enough buffer space
	KindConstraint   Kind = "constraint"    // value or length outside declared bound
	KindInvalidValue Kind = "invalid_value" // missing reference or unparsable content
	KindInvalidType  Kind = "invalid_type"  // unknown field kind tag
	KindTypeMismatch Kind = "type_mismatch"
	KindFieldMissing Kind = "field_missing"
)

// Error is the structured error type used throughout the codec
type Error struct {
	Value    any
	Cause    error
	Phase    Phase
	Kind     Kind
	Type     string
	Detail   string
	Path     []string
	Position int
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	if e.Phase != "" {
		b.WriteByte('[')
		b.WriteString(string(e.Phase))
		b.WriteString("] ")
	}
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Type != "" {
		b.WriteString(": ")
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

	if e.Position > 0 {
		fmt.Fprintf(&b, " (offset %d)", e.Position)
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

// Is reports whether target matches this error.
// A target without a Phase matches on Kind alone.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Phase == "" {
		return e.Kind == t.Kind
	}
	return e.Phase == t.Phase && e.Kind == t.Kind
}

// WithPrefix returns a copy of e whose path is prefixed with the given segments.
// Composite codecs use it to report which field a child failure came from.
func (e *Error) WithPrefix(prefix ...string) *Error {
	if len(prefix) == 0 {
		return e
	}
	cp := *e
	cp.Path = make([]string, 0, len(prefix)+len(e.Path))
	cp.Path = append(cp.Path, prefix...)
	cp.Path = append(cp.Path, e.Path...)
	return &cp
}

// Sentinel returns a phase-less error that matches any Error of the given kind.
func Sentinel(kind Kind) *Error {
	return &Error{Kind: kind}
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

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Type sets the A-XDR type name
func (b *Builder) Type(t string) *Builder {
	b.err.Type = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Position sets the cursor offset the failure was detected at
func (b *Builder) Position(pos int) *Builder {
	b.err.Position = pos
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

// Convenience constructors for common error patterns

// Overflow creates a buffer overflow error: need bytes were required, have remained.
func Overflow(phase Phase, path []string, need, have int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOverflow,
		Path:   path,
		Detail: fmt.Sprintf("need %d bytes, %d remaining", need, have),
		Value:  need,
	}
}

// Constraint creates a constraint violation error
func Constraint(phase Phase, path []string, value any, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindConstraint,
		Path:   path,
		Detail: detail,
		Value:  value,
	}
}

// InvalidValue creates an invalid value error
func InvalidValue(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidValue,
		Path:   path,
		Detail: detail,
	}
}

// InvalidType creates an unknown field kind error
func InvalidType(phase Phase, path []string, tag any) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidType,
		Path:   path,
		Detail: fmt.Sprintf("unknown field kind %v", tag),
		Value:  tag,
	}
}

// NilReference creates an invalid value error for a missing required reference
func NilReference(phase Phase, path []string, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidValue,
		Path:   path,
		Detail: fmt.Sprintf("nil %s", what),
	}
}

// TypeMismatch creates a type mismatch error between a Go value and an A-XDR type
func TypeMismatch(phase Phase, path []string, goType, axdrType string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTypeMismatch,
		Path:   path,
		Type:   axdrType,
		Detail: fmt.Sprintf("cannot use Go type %s", goType),
	}
}

// FieldMissing creates a missing field error
func FieldMissing(phase Phase, path []string, fieldName string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindFieldMissing,
		Path:   path,
		Detail: fmt.Sprintf("required field %q not found", fieldName),
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

// Load creates a document loading error
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInvalidValue,
		Detail: detail,
		Cause:  cause,
	}
}
