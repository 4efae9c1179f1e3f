package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseWrap    Phase = "wrap"    // validity gate
	PhaseQuery   Phase = "query"   // field accessors
	PhaseMarshal Phase = "marshal" // foreign text to Go
	PhaseDispose Phase = "dispose" // handle release
	PhaseLoad    Phase = "load"    // target and process loading
	PhaseProject Phase = "project" // schema projection
)

// Kind categorizes the error
type Kind string

const (
	KindInvalidHandle Kind = "invalid_handle"
	KindKindMismatch  Kind = "kind_mismatch"
	KindUseAfterClose Kind = "use_after_close"
	KindInvalidUTF8   Kind = "invalid_utf8"
	KindNilPointer    Kind = "nil_pointer"
	KindOverflow      Kind = "overflow"
	KindNotFound      Kind = "not_found"
	KindUnsupported   Kind = "unsupported"
	KindInvalidInput  Kind = "invalid_input"
	KindInvalidData   Kind = "invalid_data"
)

// Error is the structured error type used throughout the bindings
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Entity string
	Field  string
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Entity != "" {
		b.WriteString(" at ")
		b.WriteString(e.Entity)
		if e.Field != "" {
			b.WriteByte('.')
			b.WriteString(e.Field)
		}
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

// Entity sets the handle kind name, e.g. "SBEvent"
func (b *Builder) Entity(name string) *Builder {
	b.err.Entity = name
	return b
}

// Field sets the accessor or field name
func (b *Builder) Field(name string) *Builder {
	b.err.Field = name
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

// Convenience constructors for common error patterns

// InvalidUTF8 creates an invalid UTF-8 error for foreign text
func InvalidUTF8(entity, field string, data []byte) *Error {
	preview := data
	if len(preview) > 32 {
		preview = preview[:32]
	}
	return &Error{
		Phase:  PhaseMarshal,
		Kind:   KindInvalidUTF8,
		Entity: entity,
		Field:  field,
		Detail: fmt.Sprintf("invalid UTF-8 sequence: %x", preview),
	}
}

// NilText creates an error for a foreign text accessor that returned no buffer
func NilText(entity, field string) *Error {
	return &Error{
		Phase:  PhaseMarshal,
		Kind:   KindNilPointer,
		Entity: entity,
		Field:  field,
		Detail: "foreign library returned a nil string",
	}
}

// NilArgument creates an error for a required wrapper argument that is nil
func NilArgument(entity, field string) *Error {
	return &Error{
		Phase:  PhaseQuery,
		Kind:   KindNilPointer,
		Entity: entity,
		Field:  field,
		Detail: "required argument is nil",
	}
}

// UseAfterClose creates an error for access through a released wrapper
func UseAfterClose(entity, field string) *Error {
	return &Error{
		Phase:  PhaseQuery,
		Kind:   KindUseAfterClose,
		Entity: entity,
		Field:  field,
		Detail: "handle already closed",
	}
}

// InvalidHandle creates an invalid handle error
func InvalidHandle(phase Phase, entity string, raw uintptr) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidHandle,
		Entity: entity,
		Detail: fmt.Sprintf("handle 0x%x is not valid", raw),
		Value:  raw,
	}
}

// KindMismatch creates an error for a handle used as the wrong entity kind
func KindMismatch(phase Phase, want, got string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindKindMismatch,
		Entity: want,
		Detail: fmt.Sprintf("handle refers to %s", got),
	}
}

// Overflow creates an overflow error
func Overflow(phase Phase, entity, field string, value any, targetType string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOverflow,
		Entity: entity,
		Field:  field,
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

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
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

// Load creates a target or process loading error
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInvalidData,
		Detail: detail,
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

// IsContractViolation reports whether v (typically a recovered panic value
// or an error) is a foreign contract violation raised by the bindings.
func IsContractViolation(v any) bool {
	err, ok := v.(error)
	if !ok {
		return false
	}
	var e *Error
	if !stderrors.As(err, &e) {
		return false
	}
	switch e.Kind {
	case KindInvalidUTF8, KindNilPointer, KindUseAfterClose:
		return true
	}
	return false
}
