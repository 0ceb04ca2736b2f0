package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseOpen   Phase = "open"   // handle construction
	PhaseHeader Phase = "header" // header parsing or serialization
	PhaseRead   Phase = "read"   // body decoding
	PhaseWrite  Phase = "write"  // body encoding
	PhaseClose  Phase = "close"  // handle teardown
)

// Kind categorizes the error
type Kind string

const (
	KindInvalidInput  Kind = "invalid_input"
	KindInvalidData   Kind = "invalid_data"
	KindTypeMismatch  Kind = "type_mismatch"
	KindOutOfBounds   Kind = "out_of_bounds"
	KindCapacity      Kind = "capacity_exceeded"
	KindUnexpectedEOF Kind = "unexpected_eof"
	KindOverflow      Kind = "overflow"
	KindUnsupported   Kind = "unsupported"
	KindClosedHandle  Kind = "closed_handle"
	KindNotFound      Kind = "not_found"
	KindAborted       Kind = "aborted"
	KindIO            Kind = "io"
)

// Error is the structured error type used throughout the library
type Error struct {
	Value    any
	Cause    error
	Phase    Phase
	Kind     Kind
	Element  string
	Property string
	Detail   string
	Offset   int64 // byte offset into the document, 0 when unknown
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Element != "" {
		b.WriteString(" at ")
		b.WriteString(e.Element)
		if e.Property != "" {
			b.WriteByte('.')
			b.WriteString(e.Property)
		}
	}

	if e.Offset > 0 {
		fmt.Fprintf(&b, " (byte %d)", e.Offset)
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

// At sets the element and property the error refers to
func (b *Builder) At(element, property string) *Builder {
	b.err.Element = element
	b.err.Property = property
	return b
}

// Offset sets the byte offset into the document
func (b *Builder) Offset(off int64) *Builder {
	b.err.Offset = off
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

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// InvalidData creates an invalid data error with document position
func InvalidData(phase Phase, offset int64, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Offset: offset,
		Detail: detail,
	}
}

// Capacity creates a capacity exceeded error
func Capacity(written, capacity, requested int) *Error {
	return &Error{
		Phase:  PhaseWrite,
		Kind:   KindCapacity,
		Offset: int64(written),
		Detail: fmt.Sprintf("write of %d bytes exceeds buffer capacity %d (%d written)", requested, capacity, written),
	}
}

// UnexpectedEOF creates an error for input ending mid-document
func UnexpectedEOF(phase Phase, element, property string) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindUnexpectedEOF,
		Element:  element,
		Property: property,
		Detail:   "input ended before document was complete",
	}
}

// TypeMismatch creates a type mismatch error
func TypeMismatch(phase Phase, element, property, detail string) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindTypeMismatch,
		Element:  element,
		Property: property,
		Detail:   detail,
	}
}

// Overflow creates an overflow error
func Overflow(phase Phase, element, property string, value any, targetType string) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindOverflow,
		Element:  element,
		Property: property,
		Detail:   fmt.Sprintf("value %v overflows %s", value, targetType),
		Value:    value,
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

// ClosedHandle creates an error for operations on a closed handle
func ClosedHandle(phase Phase) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindClosedHandle,
		Detail: "handle is closed",
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

// OutOfBounds creates an out of bounds error
func OutOfBounds(phase Phase, element string, index, length int64) *Error {
	return &Error{
		Phase:   phase,
		Kind:    KindOutOfBounds,
		Element: element,
		Detail:  fmt.Sprintf("index %d out of bounds (length %d)", index, length),
		Value:   index,
	}
}

// IO wraps an I/O fault from an underlying source or sink
func IO(phase Phase, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindIO,
		Detail: "underlying stream failed",
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
