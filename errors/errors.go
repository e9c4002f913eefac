package errors

import (
	"fmt"
	"strings"
)

// Op indicates which handle operation the error occurred in
type Op string

const (
	OpPromote Op = "promote"  // weak-to-strong promotion
	OpSelfRef Op = "self_ref" // shared-from-this derivation
	OpWrap    Op = "wrap"     // raw pointer adoption
	OpMake    Op = "make"     // co-allocated construction
	OpAdopt   Op = "adopt"    // intrusive adoption
	OpDeref   Op = "deref"    // handle dereference
)

// Kind categorizes the error
type Kind string

const (
	KindExpired     Kind = "expired"      // target's strong count already reached zero
	KindUnbound     Kind = "unbound"      // value never reached by a managing handle
	KindNilValue    Kind = "nil_value"    // nil raw pointer where a value is required
	KindEmptyHandle Kind = "empty_handle" // operation on a handle with no control block
)

// Error is the structured error type used throughout the library
type Error struct {
	Cause  error
	Op     Op
	Kind   Kind
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Op))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

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

// Is reports whether target matches this error. A target with an empty
// Op matches on Kind alone, which is what the package sentinels rely on.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Op != "" && t.Op != e.Op {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinels for errors.Is checks. Kind-only, so they match the
// corresponding failure from any operation.
var (
	ErrExpired = &Error{Kind: KindExpired}
	ErrUnbound = &Error{Kind: KindUnbound}
)

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(op Op, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Op:   op,
			Kind: kind,
		},
	}
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

// Expired creates an expired-reference error
func Expired(op Op) *Error {
	return &Error{
		Op:     op,
		Kind:   KindExpired,
		Detail: "target already destroyed",
	}
}

// Unbound creates an error for a self-reference that was never bound
// to a managing control block
func Unbound(op Op) *Error {
	return &Error{
		Op:     op,
		Kind:   KindUnbound,
		Detail: "no managing control block",
	}
}

// NilValue creates a nil pointer error
func NilValue(op Op, what string) *Error {
	return &Error{
		Op:     op,
		Kind:   KindNilValue,
		Detail: fmt.Sprintf("nil %s", what),
	}
}

// EmptyHandle creates an error for an operation requiring a populated handle
func EmptyHandle(op Op) *Error {
	return &Error{
		Op:   op,
		Kind: KindEmptyHandle,
	}
}
