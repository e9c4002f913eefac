// Package errors provides structured error types for the lifetime library.
//
// Errors are categorized by Op (which handle operation failed) and Kind
// (error category). The Error type includes a human-readable detail and
// a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.OpPromote, errors.KindExpired).
//		Detail("target destroyed before lock").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Expired(errors.OpPromote)
//	err := errors.Unbound(errors.OpSelfRef)
//
// All errors implement the standard error interface and support
// errors.Is/As. The exported sentinels ErrExpired and ErrUnbound match
// any error of the corresponding Kind regardless of Op.
package errors
