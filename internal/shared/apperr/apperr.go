// Package apperr defines the structured error type returned across the usecase boundary.
// Each error carries a Kind that the HTTP layer maps to a status code.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an application error.
type Kind int

const (
	// KindUnknown is any error that was not classified. It is rendered as 500.
	KindUnknown Kind = iota
	// KindNotFound means a lookup by id, email or other reference found nothing.
	KindNotFound
	// KindConflict means a uniqueness rule (e.g. duplicate email) was violated.
	KindConflict
	// KindIntegrity means a referential or store constraint rejected the operation.
	KindIntegrity
	// KindMalformed means the request could not be parsed.
	KindMalformed
	// KindValidation means one or more input fields failed validation.
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindIntegrity:
		return "integrity"
	case KindMalformed:
		return "malformed"
	case KindValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// Error is the single error type returned by usecases.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Wrap records the underlying cause and returns e.
func (e *Error) Wrap(err error) *Error {
	e.Err = err
	return e
}

// NotFound reports a missing resource identified by ref (an id, an email, ...).
func NotFound(ref any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("Resource not found: %v", ref)}
}

// Conflict reports a uniqueness violation.
func Conflict(detail string) *Error {
	return &Error{Kind: KindConflict, Message: "Data Integrity error: " + detail}
}

// Integrity reports a referential or constraint violation.
func Integrity(detail string) *Error {
	return &Error{Kind: KindIntegrity, Message: "Data Integrity error: " + detail}
}

// Malformed reports an unparseable request.
func Malformed(detail string) *Error {
	return &Error{Kind: KindMalformed, Message: detail}
}

// KindOf returns the Kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
