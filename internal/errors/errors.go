// Package errors defines the domain error taxonomy shared by services and handlers.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind is the failure category of a DomainError.
type Kind string

const (
	KindNotFound          Kind = "NOT_FOUND"
	KindConflict          Kind = "CONFLICT"
	KindNotOwner          Kind = "NOT_OWNER"
	KindForbidden         Kind = "FORBIDDEN"
	KindStatusNotActive   Kind = "STATUS_NOT_ACTIVE"
	KindInsufficientFunds Kind = "INSUFFICIENT_FUNDS"
	KindLockTimeout       Kind = "LOCK_TIMEOUT"
	KindValidation        Kind = "VALIDATION"
	KindUnauthorized      Kind = "UNAUTHORIZED"
)

type DomainError struct {
	Kind    Kind
	Code    string
	Message string
	Fields  map[string]string
}

func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target is a DomainError with the same code,
// so sentinels still match after WithMessage.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithMessage returns a copy of e carrying a more specific message.
func (e *DomainError) WithMessage(format string, args ...any) *DomainError {
	return &DomainError{
		Kind:    e.Kind,
		Code:    e.Code,
		Message: fmt.Sprintf(format, args...),
		Fields:  e.Fields,
	}
}

// Retryable is true for failures a caller may safely re-attempt.
func (e *DomainError) Retryable() bool {
	return e.Kind == KindLockTimeout
}

// As unwraps err into a DomainError if one is present in the chain.
func As(err error) (*DomainError, bool) {
	var de *DomainError
	if stderrors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// IsKind reports whether err carries a DomainError of the given kind.
func IsKind(err error, kind Kind) bool {
	de, ok := As(err)
	return ok && de.Kind == kind
}

// Validation builds a validation failure from field messages.
func Validation(fields map[string]string) *DomainError {
	return &DomainError{
		Kind:    KindValidation,
		Code:    ErrValidation.Code,
		Message: ErrValidation.Message,
		Fields:  fields,
	}
}

var (
	ErrValidation = &DomainError{
		Kind:    KindValidation,
		Code:    "VALIDATION_FAILED",
		Message: "request validation failed",
	}
	ErrLockTimeout = &DomainError{
		Kind:    KindLockTimeout,
		Code:    "LOCK_TIMEOUT",
		Message: "timed out waiting for a locked record, retry the operation",
	}
	ErrForbidden = &DomainError{
		Kind:    KindForbidden,
		Code:    "FORBIDDEN",
		Message: "operation not permitted",
	}
)
