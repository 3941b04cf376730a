package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the operation conflicts with the current state of a
// related resource (e.g. removing a book that still has an active loan).
var ErrConflict = errors.New("operation conflicts with current state")

// ErrUnavailable indicates that a book is not available for checkout.
var ErrUnavailable = errors.New("book is not available")

// ErrLimitExceeded indicates that a policy ceiling was reached (concurrent
// loans per borrower, or renewals per loan).
var ErrLimitExceeded = errors.New("policy limit exceeded")

// ErrAlreadyReturned indicates a return or renewal was attempted on a loan
// that is no longer active.
var ErrAlreadyReturned = errors.New("loan already returned")

// ErrAlreadyPaid indicates a payment was attempted on a fine that is not pending.
var ErrAlreadyPaid = errors.New("fine already settled")

// ErrInvalidState indicates the entity is not in a state that permits the
// requested transition (e.g. condoning a non-pending fine).
var ErrInvalidState = errors.New("invalid state for operation")

// ErrOutstandingFine indicates the borrower has a pending fine blocking renewal.
var ErrOutstandingFine = errors.New("borrower has an outstanding fine")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// AppError wraps lower-level failures (typically storage errors) with an HTTP-ish
// status code and a human-readable message, while keeping the cause unwrappable.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
