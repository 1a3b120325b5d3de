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

// ErrLocked indicates that the target account is locked against the requested operation.
var ErrLocked = errors.New("account is locked")

// ErrInUse indicates that the target cannot be removed because journal lines reference it.
var ErrInUse = errors.New("resource is referenced by journal entries")

// ErrOverpayment indicates a payment exceeding the outstanding invoice balance.
var ErrOverpayment = errors.New("payment exceeds outstanding balance")

// ErrConflict indicates the operation conflicts with the current state of the resource.
var ErrConflict = errors.New("conflicting state")

// ErrInternal indicates an unexpected persistence or internal failure.
var ErrInternal = errors.New("internal error")

// ErrRecalculation wraps failures of the snapshot recalculation pass.
// These are isolated from posting errors: a committed posting is never
// unwound because its follow-up recalculation failed.
var ErrRecalculation = errors.New("balance recalculation failed")

// AppError carries an HTTP-ish status code alongside the underlying error.
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

// NewAppError creates an AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
