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

// ErrConflict indicates a concurrent write was rejected by the store (unique
// violation on a generated key, serialization failure, deadlock). Callers may
// retry the whole unit of work.
var ErrConflict = errors.New("conflicting concurrent update")

// ErrPersistence indicates the underlying store failed or was unreachable.
var ErrPersistence = errors.New("persistence failure")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// AppError carries an HTTP-ish status code alongside the wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates an AppError. A nil cause is replaced with ErrPersistence
// so errors.Is checks keep working for internal failures.
func NewAppError(code int, message string, err error) *AppError {
	if err == nil {
		err = ErrPersistence
	}
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}
