// Package apperr defines the error kinds shared by every use case.
package apperr

import (
	"errors"
	"fmt"
)

// Kinds. Match them with errors.Is.
var (
	ErrNotFound            = errors.New("not found")
	ErrDuplicatePair       = errors.New("duplicate pair")
	ErrValidationFailed    = errors.New("validation failed")
	ErrConstraintViolation = errors.New("constraint violation")
	ErrForbidden           = errors.New("forbidden")
)

// AppError carries a kind, a machine readable code and the underlying cause.
type AppError struct {
	Kind    error
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func NotFound(resource string, id any) *AppError {
	return &AppError{
		Kind:    ErrNotFound,
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

func DuplicatePair(resource string, a, b any) *AppError {
	return &AppError{
		Kind:    ErrDuplicatePair,
		Code:    "DUPLICATE_PAIR",
		Message: fmt.Sprintf("%s between %v and %v already exists", resource, a, b),
	}
}

func Validation(message string) *AppError {
	return &AppError{
		Kind:    ErrValidationFailed,
		Code:    "VALIDATION_FAILED",
		Message: message,
	}
}

func Constraint(err error) *AppError {
	return &AppError{
		Kind:    ErrConstraintViolation,
		Code:    "CONSTRAINT_VIOLATION",
		Message: "store rejected the write",
		Err:     err,
	}
}

func Forbidden(message string) *AppError {
	return &AppError{
		Kind:    ErrForbidden,
		Code:    "FORBIDDEN",
		Message: message,
	}
}

// Internal wraps an unclassified store or infrastructure failure.
func Internal(err error) *AppError {
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Message: "internal error",
		Err:     err,
	}
}

// CodeOf returns the code of the first AppError in the chain, or INTERNAL_ERROR.
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return "INTERNAL_ERROR"
}
