package errors

import (
	"errors"
	"fmt"
	"strings"
)

// FieldError describes a single violated input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// AppError represents an application error with additional context
type AppError struct {
	Code    string       // Error code for client
	Message string       // Human-readable message
	Fields  []FieldError // Per-field detail for validation errors
	Err     error        // Underlying error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrCodeValidation       = "VALIDATION_ERROR"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeBadRequest       = "BAD_REQUEST"
	ErrCodeStoreUnavailable = "STORE_UNAVAILABLE"
	ErrCodeInternal         = "INTERNAL_ERROR"
)

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Validation creates a validation error carrying every violated field,
// not just the first one encountered.
func Validation(fields ...FieldError) *AppError {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Field
	}
	return &AppError{
		Code:    ErrCodeValidation,
		Message: "invalid input: " + strings.Join(names, ", "),
		Fields:  fields,
	}
}

// NotFound creates a not found error
func NotFound(resource string) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

// BadRequest creates a bad request error
func BadRequest(message string) *AppError {
	return &AppError{
		Code:    ErrCodeBadRequest,
		Message: message,
	}
}

// StoreUnavailable creates a store unavailable error
func StoreUnavailable(err error) *AppError {
	return &AppError{
		Code:    ErrCodeStoreUnavailable,
		Message: "document store unavailable",
		Err:     err,
	}
}

// Internal creates an internal error
func Internal(message string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

// GetAppError extracts an AppError from an error
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}
