package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents different types of errors in the system
type ErrorType string

const (
	// ErrorTypeNotFound indicates a resource was not found
	ErrorTypeNotFound ErrorType = "NOT_FOUND"

	// ErrorTypeValidation indicates a required field is missing or malformed
	ErrorTypeValidation ErrorType = "VALIDATION"

	// ErrorTypeConflict indicates a concurrent write or an illegal transition
	ErrorTypeConflict ErrorType = "CONFLICT"

	// ErrorTypeStepOutOfRange indicates a step index outside the defined stages
	ErrorTypeStepOutOfRange ErrorType = "STEP_OUT_OF_RANGE"

	// ErrorTypeStale indicates a result that arrived after its stage was left
	ErrorTypeStale ErrorType = "STALE"

	// ErrorTypeInternal indicates an internal server error
	ErrorTypeInternal ErrorType = "INTERNAL"

	// ErrorTypeExternal indicates an error from an external collaborator
	ErrorTypeExternal ErrorType = "EXTERNAL"
)

// AppError represents an application error
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap implements the unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// TypeOf returns the ErrorType of the first AppError in err's chain, or "" if none
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ""
}

// Is reports whether err carries an AppError of the given type
func Is(err error, t ErrorType) bool {
	return TypeOf(err) == t
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string) *AppError {
	return &AppError{Type: ErrorTypeNotFound, Message: message}
}

// NewValidationError creates a new validation error
func NewValidationError(message string) *AppError {
	return &AppError{Type: ErrorTypeValidation, Message: message}
}

// NewConflictError creates a new conflict error
func NewConflictError(message string) *AppError {
	return &AppError{Type: ErrorTypeConflict, Message: message}
}

// NewStepOutOfRangeError creates an error for an undefined step index
func NewStepOutOfRangeError(index int) *AppError {
	return &AppError{
		Type:    ErrorTypeStepOutOfRange,
		Message: fmt.Sprintf("step index %d is outside the defined stages", index),
	}
}

// NewStaleError creates an error for a result that outlived its stage
func NewStaleError(message string) *AppError {
	return &AppError{Type: ErrorTypeStale, Message: message}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeInternal, Message: message, Err: err}
}

// NewExternalError creates a new external service error
func NewExternalError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeExternal, Message: message, Err: err}
}
