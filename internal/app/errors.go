package app

import (
	"errors"
	"fmt"
)

// AppErrorType represents the type of application error.
type AppErrorType int

const (
	// ValidationFailed indicates invalid run options.
	ValidationFailed AppErrorType = iota
	// InputOpenFailed indicates the shader to process could not be read.
	InputOpenFailed
	// ExpandFailed indicates an #include could not be expanded.
	ExpandFailed
	// OutputWriteFailed indicates the processed shader or depfile could not be written.
	OutputWriteFailed
)

// AppError represents an application-layer error.
type AppError struct {
	// Type is the error type.
	Type AppErrorType
	// Message is the error message.
	Message string
	// Cause is the underlying error.
	Cause error
}

// Error returns the error message.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError creates a new AppError.
func NewAppError(errType AppErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// NewValidationError creates a validation error.
func NewValidationError(message string, cause error) *AppError {
	return NewAppError(ValidationFailed, message, cause)
}

// NewInputOpenError creates an input open error.
func NewInputOpenError(message string, cause error) *AppError {
	return NewAppError(InputOpenFailed, message, cause)
}

// NewExpandError creates an expansion error.
func NewExpandError(message string, cause error) *AppError {
	return NewAppError(ExpandFailed, message, cause)
}

// NewOutputWriteError creates an output write error.
func NewOutputWriteError(message string, cause error) *AppError {
	return NewAppError(OutputWriteFailed, message, cause)
}

// ExitCode maps a Run error to the process exit status.
// Every failure, including usage and configuration errors, exits with 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}

// IsType reports whether err wraps an AppError of the given type.
func IsType(err error, typ AppErrorType) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == typ
}
