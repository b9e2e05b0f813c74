package output

import "fmt"

// WriteErrorType categorizes output errors.
type WriteErrorType int

const (
	// WriteFailed indicates the processed shader could not be written.
	WriteFailed WriteErrorType = iota
	// DepfileFailed indicates the dependency file could not be written.
	DepfileFailed
)

// WriteError represents a failure writing an output file.
type WriteError struct {
	// Type categorizes the error.
	Type WriteErrorType
	// Message is the error message.
	Message string
	// File is the target path.
	File string
	// Cause is the underlying error (if any).
	Cause error
}

// Error implements the error interface.
func (e *WriteError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s '%s': %v", e.Message, e.File, e.Cause)
	}
	return fmt.Sprintf("%s '%s'", e.Message, e.File)
}

// Unwrap returns the underlying cause error for error unwrapping.
func (e *WriteError) Unwrap() error {
	return e.Cause
}

func newWriteError(typ WriteErrorType, message, file string, cause error) *WriteError {
	return &WriteError{
		Type:    typ,
		Message: message,
		File:    file,
		Cause:   cause,
	}
}
