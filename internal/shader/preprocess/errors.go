package preprocess

import (
	"errors"
	"fmt"
)

// ExpandErrorType represents the type of expansion error.
type ExpandErrorType int

const (
	// IncludeSyntax indicates an #include without a quoted path after it.
	IncludeSyntax ExpandErrorType = iota
	// IncludeRead indicates the included file could not be read or decoded.
	IncludeRead
	// SourceRead indicates the top-level shader could not be read or decoded.
	SourceRead
)

var (
	// ErrIncludeSyntax matches IncludeSyntax errors via errors.Is.
	ErrIncludeSyntax = errors.New("invalid #include syntax")
	// ErrIncludeRead matches IncludeRead errors via errors.Is.
	ErrIncludeRead = errors.New("cannot read included file")
	// ErrSourceRead matches SourceRead errors via errors.Is.
	ErrSourceRead = errors.New("cannot read shader source")
)

// ExpandError represents a failure while expanding a shader, with the
// location of the offending directive.
type ExpandError struct {
	// Type is the error type.
	Type ExpandErrorType
	// Message is the error message.
	Message string
	// File is the shader being expanded.
	File string
	// Offset is the character offset of the directive in the expanded buffer.
	Offset int
	// Line is the 1-based line of the directive (0 if unknown).
	Line int
	// Directive is the directive token, e.g. "#include".
	Directive string
	// Path is the include argument, when one was parsed.
	Path string
	// Cause is the underlying error (optional).
	Cause error
}

// Error implements the error interface.
func (e *ExpandError) Error() string {
	loc := e.File
	if e.Type != SourceRead {
		loc = fmt.Sprintf("%s:%d", e.File, e.Offset)
		if e.Line > 0 {
			loc = fmt.Sprintf("%s (line %d)", loc, e.Line)
		}
	}

	msg := fmt.Sprintf("%s: %s", loc, e.Message)
	if e.Directive != "" {
		msg = fmt.Sprintf("failed to handle '%s' in %s", e.Directive, msg)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *ExpandError) Unwrap() error {
	return e.Cause
}

// Is matches the package sentinel for the error type.
func (e *ExpandError) Is(target error) bool {
	switch e.Type {
	case IncludeSyntax:
		return target == ErrIncludeSyntax
	case IncludeRead:
		return target == ErrIncludeRead
	case SourceRead:
		return target == ErrSourceRead
	}
	return false
}

func newDirectiveError(typ ExpandErrorType, message string, loc Location, m DirectiveMatch) *ExpandError {
	return &ExpandError{
		Type:      typ,
		Message:   message,
		File:      loc.File,
		Offset:    loc.Offset,
		Line:      loc.Line,
		Directive: m.RawText(),
	}
}
