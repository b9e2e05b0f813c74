package preprocess

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Location identifies a position inside the buffer being expanded.
type Location struct {
	// File is the top-level shader path.
	File string
	// Offset is the character (not byte) offset into the current buffer.
	Offset int
	// Line is 1-based.
	Line int
}

func locate(file, text string, byteOffset int) Location {
	prefix := text[:byteOffset]
	return Location{
		File:   file,
		Offset: utf8.RuneCountInString(prefix),
		Line:   strings.Count(prefix, "\n") + 1,
	}
}

// Warning reports a directive left in place that the expander does not support.
type Warning struct {
	Location
	// Directive is the directive name without '#'.
	Directive string
}

// String formats the warning for terminal output.
func (w Warning) String() string {
	return fmt.Sprintf("unsupported action '#%s' in shader '%s:%d' (line %d)",
		w.Directive, w.File, w.Offset, w.Line)
}
