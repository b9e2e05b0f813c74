package preprocess

import (
	"regexp"
)

// DirectiveKind identifies a shader preprocessor directive.
type DirectiveKind int

const (
	// DirectiveUnknown represents any #word the expander does not recognize.
	DirectiveUnknown DirectiveKind = iota
	// DirectiveInclude represents #include "path"
	DirectiveInclude
	// DirectiveVersion represents #version
	DirectiveVersion
	// DirectiveDefine represents #define
	DirectiveDefine
)

// Action describes what the expander does with a directive.
type Action int

const (
	// ActionWarn leaves the directive in place and reports a warning.
	ActionWarn Action = iota
	// ActionPassThrough leaves the directive in place silently.
	ActionPassThrough
	// ActionExpand rewrites the buffer.
	ActionExpand
)

// String returns the directive name as written after '#'.
func (k DirectiveKind) String() string {
	switch k {
	case DirectiveInclude:
		return "include"
	case DirectiveVersion:
		return "version"
	case DirectiveDefine:
		return "define"
	default:
		return "unknown"
	}
}

// Action returns the built-in action for the directive kind.
func (k DirectiveKind) Action() Action {
	switch k {
	case DirectiveInclude:
		return ActionExpand
	case DirectiveVersion, DirectiveDefine:
		return ActionPassThrough
	default:
		return ActionWarn
	}
}

// DirectiveMatch represents a matched directive token in the buffer.
type DirectiveMatch struct {
	// Kind is the directive kind.
	Kind DirectiveKind
	// Start is the byte index of '#'.
	Start int
	// End is the byte index just past the directive name.
	End int
	// Name is the directive name without '#'.
	Name string
}

// RawText returns the token as it appears in the source.
func (m DirectiveMatch) RawText() string {
	return "#" + m.Name
}

var (
	directivePattern = regexp.MustCompile(`#([a-z]+)`)
	namePattern      = regexp.MustCompile(`^[a-z]+$`)
)

// findDirective returns the first directive token at or after from.
func findDirective(text string, from int) (DirectiveMatch, bool) {
	if from >= len(text) {
		return DirectiveMatch{}, false
	}
	loc := directivePattern.FindStringSubmatchIndex(text[from:])
	if loc == nil {
		return DirectiveMatch{}, false
	}

	name := text[from+loc[2] : from+loc[3]]
	return DirectiveMatch{
		Kind:  parseDirectiveKind(name),
		Start: from + loc[0],
		End:   from + loc[1],
		Name:  name,
	}, true
}

// parseDirectiveKind converts a directive name to its DirectiveKind.
func parseDirectiveKind(name string) DirectiveKind {
	switch name {
	case "include":
		return DirectiveInclude
	case "version":
		return DirectiveVersion
	case "define":
		return DirectiveDefine
	default:
		return DirectiveUnknown
	}
}

// validDirectiveName reports whether name could appear as a directive token.
func validDirectiveName(name string) bool {
	return namePattern.MatchString(name)
}

// rewindPoint returns the earliest offset whose directive token could change
// after the region starting at start is rewritten. A token ending exactly at
// start (e.g. "#" or "#ab" glued to the directive) may merge with spliced text.
func rewindPoint(text string, start int) int {
	p := start
	for p > 0 && text[p-1] >= 'a' && text[p-1] <= 'z' {
		p--
	}
	if p > 0 && text[p-1] == '#' {
		return p - 1
	}
	return start
}
