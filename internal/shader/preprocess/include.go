package preprocess

import (
	"path/filepath"
	"regexp"
	"strings"
)

// includeArgPattern matches the quoted path that must follow #include on the same line.
var includeArgPattern = regexp.MustCompile(`^[ \t]*"([^"\s]+)"`)

// newlineNormalizer rewrites CRLF and lone CR line endings to LF.
var newlineNormalizer = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// handleInclude replaces `#include "path"` with the contents of baseDir/path
// followed by a newline. Line endings of the included text are normalized to
// LF; the including buffer keeps its own. Text before the directive and after
// the closing quote is kept unchanged. Returns the new buffer and the resolved
// path.
func (e *Expander) handleInclude(file, text string, m DirectiveMatch) (string, string, error) {
	loc := includeArgPattern.FindStringSubmatchIndex(text[m.End:])
	if loc == nil {
		return "", "", newDirectiveError(IncludeSyntax,
			"invalid syntax, expected a quoted path",
			locate(file, text, m.Start), m)
	}

	arg := text[m.End+loc[2] : m.End+loc[3]]
	argEnd := m.End + loc[1]
	path := filepath.Join(e.baseDir, arg)

	included, err := e.load(path)
	if err != nil {
		expErr := newDirectiveError(IncludeRead,
			"couldn't open "+path,
			locate(file, text, m.Start), m)
		expErr.Path = arg
		expErr.Cause = err
		return "", "", expErr
	}

	included = newlineNormalizer.Replace(included)
	return text[:m.Start] + included + "\n" + text[argEnd:], path, nil
}
