// Package preprocess expands #include directives in shader sources.
//
// The expander scans for tokens matching #[a-z]+ and dispatches on the
// directive kind: #include is replaced by the referenced file's contents,
// #version and #define are passed through, and anything else is reported
// as a warning and left for the downstream shader compiler.
package preprocess

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tacogips/shaderpp/internal/debug"
	"github.com/tacogips/shaderpp/internal/shader/source"
)

// ReadFunc reads the raw bytes of a file.
type ReadFunc func(path string) ([]byte, error)

// Result is the outcome of a successful expansion.
type Result struct {
	// Text is the fully expanded shader.
	Text string
	// Includes lists resolved include paths in splice order.
	Includes []string
	// Warnings holds every unsupported directive reported.
	Warnings []Warning
}

// Expander expands #include directives relative to a base directory.
type Expander struct {
	baseDir   string
	read      ReadFunc
	decoder   source.Decoder
	onWarning func(Warning)
	ignored   map[string]struct{}
}

// Option configures an Expander.
type Option func(*Expander)

// WithReader replaces os.ReadFile for both the input and included files.
func WithReader(read ReadFunc) Option {
	return func(e *Expander) {
		e.read = read
	}
}

// WithDecoder sets how file bytes are turned into text.
func WithDecoder(d source.Decoder) Option {
	return func(e *Expander) {
		e.decoder = d
	}
}

// WithWarningHandler registers a callback invoked as soon as a warning is found.
func WithWarningHandler(fn func(Warning)) Option {
	return func(e *Expander) {
		e.onWarning = fn
	}
}

// WithIgnoredDirectives adds directive names that pass through without a warning.
// Names that are not plain lowercase words, and "include", are skipped.
func WithIgnoredDirectives(names ...string) Option {
	return func(e *Expander) {
		for _, name := range names {
			if !validDirectiveName(name) || parseDirectiveKind(name).Action() == ActionExpand {
				continue
			}
			e.ignored[name] = struct{}{}
		}
	}
}

// New creates an Expander resolving includes against baseDir.
func New(baseDir string, opts ...Option) *Expander {
	e := &Expander{
		baseDir: baseDir,
		read:    os.ReadFile,
		decoder: source.StrictUTF8{},
		ignored: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// BaseDir returns the directory includes are resolved against.
func (e *Expander) BaseDir() string {
	return e.baseDir
}

// ExpandFile loads baseDir/relPath and expands it.
func (e *Expander) ExpandFile(ctx context.Context, relPath string) (*Result, error) {
	path := filepath.Join(e.baseDir, relPath)
	text, err := e.load(path)
	if err != nil {
		return nil, &ExpandError{
			Type:    SourceRead,
			Message: "failed to open file",
			File:    path,
			Cause:   err,
		}
	}
	return e.Expand(ctx, path, text)
}

// Expand expands text, attributing locations to file.
// Expansion is a fixed point: it stops once no #include remains.
func (e *Expander) Expand(ctx context.Context, file, text string) (*Result, error) {
	debug.Debug("[preprocess] Expand: file=%s, size=%d bytes", file, len(text))
	result := &Result{}
	cursor := 0

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		match, ok := findDirective(text, cursor)
		if !ok {
			break
		}

		switch e.action(match) {
		case ActionExpand:
			expanded, path, err := e.expandDirective(file, text, match)
			if err != nil {
				return nil, err
			}
			debug.Debug("[preprocess] Spliced %s at byte %d", path, match.Start)
			result.Includes = append(result.Includes, path)
			cursor = rewindPoint(expanded, match.Start)
			text = expanded
		case ActionPassThrough:
			cursor = match.End
		default:
			w := Warning{Location: locate(file, text, match.Start), Directive: match.Name}
			result.Warnings = append(result.Warnings, w)
			if e.onWarning != nil {
				e.onWarning(w)
			}
			cursor = match.End
		}
	}

	debug.Debug("[preprocess] Expand complete: %d include(s), %d warning(s), output size=%d bytes",
		len(result.Includes), len(result.Warnings), len(text))
	result.Text = text
	return result, nil
}

func (e *Expander) action(m DirectiveMatch) Action {
	if m.Kind == DirectiveUnknown {
		if _, ok := e.ignored[m.Name]; ok {
			return ActionPassThrough
		}
	}
	return m.Kind.Action()
}

// expandDirective runs the expansion for directive kinds whose action is ActionExpand.
func (e *Expander) expandDirective(file, text string, m DirectiveMatch) (string, string, error) {
	switch m.Kind {
	case DirectiveInclude:
		return e.handleInclude(file, text, m)
	default:
		return "", "", fmt.Errorf("no expansion for directive %s", m.RawText())
	}
}

func (e *Expander) load(path string) (string, error) {
	data, err := e.read(path)
	if err != nil {
		return "", err
	}
	return e.decoder.Decode(data)
}
