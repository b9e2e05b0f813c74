package preprocess

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tacogips/shaderpp/internal/shader/source"
)

// mapReader serves files from memory, keyed by slash-separated path.
type mapReader struct {
	files map[string]string
	reads []string
}

func (m *mapReader) read(path string) ([]byte, error) {
	key := filepath.ToSlash(path)
	m.reads = append(m.reads, key)
	content, ok := m.files[key]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	return []byte(content), nil
}

func newTestExpander(files map[string]string, opts ...Option) (*Expander, *mapReader) {
	r := &mapReader{files: files}
	opts = append([]Option{WithReader(r.read)}, opts...)
	return New("shaders", opts...), r
}

func TestExpandNoDirectives(t *testing.T) {
	inputs := []string{
		"",
		"void main() {}\n",
		"vec4 color = vec4(1.0); // no hash here\n",
		"# not a directive\n#1 neither\n#Upper neither\n",
		"ünïcödé ✓\r\nwindows line endings\r\n",
	}

	e, _ := newTestExpander(nil)
	for _, input := range inputs {
		result, err := e.Expand(context.Background(), "main.vert", input)
		require.NoError(t, err)
		assert.Equal(t, input, result.Text)
		assert.Empty(t, result.Includes)
		assert.Empty(t, result.Warnings)
	}
}

func TestExpandInclude(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		files    map[string]string
		expected string
	}{
		{
			name:     "directive replaced with content and newline",
			input:    "before\n#include \"a.glsl\"\nafter",
			files:    map[string]string{"shaders/a.glsl": "X"},
			expected: "before\nX\n\nafter",
		},
		{
			name:     "surrounding text on the same line kept",
			input:    "pre #include \"a.glsl\" post",
			files:    map[string]string{"shaders/a.glsl": "X"},
			expected: "pre X\n post",
		},
		{
			name:     "tab between directive and path",
			input:    "#include\t\"a.glsl\"",
			files:    map[string]string{"shaders/a.glsl": "X"},
			expected: "X\n",
		},
		{
			name:     "no space between directive and path",
			input:    "#include\"a.glsl\"",
			files:    map[string]string{"shaders/a.glsl": "X"},
			expected: "X\n",
		},
		{
			name:     "subdirectory path",
			input:    "#include \"lib/common.glsl\"\nvoid main() {}\n",
			files:    map[string]string{"shaders/lib/common.glsl": "vec3 foo;"},
			expected: "vec3 foo;\n\nvoid main() {}\n",
		},
		{
			name:  "nested include",
			input: "#include \"a.glsl\"",
			files: map[string]string{
				"shaders/a.glsl": "A1\n#include \"b.glsl\"\nA2",
				"shaders/b.glsl": "B",
			},
			expected: "A1\nB\n\nA2\n",
		},
		{
			name:  "nested include resolved against base dir, not including file",
			input: "#include \"lib/a.glsl\"",
			files: map[string]string{
				"shaders/lib/a.glsl": "#include \"b.glsl\"",
				"shaders/b.glsl":     "B",
			},
			expected: "B\n\n",
		},
		{
			name:  "multiple includes in order",
			input: "#include \"a.glsl\"\n#include \"b.glsl\"\n",
			files: map[string]string{
				"shaders/a.glsl": "A",
				"shaders/b.glsl": "B",
			},
			expected: "A\n\nB\n\n",
		},
		{
			name:     "same file included twice",
			input:    "#include \"a.glsl\" #include \"a.glsl\"",
			files:    map[string]string{"shaders/a.glsl": "A"},
			expected: "A\n A\n",
		},
		{
			name:  "version and define pass through",
			input: "#version 330\n#define FOO 1\n#include \"a.glsl\"\n",
			files: map[string]string{
				"shaders/a.glsl": "#define BAR 2",
			},
			expected: "#version 330\n#define FOO 1\n#define BAR 2\n\n",
		},
		{
			name:     "hash glued before include merges with included text",
			input:    "##include \"a.glsl\"",
			files:    map[string]string{"shaders/a.glsl": "include \"b.glsl\"", "shaders/b.glsl": "B"},
			expected: "B\n\n",
		},
		{
			name:     "path ends at first closing quote",
			input:    "#include \"a.glsl\"b\"",
			files:    map[string]string{"shaders/a.glsl": "X"},
			expected: "X\nb\"",
		},
		{
			name:     "CRLF include normalized to LF",
			input:    "#include \"a.glsl\"\n",
			files:    map[string]string{"shaders/a.glsl": "vec3 foo;\r\nvec3 bar;\r\n"},
			expected: "vec3 foo;\nvec3 bar;\n\n\n",
		},
		{
			name:     "bare CR include normalized to LF",
			input:    "#include \"a.glsl\"",
			files:    map[string]string{"shaders/a.glsl": "A\rB"},
			expected: "A\nB\n",
		},
		{
			name:     "including file keeps CRLF",
			input:    "// top\r\n#include \"a.glsl\"\r\nvoid main() {}\r\n",
			files:    map[string]string{"shaders/a.glsl": "A\r\n"},
			expected: "// top\r\nA\n\n\r\nvoid main() {}\r\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestExpander(tt.files)
			result, err := e.Expand(context.Background(), "shaders/main.vert", tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result.Text)
			assert.NotContains(t, result.Text, "#include")
		})
	}
}

func TestExpandRereadsRepeatedIncludes(t *testing.T) {
	e, r := newTestExpander(map[string]string{"shaders/a.glsl": "A"})

	result, err := e.Expand(context.Background(), "main.vert", "#include \"a.glsl\"\n#include \"a.glsl\"\n")
	require.NoError(t, err)
	assert.Equal(t, []string{"shaders/a.glsl", "shaders/a.glsl"}, r.reads)
	assert.Equal(t, []string{filepath.Join("shaders", "a.glsl"), filepath.Join("shaders", "a.glsl")}, result.Includes)
}

func TestExpandUnknownDirective(t *testing.T) {
	var seen []Warning
	e, _ := newTestExpander(
		map[string]string{"shaders/a.glsl": "A"},
		WithWarningHandler(func(w Warning) { seen = append(seen, w) }),
	)

	input := "#version 450\n#extension GL_ARB_x : enable\n#include \"a.glsl\"\n#ifdef FOO\n"
	result, err := e.Expand(context.Background(), "main.frag", input)
	require.NoError(t, err)

	assert.Equal(t, "#version 450\n#extension GL_ARB_x : enable\nA\n\n#ifdef FOO\n", result.Text)
	require.Len(t, result.Warnings, 2)
	assert.Equal(t, seen, result.Warnings)

	assert.Equal(t, "extension", result.Warnings[0].Directive)
	assert.Equal(t, "main.frag", result.Warnings[0].File)
	assert.Equal(t, 13, result.Warnings[0].Offset)
	assert.Equal(t, 2, result.Warnings[0].Line)

	// Line numbers refer to the expanded buffer.
	assert.Equal(t, "ifdef", result.Warnings[1].Directive)
	assert.Equal(t, 5, result.Warnings[1].Line)
	assert.Contains(t, result.Warnings[1].String(), "unsupported action '#ifdef' in shader 'main.frag:")
}

func TestExpandIgnoredDirectives(t *testing.T) {
	e, _ := newTestExpander(nil, WithIgnoredDirectives("extension", "pragma", "include", "Bad-Name"))

	result, err := e.Expand(context.Background(), "main.frag", "#extension X\n#pragma optimize(on)\n#line 3\n")
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "line", result.Warnings[0].Directive)
}

func TestExpandIgnoringIncludeHasNoEffect(t *testing.T) {
	e, _ := newTestExpander(map[string]string{"shaders/a.glsl": "A"}, WithIgnoredDirectives("include"))

	result, err := e.Expand(context.Background(), "main.frag", "#include \"a.glsl\"")
	require.NoError(t, err)
	assert.Equal(t, "A\n", result.Text)
}

func TestExpandOffsetsCountCharacters(t *testing.T) {
	e, _ := newTestExpander(nil)

	result, err := e.Expand(context.Background(), "main.frag", "// é✓\n#foo")
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, 6, result.Warnings[0].Offset)
}

func TestExpandIncludeSyntaxError(t *testing.T) {
	inputs := map[string]string{
		"end of file":         "void main() {}\n#include",
		"unquoted path":       "#include a.glsl\n",
		"path on next line":   "#include\n\"a.glsl\"\n",
		"empty quotes":        "#include \"\"\n",
		"whitespace in path":  "#include \"a b.glsl\"\n",
		"angle bracket style": "#include <a.glsl>\n",
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			e, r := newTestExpander(map[string]string{"shaders/a.glsl": "A"})
			result, err := e.Expand(context.Background(), "main.vert", input)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, errors.Is(err, ErrIncludeSyntax))
			assert.False(t, errors.Is(err, ErrIncludeRead))
			assert.Empty(t, r.reads)

			var expErr *ExpandError
			require.True(t, errors.As(err, &expErr))
			assert.Equal(t, IncludeSyntax, expErr.Type)
			assert.Equal(t, "main.vert", expErr.File)
			assert.Equal(t, strings.Index(input, "#include"), expErr.Offset)
			assert.Contains(t, err.Error(), "failed to handle '#include' in main.vert:")
		})
	}
}

func TestExpandIncludeReadError(t *testing.T) {
	e, _ := newTestExpander(map[string]string{"shaders/a.glsl": "#include \"missing.glsl\""})

	_, err := e.Expand(context.Background(), "main.vert", "line\n#include \"a.glsl\"\n")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIncludeRead))
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	var expErr *ExpandError
	require.True(t, errors.As(err, &expErr))
	assert.Equal(t, "missing.glsl", expErr.Path)
	assert.Equal(t, 5, expErr.Offset)
	assert.Equal(t, 2, expErr.Line)
	assert.Contains(t, err.Error(), "couldn't open "+filepath.Join("shaders", "missing.glsl"))
}

func TestExpandIncludeDecodeError(t *testing.T) {
	e, _ := newTestExpander(map[string]string{"shaders/bad.glsl": "ok\xff"})

	_, err := e.Expand(context.Background(), "main.vert", "#include \"bad.glsl\"")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIncludeRead)
	assert.ErrorIs(t, err, source.ErrInvalidUTF8)
}

func TestExpandWithBOMAwareDecoder(t *testing.T) {
	utf16 := string([]byte{0xFF, 0xFE, 'X', 0})
	e, _ := newTestExpander(map[string]string{"shaders/a.glsl": utf16}, WithDecoder(source.BOMAware{}))

	result, err := e.Expand(context.Background(), "main.vert", "#include \"a.glsl\"")
	require.NoError(t, err)
	assert.Equal(t, "X\n", result.Text)
}

func TestExpandCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e, _ := newTestExpander(map[string]string{"shaders/a.glsl": "A"})
	_, err := e.Expand(ctx, "main.vert", "#include \"a.glsl\"")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExpandFile(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(base, "lib"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(base, "lib", "common.glsl"), []byte("vec3 foo;"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(base, "main.vert"),
		[]byte("#version 330\n#include \"lib/common.glsl\"\nvoid main() {}\n"), 0644))

	e := New(base)
	result, err := e.ExpandFile(context.Background(), "main.vert")
	require.NoError(t, err)
	assert.Equal(t, "#version 330\nvec3 foo;\n\nvoid main() {}\n", result.Text)
	assert.Equal(t, []string{filepath.Join(base, "lib", "common.glsl")}, result.Includes)
	assert.Equal(t, base, e.BaseDir())
}

func TestExpandFileMissingInput(t *testing.T) {
	e := New(t.TempDir())
	_, err := e.ExpandFile(context.Background(), "nope.vert")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSourceRead)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Contains(t, err.Error(), "failed to open file")
}
