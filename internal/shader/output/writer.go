// Package output writes processed shaders and their dependency files.
package output

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/tacogips/shaderpp/internal/debug"
)

// fileMode is the permission used for newly created files.
const fileMode os.FileMode = 0644

// Writer writes files to the filesystem.
type Writer interface {
	// WriteFile writes content to path, truncating any existing file.
	WriteFile(path string, content []byte) error
}

// FileWriter implements Writer.
type FileWriter struct {
	createDirs bool
}

// NewFileWriter creates a new FileWriter.
// If createDirs is true, missing parent directories are created.
func NewFileWriter(createDirs bool) *FileWriter {
	return &FileWriter{createDirs: createDirs}
}

// WriteFile opens path for writing, truncating any existing file, and writes
// content. An existing file keeps its mode and a symlink at path is written
// through.
func (w *FileWriter) WriteFile(path string, content []byte) error {
	debug.Debug("[output] Writing file: %s (size: %d bytes)", path, len(content))

	if err := w.ensureDir(path); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fileMode)
	if err != nil {
		return newWriteError(WriteFailed, "failed to save the result to", path, err)
	}
	_, err = f.Write(content)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return newWriteError(WriteFailed, "failed to save the result to", path, err)
	}

	debug.Debug("[output] File written successfully: %s", path)
	return nil
}

// replaceFile stages content in a temporary file next to path and renames it
// over path, so path is either fully written or untouched.
func (w *FileWriter) replaceFile(path string, content []byte) error {
	debug.Debug("[output] Replacing file: %s (size: %d bytes)", path, len(content))

	if err := w.ensureDir(path); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return newWriteError(WriteFailed, "failed to save the result to", path, err)
	}
	tempFile := tmp.Name()

	_, err = tmp.Write(content)
	closeErr := tmp.Close()
	if err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Chmod(tempFile, fileMode)
	}
	if err == nil {
		err = os.Rename(tempFile, path)
	}
	if err != nil {
		_ = os.Remove(tempFile)
		return newWriteError(WriteFailed, "failed to save the result to", path, err)
	}
	return nil
}

func (w *FileWriter) ensureDir(path string) error {
	dir := filepath.Dir(path)
	if !w.createDirs || dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return newWriteError(WriteFailed, "failed to create directory for", path, err)
	}
	return nil
}

// WriteDepfile writes a Make-style dependency rule "target: deps..." to path.
// Duplicate dependencies are dropped, keeping first-seen order. The depfile
// is replaced atomically so build tools never read half a rule.
func (w *FileWriter) WriteDepfile(path, target string, deps []string) error {
	seen := make(map[string]struct{}, len(deps))
	var b strings.Builder
	b.WriteString(escapeMakePath(target))
	b.WriteString(":")
	for _, dep := range deps {
		if _, ok := seen[dep]; ok {
			continue
		}
		seen[dep] = struct{}{}
		b.WriteString(" \\\n  ")
		b.WriteString(escapeMakePath(dep))
	}
	b.WriteString("\n")

	if err := w.replaceFile(path, []byte(b.String())); err != nil {
		return newWriteError(DepfileFailed, "failed to write depfile", path, err)
	}
	return nil
}

var makeEscaper = strings.NewReplacer(" ", `\ `, "#", `\#`, "$", "$$")

func escapeMakePath(p string) string {
	return makeEscaper.Replace(filepath.ToSlash(p))
}
