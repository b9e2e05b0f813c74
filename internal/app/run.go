package app

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/tacogips/shaderpp/internal/debug"
	"github.com/tacogips/shaderpp/internal/shader/output"
	"github.com/tacogips/shaderpp/internal/shader/preprocess"
	"github.com/tacogips/shaderpp/internal/shader/source"
)

// Options contains options for processing one shader.
type Options struct {
	// BaseDir is the directory the input and every #include resolve against.
	BaseDir string
	// OutputDir is the directory the processed shader is written under.
	OutputDir string
	// InputPath is the shader to process, relative to BaseDir.
	InputPath string
	// OutputPath is the processed shader, relative to OutputDir.
	OutputPath string
	// Depfile, when set, receives a Make-style rule listing the input and its includes.
	Depfile string
	// StrictInput fails the run when the input cannot be read.
	StrictInput bool
	// CreateDirs creates missing parent directories of output files.
	CreateDirs bool
	// IgnoredDirectives are extra directive names passed through silently.
	IgnoredDirectives []string
	// Encoding selects the source decoder ("utf-8" or "auto").
	Encoding string
	// OnWarning is called for every unsupported directive.
	OnWarning func(preprocess.Warning)
}

// Outcome describes a finished run.
type Outcome struct {
	// InputPath is the resolved input file.
	InputPath string
	// OutputPath is the resolved output file.
	OutputPath string
	// Skipped is true when the input could not be read and the run was a no-op.
	Skipped bool
	// SkipReason holds the read error for a skipped run.
	SkipReason error
	// Includes lists every spliced file in order.
	Includes []string
	// Warnings lists every unsupported directive.
	Warnings []preprocess.Warning
}

// Run expands the input shader and writes the result.
// Nothing is written unless expansion succeeds.
func Run(ctx context.Context, opts Options) (*Outcome, error) {
	debug.DebugSection("[app] Run workflow start")
	debug.DebugValue("[app] BaseDir", opts.BaseDir)
	debug.DebugValue("[app] OutputDir", opts.OutputDir)
	debug.DebugValue("[app] InputPath", opts.InputPath)
	debug.DebugValue("[app] OutputPath", opts.OutputPath)

	if err := validateOptions(opts); err != nil {
		return nil, NewValidationError("invalid options", err)
	}

	decoder, err := source.ForName(opts.Encoding)
	if err != nil {
		return nil, NewValidationError("invalid options", err)
	}

	outcome := &Outcome{
		InputPath:  filepath.Join(opts.BaseDir, opts.InputPath),
		OutputPath: filepath.Join(opts.OutputDir, opts.OutputPath),
	}

	expander := preprocess.New(opts.BaseDir,
		preprocess.WithDecoder(decoder),
		preprocess.WithIgnoredDirectives(opts.IgnoredDirectives...),
		preprocess.WithWarningHandler(opts.OnWarning),
	)

	result, err := expander.ExpandFile(ctx, opts.InputPath)
	if err != nil {
		if errors.Is(err, preprocess.ErrSourceRead) {
			if opts.StrictInput {
				return nil, NewInputOpenError("input shader unavailable", err)
			}
			debug.Debug("[app] Input unreadable, skipping: %v", err)
			outcome.Skipped = true
			outcome.SkipReason = err
			return outcome, nil
		}
		return nil, NewExpandError("expansion failed", err)
	}
	outcome.Includes = result.Includes
	outcome.Warnings = result.Warnings

	writer := output.NewFileWriter(opts.CreateDirs)

	// The depfile goes first so a depfile failure never leaves a fresh
	// shader behind.
	if opts.Depfile != "" {
		deps := append([]string{outcome.InputPath}, result.Includes...)
		if err := writer.WriteDepfile(opts.Depfile, outcome.OutputPath, deps); err != nil {
			return nil, NewOutputWriteError("write failed", err)
		}
	}

	if err := writer.WriteFile(outcome.OutputPath, []byte(result.Text)); err != nil {
		return nil, NewOutputWriteError("write failed", err)
	}

	debug.Debug("[app] Run complete: %s -> %s", outcome.InputPath, outcome.OutputPath)
	return outcome, nil
}

func validateOptions(opts Options) error {
	switch {
	case opts.InputPath == "":
		return errors.New("shader to process is required")
	case opts.OutputPath == "":
		return errors.New("processed shader path is required")
	}
	return nil
}
