package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tacogips/shaderpp/internal/app"
	"github.com/tacogips/shaderpp/internal/build"
	"github.com/tacogips/shaderpp/internal/config"
	"github.com/tacogips/shaderpp/internal/debug"
	"github.com/tacogips/shaderpp/internal/shader/preprocess"
)

// Version information, set by main from build-time variables.
var (
	Version   = build.Version()
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// errUsage signals missing positional arguments; the usage line is already printed.
var errUsage = errors.New("expected 4 arguments")

// newRootCmd builds the shaderpp command writing to the given streams.
func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}
	p := &printer{stdout: stdout, stderr: stderr}

	cmd := &cobra.Command{
		Use:   usage,
		Short: "Expand #include directives in shader sources",
		Long: `shaderpp inlines #include "path" directives in a shader before it reaches
the graphics compiler. Includes resolve against <base-shaders-dir>, nest to
any depth, and are re-read every time they appear.

#version and #define are passed through untouched. Any other #directive is
reported as a warning and left for the shader compiler.

Exit status is 1 on missing arguments, a malformed or unreadable #include,
or a failed write. An unreadable input shader is a no-op with status 0
unless --strict is given.

Examples:
  shaderpp shaders build/shaders main.vert main.vert
  shaderpp --mkdir --depfile build/main.vert.d shaders build/shaders gl/main.vert gl/main.vert`,
		Version:       Version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			debug.SetDebug(opts.debug)
			debug.SetNoColor(opts.noColor)
			if opts.noColor {
				color.NoColor = true
			}
			p.quiet = opts.quiet
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreprocess(cmd, p, opts, args)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetVersionTemplate(versionTemplate())

	flags := cmd.Flags()
	flags.StringVarP(&opts.configPath, FlagConfig, "c", "", DescConfig)
	flags.BoolVar(&opts.strict, FlagStrict, false, DescStrict)
	flags.BoolVar(&opts.mkdir, FlagMkdir, false, DescMkdir)
	flags.StringVar(&opts.depfile, FlagDepfile, "", DescDepfile)
	flags.StringVar(&opts.encoding, FlagEncoding, "", DescEncoding)
	flags.StringArrayVar(&opts.ignore, FlagIgnore, nil, DescIgnore)
	flags.BoolVarP(&opts.verbose, FlagVerbose, "v", false, DescVerbose)
	flags.BoolVar(&opts.noColor, FlagNoColor, false, DescNoColor)
	flags.BoolVarP(&opts.quiet, FlagQuiet, "q", false, DescQuiet)
	flags.BoolVar(&opts.debug, FlagDebug, false, DescDebug)

	return cmd
}

// Execute runs the command line and returns the process exit status.
// This is called by main.main().
func Execute() int {
	return execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr)
}

func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	// --no-color and the config flip the color package global for this run only.
	defer func(noColor bool) { color.NoColor = noColor }(color.NoColor)

	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err != nil && err != errUsage {
		(&printer{stdout: stdout, stderr: stderr}).printError(err)
	}
	return app.ExitCode(err)
}

func runPreprocess(cmd *cobra.Command, p *printer, opts *options, args []string) error {
	if len(args) < 4 {
		fmt.Fprintln(p.stdout, usage)
		return errUsage
	}

	cfg, err := config.Resolve(opts.configPath)
	if err != nil {
		return err
	}
	applyFlags(cmd, opts, cfg)
	if err := config.Validate(cfg); err != nil {
		return err
	}
	if !cfg.Output.Color {
		color.NoColor = true
		debug.SetNoColor(true)
	}
	p.quiet = cfg.Output.Quiet

	runOpts := app.Options{
		BaseDir:           args[0],
		OutputDir:         args[1],
		InputPath:         args[2],
		OutputPath:        args[3],
		Depfile:           opts.depfile,
		StrictInput:       cfg.Preprocess.StrictInput,
		CreateDirs:        cfg.Output.CreateDirs,
		IgnoredDirectives: cfg.Preprocess.IgnoredDirectives,
		Encoding:          cfg.Preprocess.Encoding,
		OnWarning: func(w preprocess.Warning) {
			p.printWarning(w.String())
		},
	}

	outcome, err := app.Run(cmd.Context(), runOpts)
	if err != nil {
		return err
	}

	if outcome.Skipped {
		p.printErrorMsg(fmt.Sprintf("Failed to open file %s: %v", outcome.InputPath, errors.Unwrap(outcome.SkipReason)))
		return nil
	}

	p.printVerbose(opts.verbose, fmt.Sprintf("Processed %s -> %s (%d include(s), %d warning(s))",
		outcome.InputPath, outcome.OutputPath, len(outcome.Includes), len(outcome.Warnings)))
	return nil
}

// applyFlags overrides configuration values with flags given on the command line.
func applyFlags(cmd *cobra.Command, opts *options, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed(FlagStrict) {
		cfg.Preprocess.StrictInput = opts.strict
	}
	if flags.Changed(FlagMkdir) {
		cfg.Output.CreateDirs = opts.mkdir
	}
	if flags.Changed(FlagEncoding) {
		cfg.Preprocess.Encoding = opts.encoding
	}
	if flags.Changed(FlagIgnore) {
		cfg.Preprocess.IgnoredDirectives = append(cfg.Preprocess.IgnoredDirectives, opts.ignore...)
	}
	if flags.Changed(FlagNoColor) && opts.noColor {
		cfg.Output.Color = false
	}
	if flags.Changed(FlagQuiet) {
		cfg.Output.Quiet = opts.quiet
	}
}
