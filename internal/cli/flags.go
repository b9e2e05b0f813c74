package cli

// Common flag names and descriptions
const (
	// Flag names
	FlagConfig   = "config"
	FlagStrict   = "strict"
	FlagMkdir    = "mkdir"
	FlagDepfile  = "depfile"
	FlagEncoding = "encoding"
	FlagIgnore   = "ignore"
	FlagVerbose  = "verbose"
	FlagNoColor  = "no-color"
	FlagQuiet    = "quiet"
	FlagDebug    = "debug"

	// Flag descriptions
	DescConfig   = "Path to config file (default: ./.shaderpp.yaml if present)"
	DescStrict   = "Exit with status 1 when the input shader cannot be read"
	DescMkdir    = "Create missing parent directories of output files"
	DescDepfile  = "Write a Make-style dependency file listing every included shader"
	DescEncoding = `Source encoding: "utf-8" (strict) or "auto" (honor UTF-8/UTF-16 BOM)`
	DescIgnore   = "Additional directive to pass through without a warning (repeatable)"
	DescVerbose  = "Verbose output"
	DescNoColor  = "Disable colored output"
	DescQuiet    = "Suppress warnings and informational output"
	DescDebug    = "Enable debug logging"
)

// usage is printed when positional arguments are missing.
const usage = "shaderpp <base-shaders-dir> <processed-shaders-dir> <shader-to-process-relative-path> <processed-shader-output-relative-path>"

// options holds flag values for one command invocation.
type options struct {
	configPath string
	strict     bool
	mkdir      bool
	depfile    string
	encoding   string
	ignore     []string
	verbose    bool
	noColor    bool
	quiet      bool
	debug      bool
}
