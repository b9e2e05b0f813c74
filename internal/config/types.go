package config

// Config represents the shaderpp configuration.
type Config struct {
	// Preprocess configures directive expansion.
	Preprocess PreprocessConfig `yaml:"preprocess"`
	// Output configuration for files and terminal display.
	Output OutputConfig `yaml:"output"`
}

// PreprocessConfig represents expansion settings.
type PreprocessConfig struct {
	// IgnoredDirectives are extra directive names passed through without a
	// warning, on top of #version and #define.
	IgnoredDirectives []string `yaml:"ignored_directives"`
	// Encoding is "utf-8" (strict) or "auto" (honor UTF-8/UTF-16 BOM).
	Encoding string `yaml:"encoding"`
	// StrictInput makes an unreadable input shader a failure instead of a no-op.
	StrictInput bool `yaml:"strict_input"`
}

// OutputConfig represents output and display settings.
type OutputConfig struct {
	// CreateDirs creates missing parent directories of output files.
	CreateDirs bool `yaml:"create_dirs"`
	// Color enables colored terminal output.
	Color bool `yaml:"color"`
	// Quiet suppresses warnings and informational output.
	Quiet bool `yaml:"quiet"`
}
