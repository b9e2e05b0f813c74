package config

import "github.com/tacogips/shaderpp/internal/shader/source"

const (
	// DefaultFileName is looked up in the working directory when no
	// configuration file is given explicitly.
	DefaultFileName = ".shaderpp.yaml"
	// EnvFileName is loaded into the process environment when present.
	EnvFileName = ".env"
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Preprocess: PreprocessConfig{
			IgnoredDirectives: []string{},
			Encoding:          source.EncodingUTF8,
			StrictInput:       false,
		},
		Output: OutputConfig{
			CreateDirs: false,
			Color:      true,
			Quiet:      false,
		},
	}
}
