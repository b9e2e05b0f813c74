package config

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"

	"github.com/tacogips/shaderpp/internal/debug"
)

// Environment variables that override file settings.
const (
	EnvStrictInput       = "SHADERPP_STRICT_INPUT"
	EnvEncoding          = "SHADERPP_ENCODING"
	EnvCreateDirs        = "SHADERPP_CREATE_DIRS"
	EnvIgnoredDirectives = "SHADERPP_IGNORED_DIRECTIVES"
	EnvNoColor           = "NO_COLOR"
)

// LookupFunc reads an environment variable.
type LookupFunc func(key string) (string, bool)

// Loader defines the interface for loading configuration files.
type Loader interface {
	// Load loads configuration from the specified file path.
	Load(path string) (*Config, error)
	// LoadOrDefault loads configuration or returns defaults if file doesn't exist.
	LoadOrDefault(path string) (*Config, error)
	// Validate validates the configuration.
	Validate(config *Config) error
}

// FileLoader implements the Loader interface for YAML configuration files.
type FileLoader struct{}

// NewLoader creates a new FileLoader instance.
func NewLoader() Loader {
	return &FileLoader{}
}

// Load loads configuration from the specified file path.
// Keys missing from the file keep their default values; unknown keys are rejected.
func (l *FileLoader) Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, NewConfigErrorWithCause(ConfigNotFound, path, "configuration file not found", err)
		}
		return nil, NewConfigErrorWithCause(ConfigInvalid, path, "failed to read configuration file", err)
	}

	cfg := DefaultConfig()
	if err := yaml.UnmarshalWithOptions(data, cfg, yaml.Strict()); err != nil {
		return nil, NewConfigErrorWithCause(ConfigInvalid, path, "invalid YAML", err)
	}

	if err := l.Validate(cfg); err != nil {
		if cfgErr, ok := err.(*ConfigError); ok {
			cfgErr.File = path
		}
		return nil, err
	}

	debug.Debug("[config] Loaded configuration from %s", path)
	return cfg, nil
}

// LoadOrDefault loads configuration or returns defaults if file doesn't exist.
func (l *FileLoader) LoadOrDefault(path string) (*Config, error) {
	cfg, err := l.Load(path)
	if err != nil {
		if cfgErr, ok := err.(*ConfigError); ok && cfgErr.Type == ConfigNotFound {
			debug.Debug("[config] %s not found, using defaults", path)
			return DefaultConfig(), nil
		}
		return nil, err
	}
	return cfg, nil
}

// Validate validates the configuration.
func (l *FileLoader) Validate(config *Config) error {
	return Validate(config)
}

// Resolve builds the effective configuration: defaults, then the config
// file, then the .env file and process environment.
// An explicit path must exist; otherwise DefaultFileName is optional.
func Resolve(explicitPath string) (*Config, error) {
	loader := NewLoader()

	var (
		cfg *Config
		err error
	)
	if explicitPath != "" {
		cfg, err = loader.Load(explicitPath)
	} else {
		cfg, err = loader.LoadOrDefault(DefaultFileName)
	}
	if err != nil {
		return nil, err
	}

	if err := LoadEnvFile(EnvFileName); err != nil {
		return nil, err
	}
	if err := ApplyEnv(cfg, os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadEnvFile loads path into the process environment if it exists.
// Variables already set in the environment win.
func LoadEnvFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return NewConfigErrorWithCause(ConfigInvalid, path, "failed to load env file", err)
	}
	debug.Debug("[config] Loaded environment from %s", path)
	return nil
}

// ApplyEnv overrides cfg with SHADERPP_* variables and NO_COLOR.
func ApplyEnv(cfg *Config, lookup LookupFunc) error {
	if v, ok := lookup(EnvStrictInput); ok {
		b, err := parseBool(EnvStrictInput, v)
		if err != nil {
			return err
		}
		cfg.Preprocess.StrictInput = b
	}
	if v, ok := lookup(EnvCreateDirs); ok {
		b, err := parseBool(EnvCreateDirs, v)
		if err != nil {
			return err
		}
		cfg.Output.CreateDirs = b
	}
	if v, ok := lookup(EnvEncoding); ok && v != "" {
		cfg.Preprocess.Encoding = v
	}
	if v, ok := lookup(EnvIgnoredDirectives); ok {
		cfg.Preprocess.IgnoredDirectives = splitList(v)
	}
	if v, ok := lookup(EnvNoColor); ok && v != "" {
		cfg.Output.Color = false
	}
	return Validate(cfg)
}

func parseBool(key, value string) (bool, error) {
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return false, NewConfigErrorWithField(ConfigValidationFailed, "environment", key, "expected a boolean, got "+strconv.Quote(value))
	}
	return b, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
