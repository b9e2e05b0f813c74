package config

import (
	"fmt"
	"regexp"

	"github.com/tacogips/shaderpp/internal/shader/source"
)

var directiveNamePattern = regexp.MustCompile(`^[a-z]+$`)

// Validate validates the configuration.
func Validate(config *Config) error {
	if config == nil {
		return NewConfigError(ConfigValidationFailed, "", "configuration cannot be nil")
	}

	if _, err := source.ForName(config.Preprocess.Encoding); err != nil {
		return NewConfigErrorWithField(ConfigValidationFailed, "", "preprocess.encoding", err.Error())
	}

	for i, name := range config.Preprocess.IgnoredDirectives {
		field := fmt.Sprintf("preprocess.ignored_directives[%d]", i)
		if !directiveNamePattern.MatchString(name) {
			return NewConfigErrorWithField(ConfigValidationFailed, "", field,
				fmt.Sprintf("directive name %q must be lowercase letters only, without '#'", name))
		}
		if name == "include" {
			return NewConfigErrorWithField(ConfigValidationFailed, "", field,
				"#include cannot be ignored")
		}
	}

	return nil
}
