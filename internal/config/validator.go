package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/spachava753/arthas-copy/internal/arthas"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration file: %w", err)
	}

	if _, err := parseDuration(c.LanguageServer.RequestTimeout); err != nil {
		return fmt.Errorf("languageServer.requestTimeout: %w", err)
	}
	if _, err := parseDuration(c.LanguageServer.DialTimeout); err != nil {
		return fmt.Errorf("languageServer.dialTimeout: %w", err)
	}
	if _, err := arthas.NewFormatter(c.Templates); err != nil {
		return fmt.Errorf("templates: %w", err)
	}
	return nil
}
