// Package config provides configuration loading and validation for the CLI and the server.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
)

// DateLayout is the layout of reference dates in flags, config files and requests.
const DateLayout = "2006-01-02"

// Output formats for the compute command.
const (
	FormatJSON  = "json"
	FormatTable = "table"
	FormatRows  = "rows"
)

var validate = validator.New()

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	File           string `json:"file,omitempty"`                                                        // Assignment file to analyze
	Format         string `json:"format,omitempty" validate:"omitempty,oneof=json table rows"`          // Output format
	ReferenceDate  string `json:"reference_date,omitempty" validate:"omitempty,datetime=2006-01-02"`   // Date used for NULL end dates
	ValidateOutput bool   `json:"validate_output,omitempty"`                                             // Check output against the result schema
	Verbose        bool   `json:"verbose,omitempty"`                                                     // Log run details
	LogLevel       string `json:"log_level,omitempty" validate:"omitempty,oneof=debug info warn error"` // Log level for verbose mode
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Required fields are checked by the command after flags are merged.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", describe(err))
	}

	if c.File != "" && c.File != "-" {
		if _, err := os.Stat(c.File); os.IsNotExist(err) {
			return fmt.Errorf("config error: input file not found: %s", c.File)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// Bools cannot distinguish unset from false, so they are OR-ed.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.File == "" {
		result.File = defaults.File
	}
	if result.Format == "" {
		result.Format = defaults.Format
	}
	if result.Format == "" {
		result.Format = FormatJSON
	}
	if result.ReferenceDate == "" {
		result.ReferenceDate = defaults.ReferenceDate
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	result.ValidateOutput = result.ValidateOutput || defaults.ValidateOutput
	result.Verbose = result.Verbose || defaults.Verbose

	return result
}

// ParseDate parses a yyyy-MM-dd reference date. An empty string yields the zero time.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid reference date %q, expected yyyy-MM-dd: %w", s, err)
	}
	return t, nil
}

// describe flattens validator errors into one readable error.
func describe(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Errorf("'%s' failed '%s' (got %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return errors.Join(msgs...)
}
