package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/jonathan/pair-overlap/internal/logging"
)

// ServerConfig holds the HTTP server settings, read from the environment.
type ServerConfig struct {
	Port           int      `env:"PORT" envDefault:"4000" validate:"min=1,max=65535"`
	MaxUploadBytes int64    `env:"MAX_UPLOAD_BYTES" envDefault:"10485760" validate:"min=1"`
	UploadDir      string   `env:"UPLOAD_DIR" envDefault:"uploads" validate:"required"`
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
	ReferenceDate  string   `env:"REFERENCE_DATE" validate:"omitempty,datetime=2006-01-02"`
	Logging        logging.Config
}

// LoadServerConfig reads and validates the server configuration from the environment.
func LoadServerConfig() (*ServerConfig, error) {
	var cfg ServerConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field ranges and formats.
func (c *ServerConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", describe(err))
	}
	return nil
}

// Reference returns the fixed reference date, or the zero time when unset.
func (c *ServerConfig) Reference() time.Time {
	//nolint:errcheck // validated on load
	t, _ := ParseDate(c.ReferenceDate)
	return t
}
