package ratelimit

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Exact path, or a prefix when it ends with "/"
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// EnvConfig is the RATE_LIMIT_* environment as read by LoadConfig.
type EnvConfig struct {
	Enabled         bool          `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	DefaultLimit    int           `env:"RATE_LIMIT_DEFAULT_LIMIT" envDefault:"1000"`
	DefaultWindow   time.Duration `env:"RATE_LIMIT_DEFAULT_WINDOW" envDefault:"1m"`
	CleanupInterval time.Duration `env:"RATE_LIMIT_CLEANUP_INTERVAL" envDefault:"5m"`
	Whitelist       []string      `env:"RATE_LIMIT_WHITELIST" envSeparator:","`
	Blacklist       []string      `env:"RATE_LIMIT_BLACKLIST" envSeparator:","`
	UploadLimit     int           `env:"RATE_LIMIT_UPLOAD_LIMIT" envDefault:"60"`
	UploadBurst     int           `env:"RATE_LIMIT_UPLOAD_BURST" envDefault:"10"`
}

// LoadConfig loads rate limiting configuration from environment variables.
func LoadConfig() (*Config, error) {
	var e EnvConfig
	if err := env.Parse(&e); err != nil {
		return nil, fmt.Errorf("failed to parse rate limit environment: %w", err)
	}
	return e.Config(), nil
}

// Config converts the environment settings into limiter configuration.
func (e EnvConfig) Config() *Config {
	if !e.Enabled {
		return &Config{Enabled: false}
	}
	return &Config{
		Enabled:         true,
		DefaultLimit:    e.DefaultLimit,
		DefaultWindow:   e.DefaultWindow,
		CleanupInterval: e.CleanupInterval,
		Whitelist:       toSet(e.Whitelist),
		Blacklist:       toSet(e.Blacklist),
		EndpointConfigs: DefaultEndpointConfigs(e.UploadLimit, e.UploadBurst),
	}
}

// DefaultEndpointConfigs returns the endpoint-specific configurations.
// Health and metrics are never limited; see MatchEndpoint.
func DefaultEndpointConfigs(uploadLimit, uploadBurst int) []EndpointConfig {
	return []EndpointConfig{
		// Uploads parse a whole file per request
		{Path: "/api/upload", Method: "POST", Limit: uploadLimit, Window: time.Minute, Burst: uploadBurst},
	}
}

// toSet builds a lookup of client addresses, ignoring blanks around separators.
func toSet(list []string) map[string]bool {
	result := make(map[string]bool, len(list))
	for _, ip := range list {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
