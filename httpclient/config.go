package httpclient

import (
	"time"

	"github.com/kbukum/taskflow/resilience"
	"github.com/kbukum/taskflow/validation"
)

const (
	defaultTimeout      = 10 * time.Second
	defaultMaxBodyBytes = 1 << 20
	defaultName         = "http"
)

// Config configures the HTTP client.
type Config struct {
	// Name identifies the client in logs and health reports.
	Name string `yaml:"name" mapstructure:"name"`

	// BaseURL is the base URL prepended to all request paths.
	BaseURL string `yaml:"base_url" mapstructure:"base_url" validate:"omitempty,url"`

	// Timeout is the overall request timeout. Defaults to 10s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout" validate:"gt=0"`

	// MaxBodyBytes caps how much of a response body is read. Defaults to 1 MiB.
	MaxBodyBytes int64 `yaml:"max_body_bytes" mapstructure:"max_body_bytes" validate:"gt=0"`

	// Headers are default headers applied to all requests.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// RateLimiter configures client-side rate limiting. A zero Rate disables it.
	RateLimiter resilience.RateLimiterConfig `yaml:"rate_limiter" mapstructure:"rate_limiter"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = defaultName
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = defaultMaxBodyBytes
	}
	if c.RateLimiter.Name == "" {
		c.RateLimiter.Name = c.Name
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	return validation.Validate(c)
}
