package blueprint

import (
	"time"

	"github.com/kbukum/taskflow/validation"
)

// Defaults of the standard blueprint.
const (
	DefaultFetchURL     = "https://httpbin.org/get"
	DefaultFetchTimeout = 10 * time.Second
	DefaultDelay        = 5 * time.Second
)

// Config tunes the standard blueprint.
type Config struct {
	// FetchURL is the endpoint fetched by fetch_data.
	FetchURL string `yaml:"fetch_url" mapstructure:"fetch_url" validate:"required,url"`
	// FetchTimeout bounds fetch_data.
	FetchTimeout time.Duration `yaml:"fetch_timeout" mapstructure:"fetch_timeout" validate:"gt=0"`
	// Delay is the wait performed by long_delay.
	Delay time.Duration `yaml:"delay" mapstructure:"delay" validate:"gte=0"`
}

// DefaultConfig returns the standard settings.
func DefaultConfig() Config {
	return Config{
		FetchURL:     DefaultFetchURL,
		FetchTimeout: DefaultFetchTimeout,
		Delay:        DefaultDelay,
	}
}

// ApplyDefaults fills zero-value fields. A zero Delay is kept.
func (c *Config) ApplyDefaults() {
	if c.FetchURL == "" {
		c.FetchURL = DefaultFetchURL
	}
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = DefaultFetchTimeout
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	return validation.Validate(c)
}
