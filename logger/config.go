package logger

import (
	"fmt"
	"slices"
)

var (
	validLevels  = []string{"trace", "debug", "info", "warn", "error", "fatal", "disabled"}
	validFormats = []string{FormatJSON, FormatConsole, FormatPretty}
	validOutputs = []string{"stdout", "stderr"}
)

// Config contains logging configuration.
type Config struct {
	Level       string `yaml:"level" mapstructure:"level"`
	Format      string `yaml:"format" mapstructure:"format"`
	Output      string `yaml:"output" mapstructure:"output"`
	NoColor     bool   `yaml:"no_color" mapstructure:"no_color"`
	Timestamp   bool   `yaml:"timestamp" mapstructure:"timestamp"`
	Caller      bool   `yaml:"caller" mapstructure:"caller"`
	ServiceName string `yaml:"service_name" mapstructure:"service_name"`
}

// ApplyDefaults fills empty settings. Output defaults to stderr so stdout
// stays free for batch results.
func (c *Config) ApplyDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = FormatConsole
	}
	if c.Output == "" {
		c.Output = "stderr"
	}
	c.Timestamp = true
}

// Validate rejects unknown levels, formats and outputs.
func (c *Config) Validate() error {
	for _, check := range []struct {
		key     string
		value   string
		allowed []string
	}{
		{"logging.level", c.Level, validLevels},
		{"logging.format", c.Format, validFormats},
		{"logging.output", c.Output, validOutputs},
	} {
		if !slices.Contains(check.allowed, check.value) {
			return fmt.Errorf("%s must be one of %v (got: %s)", check.key, check.allowed, check.value)
		}
	}
	return nil
}
