package engine

import "github.com/kbukum/taskflow/validation"

// Config tunes strategy selection and executor limits.
type Config struct {
	// Threshold is the largest batch run with the bounded strategy.
	Threshold int `yaml:"threshold" mapstructure:"threshold" validate:"gte=0"`
	// ChannelCapacity is the bounded executor's channel capacity.
	ChannelCapacity int `yaml:"channel_capacity" mapstructure:"channel_capacity" validate:"gt=0"`
	// MaxInFlight caps the streaming executor's pool. 0 means uncapped.
	MaxInFlight int `yaml:"max_in_flight" mapstructure:"max_in_flight" validate:"gte=0"`
}

// DefaultConfig returns the standard limits.
func DefaultConfig() Config {
	return Config{
		Threshold:       DefaultThreshold,
		ChannelCapacity: DefaultChannelCapacity,
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	return validation.Validate(c)
}
