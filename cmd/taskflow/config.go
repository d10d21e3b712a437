package main

import (
	"fmt"

	"github.com/kbukum/taskflow/blueprint"
	"github.com/kbukum/taskflow/config"
	"github.com/kbukum/taskflow/engine"
	"github.com/kbukum/taskflow/httpclient"
	"github.com/kbukum/taskflow/observability"
	"github.com/kbukum/taskflow/version"
)

const serviceName = "taskflow"

// AppConfig is the full configuration of the taskflow command.
type AppConfig struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Engine    engine.Config        `yaml:"engine" mapstructure:"engine"`
	Blueprint blueprint.Config     `yaml:"blueprint" mapstructure:"blueprint"`
	HTTP      httpclient.Config    `yaml:"http" mapstructure:"http"`
	Telemetry observability.Config `yaml:"telemetry" mapstructure:"telemetry"`
}

func newAppConfig() *AppConfig {
	return &AppConfig{
		ServiceConfig: config.ServiceConfig{Name: serviceName},
		Engine:        engine.DefaultConfig(),
		Blueprint:     blueprint.DefaultConfig(),
		Telemetry:     observability.DefaultConfig(),
	}
}

// ApplyDefaults fills every section's defaults.
func (c *AppConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = serviceName
	}
	if c.Version == "" {
		c.Version = version.Version
	}
	c.ServiceConfig.ApplyDefaults()

	if c.Engine.ChannelCapacity <= 0 {
		c.Engine.ChannelCapacity = engine.DefaultChannelCapacity
	}
	c.Blueprint.ApplyDefaults()

	if c.HTTP.Name == "" {
		c.HTTP.Name = "fetch-client"
	}
	if c.HTTP.Timeout <= 0 {
		c.HTTP.Timeout = c.Blueprint.FetchTimeout
	}
	if c.HTTP.Headers == nil {
		c.HTTP.Headers = map[string]string{}
	}
	if _, ok := c.HTTP.Headers["User-Agent"]; !ok {
		c.HTTP.Headers["User-Agent"] = version.UserAgent(serviceName)
	}
	c.HTTP.ApplyDefaults()
}

// Validate checks every section.
func (c *AppConfig) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Engine.Validate(); err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	if err := c.Blueprint.Validate(); err != nil {
		return fmt.Errorf("blueprint: %w", err)
	}
	if err := c.HTTP.Validate(); err != nil {
		return fmt.Errorf("http: %w", err)
	}
	if err := c.Telemetry.Validate(); err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	return nil
}
