package observability

import (
	"context"
	"errors"
	"fmt"
	"time"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/kbukum/taskflow/component"
	"github.com/kbukum/taskflow/validation"
)

// Config configures OTLP export for traces and metrics.
type Config struct {
	// Enabled turns on OTLP export. When false the global no-op providers
	// stay in place and instruments cost nothing.
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
	// Endpoint is the OTLP HTTP endpoint host:port.
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint" validate:"required_if=Enabled true"`
	// Insecure disables TLS towards the collector.
	Insecure bool `yaml:"insecure" mapstructure:"insecure"`
	// SampleRate is the trace sampling rate (0.0 to 1.0).
	SampleRate float64 `yaml:"sample_rate" mapstructure:"sample_rate" validate:"gte=0,lte=1"`
	// Interval is the metric export interval.
	Interval time.Duration `yaml:"interval" mapstructure:"interval" validate:"gte=0"`
}

// DefaultConfig returns telemetry disabled with development defaults for
// the collector.
func DefaultConfig() Config {
	return Config{
		Endpoint:   "localhost:4318",
		Insecure:   true,
		SampleRate: 1.0,
		Interval:   15 * time.Second,
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	return validation.Validate(c)
}

// Telemetry is a lifecycle component owning the tracer and meter providers.
type Telemetry struct {
	config      Config
	serviceName string
	version     string
	environment string

	tp *sdktrace.TracerProvider
	mp *sdkmetric.MeterProvider
}

var _ component.Component = (*Telemetry)(nil)
var _ component.Describable = (*Telemetry)(nil)

// NewTelemetry creates the telemetry component for a service.
func NewTelemetry(cfg Config, serviceName, version, environment string) *Telemetry {
	return &Telemetry{config: cfg, serviceName: serviceName, version: version, environment: environment}
}

// Name returns the component name.
func (t *Telemetry) Name() string { return "telemetry" }

// Start installs the OTLP tracer and meter providers when enabled.
func (t *Telemetry) Start(ctx context.Context) error {
	if !t.config.Enabled {
		return nil
	}

	cfg := ProviderConfig{
		Service:    Service{Name: t.serviceName, Version: t.version, Environment: t.environment},
		Endpoint:   t.config.Endpoint,
		Insecure:   t.config.Insecure,
		SampleRate: t.config.SampleRate,
		Interval:   t.config.Interval,
	}

	tp, err := InitTracer(ctx, cfg)
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	t.tp = tp

	mp, err := InitMeter(ctx, cfg)
	if err != nil {
		_ = tp.Shutdown(ctx)
		t.tp = nil
		return fmt.Errorf("telemetry: %w", err)
	}
	t.mp = mp
	return nil
}

// Stop flushes and shuts down both providers.
func (t *Telemetry) Stop(ctx context.Context) error {
	var errs []error
	if t.mp != nil {
		errs = append(errs, t.mp.Shutdown(ctx))
		t.mp = nil
	}
	if t.tp != nil {
		errs = append(errs, t.tp.Shutdown(ctx))
		t.tp = nil
	}
	return errors.Join(errs...)
}

// Health reports degraded when export is disabled, healthy otherwise.
func (t *Telemetry) Health(_ context.Context) component.Health {
	if !t.config.Enabled {
		return component.Health{Name: t.Name(), Status: component.StatusDegraded, Message: "export disabled"}
	}
	if t.tp == nil || t.mp == nil {
		return component.Health{Name: t.Name(), Status: component.StatusUnhealthy, Message: "not started"}
	}
	return component.Health{Name: t.Name(), Status: component.StatusHealthy}
}

// Describe returns a one-line description for startup logs.
func (t *Telemetry) Describe() component.Description {
	details := "disabled"
	if t.config.Enabled {
		details = fmt.Sprintf("otlp-http %s sample=%.2f", t.config.Endpoint, t.config.SampleRate)
	}
	return component.Description{Name: t.Name(), Type: "telemetry", Details: details}
}
