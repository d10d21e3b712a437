package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"

	"github.com/kbukum/taskflow/logger"
)

// Service identifies the process in exported telemetry.
type Service struct {
	Name        string
	Version     string
	Environment string
}

// ProviderConfig is what InitTracer and InitMeter need to reach an OTLP
// collector over HTTP.
type ProviderConfig struct {
	Service Service
	// Endpoint is host:port of the collector, e.g. "localhost:4318".
	Endpoint string
	Insecure bool
	// SampleRate applies to traces only.
	SampleRate float64
	// Interval applies to metrics only. Zero keeps the SDK default.
	Interval time.Duration
}

// InitTracer installs a batching OTLP tracer provider and the W3C
// propagators globally. Callers own the returned provider's shutdown.
func InitTracer(ctx context.Context, cfg ProviderConfig) (*sdktrace.TracerProvider, error) {
	var opts []otlptracehttp.Option
	opts = append(opts, otlptracehttp.WithEndpoint(cfg.Endpoint))
	if cfg.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("trace exporter: %w", err)
	}

	res, err := serviceResource(ctx, cfg.Service)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(samplerFor(cfg.SampleRate)),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	logger.Debug("tracing enabled", logger.Fields(
		"endpoint", cfg.Endpoint,
		"sample_rate", cfg.SampleRate,
	))
	return tp, nil
}

// InitMeter installs a periodic OTLP meter provider globally. Shutting the
// provider down flushes the last interval.
func InitMeter(ctx context.Context, cfg ProviderConfig) (*sdkmetric.MeterProvider, error) {
	var opts []otlpmetrichttp.Option
	opts = append(opts, otlpmetrichttp.WithEndpoint(cfg.Endpoint))
	if cfg.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}
	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("metric exporter: %w", err)
	}

	res, err := serviceResource(ctx, cfg.Service)
	if err != nil {
		return nil, err
	}

	var readerOpts []sdkmetric.PeriodicReaderOption
	if cfg.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(cfg.Interval))
	}
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)

	logger.Debug("metrics enabled", logger.Fields(
		"endpoint", cfg.Endpoint,
		"interval", cfg.Interval.String(),
	))
	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

func samplerFor(rate float64) sdktrace.Sampler {
	if rate >= 1 {
		return sdktrace.AlwaysSample()
	}
	if rate <= 0 {
		return sdktrace.NeverSample()
	}
	return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(rate))
}

// serviceResource carries no schema URL so it merges with the SDK detector
// whatever semconv version that uses.
func serviceResource(ctx context.Context, svc Service) (*resource.Resource, error) {
	res, err := resource.New(ctx,
		resource.WithTelemetrySDK(),
		resource.WithAttributes(
			semconv.ServiceName(svc.Name),
			semconv.ServiceVersion(svc.Version),
			attribute.String(AttrEnvironment, svc.Environment),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("service resource: %w", err)
	}
	return res, nil
}
