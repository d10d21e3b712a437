// Package observability provides OpenTelemetry tracing and metrics for
// batch execution.
//
// Both providers export over OTLP HTTP and share one ProviderConfig:
//
//	cfg := observability.ProviderConfig{Service: svc, Endpoint: "localhost:4318"}
//	tp, err := observability.InitTracer(ctx, cfg)
//	mp, err := observability.InitMeter(ctx, cfg)
//
// Spans are started on the global provider and annotated in place:
//
//	ctx, span := observability.StartSpan(ctx, observability.SpanTaskExecute)
//	defer span.End()
//	observability.Fail(ctx, err)
//
// A nil *Metrics is valid and records nothing, so callers never need to
// guard instrument calls. Telemetry wraps both providers as a component
// so the process can start and flush them with the rest of its lifecycle.
package observability
