package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/kbukum/taskflow"

// Span names.
const (
	SpanBatchExecute = "batch.execute"
	SpanTaskExecute  = "task.execute"
	SpanStepPrefix   = "task.step"
)

// Attribute keys.
const (
	AttrServiceName  = "service.name"
	AttrEnvironment  = "deployment.environment"
	AttrBatchID      = "batch.id"
	AttrBatchSize    = "batch.size"
	AttrStrategy     = "batch.strategy"
	AttrCompleted    = "batch.completed"
	AttrFailed       = "batch.failed"
	AttrTaskID       = "task.id"
	AttrTaskType     = "task.type"
	AttrStep         = "task.step"
	AttrDurationMs   = "duration_ms"
	AttrStatus       = "status"
	AttrErrorMessage = "error.message"
)

// StartSpan starts a span on the global provider.
func StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return otel.Tracer(instrumentationName).Start(ctx, name, opts...)
}

// StepSpanName is the span name used for one blueprint step.
func StepSpanName(step string) string {
	return SpanStepPrefix + "." + step
}

// TaskAttributes describes the task a span belongs to.
func TaskAttributes(id uint64, taskType string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Int64(AttrTaskID, int64(id)),
		attribute.String(AttrTaskType, taskType),
	}
}

// Annotate adds attributes to the span in ctx. Non-recording spans are
// left alone.
func Annotate(ctx context.Context, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	span.SetAttributes(attrs...)
}

// Fail records err on the span in ctx and sets its status to Error.
func Fail(ctx context.Context, err error) {
	if err == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
