package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// BatchOperation holds observability context for one batch execution.
type BatchOperation struct {
	BatchID   string
	Strategy  string
	Size      int
	StartTime time.Time
	Metrics   *Metrics
}

// NewBatchOperation creates a new batch operation.
// If metrics is nil, metric recording is silently skipped.
func NewBatchOperation(batchID, strategy string, size int, metrics *Metrics) *BatchOperation {
	return &BatchOperation{
		BatchID:   batchID,
		Strategy:  strategy,
		Size:      size,
		StartTime: time.Now(),
		Metrics:   metrics,
	}
}

type batchOperationKey struct{}

// WithBatchOperation stores a BatchOperation in the context.
func WithBatchOperation(ctx context.Context, op *BatchOperation) context.Context {
	return context.WithValue(ctx, batchOperationKey{}, op)
}

// BatchOperationFromContext retrieves the BatchOperation from context, or nil.
func BatchOperationFromContext(ctx context.Context) *BatchOperation {
	if op, ok := ctx.Value(batchOperationKey{}).(*BatchOperation); ok {
		return op
	}
	return nil
}

// Start opens the batch span and stores the operation in the returned context.
func (op *BatchOperation) Start(ctx context.Context) (context.Context, trace.Span) {
	ctx, span := StartSpan(ctx, SpanBatchExecute)
	span.SetAttributes(
		attribute.String(AttrBatchID, op.BatchID),
		attribute.String(AttrStrategy, op.Strategy),
		attribute.Int(AttrBatchSize, op.Size),
	)
	return WithBatchOperation(ctx, op), span
}

// End ends the span and records batch metrics.
func (op *BatchOperation) End(ctx context.Context, span trace.Span, completed, failed int, err error) {
	duration := time.Since(op.StartTime)

	status := "ok"
	if err != nil {
		status = "error"
		span.RecordError(err)
		span.SetAttributes(attribute.String(AttrErrorMessage, err.Error()))
		op.Metrics.RecordError(ctx, "batch", "engine")
	}

	span.SetAttributes(
		attribute.String(AttrStatus, status),
		attribute.Int(AttrCompleted, completed),
		attribute.Int(AttrFailed, failed),
		attribute.Int64(AttrDurationMs, duration.Milliseconds()),
	)
	span.End()

	op.Metrics.RecordBatch(ctx, op.Strategy, status, op.Size, duration)
}

// Duration returns the elapsed time since the batch started.
func (op *BatchOperation) Duration() time.Duration {
	return time.Since(op.StartTime)
}
