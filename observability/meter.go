package observability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds the instruments recorded while executing batches. A nil
// *Metrics records nothing.
type Metrics struct {
	tasksTotal        metric.Int64Counter
	taskDuration      metric.Float64Histogram
	tasksActive       metric.Int64UpDownCounter
	stepDuration      metric.Float64Histogram
	batchesTotal      metric.Int64Counter
	batchDuration     metric.Float64Histogram
	batchSize         metric.Int64Histogram
	backpressureTotal metric.Int64Counter
	errorTotal        metric.Int64Counter
}

// instruments collects creation errors so NewMetrics reports all of them.
type instruments struct {
	meter metric.Meter
	errs  []error
}

func (b *instruments) check(name string, err error) {
	if err != nil {
		b.errs = append(b.errs, fmt.Errorf("%s: %w", name, err))
	}
}

func (b *instruments) counter(name, desc string) metric.Int64Counter {
	c, err := b.meter.Int64Counter(name, metric.WithDescription(desc))
	b.check(name, err)
	return c
}

func (b *instruments) gauge(name, desc string) metric.Int64UpDownCounter {
	g, err := b.meter.Int64UpDownCounter(name, metric.WithDescription(desc))
	b.check(name, err)
	return g
}

func (b *instruments) seconds(name, desc string) metric.Float64Histogram {
	h, err := b.meter.Float64Histogram(name, metric.WithDescription(desc), metric.WithUnit("s"))
	b.check(name, err)
	return h
}

func (b *instruments) histogram(name, desc string) metric.Int64Histogram {
	h, err := b.meter.Int64Histogram(name, metric.WithDescription(desc))
	b.check(name, err)
	return h
}

// NewMetrics creates the task and batch instruments on meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	b := &instruments{meter: meter}
	m := &Metrics{
		tasksTotal:        b.counter("task.total", "Executed tasks by final status"),
		taskDuration:      b.seconds("task.duration", "Duration of a task's whole blueprint"),
		tasksActive:       b.gauge("task.active", "Tasks currently executing"),
		stepDuration:      b.seconds("task.step.duration", "Duration of individual blueprint steps"),
		batchesTotal:      b.counter("batch.total", "Batches by execution strategy"),
		batchDuration:     b.seconds("batch.duration", "Duration of whole batches"),
		batchSize:         b.histogram("batch.size", "Input rows per batch"),
		backpressureTotal: b.counter("batch.backpressure.total", "Times a producer blocked on a full result channel"),
		errorTotal:        b.counter("error.total", "Errors by type and component"),
	}
	if err := errors.Join(b.errs...); err != nil {
		return nil, fmt.Errorf("creating instruments: %w", err)
	}
	return m, nil
}

func (m *Metrics) RecordTaskStart(ctx context.Context) {
	if m == nil {
		return
	}
	m.tasksActive.Add(ctx, 1)
}

// RecordTaskEnd decrements active tasks and records the finished task.
func (m *Metrics) RecordTaskEnd(ctx context.Context, taskType, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.tasksActive.Add(ctx, -1)
	m.tasksTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("task_type", taskType),
		attribute.String("status", status),
	))
	m.taskDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("task_type", taskType),
	))
}

// RecordStep records one blueprint step execution.
func (m *Metrics) RecordStep(ctx context.Context, step, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.stepDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("step", step),
		attribute.String("status", status),
	))
}

// RecordBatch records a finished batch.
func (m *Metrics) RecordBatch(ctx context.Context, strategy, status string, size int, duration time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("strategy", strategy),
		attribute.String("status", status),
	)
	m.batchesTotal.Add(ctx, 1, attrs)
	m.batchDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("strategy", strategy),
	))
	m.batchSize.Record(ctx, int64(size), metric.WithAttributes(
		attribute.String("strategy", strategy),
	))
}

// RecordBackpressure counts a producer blocking on a full channel.
func (m *Metrics) RecordBackpressure(ctx context.Context) {
	if m == nil {
		return
	}
	m.backpressureTotal.Add(ctx, 1)
}

// RecordError records an error by type and component.
func (m *Metrics) RecordError(ctx context.Context, errType, component string) {
	if m == nil {
		return
	}
	m.errorTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("type", errType),
		attribute.String("component", component),
	))
}
