package blueprint

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/taskflow/logger"
	"github.com/kbukum/taskflow/observability"
)

// WithTracing wraps a Step with span creation.
// Each execution creates a span named "task.step.{stepName}".
func WithTracing(step Step) Step {
	return &tracingStep{inner: step}
}

type tracingStep struct {
	inner Step
}

func (s *tracingStep) Name() string { return s.inner.Name() }

func (s *tracingStep) Run(ctx context.Context, state *State) error {
	ctx, span := observability.StartSpan(ctx, observability.StepSpanName(s.inner.Name()),
		trace.WithAttributes(
			attribute.String(observability.AttrStep, s.inner.Name()),
			attribute.Int64(observability.AttrTaskID, int64(state.Input.TaskID)),
		))
	defer span.End()

	err := s.inner.Run(ctx, state)
	observability.Fail(ctx, err)
	return err
}

// WithMetrics wraps a Step with duration recording.
func WithMetrics(step Step, metrics *observability.Metrics) Step {
	return &metricsStep{inner: step, metrics: metrics}
}

type metricsStep struct {
	inner   Step
	metrics *observability.Metrics
}

func (s *metricsStep) Name() string { return s.inner.Name() }

func (s *metricsStep) Run(ctx context.Context, state *State) error {
	start := time.Now()
	err := s.inner.Run(ctx, state)

	status := "ok"
	if err != nil {
		status = "error"
		s.metrics.RecordError(ctx, "step", s.inner.Name())
	}
	s.metrics.RecordStep(ctx, s.inner.Name(), status, time.Since(start))
	return err
}

// WithLogging wraps a Step with execution logging at debug level.
func WithLogging(step Step, log *logger.Logger) Step {
	return &loggingStep{inner: step, log: log}
}

type loggingStep struct {
	inner Step
	log   *logger.Logger
}

func (s *loggingStep) Name() string { return s.inner.Name() }

func (s *loggingStep) Run(ctx context.Context, state *State) error {
	start := time.Now()
	err := s.inner.Run(ctx, state)

	fields := logger.F{
		logger.FieldTaskID: state.Input.TaskID,
		logger.FieldStep:   s.inner.Name(),
	}.Took(time.Since(start))

	if err != nil {
		s.log.Debug("step failed", fields.Err(err))
	} else {
		s.log.Debug("step completed", fields)
	}
	return err
}
