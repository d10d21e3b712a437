package blueprint

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/taskflow/logger"
	"github.com/kbukum/taskflow/observability"
	"github.com/kbukum/taskflow/task"
)

// Blueprint runs an ordered list of stages for one task at a time.
// It holds no per-task state and is safe for concurrent use.
type Blueprint struct {
	stages  []Stage
	log     *logger.Logger
	metrics *observability.Metrics
}

// New builds a blueprint from stages, run in the given order.
func New(stages ...Stage) *Blueprint {
	return &Blueprint{
		stages: append([]Stage(nil), stages...),
		log:    logger.Nop(),
	}
}

// Default builds the standard fetch → delay → emit blueprint.
func Default(cfg Config, fetcher Fetcher, notifier Notifier) *Blueprint {
	return New(
		Stage{Step: FetchStep(fetcher, cfg.FetchTimeout), Phase: PhaseFetching},
		Stage{Step: DelayStep(cfg.Delay), Phase: PhaseDelaying},
		Stage{Step: EmitStep(notifier), Phase: PhaseEmitting, BestEffort: true},
	)
}

// Instrument returns a copy whose steps are traced, measured and logged.
// A nil metrics disables measurement.
func (b *Blueprint) Instrument(log *logger.Logger, metrics *observability.Metrics) *Blueprint {
	if log == nil {
		log = logger.Nop()
	}
	stages := make([]Stage, len(b.stages))
	for i, st := range b.stages {
		step := WithLogging(st.Step, log)
		if metrics != nil {
			step = WithMetrics(step, metrics)
		}
		st.Step = WithTracing(step)
		stages[i] = st
	}
	return &Blueprint{stages: stages, log: log, metrics: metrics}
}

// Stages returns the stages in execution order.
func (b *Blueprint) Stages() []Stage {
	return append([]Stage(nil), b.stages...)
}

// Execute runs every stage for in and returns its single result.
func (b *Blueprint) Execute(ctx context.Context, in task.Input) task.Result {
	res, _ := b.run(ctx, in)
	return res
}

func (b *Blueprint) run(ctx context.Context, in task.Input) (res task.Result, state *State) {
	state = NewState(in)
	start := time.Now()

	ctx, span := observability.StartSpan(ctx, observability.SpanTaskExecute,
		trace.WithAttributes(observability.TaskAttributes(in.TaskID, in.TaskType)...))
	b.metrics.RecordTaskStart(ctx)

	defer func() {
		if r := recover(); r != nil {
			state.Phase = PhaseFailed
			res = task.Failed(in.TaskID, fmt.Sprintf("Internal error: %v", r))
		}
		if !res.Succeeded() {
			observability.Fail(ctx, errors.New(res.ErrorInfo))
		}
		observability.Annotate(ctx, attribute.String(observability.AttrStatus, string(res.Status)))
		span.End()
		b.metrics.RecordTaskEnd(ctx, in.TaskType, string(res.Status), time.Since(start))
	}()

	log := b.log.WithTask(in.TaskID)
	for _, st := range b.stages {
		state.enter(st.Phase, st.Step.Name())
		err := runStep(ctx, st.Step, state)
		if err == nil {
			continue
		}
		if st.BestEffort {
			state.Warnings = append(state.Warnings, fmt.Sprintf("%s: %v", st.Step.Name(), err))
			log.Warn("best-effort step failed", map[string]interface{}{
				logger.FieldStep:  st.Step.Name(),
				logger.FieldError: err.Error(),
			})
			continue
		}
		state.Phase = PhaseFailed
		reason := Reason(err)
		log.Debug("task failed", map[string]interface{}{
			logger.FieldStep:   st.Step.Name(),
			logger.FieldStatus: reason,
		})
		return task.Failed(in.TaskID, reason), state
	}

	state.Phase = PhaseCompleted
	return task.Completed(in.TaskID), state
}
