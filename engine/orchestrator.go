package engine

import (
	"context"
	stderrors "errors"

	"github.com/google/uuid"

	"github.com/kbukum/taskflow/errors"
	"github.com/kbukum/taskflow/logger"
	"github.com/kbukum/taskflow/observability"
	"github.com/kbukum/taskflow/task"
)

// Hooks observe a batch while it runs. Every field is optional.
type Hooks struct {
	// OnStrategy is called once per batch, before any row starts.
	OnStrategy func(s Strategy, n int)
	// OnRecord is called for every raw record, from the collecting loop.
	OnRecord func(rec Record)
	// OnBackpressure is called, possibly concurrently, when a bounded
	// producer blocks on a full channel.
	OnBackpressure func(seq int)
}

// Orchestrator is the entry point for executing batches. It keeps no state
// between calls and is safe for concurrent use.
type Orchestrator struct {
	runner  Runner
	config  Config
	hooks   Hooks
	log     *logger.Logger
	metrics *observability.Metrics
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithConfig replaces the default configuration.
func WithConfig(cfg Config) Option {
	return func(o *Orchestrator) { o.config = cfg }
}

// WithHooks installs observation hooks.
func WithHooks(h Hooks) Option {
	return func(o *Orchestrator) { o.hooks = h }
}

// WithLogger sets the logger used for batch-level messages.
func WithLogger(log *logger.Logger) Option {
	return func(o *Orchestrator) {
		if log != nil {
			o.log = log
		}
	}
}

// WithMetrics records batch metrics on m.
func WithMetrics(m *observability.Metrics) Option {
	return func(o *Orchestrator) { o.metrics = m }
}

// New creates an orchestrator around runner.
func New(runner Runner, opts ...Option) (*Orchestrator, error) {
	o := &Orchestrator{
		runner: runner,
		config: DefaultConfig(),
		log:    logger.Nop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	if err := o.config.Validate(); err != nil {
		return nil, err
	}
	return o, nil
}

// Config returns the effective configuration.
func (o *Orchestrator) Config() Config {
	return o.config
}

// Execute runs every input row and returns one result per distinct task
// id. Task failures are reported inside the FinalResult; the error is
// reserved for batch-level problems such as lost results or cancellation.
func (o *Orchestrator) Execute(ctx context.Context, inputs []task.Input) (*task.FinalResult, error) {
	n := len(inputs)
	strategy := Select(n, o.config.Threshold)
	if o.hooks.OnStrategy != nil {
		o.hooks.OnStrategy(strategy, n)
	}

	batchID := uuid.NewString()
	ctx = logger.ContextWithBatchID(ctx, batchID)
	op := observability.NewBatchOperation(batchID, strategy.String(), n, o.metrics)
	ctx, span := op.Start(ctx)

	log := o.log.WithContext(ctx)
	log.Info("batch started", logger.F{
		logger.FieldStrategy:  strategy.String(),
		logger.FieldBatchSize: n,
	})

	collector := NewCollector(inputs)
	sink := func(rec Record) error {
		if o.hooks.OnRecord != nil {
			o.hooks.OnRecord(rec)
		}
		return collector.Accept(rec)
	}

	err := o.executor(ctx, strategy).Execute(ctx, o.runner, inputs, sink)
	if err == nil && ctx.Err() != nil {
		err = ctx.Err()
	}

	var final *task.FinalResult
	if err == nil {
		final, err = collector.Finalize()
	}
	err = classify(err)

	completed, failed := 0, 0
	if final != nil {
		completed, failed = final.Counts()
	}
	op.End(ctx, span, completed, failed, err)

	fields := logger.F{
		logger.FieldStrategy:  strategy.String(),
		logger.FieldBatchSize: n,
		"received":            collector.Received(),
		"completed":           completed,
		"failed":              failed,
	}.Took(op.Duration())
	if err != nil {
		log.Error("batch failed", fields.Err(err))
		return nil, err
	}
	log.Info("batch finished", fields)
	return final, nil
}

func (o *Orchestrator) executor(ctx context.Context, s Strategy) Executor {
	if s == StrategyStreaming {
		return &StreamingExecutor{MaxInFlight: o.config.MaxInFlight}
	}
	return &BoundedExecutor{
		Capacity: o.config.ChannelCapacity,
		OnBackpressure: func(seq int) {
			o.metrics.RecordBackpressure(ctx)
			if o.hooks.OnBackpressure != nil {
				o.hooks.OnBackpressure(seq)
			}
		},
	}
}

// classify maps executor errors onto batch-level application errors.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.IsAppError(err) {
		return err
	}
	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return errors.Canceled(err)
	}
	return errors.Internal(err)
}
