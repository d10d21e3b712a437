package engine

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/kbukum/taskflow/pipeline"
	"github.com/kbukum/taskflow/task"
)

// Executor runs every input row through runner and hands each record to
// sink exactly once.
type Executor interface {
	Strategy() Strategy
	Execute(ctx context.Context, runner Runner, inputs []task.Input, sink Sink) error
}

// BoundedExecutor launches one goroutine per row. Finished rows are sent
// on a channel of fixed capacity; when it is full the producer blocks
// until the collecting loop catches up.
type BoundedExecutor struct {
	// Capacity of the hand-off channel. Values <= 0 use DefaultChannelCapacity.
	Capacity int
	// OnBackpressure is called, possibly concurrently, when a producer
	// finds the channel full and has to wait.
	OnBackpressure func(seq int)
}

var _ Executor = (*BoundedExecutor)(nil)

// Strategy reports StrategyBounded.
func (e *BoundedExecutor) Strategy() Strategy { return StrategyBounded }

// Execute runs the batch. If sink fails the remaining records are still
// drained so no producer is left blocked, and the first sink error is
// returned.
func (e *BoundedExecutor) Execute(ctx context.Context, runner Runner, inputs []task.Input, sink Sink) error {
	capacity := e.Capacity
	if capacity <= 0 {
		capacity = DefaultChannelCapacity
	}
	ch := make(chan Record, capacity)

	var g errgroup.Group
	for seq, in := range inputs {
		g.Go(func() error {
			e.send(ch, runRow(ctx, runner, seq, in))
			return nil
		})
	}
	go func() {
		_ = g.Wait()
		close(ch)
	}()

	var sinkErr error
	for rec := range ch {
		if sinkErr != nil {
			continue
		}
		sinkErr = sink(rec)
	}
	return sinkErr
}

func (e *BoundedExecutor) send(ch chan<- Record, rec Record) {
	select {
	case ch <- rec:
		return
	default:
	}
	if e.OnBackpressure != nil {
		e.OnBackpressure(rec.Seq)
	}
	ch <- rec
}

// StreamingExecutor submits every row to an in-flight pool and drains
// results in completion order.
type StreamingExecutor struct {
	// MaxInFlight caps concurrently running rows. 0 means one slot per row.
	MaxInFlight int
}

var _ Executor = (*StreamingExecutor)(nil)

// Strategy reports StrategyStreaming.
func (e *StreamingExecutor) Strategy() Strategy { return StrategyStreaming }

type job struct {
	seq int
	in  task.Input
}

// Execute runs the batch. A sink error or context cancellation stops the
// pool and is returned.
func (e *StreamingExecutor) Execute(ctx context.Context, runner Runner, inputs []task.Input, sink Sink) error {
	if len(inputs) == 0 {
		return nil
	}
	window := e.MaxInFlight
	if window <= 0 || window > len(inputs) {
		window = len(inputs)
	}

	jobs := make([]job, len(inputs))
	for seq, in := range inputs {
		jobs[seq] = job{seq: seq, in: in}
	}

	records := pipeline.Parallel(pipeline.FromSlice(jobs), window, func(ctx context.Context, j job) (Record, error) {
		return runRow(ctx, runner, j.seq, j.in), nil
	})
	return pipeline.Drain(records, func(_ context.Context, rec Record) error {
		return sink(rec)
	}).Run(ctx)
}
