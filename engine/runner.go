package engine

import (
	"context"
	"fmt"

	"github.com/kbukum/taskflow/task"
)

// Runner executes one input row and always returns its result.
// *blueprint.Blueprint satisfies Runner.
type Runner interface {
	Execute(ctx context.Context, in task.Input) task.Result
}

// RunnerFunc adapts a function into a Runner.
type RunnerFunc func(ctx context.Context, in task.Input) task.Result

func (f RunnerFunc) Execute(ctx context.Context, in task.Input) task.Result { return f(ctx, in) }

// Record is a raw result tagged with the index of its input row.
type Record struct {
	Seq    int
	Result task.Result
}

// Sink receives records from an executor. It is called from a single
// goroutine.
type Sink func(Record) error

// runRow executes one row. A panicking runner yields a Failed result so
// the row is never lost.
func runRow(ctx context.Context, runner Runner, seq int, in task.Input) (rec Record) {
	defer func() {
		if r := recover(); r != nil {
			rec = Record{Seq: seq, Result: task.Failed(in.TaskID, fmt.Sprintf("Internal error: %v", r))}
		}
	}()
	return Record{Seq: seq, Result: runner.Execute(ctx, in)}
}
