package blueprint

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kbukum/taskflow/httpclient"
	"github.com/kbukum/taskflow/task"
)

// Fetcher performs the networked lookup for a task. The payload, if any,
// is discarded; only success, failure or timeout matter.
type Fetcher interface {
	Fetch(ctx context.Context, in task.Input) error
}

// FetcherFunc adapts a function into a Fetcher.
type FetcherFunc func(ctx context.Context, in task.Input) error

func (f FetcherFunc) Fetch(ctx context.Context, in task.Input) error { return f(ctx, in) }

// Notifier emits the completion notification for a task.
type Notifier interface {
	Notify(ctx context.Context, in task.Input) error
}

// NotifierFunc adapts a function into a Notifier.
type NotifierFunc func(ctx context.Context, in task.Input) error

func (f NotifierFunc) Notify(ctx context.Context, in task.Input) error { return f(ctx, in) }

// FetchStep calls fetcher under its own timeout and classifies failures.
func FetchStep(fetcher Fetcher, timeout time.Duration) Step {
	return NewStep(StepFetchData, func(ctx context.Context, state *State) error {
		fetchCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		start := time.Now()
		err := fetcher.Fetch(fetchCtx, state.Input)
		state.FetchLatency = time.Since(start)
		if err == nil {
			return nil
		}
		return classifyFetchError(ctx, fetchCtx, err)
	})
}

func classifyFetchError(parent, fetchCtx context.Context, err error) error {
	switch {
	case parent.Err() != nil:
		return Fail(ReasonCanceled, err)
	case errors.Is(fetchCtx.Err(), context.DeadlineExceeded),
		errors.Is(err, context.DeadlineExceeded),
		httpclient.IsTimeout(err):
		return Fail(ReasonNetworkTimeout, err)
	case httpclient.IsStatus(err):
		return Fail(fmt.Sprintf("HTTP request failed with status: %d", httpclient.StatusCode(err)), err)
	default:
		return Fail("Network error: "+rootMessage(err), err)
	}
}

// rootMessage strips client wrapping so reasons read like the transport
// error itself.
func rootMessage(err error) string {
	var he *httpclient.Error
	if errors.As(err, &he) && he.Err != nil {
		return he.Err.Error()
	}
	return err.Error()
}

// DelayStep waits for d. It only returns early if ctx is done.
func DelayStep(d time.Duration) Step {
	return NewStep(StepLongDelay, func(ctx context.Context, _ *State) error {
		if d <= 0 {
			return nil
		}
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-timer.C:
			return nil
		case <-ctx.Done():
			return Fail(ReasonCanceled, ctx.Err())
		}
	})
}

// EmitStep sends the completion notification.
func EmitStep(notifier Notifier) Step {
	return NewStep(StepEmitEvent, func(ctx context.Context, state *State) error {
		return notifier.Notify(ctx, state.Input)
	})
}
