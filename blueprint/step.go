package blueprint

import (
	"context"
	"errors"
	"fmt"
)

// Step names of the standard blueprint.
const (
	StepFetchData = "fetch_data"
	StepLongDelay = "long_delay"
	StepEmitEvent = "emit_event"
)

// Failure reasons with a fixed wording.
const (
	ReasonNetworkTimeout = "Network timeout"
	ReasonCanceled       = "Canceled"
)

// Step is one unit of work in a blueprint.
type Step interface {
	Name() string
	Run(ctx context.Context, state *State) error
}

// StepFunc adapts a function into a Step.
type StepFunc func(ctx context.Context, state *State) error

// NewStep names a StepFunc.
func NewStep(name string, fn StepFunc) Step {
	return &funcStep{name: name, fn: fn}
}

type funcStep struct {
	name string
	fn   StepFunc
}

func (s *funcStep) Name() string { return s.name }

func (s *funcStep) Run(ctx context.Context, state *State) error {
	return s.fn(ctx, state)
}

// Stage places a step in the blueprint.
type Stage struct {
	Step Step
	// Phase is entered when the step starts.
	Phase Phase
	// BestEffort stages never change the task outcome; their errors are
	// logged and recorded as warnings.
	BestEffort bool
}

// FailureError carries the human-readable reason reported in a Failed
// task result.
type FailureError struct {
	Reason string
	Err    error
}

// Fail wraps err with the reason that will be reported for the task.
func Fail(reason string, err error) *FailureError {
	return &FailureError{Reason: reason, Err: err}
}

func (e *FailureError) Error() string {
	if e.Err == nil {
		return e.Reason
	}
	return e.Reason + ": " + e.Err.Error()
}

func (e *FailureError) Unwrap() error { return e.Err }

// Reason extracts the reported failure reason from a step error.
func Reason(err error) string {
	var fe *FailureError
	if errors.As(err, &fe) {
		return fe.Reason
	}
	return err.Error()
}

// runStep executes a step, turning a panic into an error.
func runStep(ctx context.Context, step Step, state *State) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = Fail(fmt.Sprintf("Internal error: step %s panicked", step.Name()), fmt.Errorf("%v", r))
		}
	}()
	return step.Run(ctx, state)
}
