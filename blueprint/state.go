package blueprint

import (
	"time"

	"github.com/kbukum/taskflow/task"
)

// Phase is the lifecycle position of a single task inside its blueprint.
type Phase string

const (
	PhasePending   Phase = "pending"
	PhaseFetching  Phase = "fetching"
	PhaseDelaying  Phase = "delaying"
	PhaseEmitting  Phase = "emitting"
	PhaseCompleted Phase = "completed"
	PhaseFailed    Phase = "failed"
)

// State accumulates what happened to one task while its blueprint runs.
// It is owned by the goroutine executing the task and is not shared.
type State struct {
	Input task.Input
	Phase Phase
	// Visited lists the names of steps that were started, in order.
	Visited []string
	// FetchLatency is how long the fetch step took, success or not.
	FetchLatency time.Duration
	// Warnings collects swallowed best-effort failures.
	Warnings []string
}

// NewState returns the initial state for an input row.
func NewState(in task.Input) *State {
	return &State{Input: in, Phase: PhasePending}
}

func (s *State) enter(phase Phase, step string) {
	s.Phase = phase
	s.Visited = append(s.Visited, step)
}
