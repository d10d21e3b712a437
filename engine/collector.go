package engine

import (
	"fmt"

	"github.com/kbukum/taskflow/errors"
	"github.com/kbukum/taskflow/task"
)

// Collector gathers the records of one batch and folds them into a
// FinalResult. It is not safe for concurrent use; executors call Accept
// from their single collecting loop.
type Collector struct {
	inputs   []task.Input
	seen     []bool
	results  []task.Result
	received int
}

// NewCollector prepares a collector for inputs.
func NewCollector(inputs []task.Input) *Collector {
	return &Collector{
		inputs:  inputs,
		seen:    make([]bool, len(inputs)),
		results: make([]task.Result, len(inputs)),
	}
}

// Accept stores a record. Records with an unknown row index, a row that
// already reported, or a task id differing from the row's are rejected.
func (c *Collector) Accept(rec Record) error {
	if rec.Seq < 0 || rec.Seq >= len(c.inputs) {
		return errors.ResultMismatch(rec.Seq, "row index out of range")
	}
	if c.seen[rec.Seq] {
		return errors.ResultMismatch(rec.Seq, "duplicate result")
	}
	if want := c.inputs[rec.Seq].TaskID; rec.Result.TaskID != want {
		return errors.ResultMismatch(rec.Seq, fmt.Sprintf("task id %d does not match input %d", rec.Result.TaskID, want))
	}
	c.seen[rec.Seq] = true
	c.results[rec.Seq] = rec.Result
	c.received++
	return nil
}

// Received returns the number of accepted records.
func (c *Collector) Received() int {
	return c.received
}

// Finalize builds the FinalResult. Every row must have reported. For a
// task id appearing in several rows the last row wins, while the id keeps
// the position of its first appearance.
func (c *Collector) Finalize() (*task.FinalResult, error) {
	if c.received < len(c.inputs) {
		return nil, errors.IncompleteBatch(len(c.inputs), c.received)
	}
	final := task.NewFinalResult(len(c.inputs))
	for _, r := range c.results {
		final.Set(r)
	}
	return final, nil
}
