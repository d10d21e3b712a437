// Package engine runs a batch of task inputs through a Runner and returns
// exactly one result per distinct task id.
//
// The Orchestrator picks an executor by batch size. Small batches
// (n <= Threshold) use the BoundedExecutor: one goroutine per row feeding a
// fixed-capacity channel drained by a single collecting loop. Larger
// batches use the StreamingExecutor: every row is submitted to an
// in-flight pool and results are drained in completion order.
//
// Either way each raw result is tagged with the index of its input row and
// handed to a Collector. The Collector rejects results that do not belong
// to the batch and, when a task id appears more than once, keeps the
// result of its last occurrence in input order.
//
//	orch, err := engine.New(bp, engine.WithConfig(cfg), engine.WithLogger(log))
//	final, err := orch.Execute(ctx, inputs)
package engine
