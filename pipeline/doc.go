// Package pipeline provides lazy, pull-based pipeline operators used by the
// streaming executor.
//
// No work happens until values are pulled via Collect or Drain. Each stage
// pulls from the previous stage on demand, so a slow consumer naturally
// slows the producers without explicit flow control.
//
//   - FromSlice: source over an in-memory slice
//   - Parallel: concurrent map over an in-flight window, completion order
//   - Drain, Collect: terminals
//
// # Usage
//
//	src := pipeline.FromSlice(jobs)
//	done := pipeline.Parallel(src, 64, run)
//	err := pipeline.Drain(done, sink).Run(ctx)
package pipeline
