package pipeline

import "context"

// Iterator yields values on demand.
type Iterator[T any] interface {
	// Next returns the next value, or ok=false once the stream is exhausted.
	Next(ctx context.Context) (val T, ok bool, err error)
	// Close releases the iterator and everything upstream of it.
	Close() error
}

// Pipeline is a lazy stream definition. Opening it builds a fresh chain
// of iterators, so one Pipeline may be run several times.
type Pipeline[T any] struct {
	open func(ctx context.Context) Iterator[T]
}

// Runnable is a pipeline bound to a terminal.
type Runnable struct {
	run func(ctx context.Context) error
}

// Run pulls the pipeline to completion. It returns the first error raised
// by a stage or the sink, or the context error if ctx ends first.
func (r *Runnable) Run(ctx context.Context) error {
	return r.run(ctx)
}

// FromSlice streams items in order.
func FromSlice[T any](items []T) *Pipeline[T] {
	return &Pipeline[T]{
		open: func(context.Context) Iterator[T] {
			return &sliceIter[T]{items: items}
		},
	}
}

// Drain binds p to sink. Values reach sink one at a time from the calling
// goroutine.
func Drain[T any](p *Pipeline[T], sink func(context.Context, T) error) *Runnable {
	return &Runnable{
		run: func(ctx context.Context) error {
			it := p.open(ctx)
			defer it.Close()
			for {
				val, ok, err := it.Next(ctx)
				if err != nil || !ok {
					return err
				}
				if err := sink(ctx, val); err != nil {
					return err
				}
			}
		},
	}
}

// Collect runs p and gathers its values. On error the values read so far
// are returned with it.
func Collect[T any](ctx context.Context, p *Pipeline[T]) ([]T, error) {
	var out []T
	err := Drain(p, func(_ context.Context, v T) error {
		out = append(out, v)
		return nil
	}).Run(ctx)
	return out, err
}

type sliceIter[T any] struct {
	items []T
	next  int
}

func (it *sliceIter[T]) Next(ctx context.Context) (val T, ok bool, err error) {
	if err = ctx.Err(); err != nil || it.next >= len(it.items) {
		return val, false, err
	}
	val = it.items[it.next]
	it.next++
	return val, true, nil
}

func (it *sliceIter[T]) Close() error { return nil }
