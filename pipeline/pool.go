package pipeline

import (
	"context"
	"sync"
)

type outcome[T any] struct {
	val T
	err error
}

// Parallel runs fn over every value of p with at most window calls in
// flight. Each value gets its own goroutine once a slot frees up, and
// results are yielded in completion order. A slot is held until its
// result has been handed downstream, so a slow consumer throttles the
// pool. The first error from fn or the source cancels the remaining work.
func Parallel[I, O any](p *Pipeline[I], window int, fn func(context.Context, I) (O, error)) *Pipeline[O] {
	if window <= 0 {
		window = 1
	}
	return &Pipeline[O]{
		open: func(ctx context.Context) Iterator[O] {
			poolCtx, cancel := context.WithCancel(ctx)
			it := &poolIter[O]{
				done:   make(chan outcome[O], window),
				cancel: cancel,
			}
			source := p.open(poolCtx)
			it.closeSource = source.Close
			go submit(poolCtx, it, source, window, fn)
			return it
		},
	}
}

// submit feeds the pool until the source is exhausted or the pool is
// canceled, then closes the result channel once every call has reported.
func submit[I, O any](ctx context.Context, it *poolIter[O], source Iterator[I], window int, fn func(context.Context, I) (O, error)) {
	slots := make(chan struct{}, window)
	var inflight sync.WaitGroup
	defer func() {
		inflight.Wait()
		close(it.done)
	}()

	for {
		select {
		case slots <- struct{}{}:
		case <-ctx.Done():
			return
		}
		val, ok, err := source.Next(ctx)
		if err != nil {
			it.report(ctx, outcome[O]{err: err})
			return
		}
		if !ok {
			return
		}
		inflight.Go(func() {
			defer func() { <-slots }()
			o, err := fn(ctx, val)
			it.report(ctx, outcome[O]{val: o, err: err})
			if err != nil {
				it.cancel()
			}
		})
	}
}

type poolIter[O any] struct {
	done        chan outcome[O]
	cancel      context.CancelFunc
	closeSource func() error
	closeOnce   sync.Once
}

func (it *poolIter[O]) report(ctx context.Context, o outcome[O]) {
	select {
	case it.done <- o:
	case <-ctx.Done():
	}
}

func (it *poolIter[O]) Next(ctx context.Context) (val O, ok bool, err error) {
	select {
	case o, open := <-it.done:
		if !open {
			return val, false, ctx.Err()
		}
		if o.err != nil {
			return val, false, o.err
		}
		return o.val, true, nil
	case <-ctx.Done():
		return val, false, ctx.Err()
	}
}

// Close cancels outstanding work and waits for every call to return.
func (it *poolIter[O]) Close() error {
	var err error
	it.closeOnce.Do(func() {
		it.cancel()
		for range it.done {
		}
		err = it.closeSource()
	})
	return err
}
