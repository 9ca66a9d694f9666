package sched

import (
	"context"
	"sync"
	"time"
)

// Runner arms a recurring trigger: after the initial delay, then every
// period, it requests one execution of the task on a dedicated worker
// goroutine. The request slot holds at most one entry; a tick that
// fires while the task is still running collapses into that single
// pending run instead of queueing. Late ticks are absorbed silently.
//
// The runner stops when the context passed to Start is cancelled.
type Runner struct {
	initialDelay time.Duration
	period       time.Duration

	pending chan struct{}
	wg      sync.WaitGroup
}

// NewRunner creates a runner with the given initial delay and period.
func NewRunner(initialDelay, period time.Duration) *Runner {
	return &Runner{
		initialDelay: initialDelay,
		period:       period,
		pending:      make(chan struct{}, 1),
	}
}

// Start launches the tick source and the worker. At most one task
// invocation is ever in flight.
func (r *Runner) Start(ctx context.Context, task func(context.Context)) {
	r.wg.Add(2)

	go func() {
		defer r.wg.Done()
		r.work(ctx, task)
	}()

	go func() {
		defer r.wg.Done()
		r.tick(ctx)
	}()
}

// Wait blocks until both goroutines have exited after cancellation.
func (r *Runner) Wait() {
	r.wg.Wait()
}

func (r *Runner) tick(ctx context.Context) {
	initial := time.NewTimer(r.initialDelay)
	defer initial.Stop()

	select {
	case <-ctx.Done():
		return
	case <-initial.C:
		r.submit()
	}

	ticker := time.NewTicker(r.period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.submit()
		}
	}
}

// submit requests a task run. If a request is already pending the tick
// is coalesced into it.
func (r *Runner) submit() {
	select {
	case r.pending <- struct{}{}:
	default:
	}
}

func (r *Runner) work(ctx context.Context, task func(context.Context)) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-r.pending:
			task(ctx)
		}
	}
}
