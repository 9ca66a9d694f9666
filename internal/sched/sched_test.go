package sched

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

// waitFor polls until cond holds or the deadline passes.
func waitFor(t *testing.T, d time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(d)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

// TestCoalescing drives the single-slot queue directly: requests
// arriving while the task is blocked must collapse into exactly one
// follow-up run.
func TestCoalescing(t *testing.T) {
	r := NewRunner(time.Hour, time.Hour) // tick source never fires in this test
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var runs atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.work(ctx, func(context.Context) {
			if runs.Add(1) == 1 {
				close(started)
				<-release
			}
		})
	}()

	r.submit()
	<-started

	// Five ticks land while the first run is still blocked.
	for i := 0; i < 5; i++ {
		r.submit()
	}
	close(release)

	waitFor(t, time.Second, func() bool { return runs.Load() == 2 })
	// Give a straggler run a chance to appear; there must be none.
	time.Sleep(20 * time.Millisecond)
	if got := runs.Load(); got != 2 {
		t.Errorf("runs = %d, want 2 (one blocked + one coalesced)", got)
	}

	cancel()
	r.Wait()
}

func TestPeriodicTicks(t *testing.T) {
	r := NewRunner(0, 10*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var runs atomic.Int32
	r.Start(ctx, func(context.Context) { runs.Add(1) })

	waitFor(t, time.Second, func() bool { return runs.Load() >= 3 })

	cancel()
	r.Wait()
}

func TestInitialDelay(t *testing.T) {
	r := NewRunner(50*time.Millisecond, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var runs atomic.Int32
	start := time.Now()
	r.Start(ctx, func(context.Context) { runs.Add(1) })

	time.Sleep(20 * time.Millisecond)
	if runs.Load() != 0 {
		t.Error("task ran before the initial delay elapsed")
	}

	waitFor(t, time.Second, func() bool { return runs.Load() == 1 })
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Errorf("first run after %v, want >= 50ms", elapsed)
	}

	cancel()
	r.Wait()
}

func TestStopsOnCancel(t *testing.T) {
	r := NewRunner(0, 5*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())

	var runs atomic.Int32
	r.Start(ctx, func(context.Context) { runs.Add(1) })
	waitFor(t, time.Second, func() bool { return runs.Load() >= 1 })

	cancel()
	r.Wait()

	after := runs.Load()
	time.Sleep(30 * time.Millisecond)
	if runs.Load() != after {
		t.Error("task ran after cancellation")
	}
}
