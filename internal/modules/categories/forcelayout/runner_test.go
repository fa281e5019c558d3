package forcelayout

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func waitClosed(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for runner to exit")
	}
}

func TestRunnerStopsWhenStepReportsDone(t *testing.T) {
	var calls atomic.Int32
	finished := make(chan struct{})
	r := NewRunner(time.Millisecond, func(ctx context.Context) bool {
		if calls.Add(1) == 5 {
			close(finished)
			return false
		}
		return true
	})
	r.Start()
	waitClosed(t, finished)
	waitClosed(t, r.Stop())
	if got := calls.Load(); got != 5 {
		t.Fatalf("calls=%d want=5", got)
	}
	if r.Running() {
		t.Fatalf("runner should be idle")
	}
}

func TestRunnerStopHaltsScheduling(t *testing.T) {
	var calls atomic.Int32
	r := NewRunner(time.Millisecond, func(ctx context.Context) bool {
		calls.Add(1)
		return true
	})
	r.Start()
	r.Start()
	time.Sleep(10 * time.Millisecond)
	waitClosed(t, r.Stop())
	after := calls.Load()
	time.Sleep(10 * time.Millisecond)
	if calls.Load() != after {
		t.Fatalf("steps ran after Stop returned")
	}
	waitClosed(t, r.Stop())
}

func TestRunnerRestartAfterSettle(t *testing.T) {
	sim := mustSim(t)
	var mu sync.Mutex
	r := NewRunner(time.Millisecond, func(ctx context.Context) bool {
		mu.Lock()
		defer mu.Unlock()
		if ctx.Err() != nil {
			return false
		}
		return sim.Step()
	})
	r.Start()
	deadline := time.After(5 * time.Second)
	for r.Running() {
		select {
		case <-deadline:
			t.Fatalf("simulation did not settle")
		case <-time.After(5 * time.Millisecond):
		}
	}
	mu.Lock()
	settledTicks := sim.Ticks()
	_ = sim.DragStart("a")
	mu.Unlock()

	r.Start()
	time.Sleep(20 * time.Millisecond)
	waitClosed(t, r.Stop())

	mu.Lock()
	defer mu.Unlock()
	if sim.Ticks() <= settledTicks {
		t.Fatalf("restart did not schedule new ticks")
	}
}

func TestRunnerStaleStepSeesCancelledContext(t *testing.T) {
	var mu sync.Mutex
	entered := make(chan struct{})
	var sawCancel atomic.Bool
	var once sync.Once
	r := NewRunner(time.Millisecond, func(ctx context.Context) bool {
		once.Do(func() { close(entered) })
		mu.Lock()
		defer mu.Unlock()
		if ctx.Err() != nil {
			sawCancel.Store(true)
			return false
		}
		return true
	})

	mu.Lock()
	r.Start()
	waitClosed(t, entered)
	done := r.Stop()
	mu.Unlock()
	waitClosed(t, done)
	if !sawCancel.Load() {
		t.Fatalf("step blocked across Stop should observe cancellation")
	}
}
