package forcelayout

import (
	"context"
	"sync"
	"time"
)

const DefaultFrameInterval = 16 * time.Millisecond

// StepFunc is called once per frame. It returns false to stop scheduling.
// ctx is cancelled once Stop has been called, so a step that was blocked
// waiting for a lock can tell that it is stale.
type StepFunc func(ctx context.Context) bool

// Runner drives a StepFunc on a ticker in its own goroutine.
type Runner struct {
	interval time.Duration
	step     StepFunc

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewRunner(interval time.Duration, step StepFunc) *Runner {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &Runner{interval: interval, step: step}
}

// Start begins scheduling frames. It is a no-op while already running.
func (r *Runner) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	r.cancel, r.done = cancel, done
	go r.loop(ctx, cancel, done)
}

func (r *Runner) loop(ctx context.Context, cancel context.CancelFunc, done chan struct{}) {
	defer close(done)
	defer r.release(done)
	defer cancel()

	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if ctx.Err() != nil || !r.step(ctx) {
				return
			}
		}
	}
}

func (r *Runner) release(done chan struct{}) {
	r.mu.Lock()
	if r.done == done {
		r.cancel, r.done = nil, nil
	}
	r.mu.Unlock()
}

// Running reports whether a frame loop is active.
func (r *Runner) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cancel != nil
}

// Stop cancels scheduling without waiting. It returns a channel closed when
// the loop goroutine has exited; the channel is already closed if nothing ran.
// Callers holding a lock the StepFunc takes must release it before waiting.
func (r *Runner) Stop() <-chan struct{} {
	r.mu.Lock()
	cancel, done := r.cancel, r.done
	r.cancel, r.done = nil, nil
	r.mu.Unlock()
	if cancel == nil {
		closed := make(chan struct{})
		close(closed)
		return closed
	}
	cancel()
	return done
}
