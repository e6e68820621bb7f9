package countdown

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrTickerStarted is returned when Start is called more than once
var ErrTickerStarted = errors.New("ticker already started")

// Clock returns the current time
type Clock func() time.Time

// Ticker recomputes the remaining time on a fixed cadence and hands every
// result to a callback. It is owned by whoever calls Start and must be
// stopped by the same owner; after Stop returns the callback is never
// invoked again.
//
// The loop ends on its own after delivering the Unlocked state once.
type Ticker struct {
	target   time.Time
	clock    Clock
	interval time.Duration
	onTick   func(Remaining)

	mu      sync.Mutex
	started bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewTicker creates a ticker for target. A nil clock uses time.Now and a
// non-positive interval falls back to one second.
func NewTicker(target time.Time, clock Clock, interval time.Duration, onTick func(Remaining)) *Ticker {
	if clock == nil {
		clock = time.Now
	}
	if interval <= 0 {
		interval = time.Second
	}
	return &Ticker{
		target:   target,
		clock:    clock,
		interval: interval,
		onTick:   onTick,
		done:     make(chan struct{}),
	}
}

// Start delivers the current value immediately and then once per interval
// until ctx is cancelled, Stop is called, or the target is reached.
func (t *Ticker) Start(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.started {
		return ErrTickerStarted
	}
	t.started = true

	ctx, cancel := context.WithCancel(ctx)
	t.cancel = cancel

	go t.run(ctx)
	return nil
}

func (t *Ticker) run(ctx context.Context) {
	defer close(t.done)

	if t.emit(ctx) {
		return
	}

	tk := time.NewTicker(t.interval)
	defer tk.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-tk.C:
			if t.emit(ctx) {
				return
			}
		}
	}
}

// emit reports whether the loop should end
func (t *Ticker) emit(ctx context.Context) bool {
	if ctx.Err() != nil {
		return true
	}
	r := Compute(t.target, t.clock())
	if t.onTick != nil {
		t.onTick(r)
	}
	return r.Unlocked
}

// Stop cancels the loop and waits for it to exit. It is safe to call more
// than once and before Start. Stop must not be called from the callback.
func (t *Ticker) Stop() {
	t.mu.Lock()
	if !t.started {
		// nothing will ever run; make Done observable
		t.started = true
		close(t.done)
		t.mu.Unlock()
		return
	}
	cancel := t.cancel
	t.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	<-t.done
}

// Done is closed once the loop has exited
func (t *Ticker) Done() <-chan struct{} {
	return t.done
}
