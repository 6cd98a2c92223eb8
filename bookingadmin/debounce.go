package bookingadmin

import (
	"context"
	"sync"
	"time"
)

// Debouncer runs the most recently scheduled func once calls have been quiet
// for the configured delay.
type Debouncer struct {
	delay time.Duration

	mu    sync.Mutex
	timer *time.Timer
	gen   uint64
}

func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Call cancels any pending func and schedules fn. fn is skipped if ctx is done
// by the time the delay elapses.
func (d *Debouncer) Call(ctx context.Context, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		current := gen == d.gen
		if current {
			d.timer = nil
		}
		d.mu.Unlock()

		if !current || ctx.Err() != nil {
			return
		}
		fn()
	})
}

// Stop drops the pending func, if any.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
}
