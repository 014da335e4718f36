package views

import (
	"sync"
	"time"
)

// DefaultSearchDebounce is how long a search input sits idle before the
// filter recomputes, so large libraries are not re-filtered per keystroke.
const DefaultSearchDebounce = 250 * time.Millisecond

// Debouncer coalesces bursts of Trigger calls into one invocation of fn,
// fired after the configured quiet period. Each Trigger supersedes the
// pending one. The owner must call Stop on teardown so a stale timer never
// fires after the owning view is gone.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	timer   *time.Timer
	stopped bool
}

// NewDebouncer creates a debouncer with the given quiet period. A
// non-positive delay falls back to DefaultSearchDebounce.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultSearchDebounce
	}
	return &Debouncer{delay: delay}
}

// Trigger schedules fn after the quiet period, cancelling any pending call.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Stop cancels any pending call and disables the debouncer permanently.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
