package runner

import (
	"context"
	"sync"
	"time"
)

// PracticeTimer counts elapsed practice seconds upward. Unlike the on-court
// runner it has no queue; it is the plain stopwatch on the dashboard.
type PracticeTimer struct {
	mu      sync.Mutex
	active  bool
	elapsed int // seconds
}

// NewPracticeTimer creates a stopped timer at zero.
func NewPracticeTimer() *PracticeTimer {
	return &PracticeTimer{}
}

func (t *PracticeTimer) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.active = true
}

func (t *PracticeTimer) Pause() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.active = false
}

// Reset stops the timer and zeroes the elapsed time.
func (t *PracticeTimer) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.active = false
	t.elapsed = 0
}

// Tick advances the elapsed count by one second while active.
func (t *PracticeTimer) Tick() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.active {
		t.elapsed++
	}
}

// Elapsed returns whether the timer is running and the elapsed seconds.
func (t *PracticeTimer) Elapsed() (bool, int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active, t.elapsed
}

// Run ticks the timer once per second until ctx is cancelled.
func (t *PracticeTimer) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.Tick()
		}
	}
}
