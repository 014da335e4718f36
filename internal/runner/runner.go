// Package runner drives the live on-court countdown and the practice timer.
// Runner state is deliberately never persisted; a restart resets to Idle.
package runner

import (
	"context"
	"sync"
	"time"

	"allball/practice-server/internal/domain"
)

// State is the runner's lifecycle state.
type State string

const (
	StateIdle     State = "idle"
	StateRunning  State = "running"
	StatePaused   State = "paused"
	StateComplete State = "complete"
)

// TimeIncrement is the fixed amount added by the +1 min control.
const TimeIncrement = 60 // seconds

// Snapshot is a point-in-time view of the runner for the state endpoint.
type Snapshot struct {
	State       State                 `json:"state"`
	SessionName string                `json:"sessionName,omitempty"`
	Index       int                   `json:"index"`
	Remaining   int                   `json:"remaining"` // seconds
	Current     *domain.SessionDrill  `json:"current,omitempty"`
	UpNext      []domain.SessionDrill `json:"upNext"`
}

// Runner steps a coach through an ordered drill queue, one second at a time.
// Ticks only advance while Running; at zero the runner seeds the next drill's
// time or completes and notifies.
type Runner struct {
	mu          sync.Mutex
	sessionName string
	queue       []domain.SessionDrill
	index       int
	remaining   int // seconds
	state       State
	notify      func(message string)
}

// New creates an idle runner. notify receives completion and drill-change
// messages; it may be nil.
func New(notify func(message string)) *Runner {
	if notify == nil {
		notify = func(string) {}
	}
	return &Runner{state: StateIdle, notify: notify}
}

// Load replaces the drill queue and resets to Idle at the first drill.
func (r *Runner) Load(sessionName string, drills []domain.SessionDrill) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessionName = sessionName
	r.queue = append([]domain.SessionDrill(nil), drills...)
	r.index = 0
	r.remaining = 0
	r.state = StateIdle
}

// Start begins (or resumes) the countdown. A fresh start seeds the current
// drill's full duration; resuming keeps whatever time remains.
func (r *Runner) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.queue) == 0 || r.state == StateComplete {
		return
	}
	if r.remaining <= 0 {
		r.remaining = drillSeconds(r.queue, r.index)
	}
	r.state = StateRunning
}

// Pause suspends ticking; remaining time is retained.
func (r *Runner) Pause() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == StateRunning {
		r.state = StatePaused
	}
}

// Reset zeroes the remaining time without altering the run state.
func (r *Runner) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.remaining = 0
}

// AddTime adds the fixed increment to the current countdown.
func (r *Runner) AddTime() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.remaining += TimeIncrement
}

// Prev steps the queue index back without altering the run state.
func (r *Runner) Prev() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.index > 0 {
		r.index--
	}
}

// Next steps the queue index forward, seeding the next drill's time. The run
// state is unchanged; past the end the index stays put.
func (r *Runner) Next() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.index+1 < len(r.queue) {
		r.index++
		r.remaining = drillSeconds(r.queue, r.index)
	}
}

// MarkDone finishes the current drill early: advance and auto-start the next
// one, or complete the session if the queue is exhausted.
func (r *Runner) MarkDone() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.advanceLocked()
}

// Tick advances the countdown by one second. Only meaningful while Running.
func (r *Runner) Tick() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != StateRunning {
		return
	}
	if r.remaining > 0 {
		r.remaining--
	}
	if r.remaining <= 0 {
		r.advanceLocked()
	}
}

// advanceLocked moves to the next drill or completes. Callers hold the lock.
func (r *Runner) advanceLocked() {
	next := r.index + 1
	if next < len(r.queue) {
		r.index = next
		r.remaining = drillSeconds(r.queue, next)
		r.state = StateRunning
		r.notify("Started: " + r.queue[next].Title)
		return
	}
	r.remaining = 0
	r.state = StateComplete
	if len(r.queue) > 0 {
		r.notify("Session complete!")
	}
}

// Snapshot returns the current state for rendering.
func (r *Runner) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	snap := Snapshot{
		State:       r.state,
		SessionName: r.sessionName,
		Index:       r.index,
		Remaining:   r.remaining,
		UpNext:      []domain.SessionDrill{},
	}
	if r.index < len(r.queue) {
		current := r.queue[r.index]
		snap.Current = &current
	}
	for i := r.index + 1; i < len(r.queue) && i <= r.index+3; i++ {
		snap.UpNext = append(snap.UpNext, r.queue[i])
	}
	return snap
}

// Run ticks the runner once per second until ctx is cancelled. Cancellation
// is how stale ticks are prevented from firing after shutdown.
func (r *Runner) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Tick()
		}
	}
}

func drillSeconds(queue []domain.SessionDrill, index int) int {
	if index < 0 || index >= len(queue) {
		return 0
	}
	if queue[index].Duration < 0 {
		return 0
	}
	return queue[index].Duration * 60
}
