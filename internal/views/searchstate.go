package views

import (
	"strings"
	"sync"
	"time"
)

// SearchState keeps the raw search input separate from the effective term
// the filter actually runs on. Raw updates land immediately; the effective
// term follows after the debounce window, so a fast typist doesn't trigger
// a re-filter per keystroke. Close releases the pending timer.
type SearchState struct {
	mu        sync.RWMutex
	raw       string
	effective string
	debouncer *Debouncer
}

// NewSearchState creates a search state with the given debounce window.
func NewSearchState(delay time.Duration) *SearchState {
	return &SearchState{debouncer: NewDebouncer(delay)}
}

// Set records the raw term and schedules it to become effective after the
// quiet period. A newer Set supersedes the pending promotion.
func (s *SearchState) Set(term string) {
	s.mu.Lock()
	s.raw = term
	s.mu.Unlock()

	promoted := strings.TrimSpace(term)
	s.debouncer.Trigger(func() {
		s.mu.Lock()
		s.effective = promoted
		s.mu.Unlock()
	})
}

// Raw returns the latest input as typed.
func (s *SearchState) Raw() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.raw
}

// Effective returns the debounced term filters should use.
func (s *SearchState) Effective() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.effective
}

// Close cancels any pending promotion.
func (s *SearchState) Close() {
	s.debouncer.Stop()
}
