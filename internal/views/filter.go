// Package views holds the derived view computations: pure functions over the
// domain collections, recomputed whenever their inputs change. Nothing in
// here mutates state or touches the store.
package views

import (
	"strings"

	"allball/practice-server/internal/domain"
)

// FilterAll matches every skill or difficulty.
const FilterAll = "All"

// DrillFilter is the planner's drill-library filter. All three predicates
// apply conjunctively; empty search matches everything.
type DrillFilter struct {
	Search     string
	Skill      string
	Difficulty string
}

// FilterDrills returns the drills satisfying the filter. Search matches
// case-insensitively against the title. The result preserves library order
// and the function is idempotent: filtering its own output with the same
// filter returns it unchanged.
func FilterDrills(drills []domain.Drill, f DrillFilter) []domain.Drill {
	term := strings.ToLower(strings.TrimSpace(f.Search))
	out := []domain.Drill{}
	for _, d := range drills {
		if term != "" && !strings.Contains(strings.ToLower(d.Title), term) {
			continue
		}
		if f.Skill != "" && f.Skill != FilterAll && string(d.Skill) != f.Skill {
			continue
		}
		if f.Difficulty != "" && f.Difficulty != FilterAll && string(d.Difficulty) != f.Difficulty {
			continue
		}
		out = append(out, d)
	}
	return out
}

// FilterManageDrills is the manage screen's broader search: the term matches
// against title or notes.
func FilterManageDrills(drills []domain.Drill, term string) []domain.Drill {
	term = strings.ToLower(strings.TrimSpace(term))
	out := []domain.Drill{}
	for _, d := range drills {
		if term == "" ||
			strings.Contains(strings.ToLower(d.Title), term) ||
			strings.Contains(strings.ToLower(d.Notes), term) {
			out = append(out, d)
		}
	}
	return out
}
