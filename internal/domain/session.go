package domain

// Category is the practice-session category.
type Category string

const (
	CategoryWarmUp         Category = "Warm-up"
	CategorySkills         Category = "Skills"
	CategoryTeamTactics    Category = "Team Tactics"
	CategoryCoolDown       Category = "Cool Down"
	CategoryGameSimulation Category = "Game Simulation"
)

// PracticeCategories lists every valid session category, in display order.
var PracticeCategories = []Category{
	CategoryWarmUp, CategorySkills, CategoryTeamTactics,
	CategoryCoolDown, CategoryGameSimulation,
}

// ValidCategory reports whether c is one of the known practice categories.
func ValidCategory(c Category) bool {
	for _, cat := range PracticeCategories {
		if cat == c {
			return true
		}
	}
	return false
}

// SessionDrill is a drill snapshot embedded in a session. The same library
// drill can appear twice in one session, so each instance carries its own
// UniqueID distinct from the library drill ID. Deleting the library drill
// later does not affect sessions that embedded it.
type SessionDrill struct {
	Drill
	UniqueID string `json:"uniqueId"`
}

// PerformanceMetrics maps drill-instance UniqueID -> player ID -> metrics.
type PerformanceMetrics map[string]map[string]ShotMetrics

// Session is a dated, ordered collection of drill instances plus the
// per-player performance recorded while running them.
type Session struct {
	ID                 string             `json:"id"`
	Date               string             `json:"date"`
	Category           Category           `json:"category"`
	Name               string             `json:"name"`
	Drills             []SessionDrill     `json:"drills"`
	Notes              string             `json:"notes,omitempty"`
	PerformanceMetrics PerformanceMetrics `json:"performanceMetrics"`
}

// SessionTemplate is a reusable seed for the session form. It is decoupled
// from live sessions after creation.
type SessionTemplate struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Category Category       `json:"category"`
	Drills   []SessionDrill `json:"drills"`
	Notes    string         `json:"notes,omitempty"`
}

// TotalDuration sums drill durations in minutes. Negative durations are
// coerced to zero so aggregates never go backwards.
func TotalDuration(drills []SessionDrill) int {
	sum := 0
	for _, d := range drills {
		if d.Duration > 0 {
			sum += d.Duration
		}
	}
	return sum
}
