package views

import "allball/practice-server/internal/domain"

// Fixed suggestion policy: players shooting under the threshold get up to
// maxSuggestions drills from the shooting category.
const (
	suggestionThreshold = 60.0
	maxSuggestions      = 3
)

// PlayerSummary is the analytics card for one player.
type PlayerSummary struct {
	PlayerID           string                    `json:"playerId"`
	Name               string                    `json:"name"`
	ShootingPercentage float64                   `json:"shootingPercentage"`
	HasAttempts        bool                      `json:"hasAttempts"`
	Latest             *domain.PerformanceRecord `json:"latest,omitempty"`
}

// SummarizePlayer computes a player's aggregate shooting percentage and
// latest recorded performance.
func SummarizePlayer(player domain.Player) PlayerSummary {
	pct, ok := player.ShootingPercentage()
	return PlayerSummary{
		PlayerID:           player.ID,
		Name:               player.Name,
		ShootingPercentage: pct,
		HasAttempts:        ok,
		Latest:             player.LatestRecord(),
	}
}

// SuggestDrills recommends shooting drills for a struggling shooter: when
// the player's aggregate percentage is below 60%, the first three Shooting
// drills from the library are returned; otherwise there are no suggestions.
// A player with no recorded attempts counts as 0%.
func SuggestDrills(player domain.Player, library []domain.Drill) []domain.Drill {
	pct, _ := player.ShootingPercentage()
	if pct >= suggestionThreshold {
		return []domain.Drill{}
	}
	out := []domain.Drill{}
	for _, d := range library {
		if d.Skill == domain.SkillShooting {
			out = append(out, d)
			if len(out) == maxSuggestions {
				break
			}
		}
	}
	return out
}
