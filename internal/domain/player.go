package domain

// ShotMetrics holds the shooting numbers recorded for one player on one drill.
type ShotMetrics struct {
	ShotsMade      int `json:"shotsMade"`
	ShotsAttempted int `json:"shotsAttempted"`
}

// PerformanceRecord is a single dated entry in a player's performance history.
// DrillID references the library drill the metrics were recorded against.
type PerformanceRecord struct {
	Date    string      `json:"date"`
	DrillID string      `json:"drillId"`
	Metrics ShotMetrics `json:"metrics"`
}

// Player represents a roster player managed by the coach.
type Player struct {
	ID                 string              `json:"id"`
	Name               string              `json:"name"`
	Jersey             string              `json:"jersey,omitempty"` // free text, jersey numbers like "23" or "00"
	PerformanceHistory []PerformanceRecord `json:"performanceHistory"`
}

// ShootingPercentage returns the player's aggregate shooting percentage across
// their whole history. The second return value is false when the player has no
// attempts recorded.
func (p *Player) ShootingPercentage() (float64, bool) {
	totalMade := 0
	totalAttempted := 0
	for _, rec := range p.PerformanceHistory {
		totalMade += rec.Metrics.ShotsMade
		totalAttempted += rec.Metrics.ShotsAttempted
	}
	if totalAttempted <= 0 {
		return 0, false
	}
	return float64(totalMade) / float64(totalAttempted) * 100, true
}

// LatestRecord returns the most recently appended history entry, or nil.
func (p *Player) LatestRecord() *PerformanceRecord {
	if len(p.PerformanceHistory) == 0 {
		return nil
	}
	return &p.PerformanceHistory[len(p.PerformanceHistory)-1]
}
