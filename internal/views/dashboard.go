package views

import (
	"sort"

	"allball/practice-server/internal/domain"
)

// SkillUsage is one row of the drill-usage breakdown.
type SkillUsage struct {
	Skill string `json:"skill"`
	Count int    `json:"count"`
}

// DashboardStats are the aggregates shown on the dashboard.
type DashboardStats struct {
	TotalSessions      int                 `json:"totalSessions"`
	TotalPracticeTime  int                 `json:"totalPracticeTime"` // minutes
	SessionsByCategory map[domain.Category]int `json:"sessionsByCategory"`
	DrillUsageBySkill  []SkillUsage        `json:"drillUsageBySkill"` // descending by count
}

// Dashboard computes the session aggregates. Drill durations are coerced
// non-negative by domain.TotalDuration; drill usage counts every drill
// occurrence across all sessions, grouped by skill.
func Dashboard(sessions []domain.Session) DashboardStats {
	stats := DashboardStats{
		SessionsByCategory: map[domain.Category]int{},
	}
	usage := map[string]int{}
	for _, sess := range sessions {
		stats.TotalSessions++
		stats.TotalPracticeTime += domain.TotalDuration(sess.Drills)
		stats.SessionsByCategory[sess.Category]++
		for _, d := range sess.Drills {
			usage[string(d.Skill)]++
		}
	}

	stats.DrillUsageBySkill = make([]SkillUsage, 0, len(usage))
	for skill, count := range usage {
		stats.DrillUsageBySkill = append(stats.DrillUsageBySkill, SkillUsage{Skill: skill, Count: count})
	}
	sort.SliceStable(stats.DrillUsageBySkill, func(i, j int) bool {
		if stats.DrillUsageBySkill[i].Count != stats.DrillUsageBySkill[j].Count {
			return stats.DrillUsageBySkill[i].Count > stats.DrillUsageBySkill[j].Count
		}
		return stats.DrillUsageBySkill[i].Skill < stats.DrillUsageBySkill[j].Skill
	})
	return stats
}
