package domain

// Skill categorizes what a drill trains.
type Skill string

const (
	SkillShooting     Skill = "Shooting"
	SkillDefense      Skill = "Defense"
	SkillPassing      Skill = "Passing"
	SkillDribbling    Skill = "Dribbling"
	SkillConditioning Skill = "Conditioning"
	SkillStrategy     Skill = "Strategy"
	SkillOther        Skill = "Other"
)

// SkillCategories lists every valid skill, in display order.
var SkillCategories = []Skill{
	SkillShooting, SkillDefense, SkillPassing, SkillDribbling,
	SkillConditioning, SkillStrategy, SkillOther,
}

// Difficulty is the coarse difficulty level of a drill.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "Beginner"
	DifficultyIntermediate Difficulty = "Intermediate"
	DifficultyAdvanced     Difficulty = "Advanced"
)

// DifficultyLevels lists every valid difficulty, in display order.
var DifficultyLevels = []Difficulty{
	DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced,
}

// ValidSkill reports whether s is one of the known skill categories.
func ValidSkill(s Skill) bool {
	for _, cat := range SkillCategories {
		if cat == s {
			return true
		}
	}
	return false
}

// ValidDifficulty reports whether d is one of the known difficulty levels.
func ValidDifficulty(d Difficulty) bool {
	for _, level := range DifficultyLevels {
		if level == d {
			return true
		}
	}
	return false
}

// Drill is a single exercise definition in the coach's drill library.
type Drill struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Duration        int        `json:"duration"` // minutes
	Skill           Skill      `json:"skill"`
	Difficulty      Difficulty `json:"difficulty"`
	Notes           string     `json:"notes,omitempty"`
	VideoURL        string     `json:"videoUrl,omitempty"` // optional http(s) link to a demo video
	AssignedPlayers []string   `json:"assignedPlayers"`    // player IDs
}

// DrillPresets are quick-add templates offered in the drill form.
var DrillPresets = []Drill{
	{Title: "3-Point Shooting", Duration: 10, Skill: SkillShooting, Difficulty: DifficultyIntermediate, Notes: "Focus on form and range.", AssignedPlayers: []string{}},
	{Title: "Full-Court Press", Duration: 12, Skill: SkillDefense, Difficulty: DifficultyAdvanced, Notes: "High intensity, quick transitions.", AssignedPlayers: []string{}},
	{Title: "Dribble Drills", Duration: 8, Skill: SkillDribbling, Difficulty: DifficultyBeginner, Notes: "Work on both hands.", AssignedPlayers: []string{}},
}

// DefaultDrillLibrary returns the seed library used on first run, before the
// coach has saved anything. IDs are assigned at seeding time.
func DefaultDrillLibrary() []Drill {
	return []Drill{
		{Title: "Spot Shooting", Duration: 10, Skill: SkillShooting, Difficulty: DifficultyBeginner, Notes: "Focus on form and follow-through.", AssignedPlayers: []string{}},
		{Title: "Closeout Defense", Duration: 8, Skill: SkillDefense, Difficulty: DifficultyIntermediate, Notes: "Stay low and quick, contest without fouling.", AssignedPlayers: []string{}},
		{Title: "Pick & Roll Passing", Duration: 12, Skill: SkillPassing, Difficulty: DifficultyIntermediate, Notes: "Timing is key, hit the roller or the pop man.", AssignedPlayers: []string{}},
		{Title: "Ball Handling Circuit", Duration: 15, Skill: SkillDribbling, Difficulty: DifficultyBeginner, Notes: "Keep eyes up, work on both hands.", AssignedPlayers: []string{}},
		{Title: "Transition Defense", Duration: 10, Skill: SkillDefense, Difficulty: DifficultyAdvanced, Notes: "Sprint back quickly, identify threats.", AssignedPlayers: []string{}},
		{Title: "Free Throw Routine", Duration: 7, Skill: SkillShooting, Difficulty: DifficultyBeginner, Notes: "Simulate game pressure, consistent routine.", AssignedPlayers: []string{}},
		{Title: "Fast Break Drills", Duration: 10, Skill: SkillStrategy, Difficulty: DifficultyIntermediate, Notes: "Numbers advantage, outlet passes.", AssignedPlayers: []string{}},
		{Title: "Full Court Press Break", Duration: 10, Skill: SkillStrategy, Difficulty: DifficultyAdvanced, Notes: "Stay composed, use sideline and middle.", AssignedPlayers: []string{}},
	}
}
