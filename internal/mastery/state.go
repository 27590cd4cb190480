package mastery

import "time"

const (
	// InitialMastery is the mastery assigned the first time a theme is touched.
	InitialMastery = 40.0

	// InitialConfidence is the confidence assigned the first time a theme is touched.
	InitialConfidence = 0.2
)

// SkillState is the proficiency estimate for a single theme.
// Values are never mutated in place; UpdatePolicy returns a new value.
type SkillState struct {
	// Mastery is the proficiency estimate in [0, 100].
	Mastery float64 `json:"mastery"`
	// Confidence is the reliability of Mastery in [0, 1]. Higher confidence
	// damps the size of future updates.
	Confidence float64 `json:"confidence"`
	// Streak counts consecutive strong results (actual score >= 0.8).
	Streak int `json:"streak"`
	// LastPracticedAt is zero until the theme is first practiced.
	LastPracticedAt time.Time `json:"last_practiced_at"`
}

// InitialSkill returns the state for a theme that has never been practiced.
func InitialSkill() SkillState {
	return SkillState{
		Mastery:    InitialMastery,
		Confidence: InitialConfidence,
	}
}

// Practiced reports whether the theme has been practiced at least once.
func (s SkillState) Practiced() bool {
	return !s.LastPracticedAt.IsZero()
}
