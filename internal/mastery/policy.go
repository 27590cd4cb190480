package mastery

import (
	"math"
	"time"

	"github.com/abhisek/tactiz/internal/outcome"
)

// UpdatePolicy computes the next skill state after an attempt.
// Implementations must be pure: the returned state is a new value and the
// input is left untouched.
type UpdatePolicy interface {
	Update(state SkillState, o outcome.Outcome, difficulty int, now time.Time) SkillState
}

// Config holds the tunables of the logistic skill model.
type Config struct {
	// RatingPerDifficulty converts drill difficulty (1-5) to a rating.
	RatingPerDifficulty float64 `yaml:"rating_per_difficulty"`
	MinRating           float64 `yaml:"min_rating"`
	MaxRating           float64 `yaml:"max_rating"`

	// Scale is the mastery/rating gap that corresponds to 10:1 expected odds.
	Scale float64 `yaml:"scale"`

	// KFactor is the maximum update step, reached at zero confidence.
	KFactor float64 `yaml:"k_factor"`
	// ConfidenceDamping is the share of KFactor removed at full confidence.
	ConfidenceDamping float64 `yaml:"confidence_damping"`

	// SurpriseThreshold is the |actual - expected| gap above which a result
	// counts as unexpected and lowers confidence.
	SurpriseThreshold float64 `yaml:"surprise_threshold"`
	ConfidencePenalty float64 `yaml:"confidence_penalty"`
	ConfidenceGain    float64 `yaml:"confidence_gain"`

	// StreakThreshold is the minimum actual score that extends the streak.
	StreakThreshold float64 `yaml:"streak_threshold"`

	// Scores maps each outcome to its actual score in [0, 1].
	Scores map[outcome.Outcome]float64 `yaml:"scores"`
}

// DefaultConfig returns the standard model parameters.
func DefaultConfig() Config {
	return Config{
		RatingPerDifficulty: 20,
		MinRating:           10,
		MaxRating:           100,
		Scale:               40,
		KFactor:             20,
		ConfidenceDamping:   0.5,
		SurpriseThreshold:   0.5,
		ConfidencePenalty:   0.1,
		ConfidenceGain:      0.05,
		StreakThreshold:     0.8,
		Scores:              DefaultScores(),
	}
}

// DefaultScores returns the standard outcome to actual-score mapping.
func DefaultScores() map[outcome.Outcome]float64 {
	return map[outcome.Outcome]float64{
		outcome.Perfect:         1.0,
		outcome.SlowSuccess:     0.85,
		outcome.SuccessWithHint: 0.5,
		outcome.Failure:         0.0,
		outcome.Abandoned:       0.0,
	}
}

// LogisticPolicy is an Elo-style UpdatePolicy: mastery moves toward the
// result by a confidence-damped step proportional to how surprising the
// result was given the drill's rating.
type LogisticPolicy struct {
	cfg Config
}

// NewLogisticPolicy creates a policy with the given parameters.
func NewLogisticPolicy(cfg Config) *LogisticPolicy {
	if cfg.Scores == nil {
		cfg.Scores = DefaultScores()
	}
	return &LogisticPolicy{cfg: cfg}
}

// Update applies one attempt to the state.
func (p *LogisticPolicy) Update(state SkillState, o outcome.Outcome, difficulty int, now time.Time) SkillState {
	rating := p.DrillRating(difficulty)
	expected := p.ExpectedScore(state.Mastery, rating)
	actual := p.ActualScore(o)

	k := p.cfg.KFactor * (1 - state.Confidence*p.cfg.ConfidenceDamping)
	delta := k * (actual - expected)

	next := SkillState{
		Mastery:         clamp(state.Mastery+delta, 0, 100),
		LastPracticedAt: now,
	}

	if math.Abs(actual-expected) > p.cfg.SurpriseThreshold {
		next.Confidence = state.Confidence - p.cfg.ConfidencePenalty
	} else {
		next.Confidence = state.Confidence + p.cfg.ConfidenceGain
	}
	next.Confidence = clamp(next.Confidence, 0, 1)

	if actual >= p.cfg.StreakThreshold {
		next.Streak = state.Streak + 1
	}

	return next
}

// DrillRating converts a drill difficulty to a rating on the mastery scale.
func (p *LogisticPolicy) DrillRating(difficulty int) float64 {
	return clamp(float64(difficulty)*p.cfg.RatingPerDifficulty, p.cfg.MinRating, p.cfg.MaxRating)
}

// ExpectedScore is the logistic probability of success for a learner at
// mastery m against a drill rated r.
func (p *LogisticPolicy) ExpectedScore(m, r float64) float64 {
	return 1 / (1 + math.Pow(10, -(m-r)/p.cfg.Scale))
}

// ActualScore returns the score credited for an outcome. Unknown outcomes
// score zero.
func (p *LogisticPolicy) ActualScore(o outcome.Outcome) float64 {
	return p.cfg.Scores[o]
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
