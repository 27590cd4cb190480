package spacedrep

import (
	"math"
	"time"

	"github.com/abhisek/tactiz/internal/outcome"
)

// Day is the length of one scheduling interval unit.
const Day = 24 * time.Hour

// Strategy computes the next review schedule for a drill after an attempt.
// Implementations must be pure and return a new value.
type Strategy interface {
	Initial(drillID string, now time.Time) DrillSchedule
	Next(s DrillSchedule, o outcome.Outcome, now time.Time) DrillSchedule
}

// Config holds the SM-2 parameters.
type Config struct {
	InitialEase    float64 `yaml:"initial_ease"`
	MinEase        float64 `yaml:"min_ease"`
	FirstInterval  int     `yaml:"first_interval"`
	SecondInterval int     `yaml:"second_interval"`
	// FailInterval is the interval in days after a failed recall.
	FailInterval int `yaml:"fail_interval"`
	// PassGrade is the lowest grade that counts as successful recall.
	PassGrade int `yaml:"pass_grade"`
	// Grades maps each outcome to an SM-2 quality grade (0-5).
	Grades map[outcome.Outcome]int `yaml:"grades"`
}

// DefaultConfig returns the classic SM-2 parameters.
func DefaultConfig() Config {
	return Config{
		InitialEase:    2.5,
		MinEase:        1.3,
		FirstInterval:  1,
		SecondInterval: 6,
		FailInterval:   1,
		PassGrade:      3,
		Grades:         DefaultGrades(),
	}
}

// DefaultGrades returns the standard outcome to grade mapping.
func DefaultGrades() map[outcome.Outcome]int {
	return map[outcome.Outcome]int{
		outcome.Perfect:         5,
		outcome.SlowSuccess:     4,
		outcome.SuccessWithHint: 3,
		outcome.Failure:         1,
		outcome.Abandoned:       0,
	}
}

// SM2 is the SuperMemo-2 Strategy.
type SM2 struct {
	cfg Config
}

// NewSM2 creates an SM-2 strategy with the given parameters.
func NewSM2(cfg Config) *SM2 {
	if cfg.Grades == nil {
		cfg.Grades = DefaultGrades()
	}
	return &SM2{cfg: cfg}
}

// Initial returns the schedule of a freshly created drill: due now, no
// history, default ease.
func (s *SM2) Initial(drillID string, now time.Time) DrillSchedule {
	return DrillSchedule{
		DrillID:    drillID,
		NextDueAt:  now,
		EaseFactor: s.cfg.InitialEase,
	}
}

// Grade returns the SM-2 quality grade for an outcome. Unknown outcomes
// grade as 0.
func (s *SM2) Grade(o outcome.Outcome) int {
	return s.cfg.Grades[o]
}

// Next applies one attempt to the schedule.
//
// A pass grows the interval (1, 6, then previous interval times the
// pre-update ease). A fail restarts repetition at the fail interval. The
// ease factor is adjusted on both branches.
func (s *SM2) Next(sched DrillSchedule, o outcome.Outcome, now time.Time) DrillSchedule {
	grade := s.Grade(o)
	next := DrillSchedule{DrillID: sched.DrillID}

	if grade >= s.cfg.PassGrade {
		switch sched.Repetition {
		case 0:
			next.Interval = s.cfg.FirstInterval
		case 1:
			next.Interval = s.cfg.SecondInterval
		default:
			next.Interval = int(math.Round(float64(sched.Interval) * sched.EaseFactor))
		}
		next.Repetition = sched.Repetition + 1
	} else {
		next.Repetition = 0
		next.Interval = s.cfg.FailInterval
	}

	q := float64(5 - grade)
	next.EaseFactor = sched.EaseFactor + (0.1 - q*(0.08+q*0.02))
	if next.EaseFactor < s.cfg.MinEase {
		next.EaseFactor = s.cfg.MinEase
	}

	next.NextDueAt = now.Add(time.Duration(next.Interval) * Day)
	return next
}
