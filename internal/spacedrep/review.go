package spacedrep

import "time"

// DrillSchedule holds the spaced repetition state for a single drill.
type DrillSchedule struct {
	DrillID    string    `json:"drill_id"`
	NextDueAt  time.Time `json:"next_due_at"`
	Interval   int       `json:"interval"`
	Repetition int       `json:"repetition"`
	EaseFactor float64   `json:"ease_factor"`
}

// IsDue returns true if the drill is due for review (at or past the due time).
func (ds DrillSchedule) IsDue(now time.Time) bool {
	return !now.Before(ds.NextDueAt)
}

// OverdueDays returns how many days past due the drill is. Returns 0 if not yet due.
func (ds DrillSchedule) OverdueDays(now time.Time) float64 {
	if now.Before(ds.NextDueAt) {
		return 0
	}
	return now.Sub(ds.NextDueAt).Hours() / 24.0
}

// IsOverdue returns true once the drill is past due by more than half of its
// current interval.
func (ds DrillSchedule) IsOverdue(now time.Time) bool {
	if !ds.IsDue(now) || ds.Interval == 0 {
		return false
	}
	grace := time.Duration(float64(ds.Interval) * 0.5 * float64(Day))
	return now.After(ds.NextDueAt.Add(grace))
}

// ReviewStatus describes a drill's review status for display.
type ReviewStatus string

const (
	ReviewNew     ReviewStatus = "new"
	ReviewNotDue  ReviewStatus = "not_due"
	ReviewDue     ReviewStatus = "due"
	ReviewOverdue ReviewStatus = "overdue"
)

// Status returns the review status for display.
func (ds DrillSchedule) Status(now time.Time) ReviewStatus {
	switch {
	case ds.Repetition == 0 && ds.Interval == 0:
		return ReviewNew
	case ds.IsOverdue(now):
		return ReviewOverdue
	case ds.IsDue(now):
		return ReviewDue
	default:
		return ReviewNotDue
	}
}

// DaysUntilDue returns the number of days until the next review.
// Returns 0 if already due.
func (ds DrillSchedule) DaysUntilDue(now time.Time) int {
	if ds.IsDue(now) {
		return 0
	}
	return int(ds.NextDueAt.Sub(now).Hours()/24.0) + 1
}
