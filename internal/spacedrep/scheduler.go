package spacedrep

import (
	"sort"
	"sync"
	"time"

	"github.com/abhisek/tactiz/internal/outcome"
	"github.com/abhisek/tactiz/internal/store"
)

// Scheduler manages review schedules for every known drill.
type Scheduler struct {
	mu        sync.Mutex
	schedules map[string]DrillSchedule
	strategy  Strategy
}

// NewScheduler creates a scheduler, loading schedules from the snapshot.
// A nil strategy selects SM-2 with default parameters.
func NewScheduler(snap *store.SnapshotData, strategy Strategy) *Scheduler {
	if strategy == nil {
		strategy = NewSM2(DefaultConfig())
	}
	s := &Scheduler{
		schedules: make(map[string]DrillSchedule),
		strategy:  strategy,
	}
	if snap != nil && snap.Schedules != nil {
		s.loadFromSnapshot(snap.Schedules)
	}
	return s
}

func (s *Scheduler) loadFromSnapshot(data *store.ScheduleSnapshotData) {
	for drillID, sd := range data.Drills {
		if sd == nil {
			continue
		}
		nextDue, err := time.Parse(time.RFC3339, sd.NextDueAt)
		if err != nil {
			continue
		}
		s.schedules[drillID] = DrillSchedule{
			DrillID:    drillID,
			NextDueAt:  nextDue,
			Interval:   max(sd.Interval, 0),
			Repetition: max(sd.Repetition, 0),
			EaseFactor: sd.EaseFactor,
		}
	}
}

// InitDrill starts tracking a newly created drill. An existing schedule is
// left untouched and returned.
func (s *Scheduler) InitDrill(drillID string, now time.Time) DrillSchedule {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ds, ok := s.schedules[drillID]; ok {
		return ds
	}
	ds := s.strategy.Initial(drillID, now)
	s.schedules[drillID] = ds
	return ds
}

// Record updates a drill's schedule after an attempt. Untracked drills are
// initialized first.
func (s *Scheduler) Record(drillID string, o outcome.Outcome, now time.Time) DrillSchedule {
	s.mu.Lock()
	defer s.mu.Unlock()

	ds, ok := s.schedules[drillID]
	if !ok {
		ds = s.strategy.Initial(drillID, now)
	}
	next := s.strategy.Next(ds, o, now)
	s.schedules[drillID] = next
	return next
}

// Get returns the schedule for a drill and whether it is tracked.
func (s *Scheduler) Get(drillID string) (DrillSchedule, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ds, ok := s.schedules[drillID]
	return ds, ok
}

// DueDrills returns drills due for review, sorted by most overdue first.
func (s *Scheduler) DueDrills(now time.Time) []DrillSchedule {
	s.mu.Lock()
	defer s.mu.Unlock()

	var due []DrillSchedule
	for _, ds := range s.schedules {
		if ds.IsDue(now) {
			due = append(due, ds)
		}
	}

	sort.Slice(due, func(i, j int) bool {
		oi, oj := due[i].OverdueDays(now), due[j].OverdueDays(now)
		if oi != oj {
			return oi > oj
		}
		return due[i].DrillID < due[j].DrillID
	})
	return due
}

// All returns a copy of every tracked schedule.
func (s *Scheduler) All() map[string]DrillSchedule {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make(map[string]DrillSchedule, len(s.schedules))
	for id, ds := range s.schedules {
		result[id] = ds
	}
	return result
}

// SnapshotData exports the current schedules for persistence.
func (s *Scheduler) SnapshotData() *store.ScheduleSnapshotData {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := &store.ScheduleSnapshotData{
		Drills: make(map[string]*store.ScheduleData, len(s.schedules)),
	}
	for id, ds := range s.schedules {
		data.Drills[id] = &store.ScheduleData{
			DrillID:    id,
			NextDueAt:  ds.NextDueAt.Format(time.RFC3339),
			Interval:   ds.Interval,
			Repetition: ds.Repetition,
			EaseFactor: ds.EaseFactor,
		}
	}
	return data
}
