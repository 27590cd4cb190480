package mastery

import (
	"sort"
	"sync"
	"time"

	"github.com/abhisek/tactiz/internal/outcome"
	"github.com/abhisek/tactiz/internal/store"
)

// BandChange records a theme moving between display bands.
type BandChange struct {
	Theme string
	From  Band
	To    Band
}

// Service tracks skill state for every theme the learner has touched.
type Service struct {
	mu     sync.Mutex
	skills map[string]SkillState
	policy UpdatePolicy
}

// NewService creates a mastery service, loading state from the snapshot.
// A nil policy selects the default LogisticPolicy.
func NewService(snap *store.SnapshotData, policy UpdatePolicy) *Service {
	if policy == nil {
		policy = NewLogisticPolicy(DefaultConfig())
	}
	s := &Service{
		skills: make(map[string]SkillState),
		policy: policy,
	}
	if snap != nil && snap.Skills != nil {
		s.loadFromSnapshot(snap.Skills)
	}
	return s
}

func (s *Service) loadFromSnapshot(data *store.SkillSnapshotData) {
	for theme, sd := range data.Themes {
		if sd == nil {
			continue
		}
		st := SkillState{
			Mastery:    clamp(sd.Mastery, 0, 100),
			Confidence: clamp(sd.Confidence, 0, 1),
			Streak:     max(sd.Streak, 0),
		}
		if sd.LastPracticedAt != "" {
			t, err := time.Parse(time.RFC3339, sd.LastPracticedAt)
			if err == nil {
				st.LastPracticedAt = t
			}
		}
		s.skills[theme] = st
	}
}

// Get returns the state for a theme, or the initial state if the theme has
// not been practiced yet.
func (s *Service) Get(theme string) SkillState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.skills[theme]; ok {
		return st
	}
	return InitialSkill()
}

// Record applies an attempt outcome to a theme and stores the new state.
// Returns the new state and a BandChange if the display band moved.
func (s *Service) Record(theme string, o outcome.Outcome, difficulty int, now time.Time) (SkillState, *BandChange) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.skills[theme]
	if !ok {
		prev = InitialSkill()
	}
	next := s.policy.Update(prev, o, difficulty, now)
	s.skills[theme] = next

	if prev.Band() == next.Band() {
		return next, nil
	}
	return next, &BandChange{Theme: theme, From: prev.Band(), To: next.Band()}
}

// Themes returns the practiced themes in alphabetical order.
func (s *Service) Themes() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	themes := make([]string, 0, len(s.skills))
	for theme := range s.skills {
		themes = append(themes, theme)
	}
	sort.Strings(themes)
	return themes
}

// All returns a copy of every tracked theme's state.
func (s *Service) All() map[string]SkillState {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make(map[string]SkillState, len(s.skills))
	for theme, st := range s.skills {
		result[theme] = st
	}
	return result
}

// SnapshotData exports the current skill state for persistence.
func (s *Service) SnapshotData() *store.SkillSnapshotData {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := &store.SkillSnapshotData{
		Themes: make(map[string]*store.SkillStateData, len(s.skills)),
	}
	for theme, st := range s.skills {
		sd := &store.SkillStateData{
			Theme:      theme,
			Mastery:    st.Mastery,
			Confidence: st.Confidence,
			Streak:     st.Streak,
		}
		if st.Practiced() {
			sd.LastPracticedAt = st.LastPracticedAt.Format(time.RFC3339)
		}
		data.Themes[theme] = sd
	}
	return data
}
