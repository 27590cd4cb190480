// Package training runs the drill loop: generate a drill from the stored
// game pool, classify the learner's attempt, update mastery and the review
// schedule, and persist the result.
package training

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/tactiz/internal/coach"
	"github.com/abhisek/tactiz/internal/drillgen"
	"github.com/abhisek/tactiz/internal/gamepool"
	"github.com/abhisek/tactiz/internal/mastery"
	"github.com/abhisek/tactiz/internal/outcome"
	"github.com/abhisek/tactiz/internal/spacedrep"
	"github.com/abhisek/tactiz/internal/store"
)

// SnapshotVersion is written into every learner snapshot.
const SnapshotVersion = 1

// Store is the persistence the engine runs on. *store.Store satisfies it.
type Store interface {
	GameRepo() store.GameRepo
	DrillRepo() store.DrillRepo
	EventRepo() store.EventRepo
	SnapshotRepo() store.SnapshotRepo
}

// Options wires the engine's collaborators. Nil fields get defaults; a nil
// Coach keeps the generator's template text.
type Options struct {
	Config     Config
	Generator  *drillgen.Generator
	Classifier *outcome.Classifier
	Policy     mastery.UpdatePolicy
	Strategy   spacedrep.Strategy
	Coach      *coach.Coach
	Logger     *zap.Logger
	Now        func() time.Time
}

// Engine ties the drill generator, classifier, skill model and scheduler to
// the store.
type Engine struct {
	games     store.GameRepo
	drills    store.DrillRepo
	events    store.EventRepo
	snapshots store.SnapshotRepo

	gen        *drillgen.Generator
	classifier *outcome.Classifier
	coach      *coach.Coach
	skills     *mastery.Service
	schedule   *spacedrep.Scheduler

	cfg Config
	log *zap.Logger
	now func() time.Time
}

// New creates an engine and restores learner state from the latest snapshot.
func New(ctx context.Context, st Store, opts Options) (*Engine, error) {
	if opts.Generator == nil {
		opts.Generator = drillgen.New(drillgen.DefaultConfig())
	}
	if opts.Classifier == nil {
		opts.Classifier = outcome.NewClassifier(outcome.DefaultConfig())
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Config == (Config{}) {
		opts.Config = DefaultConfig()
	}

	snap, err := st.SnapshotRepo().Latest(ctx)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	var data *store.SnapshotData
	if snap != nil {
		data = &snap.Data
	}

	return &Engine{
		games:      st.GameRepo(),
		drills:     st.DrillRepo(),
		events:     st.EventRepo(),
		snapshots:  st.SnapshotRepo(),
		gen:        opts.Generator,
		classifier: opts.Classifier,
		coach:      opts.Coach,
		skills:     mastery.NewService(data, opts.Policy),
		schedule:   spacedrep.NewScheduler(data, opts.Strategy),
		cfg:        opts.Config,
		log:        opts.Logger,
		now:        opts.Now,
	}, nil
}

// Import stores parsed games and returns how many were new.
func (e *Engine) Import(ctx context.Context, games []*gamepool.Game) (int, error) {
	added := 0
	for _, g := range games {
		rec := g.Record()
		rec.ImportedAt = e.now()
		ok, err := e.games.Add(ctx, rec)
		if err != nil {
			return added, fmt.Errorf("import game %s: %w", g.ID, err)
		}
		if ok {
			added++
		}
	}
	e.log.Info("games imported", zap.Int("parsed", len(games)), zap.Int("added", added))
	return added, nil
}

// Pool loads the stored game pool.
func (e *Engine) Pool(ctx context.Context) ([]*gamepool.Game, error) {
	recs, err := e.games.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load game pool: %w", err)
	}
	pool := make([]*gamepool.Game, len(recs))
	for i, rec := range recs {
		pool[i] = gamepool.FromRecord(rec)
	}
	return pool, nil
}

// Prepared is a generated drill after annotation and persistence.
type Prepared struct {
	Drill    *drillgen.Drill
	Source   coach.Source
	Schedule spacedrep.DrillSchedule
}

// NextDrill generates one drill, annotates it and stores it with a fresh
// review schedule. A drill whose theme is tilt-locked is returned as a
// *ThemeLockedError; under ModeAny the engine first tries to draw a
// different theme.
func (e *Engine) NextDrill(ctx context.Context, rng drillgen.Rand, mode drillgen.Mode, opts drillgen.Options) (*Prepared, error) {
	pool, err := e.Pool(ctx)
	if err != nil {
		return nil, err
	}

	for attempt := 1; ; attempt++ {
		d, err := e.gen.Generate(rng, pool, mode, opts)
		if err != nil {
			return nil, err
		}
		err = e.checkLock(ctx, d.Theme)
		if err == nil {
			prepared, err := e.prepare(ctx, []*drillgen.Drill{d})
			if err != nil {
				return nil, err
			}
			return prepared[0], e.SaveSnapshot(ctx)
		}
		if mode != drillgen.ModeAny || attempt >= e.cfg.LockedRetries || !errors.Is(err, ErrThemeLocked) {
			return nil, err
		}
		e.log.Debug("drill theme locked, regenerating",
			zap.String("theme", d.Theme),
			zap.Int("attempt", attempt),
		)
	}
}

// NextDrills generates n drills in parallel from seed. Drills on locked
// themes are dropped; if every drill was dropped the lock is returned.
func (e *Engine) NextDrills(ctx context.Context, seed uint64, mode drillgen.Mode, opts drillgen.Options, n int) ([]*Prepared, error) {
	pool, err := e.Pool(ctx)
	if err != nil {
		return nil, err
	}
	batch, err := e.gen.GenerateBatch(ctx, seed, pool, mode, opts, n)
	if err != nil {
		return nil, err
	}

	var (
		keep    []*drillgen.Drill
		lockErr error
		checked = make(map[string]error)
	)
	for _, d := range batch {
		err, ok := checked[d.Theme]
		if !ok {
			err = e.checkLock(ctx, d.Theme)
			checked[d.Theme] = err
		}
		switch {
		case err == nil:
			keep = append(keep, d)
		case errors.Is(err, ErrThemeLocked):
			lockErr = err
		default:
			return nil, err
		}
	}
	if len(keep) == 0 && lockErr != nil {
		return nil, lockErr
	}

	prepared, err := e.prepare(ctx, keep)
	if err != nil {
		return nil, err
	}
	if err := e.SaveSnapshot(ctx); err != nil {
		return nil, err
	}
	return prepared, nil
}

// prepare annotates drills concurrently, then stores them and starts their
// schedules.
func (e *Engine) prepare(ctx context.Context, drills []*drillgen.Drill) ([]*Prepared, error) {
	sources := make([]coach.Source, len(drills))
	if e.coach != nil {
		var eg errgroup.Group
		eg.SetLimit(max(e.cfg.AnnotateConcurrency, 1))
		for i, d := range drills {
			eg.Go(func() error {
				sources[i] = e.coach.Apply(ctx, d, e.skills.Get(d.Theme).Mastery)
				return nil
			})
		}
		_ = eg.Wait()
	} else {
		for i := range sources {
			sources[i] = coach.SourceTemplate
		}
	}

	now := e.now()
	prepared := make([]*Prepared, 0, len(drills))
	for i, d := range drills {
		if err := e.drills.Save(ctx, drillRecord(d, now)); err != nil {
			return nil, fmt.Errorf("save drill %s: %w", d.ID, err)
		}
		prepared = append(prepared, &Prepared{
			Drill:    d,
			Source:   sources[i],
			Schedule: e.schedule.InitDrill(d.ID, now),
		})
		e.log.Debug("drill ready",
			zap.String("drill", d.ID),
			zap.String("mode", string(d.Mode)),
			zap.String("theme", d.Theme),
			zap.String("source", string(sources[i])),
		)
	}
	return prepared, nil
}

// Attempt is a learner's try at a drill, or a give-up when Abandoned is set.
type Attempt struct {
	Correct   bool
	Duration  time.Duration
	Retries   int
	Abandoned bool
}

// Result is everything an attempt changed.
type Result struct {
	Drill      *store.DrillRecord
	Outcome    outcome.Outcome
	Skill      mastery.SkillState
	BandChange *mastery.BandChange
	Schedule   spacedrep.DrillSchedule

	// Locked is set when this attempt tripped the tilt lock for the
	// drill's theme.
	Locked      bool
	LockedUntil time.Time
}

// RecordAttempt classifies an attempt, feeds the outcome to the skill model
// and the scheduler, and persists the event and a new snapshot.
func (e *Engine) RecordAttempt(ctx context.Context, drillID string, a Attempt) (*Result, error) {
	rec, err := e.Drill(ctx, drillID)
	if err != nil {
		return nil, err
	}

	o := e.classifier.Abandon()
	if !a.Abandoned {
		o = e.classifier.Classify(outcome.Attempt{
			Correct:  a.Correct,
			Duration: a.Duration,
			Retries:  a.Retries,
		})
	}

	now := e.now()
	skill, change := e.skills.Record(rec.Theme, o, rec.Difficulty, now)
	sched := e.schedule.Record(rec.ID, o, now)

	recent, err := e.recentOutcomes(ctx, rec.Theme)
	if err != nil {
		return nil, err
	}
	locked := e.classifier.ShouldLockTheme(append(recent, o))

	err = e.events.AppendAttempt(ctx, store.AttemptEventData{
		DrillID:       rec.ID,
		Theme:         rec.Theme,
		Correct:       a.Correct && !a.Abandoned,
		DurationMs:    a.Duration.Milliseconds(),
		Retries:       a.Retries,
		Outcome:       string(o),
		MasteryAfter:  skill.Mastery,
		IntervalAfter: sched.Interval,
		Locked:        locked,
		Timestamp:     now,
	})
	if err != nil {
		return nil, fmt.Errorf("record attempt: %w", err)
	}

	res := &Result{
		Drill:      rec,
		Outcome:    o,
		Skill:      skill,
		BandChange: change,
		Schedule:   sched,
		Locked:     locked,
	}
	if locked {
		res.LockedUntil = now.Add(e.cfg.LockCooldown)
		e.log.Info("theme locked",
			zap.String("theme", rec.Theme),
			zap.Time("until", res.LockedUntil),
		)
	}
	return res, e.SaveSnapshot(ctx)
}

// Drill returns a stored drill or ErrDrillNotFound.
func (e *Engine) Drill(ctx context.Context, id string) (*store.DrillRecord, error) {
	rec, err := e.drills.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load drill: %w", err)
	}
	if rec == nil {
		return nil, fmt.Errorf("%w: %s", ErrDrillNotFound, id)
	}
	return rec, nil
}

// Due is a drill whose review is due.
type Due struct {
	Drill    *store.DrillRecord
	Schedule spacedrep.DrillSchedule
}

// DueDrills returns drills due for review, most overdue first. Schedules
// whose drill is no longer stored are skipped.
func (e *Engine) DueDrills(ctx context.Context) ([]Due, error) {
	var due []Due
	for _, ds := range e.schedule.DueDrills(e.now()) {
		rec, err := e.drills.Get(ctx, ds.DrillID)
		if err != nil {
			return nil, fmt.Errorf("load due drill: %w", err)
		}
		if rec == nil {
			continue
		}
		due = append(due, Due{Drill: rec, Schedule: ds})
	}
	return due, nil
}

// ThemeSkill pairs a theme with its skill state.
type ThemeSkill struct {
	Theme string
	mastery.SkillState
}

// Skills returns every practiced theme in alphabetical order.
func (e *Engine) Skills() []ThemeSkill {
	themes := e.skills.Themes()
	out := make([]ThemeSkill, len(themes))
	for i, theme := range themes {
		out[i] = ThemeSkill{Theme: theme, SkillState: e.skills.Get(theme)}
	}
	return out
}

// Locked returns the lock on theme, or nil when it may be drilled.
func (e *Engine) Locked(ctx context.Context, theme string) (*ThemeLockedError, error) {
	err := e.checkLock(ctx, theme)
	var locked *ThemeLockedError
	if errors.As(err, &locked) {
		return locked, nil
	}
	return nil, err
}

// SaveSnapshot persists the current learner state and prunes old snapshots.
func (e *Engine) SaveSnapshot(ctx context.Context) error {
	seq, err := e.events.LatestSequence(ctx)
	if err != nil {
		return fmt.Errorf("snapshot sequence: %w", err)
	}
	snap := &store.Snapshot{
		Sequence:  seq,
		Timestamp: e.now(),
		Data: store.SnapshotData{
			Version:   SnapshotVersion,
			Skills:    e.skills.SnapshotData(),
			Schedules: e.schedule.SnapshotData(),
		},
	}
	if err := e.snapshots.Save(ctx, snap); err != nil {
		return err
	}
	if e.cfg.SnapshotKeep > 0 {
		if err := e.snapshots.Prune(ctx, e.cfg.SnapshotKeep); err != nil {
			e.log.Warn("failed to prune snapshots", zap.Error(err))
		}
	}
	return nil
}

// checkLock returns a *ThemeLockedError while theme is inside the cooldown
// that follows a tilt run.
func (e *Engine) checkLock(ctx context.Context, theme string) error {
	recent, err := e.recentOutcomes(ctx, theme)
	if err != nil {
		return err
	}
	if !e.classifier.ShouldLockTheme(recent) {
		return nil
	}

	last, err := e.events.QueryAttempts(ctx, store.QueryOpts{Theme: theme, Limit: 1})
	if err != nil {
		return fmt.Errorf("query last attempt: %w", err)
	}
	if len(last) == 0 {
		return nil
	}
	until := last[0].Timestamp.Add(e.cfg.LockCooldown)
	if !e.now().Before(until) {
		return nil
	}
	return &ThemeLockedError{Theme: theme, Failures: len(recent), Until: until}
}

// recentOutcomes returns the outcomes the tilt check looks at, oldest first.
func (e *Engine) recentOutcomes(ctx context.Context, theme string) ([]outcome.Outcome, error) {
	raw, err := e.events.RecentOutcomes(ctx, theme, e.classifier.Config().TiltFailureLimit)
	if err != nil {
		return nil, fmt.Errorf("recent outcomes: %w", err)
	}
	out := make([]outcome.Outcome, len(raw))
	for i, s := range raw {
		out[i] = outcome.Outcome(s)
	}
	return out, nil
}

func drillRecord(d *drillgen.Drill, now time.Time) store.DrillRecord {
	return store.DrillRecord{
		ID:          d.ID,
		GameID:      d.SourceGameID,
		Mode:        string(d.Mode),
		Theme:       d.Theme,
		Position:    d.Position,
		Goal:        d.Goal,
		Solution:    d.Solution,
		Difficulty:  d.Difficulty,
		Explanation: d.Explanation,
		PlayedMove:  d.PlayedMove,
		Ply:         d.Ply,
		CreatedAt:   now,
	}
}
