package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// SnapshotData captures the full learner state at a point in time.
type SnapshotData struct {
	Version   int                   `json:"version"`
	Skills    *SkillSnapshotData    `json:"skills,omitempty"`
	Schedules *ScheduleSnapshotData `json:"schedules,omitempty"`
}

// SkillSnapshotData holds per-theme mastery state.
type SkillSnapshotData struct {
	Themes map[string]*SkillStateData `json:"themes"`
}

// SkillStateData is the serialized form of one theme's skill state.
type SkillStateData struct {
	Theme           string  `json:"theme"`
	Mastery         float64 `json:"mastery"`
	Confidence      float64 `json:"confidence"`
	Streak          int     `json:"streak"`
	LastPracticedAt string  `json:"last_practiced_at,omitempty"` // RFC3339
}

// ScheduleSnapshotData holds per-drill review schedules.
type ScheduleSnapshotData struct {
	Drills map[string]*ScheduleData `json:"drills"`
}

// ScheduleData is the serialized form of one drill's review schedule.
type ScheduleData struct {
	DrillID    string  `json:"drill_id"`
	NextDueAt  string  `json:"next_due_at"` // RFC3339
	Interval   int     `json:"interval"`
	Repetition int     `json:"repetition"`
	EaseFactor float64 `json:"ease_factor"`
}

// snapshotRepo implements SnapshotRepo on the snapshots table.
type snapshotRepo struct {
	db *sql.DB
}

func (r *snapshotRepo) Save(ctx context.Context, snap *Snapshot) error {
	data, err := json.Marshal(snap.Data)
	if err != nil {
		return fmt.Errorf("marshal snapshot data: %w", err)
	}

	query, args := builder().Insert("snapshots").
		Columns("sequence", "timestamp", "data").
		Values(snap.Sequence, snap.Timestamp.UnixMilli(), string(data)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (r *snapshotRepo) Latest(ctx context.Context) (*Snapshot, error) {
	query, args := builder().Select("id", "sequence", "timestamp", "data").
		From(entsql.Table("snapshots")).
		OrderBy(entsql.Desc("id")).
		Limit(1).
		Query()

	var (
		s    Snapshot
		ts   int64
		data string
	)
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&s.ID, &s.Sequence, &ts, &data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query latest snapshot: %w", err)
	}
	if err := json.Unmarshal([]byte(data), &s.Data); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot data: %w", err)
	}
	s.Timestamp = time.UnixMilli(ts)
	return &s, nil
}

func (r *snapshotRepo) Prune(ctx context.Context, keep int) error {
	// Ids grow with insertion, so the first id past the ones we keep is
	// the threshold even when timestamps collide.
	query, args := builder().Select("id").
		From(entsql.Table("snapshots")).
		OrderBy(entsql.Desc("id")).
		Offset(keep).
		Limit(1).
		Query()

	var threshold int64
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&threshold)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil // fewer than keep snapshots exist
		}
		return fmt.Errorf("query snapshots for prune: %w", err)
	}

	query, args = builder().Delete("snapshots").
		Where(entsql.LTE("id", threshold)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	return nil
}
