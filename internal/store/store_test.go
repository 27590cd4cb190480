package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err, "open test store")
	t.Cleanup(func() { s.Close() })
	return s
}

func countRows(t *testing.T, s *Store, table string) (int, error) {
	t.Helper()
	var n int
	err := s.DB().QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n)
	return n, err
}

func pragma(t *testing.T, s *Store, name string) string {
	t.Helper()
	var v string
	require.NoError(t, s.DB().QueryRow("PRAGMA "+name).Scan(&v), name)
	return v
}

func TestOpenAppliesPragmas(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.DB().Ping())

	assert.Equal(t, "1", pragma(t, s, "foreign_keys"))
	assert.Equal(t, "1", pragma(t, s, "synchronous"))
	assert.Equal(t, "5000", pragma(t, s, "busy_timeout"))
}

func TestOpenFileUsesWAL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tactiz.db")
	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, "wal", pragma(t, s, "journal_mode"))
}

func TestMigrationCreatesTrainingTables(t *testing.T) {
	s := openTestStore(t)

	tables := []string{
		"games", "drills", "attempt_events",
		"llm_request_events", "snapshots", "global_sequence",
	}
	for _, table := range tables {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table,
		).Scan(&name)
		require.NoError(t, err, "table %s", table)
	}
}

func TestReopenKeepsDataAndSequence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tactiz.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	_, err = s.GameRepo().Add(ctx, GameRecord{ID: "g1", PGN: "1. e4 *"})
	require.NoError(t, err)
	require.NoError(t, s.EventRepo().AppendAttempt(ctx, AttemptEventData{DrillID: "d1", Theme: "tactics", Outcome: "failure"}))
	require.NoError(t, s.EventRepo().AppendAttempt(ctx, AttemptEventData{DrillID: "d1", Theme: "tactics", Outcome: "perfect"}))
	require.NoError(t, s.Close())

	// Migrations must be safe to run against an existing file.
	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	n, err := s.GameRepo().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	seq, err := s.EventRepo().LatestSequence(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), seq)

	next, err := s.seq.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), next)
}

func TestSequenceCounterIsMonotonic(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	cur, err := s.seq.Current(ctx)
	require.NoError(t, err)
	assert.Zero(t, cur)

	var prev int64
	for i := 0; i < 5; i++ {
		seq, err := s.seq.Next(ctx)
		require.NoError(t, err)
		assert.Equal(t, prev+1, seq)
		prev = seq
	}

	cur, err = s.seq.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), cur)
}

func TestSnapshotLatestEmpty(t *testing.T) {
	s := openTestStore(t)

	snap, err := s.SnapshotRepo().Latest(context.Background())
	require.NoError(t, err)
	assert.Nil(t, snap)
}

func TestSnapshotLatestPrefersLastSaved(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	// Same timestamp for every save; insertion order decides.
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	for _, m := range []float64{0.1, 0.4, 0.7} {
		require.NoError(t, repo.Save(ctx, &Snapshot{
			Sequence:  int64(m * 10),
			Timestamp: at,
			Data: SnapshotData{
				Version: 1,
				Skills: &SkillSnapshotData{Themes: map[string]*SkillStateData{
					"tactics": {Theme: "tactics", Mastery: m},
				}},
			},
		}))
	}

	snap, err := repo.Latest(ctx)
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, int64(7), snap.Sequence)
	assert.InDelta(t, 0.7, snap.Data.Skills.Themes["tactics"].Mastery, 1e-9)
}

func TestSnapshotPrune(t *testing.T) {
	tests := []struct {
		name  string
		saved int
		keep  int
		want  int
	}{
		{"trims oldest", 7, 5, 5},
		{"fewer than keep", 2, 5, 2},
		{"keep one", 4, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := openTestStore(t)
			repo := s.SnapshotRepo()
			ctx := context.Background()

			at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
			for i := 1; i <= tt.saved; i++ {
				require.NoError(t, repo.Save(ctx, &Snapshot{
					Sequence:  int64(i),
					Timestamp: at,
					Data:      SnapshotData{Version: 1},
				}))
			}

			require.NoError(t, repo.Prune(ctx, tt.keep))

			n, err := countRows(t, s, "snapshots")
			require.NoError(t, err)
			assert.Equal(t, tt.want, n)

			snap, err := repo.Latest(ctx)
			require.NoError(t, err)
			require.NotNil(t, snap)
			assert.Equal(t, int64(tt.saved), snap.Sequence)
		})
	}
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()

	t.Run("env override", func(t *testing.T) {
		want := filepath.Join(dir, "custom", "db.sqlite")
		t.Setenv("TACTIZ_DB", want)

		got, err := DefaultDBPath()
		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.DirExists(t, filepath.Dir(want))
	})

	t.Run("xdg data home", func(t *testing.T) {
		t.Setenv("TACTIZ_DB", "")
		t.Setenv("XDG_DATA_HOME", dir)

		got, err := DefaultDBPath()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "tactiz", "tactiz.db"), got)
	})
}
