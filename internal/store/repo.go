package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	After   int64     // sequence > After
	Before  int64     // sequence < Before
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
	Theme   string    // exact theme match when non-empty (attempts)
	Purpose string    // exact purpose match when non-empty (LLM requests)
}

// GameRecord is a stored source game. Games are immutable once imported.
type GameRecord struct {
	ID         string
	White      string
	Black      string
	Result     string
	TimeClass  string
	Event      string
	PGN        string
	ImportedAt time.Time
}

// GameRepo stores the raw game pool.
type GameRepo interface {
	// Add inserts a game. It reports false when a game with the same ID
	// already exists; the stored game is left untouched.
	Add(ctx context.Context, g GameRecord) (bool, error)

	// Get returns the game with the given ID, or nil if none exists.
	Get(ctx context.Context, id string) (*GameRecord, error)

	// All returns every stored game ordered by ID.
	All(ctx context.Context) ([]GameRecord, error)

	// Count returns the number of stored games.
	Count(ctx context.Context) (int, error)
}

// DrillRecord is a persisted drill.
type DrillRecord struct {
	ID          string
	GameID      string
	Mode        string
	Theme       string
	Position    string
	Goal        string
	Solution    []string
	Difficulty  int
	Explanation string
	PlayedMove  string
	Ply         int
	CreatedAt   time.Time
}

// DrillRepo stores generated drills.
type DrillRepo interface {
	// Save inserts or replaces a drill.
	Save(ctx context.Context, d DrillRecord) error

	// Get returns the drill with the given ID, or nil if none exists.
	Get(ctx context.Context, id string) (*DrillRecord, error)

	// Recent returns the most recently created drills, newest first.
	Recent(ctx context.Context, limit int) ([]DrillRecord, error)
}

// Snapshot represents a point-in-time capture of learner state.
type Snapshot struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	Data      SnapshotData
}

// SnapshotRepo manages learner state snapshots.
type SnapshotRepo interface {
	// Save stores a new snapshot.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the most recent snapshot, or nil if none exist.
	Latest(ctx context.Context) (*Snapshot, error)

	// Prune deletes all but the N most recent snapshots.
	Prune(ctx context.Context, keep int) error
}

// AttemptEventData captures one classified drill attempt.
type AttemptEventData struct {
	DrillID       string
	Theme         string
	Correct       bool
	DurationMs    int64
	Retries       int
	Outcome       string
	MasteryAfter  float64
	IntervalAfter int
	Locked        bool
	// Timestamp defaults to the current time when zero.
	Timestamp time.Time
}

// AttemptEventRecord is an AttemptEventData with its event metadata.
type AttemptEventRecord struct {
	ID       int
	Sequence int64
	AttemptEventData
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// LLMRequestEventRecord is an LLMRequestEventData with its event metadata.
type LLMRequestEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsage aggregates LLM requests for one purpose.
type LLMUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
	Failures     int
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendAttempt records a drill attempt event.
	AppendAttempt(ctx context.Context, data AttemptEventData) error

	// QueryAttempts returns attempt events matching opts, newest first.
	QueryAttempts(ctx context.Context, opts QueryOpts) ([]AttemptEventRecord, error)

	// RecentOutcomes returns up to n outcomes recorded for theme, oldest
	// first.
	RecentOutcomes(ctx context.Context, theme string, n int) ([]string, error)

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMRequests returns LLM request events matching opts, newest
	// first.
	QueryLLMRequests(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error)

	// LLMUsageByPurpose aggregates LLM requests per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error)

	// LatestSequence returns the highest sequence assigned so far, or 0.
	LatestSequence(ctx context.Context) (int64, error)
}
