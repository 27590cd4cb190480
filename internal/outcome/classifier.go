package outcome

import "time"

const (
	// DefaultPerfectTime is the longest solve time that still counts as perfect.
	DefaultPerfectTime = 15 * time.Second

	// DefaultMaxRetriesAllowed is the retry count at which a wrong answer becomes final.
	DefaultMaxRetriesAllowed = 1

	// DefaultTiltFailureLimit is the run of trailing failures that locks a theme.
	DefaultTiltFailureLimit = 3
)

// Config holds the classifier thresholds.
type Config struct {
	PerfectTime       time.Duration `yaml:"perfect_time"`
	MaxRetriesAllowed int           `yaml:"max_retries_allowed"`
	TiltFailureLimit  int           `yaml:"tilt_failure_limit"`
}

// DefaultConfig returns the standard thresholds.
func DefaultConfig() Config {
	return Config{
		PerfectTime:       DefaultPerfectTime,
		MaxRetriesAllowed: DefaultMaxRetriesAllowed,
		TiltFailureLimit:  DefaultTiltFailureLimit,
	}
}

// Attempt is the raw telemetry of one try at a drill.
type Attempt struct {
	Correct  bool
	Duration time.Duration
	Retries  int
}

// Classifier maps attempt telemetry to an Outcome. It holds no state beyond
// its configuration and is safe for concurrent use.
type Classifier struct {
	cfg Config
}

// NewClassifier creates a classifier with the given thresholds.
func NewClassifier(cfg Config) *Classifier {
	return &Classifier{cfg: cfg}
}

// Config returns the classifier thresholds.
func (c *Classifier) Config() Config {
	return c.cfg
}

// Classify returns the outcome for a single attempt.
//
// A wrong answer is provisional (SuccessWithHint) until the retry budget is
// spent. Any retry caps a correct answer at SuccessWithHint regardless of time.
func (c *Classifier) Classify(a Attempt) Outcome {
	if !a.Correct {
		if a.Retries >= c.cfg.MaxRetriesAllowed {
			return Failure
		}
		return SuccessWithHint
	}
	if a.Retries > 0 {
		return SuccessWithHint
	}
	if a.Duration <= c.cfg.PerfectTime {
		return Perfect
	}
	return SlowSuccess
}

// Abandon returns the outcome recorded when the learner gives up on a drill.
func (c *Classifier) Abandon() Outcome {
	return Abandoned
}

// ShouldLockTheme reports whether the trailing outcomes are a run of at least
// TiltFailureLimit failures. Abandoned attempts break the run.
func (c *Classifier) ShouldLockTheme(recent []Outcome) bool {
	limit := c.cfg.TiltFailureLimit
	if limit <= 0 || len(recent) < limit {
		return false
	}
	for _, o := range recent[len(recent)-limit:] {
		if o != Failure {
			return false
		}
	}
	return true
}
