package training

import "time"

// Config holds the engine's own tunables. The core components carry their
// own configs.
type Config struct {
	// LockCooldown is how long a tilted theme stays locked after the
	// failure that tripped it.
	LockCooldown time.Duration `yaml:"lock_cooldown"`

	// LockedRetries bounds how often ModeAny regenerates to get away from a
	// locked theme.
	LockedRetries int `yaml:"locked_retries"`

	// SnapshotKeep is the number of learner snapshots retained.
	SnapshotKeep int `yaml:"snapshot_keep"`

	// AnnotateConcurrency bounds parallel coach requests in NextDrills.
	AnnotateConcurrency int `yaml:"annotate_concurrency"`
}

// DefaultConfig returns the recommended engine settings.
func DefaultConfig() Config {
	return Config{
		LockCooldown:        30 * time.Minute,
		LockedRetries:       8,
		SnapshotKeep:        10,
		AnnotateConcurrency: 4,
	}
}
