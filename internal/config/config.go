// Package config loads tactiz settings: built-in defaults, then an optional
// YAML file, then TACTIZ_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/tactiz/internal/coach"
	"github.com/abhisek/tactiz/internal/drillgen"
	"github.com/abhisek/tactiz/internal/llm"
	"github.com/abhisek/tactiz/internal/logging"
	"github.com/abhisek/tactiz/internal/mastery"
	"github.com/abhisek/tactiz/internal/outcome"
	"github.com/abhisek/tactiz/internal/spacedrep"
	"github.com/abhisek/tactiz/internal/training"
)

// Config holds all tactiz configuration.
type Config struct {
	// DBPath overrides the default database location.
	DBPath string `yaml:"db_path,omitempty"`

	Logging  logging.Config   `yaml:"logging"`
	Training training.Config  `yaml:"training"`
	Outcome  outcome.Config   `yaml:"outcome"`
	Mastery  mastery.Config   `yaml:"mastery"`
	Schedule spacedrep.Config `yaml:"schedule"`
	Drills   drillgen.Config  `yaml:"drills"`
	Coach    coach.Config     `yaml:"coach"`
	LLM      llm.Config       `yaml:"llm"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Logging:  logging.DefaultConfig(),
		Training: training.DefaultConfig(),
		Outcome:  outcome.DefaultConfig(),
		Mastery:  mastery.DefaultConfig(),
		Schedule: spacedrep.DefaultConfig(),
		Drills:   drillgen.DefaultConfig(),
		Coach:    coach.DefaultConfig(),
		LLM:      llm.DefaultConfig(),
	}
}

// DefaultPath returns the config file location: TACTIZ_CONFIG, else
// $XDG_CONFIG_HOME/tactiz/config.yaml, else ~/.config/tactiz/config.yaml.
func DefaultPath() (string, error) {
	if p := os.Getenv("TACTIZ_CONFIG"); p != "" {
		return p, nil
	}
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "tactiz", "config.yaml"), nil
}

// Load reads the YAML file at path over the defaults and applies
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	// Checks are code, not configuration.
	if cfg.Drills.Checks == nil {
		cfg.Drills.Checks = drillgen.DefaultChecks()
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the configuration as YAML. API keys are never written.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if p := os.Getenv("TACTIZ_DB"); p != "" {
		c.DBPath = p
	}
	if lvl := os.Getenv("TACTIZ_LOG_LEVEL"); lvl != "" {
		c.Logging.Level = lvl
	}
	llm.ApplyEnv(&c.LLM)
	llm.Discover(&c.LLM)
}

// Validate reports every setting that would make the engine misbehave.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Outcome.PerfectTime > 0, "outcome.perfect_time must be positive")
	check(c.Outcome.MaxRetriesAllowed >= 0, "outcome.max_retries_allowed must not be negative")
	check(c.Outcome.TiltFailureLimit >= 1, "outcome.tilt_failure_limit must be at least 1")

	check(c.Mastery.MinRating < c.Mastery.MaxRating, "mastery.min_rating must be below mastery.max_rating")
	check(c.Mastery.Scale > 0, "mastery.scale must be positive")
	check(c.Mastery.KFactor > 0, "mastery.k_factor must be positive")
	for _, o := range outcome.All() {
		s, ok := c.Mastery.Scores[o]
		check(ok && s >= 0 && s <= 1, "mastery.scores.%s must be in [0, 1]", o)
	}

	check(c.Schedule.MinEase > 0, "schedule.min_ease must be positive")
	check(c.Schedule.InitialEase >= c.Schedule.MinEase, "schedule.initial_ease must be at least schedule.min_ease")
	check(c.Schedule.FirstInterval >= 1 && c.Schedule.SecondInterval >= 1, "schedule intervals must be at least 1 day")

	check(c.Drills.MaxAttempts >= 1, "drills.max_attempts must be at least 1")
	check(c.Drills.MinPlies >= 1, "drills.min_plies must be at least 1")
	check(c.Drills.SolutionPlies >= 1, "drills.solution_plies must be at least 1")
	check(c.Drills.MinPlies >= c.Drills.SolutionPlies, "drills.min_plies must be at least drills.solution_plies")
	check(c.Drills.BaseDifficulty >= 1 && c.Drills.BaseDifficulty <= 5, "drills.base_difficulty must be in [1, 5]")
	for _, w := range c.Drills.ModeWeights {
		check(w.Mode.Valid() && w.Mode != drillgen.ModeAny, "drills.mode_weights: invalid mode %q", w.Mode)
		check(w.Weight >= 0, "drills.mode_weights: negative weight for %s", w.Mode)
	}

	check(c.Training.SnapshotKeep >= 0, "training.snapshot_keep must not be negative")

	if err := c.LLM.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
