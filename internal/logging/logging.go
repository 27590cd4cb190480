// Package logging builds the zap loggers used across tactiz.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config selects the log level and encoding.
type Config struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`
	// Encoding is "console" or "json".
	Encoding string `yaml:"encoding"`
}

// DefaultConfig keeps the CLI quiet unless something goes wrong.
func DefaultConfig() Config {
	return Config{Level: "warn", Encoding: "console"}
}

// New builds a logger writing to stderr. verbose forces the debug level.
func New(cfg Config, verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()

	level := zapcore.WarnLevel
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return nil, fmt.Errorf("log level %q: %w", cfg.Level, err)
		}
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	config.Level = zap.NewAtomicLevelAt(level)

	switch cfg.Encoding {
	case "", "console":
		config.Encoding = "console"
		config.EncoderConfig = zap.NewDevelopmentEncoderConfig()
		config.Sampling = nil
	case "json":
	default:
		return nil, fmt.Errorf("log encoding %q: must be console or json", cfg.Encoding)
	}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}
