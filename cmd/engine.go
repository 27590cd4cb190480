package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/tactiz/internal/coach"
	"github.com/abhisek/tactiz/internal/drillgen"
	"github.com/abhisek/tactiz/internal/llm"
	"github.com/abhisek/tactiz/internal/mastery"
	"github.com/abhisek/tactiz/internal/outcome"
	"github.com/abhisek/tactiz/internal/spacedrep"
	"github.com/abhisek/tactiz/internal/store"
	"github.com/abhisek/tactiz/internal/training"
)

// openEngine opens the store and builds a training engine from the loaded
// config. The caller closes the returned store.
func openEngine(cmd *cobra.Command) (*training.Engine, *store.Store, error) {
	ctx := cmd.Context()
	s, err := openStore(cmd)
	if err != nil {
		return nil, nil, err
	}

	provider, err := llm.New(ctx, cfg.LLM, s.EventRepo(), logger)
	if err != nil {
		s.Close()
		return nil, nil, fmt.Errorf("LLM provider: %w", err)
	}
	var c *coach.Coach
	if provider != nil {
		c = coach.New(provider, cfg.Coach, logger)
	}

	e, err := training.New(ctx, s, training.Options{
		Config:     cfg.Training,
		Generator:  drillgen.New(cfg.Drills).WithLogger(logger),
		Classifier: outcome.NewClassifier(cfg.Outcome),
		Policy:     mastery.NewLogisticPolicy(cfg.Mastery),
		Strategy:   spacedrep.NewSM2(cfg.Schedule),
		Coach:      c,
		Logger:     logger,
	})
	if err != nil {
		s.Close()
		return nil, nil, err
	}
	return e, s, nil
}
