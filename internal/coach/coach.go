// Package coach writes the goal and explanation shown with a drill, using
// a language model when one is configured.
package coach

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/abhisek/tactiz/internal/drillgen"
	"github.com/abhisek/tactiz/internal/llm"
)

// Source records where an annotation came from.
type Source string

const (
	SourceModel    Source = "model"
	SourceTemplate Source = "template"
)

// Annotation is the text attached to a drill.
type Annotation struct {
	Goal        string
	Explanation string
	Motifs      []string
	Source      Source
}

// Config controls the model request.
type Config struct {
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
}

// DefaultConfig returns recommended request settings.
func DefaultConfig() Config {
	return Config{MaxTokens: 512, Temperature: 0.4}
}

// Coach annotates drills. A nil provider always uses the templates.
type Coach struct {
	provider llm.Provider
	config   Config
	log      *zap.Logger
}

// New creates a Coach.
func New(provider llm.Provider, cfg Config, log *zap.Logger) *Coach {
	if log == nil {
		log = zap.NewNop()
	}
	return &Coach{provider: provider, config: cfg, log: log}
}

type annotationOutput struct {
	Goal        string   `json:"goal"`
	Explanation string   `json:"explanation"`
	Motifs      []string `json:"motifs"`
}

// Annotate returns the goal and explanation for d. Model failures are
// logged and answered with the template text, so Annotate never fails.
func (c *Coach) Annotate(ctx context.Context, d *drillgen.Drill, mastery float64) Annotation {
	fallback := Annotation{Goal: d.Goal, Explanation: d.Explanation, Source: SourceTemplate}
	if c.provider == nil {
		return fallback
	}

	a, err := c.ask(ctx, d, mastery)
	if err != nil {
		c.log.Warn("coach annotation failed, using template",
			zap.String("drill", d.ID),
			zap.Error(err),
		)
		return fallback
	}
	return a
}

// Apply annotates d in place.
func (c *Coach) Apply(ctx context.Context, d *drillgen.Drill, mastery float64) Source {
	a := c.Annotate(ctx, d, mastery)
	d.Goal = a.Goal
	d.Explanation = a.Explanation
	return a.Source
}

func (c *Coach) ask(ctx context.Context, d *drillgen.Drill, mastery float64) (Annotation, error) {
	ctx = llm.WithPurpose(ctx, "coach")

	resp, err := c.provider.Complete(ctx, llm.Request{
		System:      systemPrompt,
		Prompt:      buildPrompt(d, mastery),
		Schema:      annotationSchema,
		MaxTokens:   c.config.MaxTokens,
		Temperature: c.config.Temperature,
	})
	if err != nil {
		return Annotation{}, fmt.Errorf("coach request: %w", err)
	}

	var out annotationOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return Annotation{}, fmt.Errorf("parse coach response: %w", err)
	}

	out.Goal = strings.TrimSpace(out.Goal)
	out.Explanation = strings.TrimSpace(out.Explanation)
	if out.Goal == "" || out.Explanation == "" {
		return Annotation{}, fmt.Errorf("coach response has empty goal or explanation")
	}
	if spoils(out.Goal, d.PlayedMove) {
		return Annotation{}, fmt.Errorf("coach goal reveals the solution move %s", d.PlayedMove)
	}

	return Annotation{
		Goal:        out.Goal,
		Explanation: out.Explanation,
		Motifs:      out.Motifs,
		Source:      SourceModel,
	}, nil
}

// spoils reports whether goal names the move the learner has to find.
func spoils(goal, move string) bool {
	m := strings.TrimRight(move, "+#")
	if m == "" {
		return false
	}
	for _, f := range strings.FieldsFunc(goal, func(r rune) bool {
		return r == ' ' || r == ',' || r == '.' || r == '!' || r == '?' || r == '(' || r == ')'
	}) {
		if strings.TrimRight(f, "+#") == m {
			return true
		}
	}
	return false
}
