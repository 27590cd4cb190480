package llm

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/tactiz/internal/store"
)

type purposeKey struct{}

// WithPurpose labels requests made with ctx, e.g. "coach".
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the label set by WithPurpose, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok {
		return v
	}
	return "unknown"
}

// auditProvider records every request as an LLM request event.
type auditProvider struct {
	inner Provider
	repo  store.EventRepo
	log   *zap.Logger
}

// WithAudit wraps p so each call is appended to repo and logged. A nil
// repo only logs.
func WithAudit(p Provider, repo store.EventRepo, log *zap.Logger) Provider {
	if log == nil {
		log = zap.NewNop()
	}
	return &auditProvider{inner: p, repo: repo, log: log}
}

func (a *auditProvider) Name() string  { return a.inner.Name() }
func (a *auditProvider) Model() string { return a.inner.Model() }

func (a *auditProvider) Complete(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := a.inner.Complete(ctx, req)

	data := store.LLMRequestEventData{
		Provider:  a.inner.Name(),
		Model:     a.inner.Model(),
		Purpose:   PurposeFrom(ctx),
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}
	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		if resp.Model != "" {
			data.Model = resp.Model
		}
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}

	a.log.Debug("llm request",
		zap.String("provider", data.Provider),
		zap.String("model", data.Model),
		zap.String("purpose", data.Purpose),
		zap.Int64("latency_ms", data.LatencyMs),
		zap.Int("input_tokens", data.InputTokens),
		zap.Int("output_tokens", data.OutputTokens),
		zap.Bool("success", data.Success),
	)

	if a.repo != nil {
		// A failed audit write never fails the request.
		if logErr := a.repo.AppendLLMRequest(ctx, data); logErr != nil {
			a.log.Warn("failed to record llm request event", zap.Error(logErr))
		}
	}
	return resp, err
}
