// Package llm talks to hosted language models for coaching text. Every
// provider returns JSON that has been checked against the request schema.
package llm

import (
	"context"
	"encoding/json"
)

// Provider completes a single prompt.
type Provider interface {
	// Complete sends req and returns the model's output. When req.Schema
	// is set the output has already been validated against it.
	Complete(ctx context.Context, req Request) (*Response, error)

	// Name identifies the backend, e.g. "anthropic".
	Name() string

	// Model returns the model identifier requests are sent to.
	Model() string
}

// Request is a single-turn prompt.
type Request struct {
	System string
	Prompt string

	// Schema, when set, asks the provider for JSON matching it.
	Schema *Schema

	MaxTokens   int
	Temperature float64
}

// Response holds a provider's output.
type Response struct {
	// Content is the JSON object when a schema was requested, otherwise
	// the raw text.
	Content json.RawMessage
	Usage   Usage
	Model   string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Total returns input plus output tokens.
func (u Usage) Total() int {
	return u.InputTokens + u.OutputTokens
}

// resolveModel maps a short alias to a full model ID. Unknown names pass
// through so callers can use exact IDs.
func resolveModel(name string, aliases map[string]string) string {
	if id, ok := aliases[name]; ok {
		return id
	}
	return name
}
