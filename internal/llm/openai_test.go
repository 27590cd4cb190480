package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestChat(t *testing.T, handler http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "test-key", Model: "gpt-4o-mini", BaseURL: server.URL + "/v1"})
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	return p
}

func chatCompletion(content, finish string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1234567890,
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": content},
			"finish_reason": finish,
		}},
		"usage": map[string]any{"prompt_tokens": 40, "completion_tokens": 25, "total_tokens": 65},
	}
}

func TestOpenAIProvider_HappyPath(t *testing.T) {
	var got map[string]any
	p := newTestChat(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatCompletion(`{"goal":"Mate in two.","explanation":"Back rank."}`, "stop"))
	})

	resp, err := p.Complete(context.Background(), Request{
		System:    "You are a chess coach.",
		Prompt:    "Explain.",
		Schema:    testSchema(t),
		MaxTokens: 256,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Usage.InputTokens != 40 || resp.Usage.OutputTokens != 25 {
		t.Fatalf("usage = %+v", resp.Usage)
	}

	msgs, _ := got["messages"].([]any)
	if len(msgs) != 2 {
		t.Fatalf("sent %d messages, want system + user", len(msgs))
	}
	if _, ok := got["response_format"]; !ok {
		t.Error("response_format not sent with schema")
	}
}

func TestOpenAIProvider_Truncated(t *testing.T) {
	p := newTestChat(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatCompletion(`{"goal":`, "length"))
	})
	_, err := p.Complete(context.Background(), Request{Prompt: "x", MaxTokens: 3})
	if !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
}

func TestOpenAIProvider_StatusErrors(t *testing.T) {
	tests := []struct {
		status int
		kind   error
	}{
		{http.StatusTooManyRequests, ErrRateLimited},
		{http.StatusBadGateway, ErrUnavailable},
	}
	for _, tt := range tests {
		p := newTestChat(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(tt.status)
			json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]any{"type": "server_error", "message": "nope"},
			})
		})
		_, err := p.Complete(context.Background(), Request{Prompt: "x", MaxTokens: 100})
		if !errors.Is(err, tt.kind) {
			t.Errorf("status %d: expected %v, got %v", tt.status, tt.kind, err)
		}
	}
}

func TestOpenRouterProviderDefaults(t *testing.T) {
	p, err := NewOpenRouterProvider(OpenAIConfig{APIKey: "k", Model: "google/gemini-2.5-flash"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name() != "openrouter" || p.Model() != "google/gemini-2.5-flash" {
		t.Fatalf("name/model = %s/%s", p.Name(), p.Model())
	}
	if _, err := NewOpenRouterProvider(OpenAIConfig{}); err == nil {
		t.Fatal("expected error without API key")
	}
}
