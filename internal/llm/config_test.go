package llm

import (
	"context"
	"testing"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"none", Config{Provider: ProviderNone}, false},
		{"empty", Config{}, false},
		{"mock", Config{Provider: ProviderMock}, false},
		{"anthropic without key", Config{Provider: ProviderAnthropic}, true},
		{"anthropic with key", Config{Provider: ProviderAnthropic, Anthropic: AnthropicConfig{APIKey: "k"}}, false},
		{"openai without key", Config{Provider: ProviderOpenAI}, true},
		{"gemini with key", Config{Provider: ProviderGemini, Gemini: GeminiConfig{APIKey: "k"}}, false},
		{"openrouter without key", Config{Provider: ProviderOpenRouter}, true},
		{"unknown", Config{Provider: "watson"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); (err != nil) != tt.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("TACTIZ_LLM_PROVIDER", "openai")
	t.Setenv("TACTIZ_OPENAI_API_KEY", "sk-test")
	t.Setenv("TACTIZ_OPENAI_MODEL", "gpt-4.1-mini")

	cfg := DefaultConfig()
	ApplyEnv(&cfg)

	if cfg.Provider != "openai" || cfg.OpenAI.APIKey != "sk-test" || cfg.OpenAI.Model != "gpt-4.1-mini" {
		t.Fatalf("env not applied: %+v", cfg)
	}
	if cfg.Anthropic.Model != "claude-haiku" {
		t.Errorf("unrelated default changed: %q", cfg.Anthropic.Model)
	}
}

func TestDiscover(t *testing.T) {
	for _, k := range []string{"ANTHROPIC_API_KEY", "OPENAI_API_KEY", "GEMINI_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}

	cfg := DefaultConfig()
	if Discover(&cfg) {
		t.Fatal("discovered a provider with no keys set")
	}

	t.Setenv("GEMINI_API_KEY", "g-key")
	cfg = DefaultConfig()
	if !Discover(&cfg) || cfg.Provider != ProviderGemini || cfg.Gemini.APIKey != "g-key" {
		t.Fatalf("discover = %+v", cfg)
	}

	cfg = DefaultConfig()
	cfg.Provider = ProviderMock
	if !Discover(&cfg) || cfg.Provider != ProviderMock {
		t.Fatal("explicit provider should win")
	}
}

func TestNewProvider(t *testing.T) {
	p, err := New(context.Background(), DefaultConfig(), nil, nil)
	if err != nil || p != nil {
		t.Fatalf("none provider: p=%v err=%v", p, err)
	}

	cfg := DefaultConfig()
	cfg.Provider = ProviderMock
	p, err = New(context.Background(), cfg, nil, nil)
	if err != nil {
		t.Fatalf("mock provider: %v", err)
	}
	if p.Name() != ProviderMock {
		t.Errorf("name = %q", p.Name())
	}

	cfg.Provider = ProviderAnthropic
	if _, err := New(context.Background(), cfg, nil, nil); err == nil {
		t.Fatal("expected missing key error")
	}
}
