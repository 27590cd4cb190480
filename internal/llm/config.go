package llm

import (
	"fmt"
	"os"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderNone       = "none"
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects the backend. "none" disables model calls and the
	// coach falls back to its templates.
	Provider string `yaml:"provider"`

	Anthropic  AnthropicConfig `yaml:"anthropic"`
	OpenAI     OpenAIConfig    `yaml:"openai"`
	Gemini     GeminiConfig    `yaml:"gemini"`
	OpenRouter OpenAIConfig    `yaml:"openrouter"`
	Retry      RetryConfig     `yaml:"retry"`

	// Timeout bounds a whole request, retries included.
	Timeout time.Duration `yaml:"timeout"`
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey  string `yaml:"-"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

// OpenAIConfig configures OpenAI and OpenAI-compatible endpoints.
type OpenAIConfig struct {
	APIKey  string `yaml:"-"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string `yaml:"-"`
	Model  string `yaml:"model"`
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int           `yaml:"max_attempts"`
	InitialWait time.Duration `yaml:"initial_wait"`
	MaxWait     time.Duration `yaml:"max_wait"`
	Multiplier  float64       `yaml:"multiplier"`
}

// DefaultConfig returns a Config with model calls disabled.
func DefaultConfig() Config {
	return Config{
		Provider:   ProviderNone,
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenAIConfig{Model: "google/gemini-2.5-flash"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 30 * time.Second,
	}
}

// ApplyEnv overrides cfg with TACTIZ_* environment variables. API keys are
// only ever read from the environment.
func ApplyEnv(cfg *Config) {
	set := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	set(&cfg.Provider, "TACTIZ_LLM_PROVIDER")

	set(&cfg.Anthropic.APIKey, "TACTIZ_ANTHROPIC_API_KEY")
	set(&cfg.Anthropic.Model, "TACTIZ_ANTHROPIC_MODEL")

	set(&cfg.OpenAI.APIKey, "TACTIZ_OPENAI_API_KEY")
	set(&cfg.OpenAI.Model, "TACTIZ_OPENAI_MODEL")
	set(&cfg.OpenAI.BaseURL, "TACTIZ_OPENAI_BASE_URL")

	set(&cfg.Gemini.APIKey, "TACTIZ_GEMINI_API_KEY")
	set(&cfg.Gemini.Model, "TACTIZ_GEMINI_MODEL")

	set(&cfg.OpenRouter.APIKey, "TACTIZ_OPENROUTER_API_KEY")
	set(&cfg.OpenRouter.Model, "TACTIZ_OPENROUTER_MODEL")
}

// Discover picks a provider from the vendors' standard API key variables
// when none was configured. It reports whether one was found.
func Discover(cfg *Config) bool {
	if cfg.Provider != "" && cfg.Provider != ProviderNone {
		return true
	}
	probes := []struct {
		env      string
		provider string
		key      *string
	}{
		{"ANTHROPIC_API_KEY", ProviderAnthropic, &cfg.Anthropic.APIKey},
		{"OPENAI_API_KEY", ProviderOpenAI, &cfg.OpenAI.APIKey},
		{"GEMINI_API_KEY", ProviderGemini, &cfg.Gemini.APIKey},
		{"OPENROUTER_API_KEY", ProviderOpenRouter, &cfg.OpenRouter.APIKey},
	}
	for _, p := range probes {
		if k := os.Getenv(p.env); k != "" {
			cfg.Provider = p.provider
			*p.key = k
			return true
		}
	}
	return false
}

// Validate checks that the selected provider has its API key.
func (c Config) Validate() error {
	var key, env string
	switch c.Provider {
	case "", ProviderNone, ProviderMock:
		return nil
	case ProviderAnthropic:
		key, env = c.Anthropic.APIKey, "TACTIZ_ANTHROPIC_API_KEY"
	case ProviderOpenAI:
		key, env = c.OpenAI.APIKey, "TACTIZ_OPENAI_API_KEY"
	case ProviderGemini:
		key, env = c.Gemini.APIKey, "TACTIZ_GEMINI_API_KEY"
	case ProviderOpenRouter:
		key, env = c.OpenRouter.APIKey, "TACTIZ_OPENROUTER_API_KEY"
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("%s is required for the %s provider", env, c.Provider)
	}
	return nil
}
