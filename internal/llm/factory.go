package llm

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/tactiz/internal/store"
)

// New builds the configured provider wrapped as caller → retry → audit →
// backend. It returns (nil, nil) when the provider is "none".
func New(ctx context.Context, cfg Config, repo store.EventRepo, log *zap.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		base Provider
		err  error
	)
	switch cfg.Provider {
	case "", ProviderNone:
		return nil, nil
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderMock:
		base = NewMock()
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	p := WithRetry(WithAudit(base, repo, log), cfg.Retry, log)
	if cfg.Timeout > 0 {
		p = withTimeout(p, cfg.Timeout)
	}
	return p, nil
}

// timeoutProvider bounds each call, retries included.
type timeoutProvider struct {
	inner   Provider
	timeout time.Duration
}

func withTimeout(p Provider, d time.Duration) Provider {
	return &timeoutProvider{inner: p, timeout: d}
}

func (t *timeoutProvider) Name() string  { return t.inner.Name() }
func (t *timeoutProvider) Model() string { return t.inner.Model() }

func (t *timeoutProvider) Complete(ctx context.Context, req Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.inner.Complete(ctx, req)
}
