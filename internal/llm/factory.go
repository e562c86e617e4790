package llm

import (
	"context"
	"fmt"

	"github.com/raunakm/stepdeck/internal/store"
)

// NewProvider builds a Provider for one role, wrapped with logging and
// retry middleware: caller → retry → logging → base.
func NewProvider(ctx context.Context, rc RoleConfig, retry RetryConfig, eventRepo store.EventRepo) (Provider, error) {
	var base Provider
	var err error

	switch rc.Provider {
	case "openai":
		base, err = NewOpenAIProvider(rc)
	case "openrouter":
		base, err = NewOpenRouterProvider(rc)
	case "anthropic":
		base, err = NewAnthropicProvider(rc)
	case "gemini":
		base, err = NewGeminiProvider(ctx, rc)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", rc.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", rc.Provider, err)
	}

	return WithRetry(WithLogging(base, eventRepo), retry), nil
}

// Providers holds the two configured role providers.
type Providers struct {
	// Concepts lists high-yield concepts per subject.
	Concepts Provider

	// Questions writes one MCQ per concept.
	Questions Provider
}

// NewProviders builds both role providers from a Config.
func NewProviders(ctx context.Context, cfg Config, eventRepo store.EventRepo) (*Providers, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	concepts, err := NewProvider(ctx, cfg.Concepts, cfg.Retry, eventRepo)
	if err != nil {
		return nil, fmt.Errorf("concepts role: %w", err)
	}

	questions, err := NewProvider(ctx, cfg.Questions, cfg.Retry, eventRepo)
	if err != nil {
		return nil, fmt.Errorf("questions role: %w", err)
	}

	return &Providers{Concepts: concepts, Questions: questions}, nil
}
