package llm

import "fmt"

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// OpenRouterProvider targets the OpenRouter gateway. OpenRouter speaks the
// OpenAI wire protocol, so the OpenAI implementation is reused with a
// different base URL. This is how stepdeck reaches reasoning models such
// as deepseek/deepseek-r1 for question writing.
type OpenRouterProvider struct {
	*OpenAIProvider
}

// NewOpenRouterProvider creates a provider for the OpenRouter API.
func NewOpenRouterProvider(cfg RoleConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter API key is required")
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultOpenRouterBaseURL
	}

	inner, err := NewOpenAIProvider(cfg)
	if err != nil {
		return nil, err
	}

	return &OpenRouterProvider{OpenAIProvider: inner}, nil
}
