package llm

import (
	"fmt"
	"os"
	"time"
)

// Config holds provider configuration for both stepdeck roles.
//
// The tool deliberately runs two separately configured clients: concept
// listing wants a cheap general-purpose model, question writing wants a
// reasoning-grade model, usually reached through a routing gateway.
type Config struct {
	// Concepts configures the provider used to list high-yield concepts.
	Concepts RoleConfig

	// Questions configures the provider used to write MCQs.
	Questions RoleConfig

	Retry RetryConfig

	// Timeout bounds a single request including retries. Default: 120s
	// (reasoning models are slow).
	Timeout time.Duration
}

// RoleConfig selects and configures one provider.
type RoleConfig struct {
	// Provider is one of "openai", "openrouter", "anthropic", "gemini", "mock".
	Provider string

	// Model is a friendly name or a raw provider model ID.
	Model string

	APIKey string

	// BaseURL overrides the endpoint for OpenAI-compatible APIs.
	BaseURL string
}

// RetryConfig tunes backoff for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig mirrors the stock setup: GPT-4o for concept listing,
// DeepSeek R1 through OpenRouter for question writing.
func DefaultConfig() Config {
	return Config{
		Concepts: RoleConfig{
			Provider: "openai",
			Model:    "gpt-4o",
		},
		Questions: RoleConfig{
			Provider: "openrouter",
			Model:    "deepseek/deepseek-r1",
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 120 * time.Second,
	}
}

// ConfigFromEnv layers environment overrides onto the defaults.
//
// Role selection: STEPDECK_CONCEPTS_PROVIDER / STEPDECK_CONCEPTS_MODEL and
// STEPDECK_QUESTIONS_PROVIDER / STEPDECK_QUESTIONS_MODEL.
// API keys come from the standard provider variables.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	applyRoleEnv(&cfg.Concepts, "STEPDECK_CONCEPTS")
	applyRoleEnv(&cfg.Questions, "STEPDECK_QUESTIONS")
	return cfg
}

func applyRoleEnv(rc *RoleConfig, prefix string) {
	if p := os.Getenv(prefix + "_PROVIDER"); p != "" {
		rc.Provider = p
	}
	if m := os.Getenv(prefix + "_MODEL"); m != "" {
		rc.Model = m
	}
	if u := os.Getenv(prefix + "_BASE_URL"); u != "" {
		rc.BaseURL = u
	}
	rc.APIKey = KeyFromEnv(rc.Provider)
}

// KeyFromEnv resolves the API key for a provider from its conventional
// environment variable.
func KeyFromEnv(provider string) string {
	switch provider {
	case "openai":
		return os.Getenv("OPENAI_API_KEY")
	case "openrouter":
		return os.Getenv("OPENROUTER_API_KEY")
	case "anthropic":
		return os.Getenv("ANTHROPIC_API_KEY")
	case "gemini":
		return os.Getenv("GEMINI_API_KEY")
	}
	return ""
}

// Validate checks that both roles name a known provider with a key.
func (c Config) Validate() error {
	if err := c.Concepts.validate("concepts"); err != nil {
		return err
	}
	return c.Questions.validate("questions")
}

func (rc RoleConfig) validate(role string) error {
	switch rc.Provider {
	case "openai", "openrouter", "anthropic", "gemini":
		if rc.APIKey == "" {
			return fmt.Errorf("%s role: API key for provider %q is not set", role, rc.Provider)
		}
	case "mock":
		// No key needed.
	default:
		return fmt.Errorf("%s role: unknown LLM provider %q", role, rc.Provider)
	}
	return nil
}
