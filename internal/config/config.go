// Package config loads stepdeck settings from an optional stepdeck.yaml
// plus STEPDECK_* environment variables. API keys are environment-only.
package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/raunakm/stepdeck/internal/llm"
)

// Config is the full application configuration.
type Config struct {
	// OutputDir is where deck files are written.
	OutputDir string `mapstructure:"output_dir" validate:"required"`

	// PlanFile optionally overrides the built-in subject plan (YAML).
	PlanFile string `mapstructure:"plan_file"`

	Retrieval RetrievalConfig `mapstructure:"retrieval"`
	Concepts  RoleConfig      `mapstructure:"concepts"`
	Questions RoleConfig      `mapstructure:"questions"`
	Retry     RetryConfig     `mapstructure:"retry"`
}

// RetrievalConfig controls retrieval augmentation.
type RetrievalConfig struct {
	// Enabled turns passage retrieval on for question generation.
	Enabled bool `mapstructure:"enabled"`

	// CorpusPath is the corpus database file.
	CorpusPath string `mapstructure:"corpus_path"`

	// TopK is how many passages to feed the question prompt.
	TopK int `mapstructure:"top_k" validate:"gte=0,lte=20"`
}

// RoleConfig selects the provider and model for one LLM role.
type RoleConfig struct {
	Provider string `mapstructure:"provider" validate:"omitempty,oneof=openai openrouter anthropic gemini mock"`
	Model    string `mapstructure:"model"`
	BaseURL  string `mapstructure:"base_url" validate:"omitempty,url"`
}

// RetryConfig exposes the retry knobs that matter operationally.
type RetryConfig struct {
	MaxAttempts int `mapstructure:"max_attempts" validate:"gte=1,lte=10"`
}

// Load reads configuration. An explicit path loads that file; otherwise
// stepdeck.yaml is searched in the working directory and XDG config dir,
// and a missing file just means defaults plus environment.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("output_dir", "decks")
	v.SetDefault("retrieval.enabled", false)
	v.SetDefault("retrieval.corpus_path", "corpus.db")
	v.SetDefault("retrieval.top_k", 4)
	v.SetDefault("retry.max_attempts", 3)

	v.SetEnvPrefix("STEPDECK")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("stepdeck")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$XDG_CONFIG_HOME/stepdeck")
		v.AddConfigPath("$HOME/.config/stepdeck")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// LLM assembles the provider-layer configuration: environment defaults
// first, then file overrides for role provider, model and base URL.
func (c *Config) LLM() llm.Config {
	out := llm.ConfigFromEnv()

	applyRole(&out.Concepts, c.Concepts)
	applyRole(&out.Questions, c.Questions)

	if c.Retry.MaxAttempts > 0 {
		out.Retry.MaxAttempts = c.Retry.MaxAttempts
	}

	return out
}

func applyRole(dst *llm.RoleConfig, src RoleConfig) {
	if src.Provider != "" {
		dst.Provider = src.Provider
		dst.APIKey = llm.KeyFromEnv(src.Provider)
	}
	if src.Model != "" {
		dst.Model = src.Model
	}
	if src.BaseURL != "" {
		dst.BaseURL = src.BaseURL
	}
}
