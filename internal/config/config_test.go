package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stepdeck.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	// No config file anywhere: chdir into an empty dir and point the
	// search paths somewhere empty too.
	t.Chdir(t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.OutputDir != "decks" {
		t.Errorf("expected default output dir, got %q", cfg.OutputDir)
	}
	if cfg.Retrieval.Enabled {
		t.Error("retrieval should default off")
	}
	if cfg.Retrieval.TopK != 4 {
		t.Errorf("expected default top_k 4, got %d", cfg.Retrieval.TopK)
	}
	if cfg.Retry.MaxAttempts != 3 {
		t.Errorf("expected default max_attempts 3, got %d", cfg.Retry.MaxAttempts)
	}
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
output_dir: /tmp/decks
retrieval:
  enabled: true
  corpus_path: /tmp/corpus.db
  top_k: 8
questions:
  provider: anthropic
  model: claude-sonnet-4-5
retry:
  max_attempts: 5
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.OutputDir != "/tmp/decks" {
		t.Errorf("output_dir not loaded: %q", cfg.OutputDir)
	}
	if !cfg.Retrieval.Enabled || cfg.Retrieval.TopK != 8 {
		t.Errorf("retrieval not loaded: %+v", cfg.Retrieval)
	}
	if cfg.Questions.Provider != "anthropic" {
		t.Errorf("questions provider not loaded: %q", cfg.Questions.Provider)
	}
	if cfg.Retry.MaxAttempts != 5 {
		t.Errorf("retry not loaded: %+v", cfg.Retry)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestLoad_InvalidProvider(t *testing.T) {
	path := writeConfig(t, "concepts:\n  provider: magic\n")
	if _, err := Load(path); err == nil {
		t.Error("expected validation error for unknown provider")
	}
}

func TestLoad_InvalidTopK(t *testing.T) {
	path := writeConfig(t, "retrieval:\n  top_k: 100\n")
	if _, err := Load(path); err == nil {
		t.Error("expected validation error for out-of-range top_k")
	}
}

func TestLLM_FileOverrides(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("ANTHROPIC_API_KEY", "ak-test")

	path := writeConfig(t, `
questions:
  provider: anthropic
  model: claude-sonnet-4-5
retry:
  max_attempts: 7
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	llmCfg := cfg.LLM()
	if llmCfg.Questions.Provider != "anthropic" {
		t.Errorf("provider override not applied: %q", llmCfg.Questions.Provider)
	}
	if llmCfg.Questions.Model != "claude-sonnet-4-5" {
		t.Errorf("model override not applied: %q", llmCfg.Questions.Model)
	}
	if llmCfg.Questions.APIKey != "ak-test" {
		t.Errorf("API key should re-resolve for the overridden provider: %q", llmCfg.Questions.APIKey)
	}
	// Concepts role untouched: still the OpenAI default.
	if llmCfg.Concepts.Provider != "openai" || llmCfg.Concepts.APIKey != "sk-test" {
		t.Errorf("concepts role should keep env defaults: %+v", llmCfg.Concepts)
	}
	if llmCfg.Retry.MaxAttempts != 7 {
		t.Errorf("retry override not applied: %d", llmCfg.Retry.MaxAttempts)
	}
}
