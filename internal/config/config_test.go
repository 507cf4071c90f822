package config

import (
	"os"
	"testing"
)

// TestLoad_Defaults tests defaults with no environment set
func TestLoad_Defaults(t *testing.T) {
	// t.Setenv registers restoration; Unsetenv then clears the variable for
	// the duration of the test.
	for _, key := range []string{"OPENAI_API_KEY", "OPENAI_MODEL", "OPENAI_MAX_TOKENS"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if cfg.OpenAIModel != "gpt-4o-mini" {
		t.Errorf("Expected default model gpt-4o-mini, got %q", cfg.OpenAIModel)
	}
	if cfg.OpenAIMaxTokens != 1000 {
		t.Errorf("Expected default max tokens 1000, got %d", cfg.OpenAIMaxTokens)
	}
	if cfg.FallbackEnabled() {
		t.Error("Expected fallback disabled without an API key")
	}
}

// TestLoad_FromEnvironment tests explicit values
func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_MODEL", "gpt-4o")
	t.Setenv("OPENAI_MAX_TOKENS", "2000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if !cfg.FallbackEnabled() {
		t.Error("Expected fallback enabled with an API key")
	}
	if cfg.OpenAIModel != "gpt-4o" {
		t.Errorf("Expected model gpt-4o, got %q", cfg.OpenAIModel)
	}
	if cfg.OpenAIMaxTokens != 2000 {
		t.Errorf("Expected max tokens 2000, got %d", cfg.OpenAIMaxTokens)
	}
}
