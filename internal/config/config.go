package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds the engine's environment configuration.
type Config struct {
	// OpenAIAPIKey gates the LLM fallback tier. Empty is not an error:
	// the engine runs on the local tier alone.
	OpenAIAPIKey    string `env:"OPENAI_API_KEY"`
	OpenAIModel     string `env:"OPENAI_MODEL" env-default:"gpt-4o-mini"`
	OpenAIMaxTokens int    `env:"OPENAI_MAX_TOKENS" env-default:"1000"`
}

// Load reads configuration from environment variables with defaults.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}
	return &cfg, nil
}

// FallbackEnabled reports whether the LLM fallback tier is configured.
func (c *Config) FallbackEnabled() bool {
	return c.OpenAIAPIKey != ""
}
