package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds environment-sourced settings. API key validity is a
// precondition checked by the backends themselves, not here; only presence is
// ever inspected.
type Config struct {
	OpenRouterAPIKey string `env:"OPENROUTER_API_KEY"`
	GeminiAPIKey     string `env:"GEMINI_API_KEY"`
	GoogleAPIKey     string `env:"GOOGLE_API_KEY"`
	Turns            int    `env:"IMITGAME_TURNS" envDefault:"3"`
	OutputDir        string `env:"IMITGAME_OUTPUT_DIR" envDefault:"output"`
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.Turns < 1 {
		return nil, fmt.Errorf("config: IMITGAME_TURNS must be >= 1, got %d", cfg.Turns)
	}
	return &cfg, nil
}

// GeminiKey returns the Gemini API key, falling back to GOOGLE_API_KEY.
func (c *Config) GeminiKey() string {
	if c.GeminiAPIKey != "" {
		return c.GeminiAPIKey
	}
	return c.GoogleAPIKey
}
