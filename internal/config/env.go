package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// envOverrides lists the environment variables droplet reads.
type envOverrides struct {
	APIKey       string `env:"API_KEY"`
	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	Model        string `env:"DROPLET_MODEL"`
	LogLevel     string `env:"DROPLET_LOG_LEVEL"`
}

// applyEnvOverrides applies environment variable overrides. API_KEY takes
// precedence over GEMINI_API_KEY.
func (c *Config) applyEnvOverrides() error {
	var e envOverrides
	if err := env.Parse(&e); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	if e.GeminiAPIKey != "" {
		c.Reflection.APIKey = e.GeminiAPIKey
	}
	if e.APIKey != "" {
		c.Reflection.APIKey = e.APIKey
	}
	if e.Model != "" {
		c.Reflection.Model = e.Model
	}
	if e.LogLevel != "" {
		c.Logging.Level = e.LogLevel
	}
	return nil
}
