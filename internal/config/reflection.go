package config

import "time"

// ReflectionConfig configures the Gemini call that produces reflections.
type ReflectionConfig struct {
	APIKey      string  `yaml:"api_key,omitempty"`
	Model       string  `yaml:"model"`
	Temperature float32 `yaml:"temperature"`
	TopP        float32 `yaml:"top_p"`
	Timeout     string  `yaml:"timeout,omitempty"` // empty = no timeout
}

// GetTimeout returns the reflection timeout, zero meaning none.
func (r ReflectionConfig) GetTimeout() time.Duration {
	if r.Timeout == "" {
		return 0
	}
	d, err := time.ParseDuration(r.Timeout)
	if err != nil || d < 0 {
		return 0
	}
	return d
}
