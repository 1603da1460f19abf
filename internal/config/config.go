package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all droplet configuration.
type Config struct {
	// Reflection generation (Gemini)
	Reflection ReflectionConfig `yaml:"reflection"`

	// Exercise pacing
	Exercise ExerciseConfig `yaml:"exercise"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Reflection: ReflectionConfig{
			Model:       "gemini-3-flash-preview",
			Temperature: 0.8,
			TopP:        0.95,
		},

		Exercise: ExerciseConfig{
			TickInterval:  "50ms",
			FrameInterval: "80ms",
		},

		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// DefaultDir returns ~/.droplet, or .droplet when the home directory is
// unknown.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".droplet"
	}
	return filepath.Join(home, ".droplet")
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(DefaultDir(), "config.yaml")
}

// DefaultLogPath returns where the interactive UI writes its log.
func DefaultLogPath() string {
	return filepath.Join(DefaultDir(), "logs", "droplet.log")
}

// Load loads configuration from a YAML file and applies environment
// overrides. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// The file may carry an API key.
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Validate checks value ranges. All problems are reported together.
func (c *Config) Validate() error {
	var errs []error

	if c.Reflection.Temperature < 0 || c.Reflection.Temperature > 2 {
		errs = append(errs, fmt.Errorf("%w: reflection.temperature %v out of range [0,2]", ErrInvalid, c.Reflection.Temperature))
	}
	if c.Reflection.TopP <= 0 || c.Reflection.TopP > 1 {
		errs = append(errs, fmt.Errorf("%w: reflection.top_p %v out of range (0,1]", ErrInvalid, c.Reflection.TopP))
	}
	if err := checkDuration("reflection.timeout", c.Reflection.Timeout); err != nil {
		errs = append(errs, err)
	}
	if err := checkDuration("exercise.tick_interval", c.Exercise.TickInterval); err != nil {
		errs = append(errs, err)
	}
	if err := checkDuration("exercise.frame_interval", c.Exercise.FrameInterval); err != nil {
		errs = append(errs, err)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("%w: logging.level %q", ErrInvalid, c.Logging.Level))
	}
	switch c.Logging.Format {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("%w: logging.format %q", ErrInvalid, c.Logging.Format))
	}

	return errors.Join(errs...)
}
