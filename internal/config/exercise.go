package config

import (
	"fmt"
	"time"
)

// ExerciseConfig paces the exercise.
type ExerciseConfig struct {
	TickInterval  string `yaml:"tick_interval"`  // progress counter step
	FrameInterval string `yaml:"frame_interval"` // droplet animation frame
}

// GetTickInterval returns the progress tick interval.
func (e ExerciseConfig) GetTickInterval() time.Duration {
	d, err := time.ParseDuration(e.TickInterval)
	if err != nil || d <= 0 {
		return 50 * time.Millisecond
	}
	return d
}

// GetFrameInterval returns the animation frame interval.
func (e ExerciseConfig) GetFrameInterval() time.Duration {
	d, err := time.ParseDuration(e.FrameInterval)
	if err != nil || d <= 0 {
		return 80 * time.Millisecond
	}
	return d
}

func checkDuration(field, value string) error {
	if value == "" {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalid, field, err)
	}
	if d < 0 {
		return fmt.Errorf("%w: %s must not be negative", ErrInvalid, field)
	}
	return nil
}
