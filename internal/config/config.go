// Package config provides YAML-based tuning for Food Fighter.
package config

import (
	"errors"
	"fmt"
	"time"
)

// FighterConfig contains all tunable parameters of the game.
type FighterConfig struct {
	Field      FieldConfig      `yaml:"field"`
	Timing     TimingConfig     `yaml:"timing"`
	Classifier ClassifierConfig `yaml:"classifier"`
	Fall       FallConfig       `yaml:"fall"`
	Score      ScoreConfig      `yaml:"score"`
	Foods      []FoodConfig     `yaml:"foods"`
}

// FieldConfig defines the logical play area foods fall through.
// It matches the capture resolution requested from the camera.
type FieldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// TimingConfig defines the cadence of the periodic tasks.
type TimingConfig struct {
	DetectIntervalMS int `yaml:"detect_interval_ms"`
	SpawnIntervalMS  int `yaml:"spawn_interval_ms"`
	CooldownMS       int `yaml:"cooldown_ms"` // Minimum time between accepted expressions
	FeedbackMS       int `yaml:"feedback_ms"` // How long +/- popups stay on screen
}

// DetectInterval returns the detection cadence.
func (t TimingConfig) DetectInterval() time.Duration {
	return time.Duration(t.DetectIntervalMS) * time.Millisecond
}

// SpawnInterval returns the spawn attempt cadence.
func (t TimingConfig) SpawnInterval() time.Duration {
	return time.Duration(t.SpawnIntervalMS) * time.Millisecond
}

// Cooldown returns the expression cooldown.
func (t TimingConfig) Cooldown() time.Duration {
	return time.Duration(t.CooldownMS) * time.Millisecond
}

// Feedback returns the popup lifetime.
func (t TimingConfig) Feedback() time.Duration {
	return time.Duration(t.FeedbackMS) * time.Millisecond
}

// ClassifierConfig defines the expression rule thresholds.
type ClassifierConfig struct {
	HappyThreshold        float64 `yaml:"happy_threshold"`
	MouthOpenThreshold    float64 `yaml:"mouth_open_threshold"`
	EyebrowRaiseThreshold float64 `yaml:"eyebrow_raise_threshold"`
	SurprisedThreshold    float64 `yaml:"surprised_threshold"`
	CheekPuffThreshold    float64 `yaml:"cheek_puff_threshold"`
}

// FallConfig defines how spawned foods move, in field units per render tick.
type FallConfig struct {
	MinSpeed         float64 `yaml:"min_speed"`
	MaxSpeed         float64 `yaml:"max_speed"`
	MaxRotationSpeed float64 `yaml:"max_rotation_speed"` // radians per tick, symmetric around 0
}

// ScoreConfig defines penalties and the game-over floor.
type ScoreConfig struct {
	MissPenalty   int `yaml:"miss_penalty"`
	GameOverBelow int `yaml:"game_over_below"` // Game ends once score < this
}

// FoodConfig describes one food kind.
type FoodConfig struct {
	Kind       string  `yaml:"kind"`
	Category   string  `yaml:"category"`   // "healthy" or "junk"
	Expression string  `yaml:"expression"` // expression label that resolves it
	Points     int     `yaml:"points"`
	Size       float64 `yaml:"size"`
	Glyph      string  `yaml:"glyph"`
}

// Validate checks the configuration for values the game cannot run with.
func (c FighterConfig) Validate() error {
	var errs []error

	if c.Field.Width <= 0 || c.Field.Height <= 0 {
		errs = append(errs, fmt.Errorf("field must be positive, got %vx%v", c.Field.Width, c.Field.Height))
	}
	if c.Timing.DetectIntervalMS <= 0 {
		errs = append(errs, errors.New("timing.detect_interval_ms must be positive"))
	}
	if c.Timing.SpawnIntervalMS <= 0 {
		errs = append(errs, errors.New("timing.spawn_interval_ms must be positive"))
	}
	if c.Timing.CooldownMS < 0 || c.Timing.FeedbackMS < 0 {
		errs = append(errs, errors.New("timing durations must not be negative"))
	}
	if c.Fall.MinSpeed <= 0 || c.Fall.MaxSpeed < c.Fall.MinSpeed {
		errs = append(errs, fmt.Errorf("fall speed range [%v, %v] is invalid", c.Fall.MinSpeed, c.Fall.MaxSpeed))
	}
	if c.Fall.MaxRotationSpeed < 0 {
		errs = append(errs, errors.New("fall.max_rotation_speed must not be negative"))
	}
	if len(c.Foods) == 0 {
		errs = append(errs, errors.New("at least one food is required"))
	}

	seen := make(map[string]bool, len(c.Foods))
	for i, f := range c.Foods {
		if f.Kind == "" {
			errs = append(errs, fmt.Errorf("foods[%d]: kind is required", i))
			continue
		}
		if seen[f.Kind] {
			errs = append(errs, fmt.Errorf("foods[%d]: duplicate kind %q", i, f.Kind))
		}
		seen[f.Kind] = true
		if f.Category != "healthy" && f.Category != "junk" {
			errs = append(errs, fmt.Errorf("foods[%d]: category %q must be healthy or junk", i, f.Category))
		}
		if f.Size <= 0 || f.Size >= c.Field.Width {
			errs = append(errs, fmt.Errorf("foods[%d]: size %v must be within the field width", i, f.Size))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid: %w", errors.Join(errs...))
	}
	return nil
}
