package config

import (
	_ "embed"
)

//go:embed defaults/fighter.yaml
var defaultFighterYAML []byte

// DefaultFighterConfig returns the built-in configuration.
// It mirrors defaults/fighter.yaml and is the fallback when the embedded
// YAML cannot be parsed.
func DefaultFighterConfig() FighterConfig {
	return FighterConfig{
		Field: FieldConfig{
			Width:  640,
			Height: 480,
		},
		Timing: TimingConfig{
			DetectIntervalMS: 100,
			SpawnIntervalMS:  1000,
			CooldownMS:       1000,
			FeedbackMS:       1000,
		},
		Classifier: ClassifierConfig{
			HappyThreshold:        0.7,
			MouthOpenThreshold:    0.5,
			EyebrowRaiseThreshold: 0.3,
			SurprisedThreshold:    0.5,
			CheekPuffThreshold:    0.4,
		},
		Fall: FallConfig{
			MinSpeed:         2,
			MaxSpeed:         4,
			MaxRotationSpeed: 0.05,
		},
		Score: ScoreConfig{
			MissPenalty:   5,
			GameOverBelow: -50,
		},
		Foods: []FoodConfig{
			{Kind: "apple", Category: "healthy", Expression: "cheekLifter", Points: 10, Size: 60, Glyph: "(A)"},
			{Kind: "broccoli", Category: "healthy", Expression: "lionYawn", Points: 10, Size: 70, Glyph: "{B}"},
			{Kind: "donut", Category: "junk", Expression: "eyebrowRaiser", Points: 10, Size: 65, Glyph: "(O)"},
			{Kind: "soda", Category: "junk", Expression: "puffedCheeks", Points: 10, Size: 75, Glyph: "[S]"},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultFighterYAML
}
