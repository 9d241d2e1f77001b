package config

import (
	"bytes"
	"go/format"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := parse(DefaultYAML())
	if err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultFighterConfig()) {
		t.Errorf("embedded YAML and DefaultFighterConfig() differ:\n%+v\n%+v", cfg, DefaultFighterConfig())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadCustomPathPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := "timing:\n  cooldown_ms: 250\nscore:\n  miss_penalty: 7\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFighter(path)
	if err != nil {
		t.Fatalf("LoadFighter() failed: %v", err)
	}
	if cfg.Timing.CooldownMS != 250 {
		t.Errorf("cooldown_ms = %d, expected 250", cfg.Timing.CooldownMS)
	}
	if cfg.Score.MissPenalty != 7 {
		t.Errorf("miss_penalty = %d, expected 7", cfg.Score.MissPenalty)
	}
	// Untouched keys keep their defaults
	if cfg.Timing.DetectIntervalMS != 100 || cfg.Score.GameOverBelow != -50 {
		t.Errorf("defaults lost: %+v %+v", cfg.Timing, cfg.Score)
	}
	if len(cfg.Foods) != 4 {
		t.Errorf("expected 4 default foods, got %d", len(cfg.Foods))
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := LoadFighter(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing custom config should be an error")
	}

	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("field: [not, a, map"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFighter(path); err == nil {
		t.Error("malformed custom config should be an error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*FighterConfig)
		want   string
	}{
		{"zero field", func(c *FighterConfig) { c.Field.Width = 0 }, "field"},
		{"no detect interval", func(c *FighterConfig) { c.Timing.DetectIntervalMS = 0 }, "detect_interval_ms"},
		{"inverted speeds", func(c *FighterConfig) { c.Fall.MaxSpeed = 1 }, "fall speed"},
		{"no foods", func(c *FighterConfig) { c.Foods = nil }, "at least one food"},
		{"bad category", func(c *FighterConfig) { c.Foods[0].Category = "snack" }, "category"},
		{"duplicate kind", func(c *FighterConfig) { c.Foods[1].Kind = "apple" }, "duplicate"},
		{"oversized food", func(c *FighterConfig) { c.Foods[2].Size = 1000 }, "size"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultFighterConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() should fail")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("Validate() error %q should mention %q", err, tc.want)
			}
		})
	}
}

func TestTimingDurations(t *testing.T) {
	tc := DefaultFighterConfig().Timing
	if tc.DetectInterval().Milliseconds() != 100 {
		t.Errorf("DetectInterval() = %v", tc.DetectInterval())
	}
	if tc.SpawnInterval().Seconds() != 1 || tc.Cooldown().Seconds() != 1 || tc.Feedback().Seconds() != 1 {
		t.Errorf("unexpected timing durations: %+v", tc)
	}
}

func TestSourcesAreFormatted(t *testing.T) {
	files, err := filepath.Glob("*.go")
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range files {
		src, err := os.ReadFile(name)
		if err != nil {
			t.Fatal(err)
		}
		formatted, err := format.Source(src)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if !bytes.Equal(src, formatted) {
			t.Errorf("%s is not gofmt-formatted", name)
		}
	}
}
