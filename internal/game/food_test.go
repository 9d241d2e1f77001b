package game

import (
	"testing"

	"github.com/vovakirdan/food-fighter/internal/config"
	"github.com/vovakirdan/food-fighter/internal/face"
)

func TestSpawnRanges(t *testing.T) {
	fall := config.DefaultFighterConfig().Fall
	fm := NewFoodManager(99, DefaultSpecs(), 640, 480, fall)

	seen := make(map[string]bool)
	for i := 0; i < 500; i++ {
		f, ok := fm.Spawn()
		if !ok {
			t.Fatal("Spawn() on an empty manager should succeed")
		}
		seen[f.Kind] = true

		if f.X < 0 || f.X >= 640-f.Spec.Size {
			t.Errorf("X = %v outside [0, %v)", f.X, 640-f.Spec.Size)
		}
		if f.Y != -f.Spec.Size {
			t.Errorf("Y = %v, expected %v", f.Y, -f.Spec.Size)
		}
		if f.SpeedY < 2 || f.SpeedY >= 4 {
			t.Errorf("SpeedY = %v outside [2, 4)", f.SpeedY)
		}
		if f.RotationSpeed < -0.05 || f.RotationSpeed >= 0.05 {
			t.Errorf("RotationSpeed = %v outside [-0.05, 0.05)", f.RotationSpeed)
		}
		if f.Rotation != 0 {
			t.Errorf("Rotation = %v, expected 0", f.Rotation)
		}

		fm.Remove(0)
	}

	for _, s := range DefaultSpecs() {
		if !seen[s.Kind] {
			t.Errorf("kind %q never spawned", s.Kind)
		}
	}
}

func TestAdvanceExpires(t *testing.T) {
	fm := NewFoodManager(1, DefaultSpecs()[:1], 640, 480, config.FallConfig{MinSpeed: 100, MaxSpeed: 100})
	fm.Spawn()

	// -60 -> 40 -> 140 -> 240 -> 340 -> 440 -> 540
	for i := 0; i < 5; i++ {
		if expired := fm.Advance(); len(expired) != 0 {
			t.Fatalf("tick %d: food expired early at y=%v", i, expired[0].Y)
		}
	}
	expired := fm.Advance()
	if len(expired) != 1 || expired[0].Y != 540 {
		t.Fatalf("expected one food expired at y=540, got %+v", expired)
	}
	if !fm.Empty() {
		t.Error("manager should be empty after expiry")
	}
}

func TestRemoveOutOfRange(t *testing.T) {
	fm := NewFoodManager(1, DefaultSpecs(), 640, 480, config.DefaultFighterConfig().Fall)
	fm.Spawn()
	fm.Remove(-1)
	fm.Remove(3)
	if fm.Empty() {
		t.Error("out-of-range Remove() should be ignored")
	}
}

func TestResolve(t *testing.T) {
	specs := DefaultSpecs()
	byKind := make(map[string]FoodSpec)
	for _, s := range specs {
		byKind[s.Kind] = s
	}

	tests := []struct {
		name     string
		label    face.Label
		kind     string
		resolved bool
		delta    int
	}{
		{"apple smile", face.LabelCheekLifter, "apple", true, 10},
		{"broccoli yawn", face.LabelLionYawn, "broccoli", true, 10},
		{"donut eyebrows", face.LabelEyebrowRaiser, "donut", true, 10},
		{"soda cheeks", face.LabelPuffedCheeks, "soda", true, 10},
		{"apple yawn", face.LabelLionYawn, "apple", false, 0},
		{"soda none", face.LabelNone, "soda", false, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			foods := []Food{{Kind: tc.kind, Spec: byKind[tc.kind]}}
			res, rest := Resolve(tc.label, foods)
			if tc.resolved {
				if len(res) != 1 || len(rest) != 0 {
					t.Fatalf("expected resolution, got %v / %v", res, rest)
				}
				if !res[0].Success || res[0].Delta != tc.delta {
					t.Errorf("resolution = %+v", res[0])
				}
				return
			}
			if len(res) != 0 || len(rest) != 1 {
				t.Errorf("food should not be resolved, got %v / %v", res, rest)
			}
		})
	}
}

func TestCorrectAction(t *testing.T) {
	for _, l := range face.Labels {
		healthy := CorrectAction(CategoryHealthy, l)
		junk := CorrectAction(CategoryJunk, l)
		if healthy == junk {
			t.Errorf("%s should be correct for exactly one category", l)
		}
	}
	if CorrectAction(CategoryHealthy, face.LabelNone) || CorrectAction(CategoryJunk, face.LabelNone) {
		t.Error("none is never a correct action")
	}
}

func TestScoreController(t *testing.T) {
	s := NewScoreController(-50)
	if s.ApplyDelta(10) || s.Score() != 0 {
		t.Error("inactive controller should ignore deltas")
	}

	s.Restart()
	if s.ApplyDelta(-50) {
		t.Error("score equal to the floor is not game over")
	}
	if !s.ApplyDelta(-1) {
		t.Error("score below the floor should end the game")
	}
	if s.Active() || s.Score() != -51 {
		t.Errorf("expected inactive at -51, got active=%v score=%d", s.Active(), s.Score())
	}
	if s.ApplyDelta(-1) {
		t.Error("game over must be reported once")
	}

	s.Restart()
	if !s.Active() || s.Score() != 0 {
		t.Error("Restart() should reset the controller")
	}
}

func TestSpecsFromConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		food config.FoodConfig
	}{
		{"unknown expression", config.FoodConfig{Kind: "pie", Category: "junk", Expression: "wink", Size: 10}},
		{"no expression", config.FoodConfig{Kind: "pie", Category: "junk", Size: 10}},
		{"bad category", config.FoodConfig{Kind: "pie", Category: "dessert", Expression: "lionYawn", Size: 10}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := SpecsFromConfig([]config.FoodConfig{tc.food}); err == nil {
				t.Error("expected an error")
			}
		})
	}

	specs, err := SpecsFromConfig([]config.FoodConfig{{Kind: "kiwi", Category: "healthy", Expression: "lionYawn", Size: 10}})
	if err != nil {
		t.Fatal(err)
	}
	if specs[0].Glyph != "[k]" {
		t.Errorf("default glyph = %q, expected [k]", specs[0].Glyph)
	}
}
