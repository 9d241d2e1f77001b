package game

import (
	"math/rand"

	"github.com/vovakirdan/food-fighter/internal/config"
)

// Food is one falling food instance.
type Food struct {
	Kind          string
	Spec          FoodSpec
	X, Y          float64 // Top-left corner in field units
	SpeedY        float64 // Field units per render tick
	Rotation      float64 // Radians
	RotationSpeed float64 // Radians per render tick
}

// Center returns the centre of the food in field units.
func (f Food) Center() (float64, float64) {
	return f.X + f.Spec.Size/2, f.Y + f.Spec.Size/2
}

// FoodManager handles spawning, movement and expiry of foods.
// At most one food is in flight at any time.
type FoodManager struct {
	foods  []Food
	specs  []FoodSpec
	rng    *rand.Rand
	width  float64
	height float64
	fall   config.FallConfig
}

// NewFoodManager creates a food manager for a width×height field.
func NewFoodManager(seed int64, specs []FoodSpec, width, height float64, fall config.FallConfig) *FoodManager {
	fm := &FoodManager{
		foods:  make([]Food, 0, 1),
		specs:  specs,
		width:  width,
		height: height,
		fall:   fall,
	}
	fm.Reset(seed)
	return fm
}

// Reset removes all foods and reseeds the RNG.
func (fm *FoodManager) Reset(seed int64) {
	fm.foods = fm.foods[:0]
	fm.rng = rand.New(rand.NewSource(seed))
}

// Spawn creates a new food above the field if none is in flight.
// Returns the new food and true, or false if a food is already falling.
func (fm *FoodManager) Spawn() (Food, bool) {
	if len(fm.foods) > 0 || len(fm.specs) == 0 {
		return Food{}, false
	}

	spec := fm.specs[fm.rng.Intn(len(fm.specs))]
	maxRot := fm.fall.MaxRotationSpeed

	f := Food{
		Kind:          spec.Kind,
		Spec:          spec,
		X:             fm.rng.Float64() * (fm.width - spec.Size),
		Y:             -spec.Size,
		SpeedY:        fm.fall.MinSpeed + fm.rng.Float64()*(fm.fall.MaxSpeed-fm.fall.MinSpeed),
		Rotation:      0,
		RotationSpeed: (fm.rng.Float64()*2 - 1) * maxRot,
	}
	fm.foods = append(fm.foods, f)
	return f, true
}

// Advance moves every food by one render tick and removes those that fell
// past the bottom of the field. The removed foods are returned.
func (fm *FoodManager) Advance() []Food {
	var expired []Food

	kept := fm.foods[:0]
	for _, f := range fm.foods {
		f.Y += f.SpeedY
		f.Rotation += f.RotationSpeed
		if f.Y > fm.height {
			expired = append(expired, f)
			continue
		}
		kept = append(kept, f)
	}
	fm.foods = kept

	return expired
}

// Foods returns the foods currently in flight.
func (fm *FoodManager) Foods() []Food {
	return fm.foods
}

// Replace swaps the in-flight foods, used after the resolver removed some.
func (fm *FoodManager) Replace(foods []Food) {
	fm.foods = append(fm.foods[:0], foods...)
}

// Remove drops the food at index i. Out-of-range indices are ignored.
func (fm *FoodManager) Remove(i int) {
	if i < 0 || i >= len(fm.foods) {
		return
	}
	fm.foods = append(fm.foods[:i], fm.foods[i+1:]...)
}

// Empty reports whether no food is in flight.
func (fm *FoodManager) Empty() bool {
	return len(fm.foods) == 0
}

// Specs returns the configured food table.
func (fm *FoodManager) Specs() []FoodSpec {
	return fm.specs
}
