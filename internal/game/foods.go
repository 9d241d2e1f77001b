// Package game implements Food Fighter: foods fall through a field and the
// player resolves each one by showing the matching facial expression.
package game

import (
	"fmt"

	"github.com/vovakirdan/food-fighter/internal/config"
	"github.com/vovakirdan/food-fighter/internal/core"
	"github.com/vovakirdan/food-fighter/internal/face"
)

// Category tells whether a food should be eaten or rejected.
type Category string

const (
	CategoryHealthy Category = "healthy" // eat it
	CategoryJunk    Category = "junk"    // reject it
)

// FoodSpec is the static description of one food kind.
type FoodSpec struct {
	Kind     string
	Category Category
	Required face.Label // Expression that resolves this food
	Points   int
	Size     float64 // Side length in field units
	Glyph    string
}

// Color returns the render colour for the food's category.
func (s FoodSpec) Color() core.Color {
	if s.Category == CategoryJunk {
		return core.ColorJunkFood
	}
	return core.ColorHealthy
}

// Verb describes what the required expression does to the food.
func (s FoodSpec) Verb() string {
	if s.Category == CategoryJunk {
		return "reject"
	}
	return "eat"
}

// correctActions lists the expressions that count as the right response
// for each category.
var correctActions = map[Category][]face.Label{
	CategoryHealthy: {face.LabelCheekLifter, face.LabelLionYawn},
	CategoryJunk:    {face.LabelEyebrowRaiser, face.LabelPuffedCheeks},
}

// CorrectAction reports whether label is the right response to a food of
// category c: eating healthy food, rejecting junk.
func CorrectAction(c Category, label face.Label) bool {
	for _, l := range correctActions[c] {
		if l == label {
			return true
		}
	}
	return false
}

// SpecsFromConfig converts configured foods into specs, validating labels
// and categories.
func SpecsFromConfig(foods []config.FoodConfig) ([]FoodSpec, error) {
	specs := make([]FoodSpec, 0, len(foods))
	for _, f := range foods {
		label, err := face.ParseLabel(f.Expression)
		if err != nil {
			return nil, fmt.Errorf("game: food %q: %w", f.Kind, err)
		}
		if label.IsNone() {
			return nil, fmt.Errorf("game: food %q needs an expression", f.Kind)
		}

		cat := Category(f.Category)
		if cat != CategoryHealthy && cat != CategoryJunk {
			return nil, fmt.Errorf("game: food %q: unknown category %q", f.Kind, f.Category)
		}

		glyph := f.Glyph
		if glyph == "" {
			glyph = "[" + string([]rune(f.Kind)[:1]) + "]"
		}

		specs = append(specs, FoodSpec{
			Kind:     f.Kind,
			Category: cat,
			Required: label,
			Points:   f.Points,
			Size:     f.Size,
			Glyph:    glyph,
		})
	}
	return specs, nil
}

// DefaultSpecs returns the built-in food table.
func DefaultSpecs() []FoodSpec {
	// The built-in config is known to be valid.
	specs, _ := SpecsFromConfig(config.DefaultFighterConfig().Foods)
	return specs
}
