package game

import "github.com/vovakirdan/food-fighter/internal/face"

// Resolution is the outcome of one food meeting an expression.
type Resolution struct {
	Food    Food
	Success bool
	Delta   int
}

// Resolve matches label against the in-flight foods. Every food whose
// required expression equals label is resolved and left out of the returned
// remainder. A food is scored +Points when label is the correct action for
// its category and -Points otherwise.
//
// With the built-in table each food requires a correct action for its own
// category, so the negative branch only fires for custom food tables.
func Resolve(label face.Label, foods []Food) ([]Resolution, []Food) {
	if label.IsNone() || len(foods) == 0 {
		return nil, foods
	}

	var resolved []Resolution
	remaining := make([]Food, 0, len(foods))
	for _, f := range foods {
		if f.Spec.Required != label {
			remaining = append(remaining, f)
			continue
		}

		r := Resolution{Food: f, Success: CorrectAction(f.Spec.Category, label)}
		if r.Success {
			r.Delta = f.Spec.Points
		} else {
			r.Delta = -f.Spec.Points
		}
		resolved = append(resolved, r)
	}

	return resolved, remaining
}
