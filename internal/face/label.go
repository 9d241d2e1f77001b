package face

import "fmt"

// Label is a discrete classified facial gesture.
type Label string

const (
	LabelNone          Label = "none"
	LabelCheekLifter   Label = "cheekLifter"   // smile with raised cheeks
	LabelLionYawn      Label = "lionYawn"      // mouth wide open
	LabelEyebrowRaiser Label = "eyebrowRaiser" // raised eyebrows
	LabelPuffedCheeks  Label = "puffedCheeks"  // puffed cheeks
)

// Labels lists every gesture label in classifier priority order.
var Labels = []Label{LabelCheekLifter, LabelLionYawn, LabelEyebrowRaiser, LabelPuffedCheeks}

// String returns the label name.
func (l Label) String() string {
	if l == "" {
		return string(LabelNone)
	}
	return string(l)
}

// IsNone reports whether the label carries no gesture.
func (l Label) IsNone() bool {
	return l == "" || l == LabelNone
}

// Description returns the player-facing hint for a gesture.
func (l Label) Description() string {
	switch l {
	case LabelCheekLifter:
		return "smile with raised cheeks"
	case LabelLionYawn:
		return "open your mouth wide"
	case LabelEyebrowRaiser:
		return "raise your eyebrows"
	case LabelPuffedCheeks:
		return "puff your cheeks"
	default:
		return "relax"
	}
}

// ParseLabel converts a label name into a Label.
func ParseLabel(s string) (Label, error) {
	if s == "" || s == string(LabelNone) {
		return LabelNone, nil
	}
	for _, l := range Labels {
		if string(l) == s {
			return l, nil
		}
	}
	return LabelNone, fmt.Errorf("face: unknown expression %q", s)
}
