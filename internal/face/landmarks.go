// Package face turns facial landmark detections into discrete expression
// labels. It knows nothing about the game; detections come from an external
// face tracker in the 68-point landmark layout.
package face

import (
	"errors"
	"fmt"
)

// NumLandmarks is the size of the 68-point face landmark layout.
const NumLandmarks = 68

// Landmark indices in the 68-point layout. Only the points used by the
// geometry heuristics are named.
const (
	jawLeft    = 0
	cheekLeft  = 2
	chin       = 8
	cheekRight = 14
	jawRight   = 16
	browRight  = 19
	browLeft   = 24
	eyeLeft    = 37
	eyeRight   = 44
	lipTop     = 62
	lipBottom  = 66
)

// ErrLandmarkCount is returned when a detection does not carry exactly
// NumLandmarks points.
var ErrLandmarkCount = errors.New("face: wrong number of landmarks")

// Point is a 2D landmark position in source image coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LandmarkSet is an immutable, ordered set of 68 face landmarks.
type LandmarkSet struct {
	points [NumLandmarks]Point
}

// NewLandmarkSet copies points into a LandmarkSet.
func NewLandmarkSet(points []Point) (LandmarkSet, error) {
	var l LandmarkSet
	if len(points) != NumLandmarks {
		return l, fmt.Errorf("%w: got %d, want %d", ErrLandmarkCount, len(points), NumLandmarks)
	}
	copy(l.points[:], points)
	return l, nil
}

// At returns the landmark at index i. Out-of-range indices return the zero point.
func (l LandmarkSet) At(i int) Point {
	if i < 0 || i >= NumLandmarks {
		return Point{}
	}
	return l.points[i]
}

// Points returns a copy of all landmarks in order.
func (l LandmarkSet) Points() []Point {
	out := make([]Point, NumLandmarks)
	copy(out, l.points[:])
	return out
}

func (l LandmarkSet) JawLeft() Point    { return l.points[jawLeft] }
func (l LandmarkSet) JawRight() Point   { return l.points[jawRight] }
func (l LandmarkSet) CheekLeft() Point  { return l.points[cheekLeft] }
func (l LandmarkSet) CheekRight() Point { return l.points[cheekRight] }
func (l LandmarkSet) Chin() Point       { return l.points[chin] }
func (l LandmarkSet) BrowLeft() Point   { return l.points[browLeft] }
func (l LandmarkSet) BrowRight() Point  { return l.points[browRight] }
func (l LandmarkSet) EyeLeft() Point    { return l.points[eyeLeft] }
func (l LandmarkSet) EyeRight() Point   { return l.points[eyeRight] }
func (l LandmarkSet) LipTop() Point     { return l.points[lipTop] }
func (l LandmarkSet) LipBottom() Point  { return l.points[lipBottom] }

// Scores maps expression names reported by the face tracker
// ("happy", "surprised", ...) to probabilities in [0,1].
type Scores map[string]float64

// Expression names read by the classifier.
const (
	ScoreHappy     = "happy"
	ScoreSurprised = "surprised"
	ScoreNeutral   = "neutral"
)

// Get returns the probability for name, or 0 if the tracker did not report it.
func (s Scores) Get(name string) float64 {
	if s == nil {
		return 0
	}
	return s[name]
}

func (s Scores) Happy() float64     { return s.Get(ScoreHappy) }
func (s Scores) Surprised() float64 { return s.Get(ScoreSurprised) }

// Detection is one face tracker result: landmarks plus expression scores.
// A nil *Detection means no face was found.
type Detection struct {
	Landmarks   LandmarkSet
	Expressions Scores
}
