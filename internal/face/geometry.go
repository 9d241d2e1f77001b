package face

import "math"

// faceHeight is the normalizer shared by the vertical ratios: the vertical
// distance between the two jaw-edge landmarks (0 and 16).
func faceHeight(l LandmarkSet) float64 {
	return math.Abs(l.JawLeft().Y - l.JawRight().Y)
}

// MouthOpenness returns the vertical lip gap (62/66) divided by face height.
// Larger means more open. Degenerate input yields Inf or NaN.
func MouthOpenness(l LandmarkSet) float64 {
	gap := math.Abs(l.LipTop().Y - l.LipBottom().Y)
	return gap / faceHeight(l)
}

// EyebrowRaise returns the mean brow-to-eye vertical distance of both sides
// (24/37 and 19/44) divided by face height. Larger means more raised.
func EyebrowRaise(l LandmarkSet) float64 {
	left := math.Abs(l.BrowLeft().Y - l.EyeLeft().Y)
	right := math.Abs(l.BrowRight().Y - l.EyeRight().Y)
	return ((left + right) / 2) / faceHeight(l)
}

// CheekPuffiness returns the horizontal width at the cheek landmarks (2/14)
// divided by the width at the jaw edges (0/16). Values near 1 mean no puffing.
//
// This is an approximation: it measures a face-width ratio, not actual
// cheek displacement, so most relaxed faces already score well above the
// default threshold.
func CheekPuffiness(l LandmarkSet) float64 {
	cheeks := math.Abs(l.CheekLeft().X - l.CheekRight().X)
	jaw := math.Abs(l.JawLeft().X - l.JawRight().X)
	return cheeks / jaw
}

// Finite reports whether a ratio can be compared against a threshold.
func Finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Metrics bundles the three geometry ratios of one landmark set.
type Metrics struct {
	Mouth   float64
	Eyebrow float64
	Cheeks  float64
}

// Measure computes all geometry ratios for l.
func Measure(l LandmarkSet) Metrics {
	return Metrics{
		Mouth:   MouthOpenness(l),
		Eyebrow: EyebrowRaise(l),
		Cheeks:  CheekPuffiness(l),
	}
}
