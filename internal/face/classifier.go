package face

import "time"

// DefaultCooldown is the minimum time between two accepted gestures.
const DefaultCooldown = time.Second

// Thresholds holds the rule cut-offs used by the Classifier.
type Thresholds struct {
	Happy        float64 // happy probability for cheekLifter
	MouthOpen    float64 // MouthOpenness for lionYawn
	EyebrowRaise float64 // EyebrowRaise for eyebrowRaiser
	Surprised    float64 // surprised probability for eyebrowRaiser
	CheekPuff    float64 // CheekPuffiness for puffedCheeks
}

// DefaultThresholds returns the tuned rule cut-offs.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Happy:        0.7,
		MouthOpen:    0.5,
		EyebrowRaise: 0.3,
		Surprised:    0.5,
		CheekPuff:    0.4,
	}
}

// Classifier converts landmark geometry and expression scores into a single
// Label, accepting at most one gesture per cooldown window.
//
// Rules are evaluated in a fixed priority order and the first match wins:
// cheekLifter, lionYawn, eyebrowRaiser, puffedCheeks. A geometry ratio that
// is not finite never satisfies its rule.
type Classifier struct {
	thresholds Thresholds
	cooldown   time.Duration
	last       time.Time // time of the last accepted gesture; zero if none
}

// NewClassifier creates a classifier with the given thresholds and cooldown.
func NewClassifier(t Thresholds, cooldown time.Duration) *Classifier {
	return &Classifier{
		thresholds: t,
		cooldown:   cooldown,
	}
}

// Classify returns the gesture shown by l and s at time now.
// During the cooldown window it returns LabelNone without measuring.
// Only an accepted gesture restarts the cooldown.
func (c *Classifier) Classify(l LandmarkSet, s Scores, now time.Time) Label {
	if c.CoolingDown(now) {
		return LabelNone
	}

	label := c.evaluate(l, s)
	if !label.IsNone() {
		c.last = now
	}
	return label
}

// ClassifyDetection is Classify for an optional detection; no face means
// LabelNone and leaves the cooldown untouched.
func (c *Classifier) ClassifyDetection(d *Detection, now time.Time) Label {
	if d == nil {
		return LabelNone
	}
	return c.Classify(d.Landmarks, d.Expressions, now)
}

// CoolingDown reports whether now falls inside the cooldown window.
func (c *Classifier) CoolingDown(now time.Time) bool {
	if c.last.IsZero() {
		return false
	}
	return now.Sub(c.last) < c.cooldown
}

// LastAccepted returns the time of the last accepted gesture.
func (c *Classifier) LastAccepted() time.Time {
	return c.last
}

// Reset forgets the last accepted gesture.
func (c *Classifier) Reset() {
	c.last = time.Time{}
}

func (c *Classifier) evaluate(l LandmarkSet, s Scores) Label {
	t := c.thresholds

	if s.Happy() > t.Happy {
		return LabelCheekLifter
	}
	if above(MouthOpenness(l), t.MouthOpen) {
		return LabelLionYawn
	}
	if above(EyebrowRaise(l), t.EyebrowRaise) && s.Surprised() > t.Surprised {
		return LabelEyebrowRaiser
	}
	if above(CheekPuffiness(l), t.CheekPuff) {
		return LabelPuffedCheeks
	}
	return LabelNone
}

func above(v, threshold float64) bool {
	return Finite(v) && v > threshold
}
