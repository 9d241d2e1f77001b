package face

import (
	"errors"
	"math"
	"testing"
	"time"
)

func landmarksWith(t *testing.T, set map[int]Point) LandmarkSet {
	t.Helper()
	pts := make([]Point, NumLandmarks)
	for i, p := range set {
		pts[i] = p
	}
	l, err := NewLandmarkSet(pts)
	if err != nil {
		t.Fatalf("NewLandmarkSet() failed: %v", err)
	}
	return l
}

func TestNewLandmarkSetCount(t *testing.T) {
	for _, n := range []int{0, 67, 69} {
		_, err := NewLandmarkSet(make([]Point, n))
		if !errors.Is(err, ErrLandmarkCount) {
			t.Errorf("NewLandmarkSet(%d points) error = %v, expected ErrLandmarkCount", n, err)
		}
	}
}

func TestLandmarkSetIsCopied(t *testing.T) {
	pts := make([]Point, NumLandmarks)
	pts[lipTop] = Point{X: 1, Y: 2}
	l, err := NewLandmarkSet(pts)
	if err != nil {
		t.Fatalf("NewLandmarkSet() failed: %v", err)
	}

	pts[lipTop] = Point{X: 9, Y: 9}
	if l.LipTop() != (Point{X: 1, Y: 2}) {
		t.Errorf("LandmarkSet should not alias its input, LipTop() = %+v", l.LipTop())
	}

	out := l.Points()
	out[lipTop] = Point{}
	if l.LipTop() != (Point{X: 1, Y: 2}) {
		t.Error("Points() should return a copy")
	}
}

func TestNamedAccessors(t *testing.T) {
	pts := make([]Point, NumLandmarks)
	for i := range pts {
		pts[i] = Point{X: float64(i), Y: float64(i)}
	}
	l, _ := NewLandmarkSet(pts)

	tests := []struct {
		name string
		got  Point
		idx  int
	}{
		{"JawLeft", l.JawLeft(), 0},
		{"CheekLeft", l.CheekLeft(), 2},
		{"Chin", l.Chin(), 8},
		{"CheekRight", l.CheekRight(), 14},
		{"JawRight", l.JawRight(), 16},
		{"BrowRight", l.BrowRight(), 19},
		{"BrowLeft", l.BrowLeft(), 24},
		{"EyeLeft", l.EyeLeft(), 37},
		{"EyeRight", l.EyeRight(), 44},
		{"LipTop", l.LipTop(), 62},
		{"LipBottom", l.LipBottom(), 66},
	}
	for _, tc := range tests {
		if tc.got.X != float64(tc.idx) {
			t.Errorf("%s() read index %v, expected %d", tc.name, tc.got.X, tc.idx)
		}
	}

	if l.At(-1) != (Point{}) || l.At(NumLandmarks) != (Point{}) {
		t.Error("At() out of range should return the zero point")
	}
}

func TestMouthOpennessExact(t *testing.T) {
	tests := []struct {
		name       string
		lipGap     float64
		faceHeight float64
	}{
		{"closed", 0, 200},
		{"slightly open", 10, 200},
		{"wide open", 150, 200},
		{"small face", 3, 12},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l := landmarksWith(t, map[int]Point{
				jawLeft:   {X: 100, Y: 50},
				jawRight:  {X: 300, Y: 50 + tc.faceHeight},
				lipTop:    {X: 200, Y: 120},
				lipBottom: {X: 200, Y: 120 + tc.lipGap},
			})
			got := MouthOpenness(l)
			want := tc.lipGap / tc.faceHeight
			if got != want {
				t.Errorf("MouthOpenness() = %v, expected %v", got, want)
			}
		})
	}
}

func TestMouthOpennessIgnoresLipOrder(t *testing.T) {
	l := landmarksWith(t, map[int]Point{
		jawLeft:   {X: 0, Y: 0},
		jawRight:  {X: 100, Y: 100},
		lipTop:    {X: 50, Y: 80},
		lipBottom: {X: 50, Y: 60},
	})
	if got := MouthOpenness(l); got != 0.2 {
		t.Errorf("MouthOpenness() = %v, expected 0.2", got)
	}
}

func TestEyebrowRaise(t *testing.T) {
	l := landmarksWith(t, map[int]Point{
		jawLeft:   {X: 0, Y: 0},
		jawRight:  {X: 100, Y: 100},
		browLeft:  {X: 60, Y: 10},
		eyeLeft:   {X: 60, Y: 40}, // 30
		browRight: {X: 40, Y: 20},
		eyeRight:  {X: 40, Y: 30}, // 10
	})
	if got := EyebrowRaise(l); math.Abs(got-0.2) > 1e-12 {
		t.Errorf("EyebrowRaise() = %v, expected 0.2", got)
	}
}

func TestCheekPuffiness(t *testing.T) {
	l := landmarksWith(t, map[int]Point{
		jawLeft:    {X: 0, Y: 0},
		jawRight:   {X: 200, Y: 0},
		cheekLeft:  {X: 20, Y: 50},
		cheekRight: {X: 170, Y: 50},
	})
	if got := CheekPuffiness(l); got != 0.75 {
		t.Errorf("CheekPuffiness() = %v, expected 0.75", got)
	}
}

func TestDegenerateGeometryIsNotFinite(t *testing.T) {
	// All points coincide: every normalizer is zero.
	l := landmarksWith(t, nil)

	m := Measure(l)
	for name, v := range map[string]float64{"mouth": m.Mouth, "eyebrow": m.Eyebrow, "cheeks": m.Cheeks} {
		if Finite(v) {
			t.Errorf("%s ratio on coincident points = %v, expected NaN or Inf", name, v)
		}
	}

	// Lip gap over a zero face height is +Inf.
	l = landmarksWith(t, map[int]Point{lipBottom: {X: 0, Y: 10}})
	if v := MouthOpenness(l); !math.IsInf(v, 1) {
		t.Errorf("MouthOpenness() = %v, expected +Inf", v)
	}
}

func TestClassifierDegenerateGeometryIsNone(t *testing.T) {
	c := NewClassifier(DefaultThresholds(), DefaultCooldown)
	l := landmarksWith(t, map[int]Point{lipBottom: {X: 0, Y: 10}})

	got := c.Classify(l, Scores{}, time.Unix(100, 0))
	if got != LabelNone {
		t.Errorf("Classify() on infinite mouth ratio = %v, expected none", got)
	}
	if !c.LastAccepted().IsZero() {
		t.Error("a none result must not start the cooldown")
	}
}

func TestSynthesizeClassifiesAsRequested(t *testing.T) {
	now := time.Unix(1_000, 0)
	for _, want := range append([]Label{LabelNone}, Labels...) {
		t.Run(want.String(), func(t *testing.T) {
			c := NewClassifier(DefaultThresholds(), DefaultCooldown)
			got := c.ClassifyDetection(Synthesize(want), now)
			if got != want {
				t.Errorf("Synthesize(%s) classified as %s", want, got)
			}
		})
	}
}

func TestClassifierPriorityHappyBeforeMouth(t *testing.T) {
	c := NewClassifier(DefaultThresholds(), DefaultCooldown)
	d := Synthesize(LabelLionYawn)
	d.Expressions[ScoreHappy] = 0.9

	if MouthOpenness(d.Landmarks) <= 0.5 {
		t.Fatalf("fixture should have an open mouth, got %v", MouthOpenness(d.Landmarks))
	}
	if got := c.ClassifyDetection(d, time.Unix(10, 0)); got != LabelCheekLifter {
		t.Errorf("Classify() = %s, expected cheekLifter to win over lionYawn", got)
	}
}

func TestClassifierEyebrowNeedsSurprise(t *testing.T) {
	c := NewClassifier(DefaultThresholds(), DefaultCooldown)
	d := Synthesize(LabelEyebrowRaiser)
	d.Expressions[ScoreSurprised] = 0.4

	// Without surprise the raised brows fall through to the cheek rule,
	// which the synthetic neutral cheeks do not satisfy.
	if got := c.ClassifyDetection(d, time.Unix(10, 0)); got != LabelNone {
		t.Errorf("Classify() = %s, expected none without surprise", got)
	}
}

func TestClassifierCooldown(t *testing.T) {
	c := NewClassifier(DefaultThresholds(), DefaultCooldown)
	smile := Synthesize(LabelCheekLifter)
	start := time.Unix(5_000, 0)

	if got := c.ClassifyDetection(smile, start); got != LabelCheekLifter {
		t.Fatalf("first classification = %s, expected cheekLifter", got)
	}
	if got := c.ClassifyDetection(smile, start.Add(999*time.Millisecond)); got != LabelNone {
		t.Errorf("classification inside cooldown = %s, expected none", got)
	}
	if got := c.ClassifyDetection(smile, start.Add(1000*time.Millisecond)); got != LabelCheekLifter {
		t.Errorf("classification at cooldown boundary = %s, expected cheekLifter", got)
	}
}

func TestClassifierNoneDoesNotResetCooldown(t *testing.T) {
	c := NewClassifier(DefaultThresholds(), DefaultCooldown)
	start := time.Unix(5_000, 0)

	if got := c.ClassifyDetection(Synthesize(LabelPuffedCheeks), start); got != LabelPuffedCheeks {
		t.Fatalf("expected puffedCheeks, got %s", got)
	}

	// Neutral face after the window closes: none, and the window stays anchored.
	if got := c.ClassifyDetection(Synthesize(LabelNone), start.Add(1500*time.Millisecond)); got != LabelNone {
		t.Fatalf("expected none, got %s", got)
	}
	if !c.LastAccepted().Equal(start) {
		t.Errorf("LastAccepted() = %v, expected %v", c.LastAccepted(), start)
	}

	// No face is also none and leaves the cooldown alone.
	if got := c.ClassifyDetection(nil, start.Add(1600*time.Millisecond)); got != LabelNone {
		t.Errorf("nil detection = %s, expected none", got)
	}
	if !c.LastAccepted().Equal(start) {
		t.Error("nil detection must not touch the cooldown")
	}
}

func TestClassifierReset(t *testing.T) {
	c := NewClassifier(DefaultThresholds(), DefaultCooldown)
	now := time.Unix(7, 0)
	c.ClassifyDetection(Synthesize(LabelCheekLifter), now)

	c.Reset()
	if c.CoolingDown(now) {
		t.Error("Reset() should clear the cooldown")
	}
}

func TestParseLabel(t *testing.T) {
	for _, l := range Labels {
		got, err := ParseLabel(l.String())
		if err != nil || got != l {
			t.Errorf("ParseLabel(%q) = %v, %v", l, got, err)
		}
	}
	if got, err := ParseLabel(""); err != nil || got != LabelNone {
		t.Errorf("ParseLabel(\"\") = %v, %v, expected none", got, err)
	}
	if _, err := ParseLabel("wink"); err == nil {
		t.Error("ParseLabel should reject unknown names")
	}
}
