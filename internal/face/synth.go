package face

// Synthesize builds a detection that the default Classifier maps to label.
// It stands in for a real face tracker when playing with the keyboard and
// gives tests a realistic landmark layout to work with.
//
// The layout uses a tilted jaw line (point 0 at y=100, point 16 at y=300) so
// that the face-height normalizer is 200 units.
func Synthesize(label Label) *Detection {
	pts := neutralPoints()
	scores := Scores{ScoreHappy: 0.02, ScoreSurprised: 0.01, ScoreNeutral: 0.95}

	switch label {
	case LabelCheekLifter:
		scores[ScoreHappy] = 0.95
		scores[ScoreNeutral] = 0.03
	case LabelLionYawn:
		pts[lipTop].Y = 230
		pts[lipBottom].Y = 350
	case LabelEyebrowRaiser:
		pts[browLeft].Y = 80
		pts[browRight].Y = 80
		scores[ScoreSurprised] = 0.9
		scores[ScoreNeutral] = 0.05
	case LabelPuffedCheeks:
		pts[cheekLeft].X = 210
		pts[cheekRight].X = 430
	}

	// neutralPoints always yields NumLandmarks points.
	l, _ := NewLandmarkSet(pts)
	return &Detection{Landmarks: l, Expressions: scores}
}

func neutralPoints() []Point {
	pts := make([]Point, NumLandmarks)
	for i := range pts {
		switch {
		case i <= 16: // jaw
			pts[i] = Point{X: 200 + 15*float64(i), Y: 100 + 12.5*float64(i)}
		case i <= 26: // brows
			pts[i] = Point{X: 250 + 14*float64(i-17), Y: 150}
		case i <= 35: // nose
			pts[i] = Point{X: 320, Y: 180 + 5*float64(i-27)}
		case i <= 47: // eyes
			pts[i] = Point{X: 260 + 10*float64(i-36), Y: 170}
		default: // mouth
			pts[i] = Point{X: 280 + 4*float64(i-48), Y: 250}
		}
	}
	pts[cheekLeft].X = 290
	pts[cheekRight].X = 350
	pts[lipTop].Y = 250
	pts[lipBottom].Y = 255
	return pts
}
