package game

// ScoreController owns the score and the active flag.
// The score may go negative; once it falls below the floor the controller
// becomes inactive until Restart.
type ScoreController struct {
	score  int
	active bool
	floor  int
}

// NewScoreController creates an inactive controller with the given floor.
func NewScoreController(floor int) *ScoreController {
	return &ScoreController{floor: floor}
}

// ApplyDelta adds points to the score. It returns true exactly when this
// call ended the game. Inactive controllers ignore deltas.
func (s *ScoreController) ApplyDelta(points int) bool {
	if !s.active {
		return false
	}
	s.score += points
	if s.score < s.floor {
		s.active = false
		return true
	}
	return false
}

// Restart zeroes the score and activates the controller.
func (s *ScoreController) Restart() {
	s.score = 0
	s.active = true
}

// Score returns the current score.
func (s *ScoreController) Score() int { return s.score }

// Active reports whether the game is running.
func (s *ScoreController) Active() bool { return s.active }

// Floor returns the game-over threshold.
func (s *ScoreController) Floor() int { return s.floor }
