package game

// Phase names the screen the game is on.
type Phase string

const (
	PhaseInstructions Phase = "instructions"
	PhasePlaying      Phase = "playing"
	PhasePaused       Phase = "paused"
	PhaseGameOver     Phase = "game_over"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick     uint64  `json:"tick"`
	Phase    Phase   `json:"phase"`
	Score    int     `json:"score"`
	Current  string  `json:"current"`
	InFlight int     `json:"in_flight"`
	FoodKind string  `json:"food_kind,omitempty"`
	FoodX    float64 `json:"food_x"`
	FoodY    float64 `json:"food_y"`
	Popups   int     `json:"popups"`
}

// Phase returns the current screen.
func (g *Game) Phase() Phase {
	switch {
	case !g.started:
		return PhaseInstructions
	case g.GameOver():
		return PhaseGameOver
	case g.paused:
		return PhasePaused
	default:
		return PhasePlaying
	}
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Tick:     g.tick,
		Phase:    g.Phase(),
		Score:    g.score.Score(),
		Current:  g.current.String(),
		InFlight: len(g.foods.Foods()),
		Popups:   len(g.popups),
	}
	if foods := g.foods.Foods(); len(foods) > 0 {
		s.FoodKind = foods[0].Kind
		s.FoodX = foods[0].X
		s.FoodY = foods[0].Y
	}
	return s
}
