package core

// RuntimeConfig contains configuration passed to the game at initialization.
// The game uses this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Render ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	Started  bool // Whether the player has left the instructions screen
	GameOver bool // Whether the game has ended (score fell below the floor)
	Paused   bool // Whether the game is paused
}

// Active reports whether ticks should mutate the game.
func (s GameState) Active() bool {
	return s.Started && !s.GameOver && !s.Paused
}

// StepResult is returned by Game.Step() after each render tick.
type StepResult struct {
	State GameState
}
