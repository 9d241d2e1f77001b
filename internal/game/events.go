package game

// Event is something the platform layer should react to: a popup, a sound,
// a journal entry. Events are drained with Game.Events.
type Event interface {
	gameEvent()
}

// StartedEvent is emitted when a new run begins, from the instructions
// screen or a restart.
type StartedEvent struct{}

func (StartedEvent) gameEvent() {}

// FeedbackEvent is emitted when a food is resolved by an expression.
type FeedbackEvent struct {
	Kind     string
	Category Category
	X, Y     float64 // Food centre in field units
	Success  bool
	Delta    int
}

func (FeedbackEvent) gameEvent() {}

// MissedEvent is emitted when a food falls off the bottom of the field.
type MissedEvent struct {
	Kind     string
	Category Category
	X        float64
	Delta    int // Always negative
}

func (MissedEvent) gameEvent() {}

// GameOverEvent is emitted once when the score drops below the floor.
type GameOverEvent struct {
	FinalScore int
}

func (GameOverEvent) gameEvent() {}
