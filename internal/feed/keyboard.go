package feed

import (
	"context"
	"sync"

	"github.com/vovakirdan/food-fighter/internal/face"
)

// KeyboardSource simulates a face from key presses. Each Press is delivered
// once by the next call to Next; otherwise the simulated face is neutral.
type KeyboardSource struct {
	mu      sync.Mutex
	pending face.Label
	closed  bool
}

// NewKeyboardSource creates a simulated face with no pending expression.
func NewKeyboardSource() *KeyboardSource {
	return &KeyboardSource{pending: face.LabelNone}
}

// Press queues an expression for the next detection, replacing any
// expression not yet delivered.
func (k *KeyboardSource) Press(l face.Label) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.pending = l
}

// Next returns a detection that classifies as the pending expression.
func (k *KeyboardSource) Next(ctx context.Context) (*face.Detection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	k.mu.Lock()
	defer k.mu.Unlock()
	if k.closed {
		return nil, ErrClosed
	}
	l := k.pending
	k.pending = face.LabelNone
	return face.Synthesize(l), nil
}

// Close stops the source.
func (k *KeyboardSource) Close() error {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.closed = true
	return nil
}
