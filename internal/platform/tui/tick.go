// Package tui runs Food Fighter in a terminal with Bubble Tea.
// Three periodic ticks drive the game: render, detect and spawn. Each is a
// self-rescheduling command feeding messages into the single Update loop.
package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/food-fighter/internal/face"
	"github.com/vovakirdan/food-fighter/internal/feed"
)

// RenderTickMsg advances the game by one frame.
type RenderTickMsg time.Time

// DetectTickMsg asks for a new detection.
type DetectTickMsg time.Time

// SpawnTickMsg attempts to drop a new food.
type SpawnTickMsg time.Time

// DetectionMsg carries the result of a detection fetch back into Update.
type DetectionMsg struct {
	Detection *face.Detection
	Err       error
	At        time.Time
}

func renderTickCmd(tickRate int) tea.Cmd {
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return RenderTickMsg(t)
	})
}

func detectTickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return DetectTickMsg(t)
	})
}

func spawnTickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return SpawnTickMsg(t)
	})
}

// fetchDetectionCmd reads one detection off the Update loop.
func fetchDetectionCmd(src feed.Source, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		d, err := src.Next(ctx)
		return DetectionMsg{Detection: d, Err: err, At: time.Now()}
	}
}
