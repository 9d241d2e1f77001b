package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/food-fighter/internal/core"
	"github.com/vovakirdan/food-fighter/internal/face"
)

// KeyMap holds the in-game key bindings. It implements help.KeyMap.
type KeyMap struct {
	Start      key.Binding
	Pause      key.Binding
	Restart    key.Binding
	Quit       key.Binding
	Screenshot key.Binding
	Help       key.Binding

	// Simulated expressions, enabled only for the keyboard feed.
	Smile    key.Binding
	Yawn     key.Binding
	Eyebrows key.Binding
	Cheeks   key.Binding
}

// DefaultKeyMap returns the default bindings. simulate enables the
// expression keys.
func DefaultKeyMap(simulate bool) KeyMap {
	km := KeyMap{
		Start:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "start")),
		Pause:      key.NewBinding(key.WithKeys("p", "esc"), key.WithHelp("p", "pause")),
		Restart:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Screenshot: key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "screenshot")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Smile:      key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "smile")),
		Yawn:       key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "yawn")),
		Eyebrows:   key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "eyebrows")),
		Cheeks:     key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "cheeks")),
	}
	for _, b := range []*key.Binding{&km.Smile, &km.Yawn, &km.Eyebrows, &km.Cheeks} {
		b.SetEnabled(simulate)
	}
	return km
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Smile, k.Yawn, k.Eyebrows, k.Cheeks, k.Pause, k.Quit, k.Help}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Smile, k.Yawn, k.Eyebrows, k.Cheeks},
		{k.Start, k.Pause, k.Restart},
		{k.Screenshot, k.Help, k.Quit},
	}
}

// Action translates a key message into a game action.
// Returns ActionNone for keys that are not game actions.
func (k KeyMap) Action(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Start):
		return core.ActionStart
	case key.Matches(msg, k.Pause):
		return core.ActionPause
	case key.Matches(msg, k.Restart):
		return core.ActionRestart
	}
	return core.ActionNone
}

// Expression translates a key message into a simulated expression.
// Returns LabelNone when the key is not bound or simulation is off.
func (k KeyMap) Expression(msg tea.KeyMsg) face.Label {
	switch {
	case key.Matches(msg, k.Smile):
		return face.LabelCheekLifter
	case key.Matches(msg, k.Yawn):
		return face.LabelLionYawn
	case key.Matches(msg, k.Eyebrows):
		return face.LabelEyebrowRaiser
	case key.Matches(msg, k.Cheeks):
		return face.LabelPuffedCheeks
	}
	return face.LabelNone
}
