package tui

import (
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/food-fighter/internal/config"
	"github.com/vovakirdan/food-fighter/internal/core"
	"github.com/vovakirdan/food-fighter/internal/face"
	"github.com/vovakirdan/food-fighter/internal/feed"
	"github.com/vovakirdan/food-fighter/internal/game"
	"github.com/vovakirdan/food-fighter/internal/stats"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func newTestModel(t *testing.T, journal *stats.Journal) Model {
	t.Helper()

	g, err := game.New(config.DefaultFighterConfig())
	if err != nil {
		t.Fatalf("game.New: %v", err)
	}
	kb := feed.NewKeyboardSource()
	return NewModel(Options{
		Game:     g,
		Source:   kb,
		Keyboard: kb,
		Journal:  journal,
		Session:  "test",
		Runtime:  core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7},
	})
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return nm, cmd
}

// startModel presses Enter and runs one render tick.
func startModel(t *testing.T, m Model) Model {
	t.Helper()
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, RenderTickMsg(time.Now()))
	if !m.game.State().Started {
		t.Fatal("game not started after Enter")
	}
	return m
}

func TestKeyMapAction(t *testing.T) {
	km := DefaultKeyMap(false)

	tests := []struct {
		msg  tea.KeyMsg
		want core.Action
	}{
		{tea.KeyMsg{Type: tea.KeyEnter}, core.ActionStart},
		{runeKey('p'), core.ActionPause},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionPause},
		{runeKey('r'), core.ActionRestart},
		{runeKey('q'), core.ActionQuit},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{runeKey('x'), core.ActionNone},
	}

	for _, tt := range tests {
		if got := km.Action(tt.msg); got != tt.want {
			t.Errorf("Action(%q) = %v, want %v", tt.msg.String(), got, tt.want)
		}
	}
}

func TestKeyMapExpressionNeedsSimulation(t *testing.T) {
	if got := DefaultKeyMap(false).Expression(runeKey('1')); !got.IsNone() {
		t.Errorf("expression keys disabled: got %v, want none", got)
	}

	km := DefaultKeyMap(true)
	tests := []struct {
		r    rune
		want face.Label
	}{
		{'1', face.LabelCheekLifter},
		{'2', face.LabelLionYawn},
		{'3', face.LabelEyebrowRaiser},
		{'4', face.LabelPuffedCheeks},
		{'5', face.LabelNone},
	}
	for _, tt := range tests {
		if got := km.Expression(runeKey(tt.r)); got != tt.want {
			t.Errorf("Expression(%q) = %v, want %v", tt.r, got, tt.want)
		}
	}
}

func TestModelDetectionScoresAndJournals(t *testing.T) {
	j, err := stats.Open()
	if err != nil {
		t.Fatalf("stats.Open: %v", err)
	}
	defer j.Close()

	m := startModel(t, newTestModel(t, j))
	if m.runID == "" {
		t.Fatal("no journal run after start")
	}

	foods := m.game.Foods()
	if len(foods) != 1 {
		t.Fatalf("foods in flight = %d, want 1", len(foods))
	}

	d := face.Synthesize(foods[0].Spec.Required)
	m, _ = update(t, m, DetectionMsg{Detection: d, At: time.Now()})

	if got := m.game.State().Score; got != foods[0].Spec.Points {
		t.Errorf("score = %d, want %d", got, foods[0].Spec.Points)
	}
	run, err := j.Run(m.runID)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if run.Foods != 1 {
		t.Errorf("journaled foods = %d, want 1", run.Foods)
	}
}

func TestModelStartDropsFirstFood(t *testing.T) {
	m := newTestModel(t, nil)
	if n := len(m.game.Foods()); n != 0 {
		t.Fatalf("foods before start = %d, want 0", n)
	}

	m = startModel(t, m)
	if n := len(m.game.Foods()); n != 1 {
		t.Errorf("foods right after start = %d, want 1", n)
	}

	// The spawn tick must not add a second food.
	m, _ = update(t, m, SpawnTickMsg(time.Now()))
	if n := len(m.game.Foods()); n != 1 {
		t.Errorf("foods after spawn tick = %d, want 1", n)
	}
}

func TestModelExpressionKeyFeedsKeyboard(t *testing.T) {
	m := startModel(t, newTestModel(t, nil))

	m, _ = update(t, m, runeKey('3'))
	d, err := m.keyboard.Next(t.Context())
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	c := face.NewClassifier(face.DefaultThresholds(), 0)
	if got := c.ClassifyDetection(d, time.Now()); got != face.LabelEyebrowRaiser {
		t.Errorf("pressed 3, classified %v", got)
	}
}

func TestModelFeedEOFStopsDetecting(t *testing.T) {
	m := newTestModel(t, nil)

	m, cmd := update(t, m, DetectTickMsg(time.Now()))
	if cmd == nil || !m.detecting {
		t.Fatal("detect tick should start a fetch")
	}

	// A second tick while the fetch is in flight only reschedules.
	m, _ = update(t, m, DetectTickMsg(time.Now()))
	if !m.detecting {
		t.Fatal("detecting cleared without a result")
	}

	m, _ = update(t, m, DetectionMsg{Err: io.EOF, At: time.Now()})
	if !m.feedDone || m.detecting {
		t.Fatalf("after EOF: feedDone=%v detecting=%v", m.feedDone, m.detecting)
	}
	if _, cmd := update(t, m, DetectTickMsg(time.Now())); cmd != nil {
		t.Error("detect tick after EOF should not reschedule")
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t, nil)
	m, cmd := update(t, m, runeKey('q'))
	if cmd == nil || !m.quitting {
		t.Fatal("q should quit")
	}
	if m.View() != "" {
		t.Error("View after quit should be empty")
	}
}

func TestModelResizeKeepsHelpRow(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	if m.screen.Width() != 100 || m.screen.Height() != 29 {
		t.Errorf("screen = %dx%d, want 100x29", m.screen.Width(), m.screen.Height())
	}
	if !strings.Contains(m.View(), "FOOD FIGHTER") {
		t.Error("instructions screen missing title")
	}
}

func TestBreakdownLines(t *testing.T) {
	if lines := breakdownLines(nil, 0, false); lines != nil {
		t.Errorf("empty breakdown = %v, want nil", lines)
	}

	rows := []stats.KindStats{
		{Kind: "apple", Category: "healthy", Resolved: 2, Points: 20},
		{Kind: "donut", Category: "junk", Missed: 1, Points: -10},
	}
	lines := breakdownLines(rows, 30, true)
	if len(lines) != 4 {
		t.Fatalf("lines = %d, want 4: %v", len(lines), lines)
	}
	if !strings.Contains(lines[1], "apple") || !strings.Contains(lines[1], "+20") {
		t.Errorf("apple row = %q", lines[1])
	}
	if !strings.Contains(lines[2], "-10") {
		t.Errorf("donut row = %q", lines[2])
	}
	if lines[3] != "Best this session: 30" {
		t.Errorf("best line = %q", lines[3])
	}
}

func TestRenderScreenPlainText(t *testing.T) {
	s := core.NewScreen(10, 2)
	s.DrawText(0, 0, "hello")
	out := RenderScreen(s)
	if !strings.Contains(out, "hello") {
		t.Errorf("RenderScreen output %q missing text", out)
	}
	if n := strings.Count(out, "\n"); n != 1 {
		t.Errorf("newlines = %d, want 1", n)
	}
}
