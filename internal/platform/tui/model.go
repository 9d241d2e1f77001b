package tui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/food-fighter/internal/audio"
	"github.com/vovakirdan/food-fighter/internal/core"
	"github.com/vovakirdan/food-fighter/internal/feed"
	"github.com/vovakirdan/food-fighter/internal/game"
	"github.com/vovakirdan/food-fighter/internal/stats"
)

// Options wires a game to its collaborators. Only Game and Source are
// required.
type Options struct {
	Game     *game.Game
	Source   feed.Source
	Keyboard *feed.KeyboardSource // Enables the 1-4 expression keys
	Journal  *stats.Journal
	Audio    *audio.Player
	Logger   *log.Logger
	Session  string // Journal session name
	Runtime  core.RuntimeConfig
}

// Model is the Bubble Tea model for one Food Fighter game.
type Model struct {
	game     *game.Game
	source   feed.Source
	keyboard *feed.KeyboardSource
	journal  *stats.Journal
	audio    *audio.Player
	logger   *log.Logger
	session  string

	config        core.RuntimeConfig
	detectEvery   time.Duration
	spawnEvery    time.Duration
	detectTimeout time.Duration

	screen     *core.Screen
	inputFrame core.InputFrame
	keys       KeyMap
	help       help.Model

	runID     string
	breakdown []stats.KindStats
	best      int
	hasBest   bool

	detecting bool // A fetch is in flight
	feedDone  bool // Source returned EOF
	quitting  bool
}

// NewModel creates a model. The game is reset with opts.Runtime.
func NewModel(opts Options) Model {
	cfg := opts.Runtime
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	timing := opts.Game.Config().Timing
	opts.Game.Reset(cfg)

	return Model{
		game:          opts.Game,
		source:        opts.Source,
		keyboard:      opts.Keyboard,
		journal:       opts.Journal,
		audio:         opts.Audio,
		logger:        logger,
		session:       opts.Session,
		config:        cfg,
		detectEvery:   timing.DetectInterval(),
		spawnEvery:    timing.SpawnInterval(),
		detectTimeout: 5 * timing.DetectInterval(),
		screen:        core.NewScreen(cfg.ScreenW, playHeight(cfg.ScreenH)),
		inputFrame:    core.NewInputFrame(),
		keys:          DefaultKeyMap(opts.Keyboard != nil),
		help:          help.New(),
	}
}

// playHeight leaves the bottom row for the help bar.
func playHeight(h int) int {
	return max(h-1, 0)
}

// Init starts the three periodic ticks.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		renderTickCmd(m.config.TickRate),
		detectTickCmd(m.detectEvery),
		spawnTickCmd(m.spawnEvery),
	)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, playHeight(msg.Height))
		m.game.Resize(msg.Width, playHeight(msg.Height))
		m.help.Width = msg.Width
		return m, nil

	case RenderTickMsg:
		return m.handleTick()

	case SpawnTickMsg:
		m.game.Spawn()
		return m, spawnTickCmd(m.spawnEvery)

	case DetectTickMsg:
		next := detectTickCmd(m.detectEvery)
		if m.feedDone {
			return m, nil
		}
		if m.detecting || m.source == nil {
			return m, next
		}
		m.detecting = true
		return m, tea.Batch(next, fetchDetectionCmd(m.source, m.detectTimeout))

	case DetectionMsg:
		return m.handleDetection(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if l := m.keys.Expression(msg); !l.IsNone() && m.keyboard != nil {
		m.keyboard.Press(l)
		return m, nil
	}

	action := m.keys.Action(msg)
	if action == core.ActionQuit {
		m.quitting = true
		return m, tea.Quit
	}
	if action != core.ActionNone {
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleTick processes render ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	m.game.Step(m.inputFrame)
	m.inputFrame.Clear()
	m.handleEvents()
	return m, renderTickCmd(m.config.TickRate)
}

// handleDetection feeds a fetched detection into the game.
func (m Model) handleDetection(msg DetectionMsg) (tea.Model, tea.Cmd) {
	m.detecting = false

	switch {
	case errors.Is(msg.Err, io.EOF), errors.Is(msg.Err, feed.ErrClosed):
		m.feedDone = true
		m.logger.Info("Detection feed ended")
		return m, nil
	case msg.Err != nil:
		m.logger.Warn("Detection failed", "error", msg.Err)
		return m, nil
	}

	if label := m.game.Detect(msg.Detection, msg.At); !label.IsNone() {
		m.logger.Debug("Expression", "label", label)
	}
	m.handleEvents()
	return m, nil
}

// handleEvents routes game events to audio and the journal.
func (m *Model) handleEvents() {
	for _, ev := range m.game.Events() {
		switch e := ev.(type) {
		case game.StartedEvent:
			m.startRun()
			// The first food drops right away instead of on the next spawn tick.
			m.game.Spawn()
		case game.FeedbackEvent:
			if e.Success {
				m.play(audio.CueSuccess)
			} else {
				m.play(audio.CueFailure)
			}
		case game.MissedEvent:
			m.play(audio.CueMiss)
		case game.GameOverEvent:
			m.play(audio.CueGameOver)
			m.finishRun(e.FinalScore)
		}

		if o, ok := stats.OutcomeFromEvent(ev); ok && m.journal != nil && m.runID != "" {
			if err := m.journal.Record(m.runID, o); err != nil {
				m.logger.Warn("Could not record outcome", "error", err)
			}
		}
	}
}

func (m *Model) startRun() {
	m.breakdown = nil
	if m.journal == nil {
		return
	}
	id, err := m.journal.StartRun(m.session)
	if err != nil {
		m.logger.Warn("Could not start run", "error", err)
		m.runID = ""
		return
	}
	m.runID = id
	m.logger.Debug("Run started", "run", id, "session", m.session)
}

func (m *Model) finishRun(score int) {
	m.logger.Info("Game over", "score", score, "run", m.runID)
	if m.journal == nil || m.runID == "" {
		return
	}
	if err := m.journal.FinishRun(m.runID, score); err != nil {
		m.logger.Warn("Could not finish run", "error", err)
		return
	}
	rows, err := m.journal.Breakdown(m.runID)
	if err != nil {
		m.logger.Warn("Could not load breakdown", "error", err)
		return
	}
	m.breakdown = rows
	m.best, m.hasBest, err = m.journal.BestScore(m.session)
	if err != nil {
		m.logger.Warn("Could not load best score", "error", err)
	}
}

func (m *Model) play(c audio.Cue) {
	if m.audio != nil {
		m.audio.Play(c)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".foodfighter", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("Could not create screenshot directory", "error", err)
		return
	}

	path := filepath.Join(dir, fmt.Sprintf("foodfighter_%s.txt", time.Now().Format("20060102_150405")))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("Could not save screenshot", "error", err)
		return
	}
	m.logger.Info("Screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	if m.game.GameOver() {
		drawBreakdown(m.screen, m.breakdown, m.best, m.hasBest)
	}
	return RenderScreen(m.screen) + "\n" + m.help.View(m.keys)
}

// Game returns the driven game.
func (m Model) Game() *game.Game {
	return m.game
}

// Run starts the Bubble Tea program with the given options.
func Run(opts Options) error {
	model := NewModel(opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
