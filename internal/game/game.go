package game

import (
	"fmt"
	"time"

	"github.com/vovakirdan/food-fighter/internal/config"
	"github.com/vovakirdan/food-fighter/internal/core"
	"github.com/vovakirdan/food-fighter/internal/face"
)

// Popup is a short-lived "+10"/"-10" label drawn where a food was resolved.
type Popup struct {
	Text    string
	X, Y    float64 // Field units
	Success bool
	TTL     int // Remaining render ticks
}

// Game is the complete Food Fighter state: classifier, food manager and
// score controller behind one owner. It is not safe for concurrent use;
// the platform layer drives it from a single loop.
type Game struct {
	cfg        config.FighterConfig
	specs      []FoodSpec
	classifier *face.Classifier
	foods      *FoodManager
	score      *ScoreController

	tick     uint64
	tickRate int
	seed     int64
	screenW  int
	screenH  int

	started bool
	paused  bool

	current          face.Label
	lastExpressionAt time.Time

	popups []Popup
	events []Event
}

// Status extends core.GameState with the expression shown on the HUD.
type Status struct {
	core.GameState
	Current          face.Label
	LastExpressionAt time.Time
	InFlight         int
}

// New creates a game from cfg. The game starts on the instructions screen.
func New(cfg config.FighterConfig) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	specs, err := SpecsFromConfig(cfg.Foods)
	if err != nil {
		return nil, err
	}

	g := &Game{
		cfg:   cfg,
		specs: specs,
		classifier: face.NewClassifier(face.Thresholds{
			Happy:        cfg.Classifier.HappyThreshold,
			MouthOpen:    cfg.Classifier.MouthOpenThreshold,
			EyebrowRaise: cfg.Classifier.EyebrowRaiseThreshold,
			Surprised:    cfg.Classifier.SurprisedThreshold,
			CheekPuff:    cfg.Classifier.CheekPuffThreshold,
		}, cfg.Timing.Cooldown()),
		score: NewScoreController(cfg.Score.GameOverBelow),
	}
	g.Reset(core.DefaultConfig())
	return g, nil
}

// Reset returns the game to the instructions screen with a fresh RNG.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.seed = rc.Seed
	g.screenW = rc.ScreenW
	g.screenH = rc.ScreenH
	g.tickRate = rc.TickRate
	if g.tickRate <= 0 {
		g.tickRate = core.DefaultConfig().TickRate
	}

	if g.foods == nil {
		g.foods = NewFoodManager(rc.Seed, g.specs, g.cfg.Field.Width, g.cfg.Field.Height, g.cfg.Fall)
	} else {
		g.foods.Reset(rc.Seed)
	}
	g.score = NewScoreController(g.cfg.Score.GameOverBelow)
	g.classifier.Reset()

	g.tick = 0
	g.started = false
	g.paused = false
	g.current = face.LabelNone
	g.lastExpressionAt = time.Time{}
	g.popups = nil
	g.events = nil
}

// Resize updates the screen dimensions used by Render.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
}

// Restart clears score and foods and starts playing immediately.
func (g *Game) Restart() {
	g.foods.Replace(nil)
	g.score.Restart()
	g.classifier.Reset()
	g.started = true
	g.paused = false
	g.current = face.LabelNone
	g.lastExpressionAt = time.Time{}
	g.popups = g.popups[:0]
	g.events = append(g.events, StartedEvent{})
}

// Step handles one render tick: player actions, food movement, expiry and
// popup decay.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	g.tick++

	switch {
	case input.Has(core.ActionStart) && (!g.started || g.GameOver()):
		g.Restart()
	case input.Has(core.ActionRestart) && g.started:
		g.Restart()
	case input.Has(core.ActionPause) && g.started && !g.GameOver():
		g.paused = !g.paused
	}

	g.decayPopups()
	g.Advance()

	return core.StepResult{State: g.State()}
}

// Advance moves foods by one tick and charges the miss penalty for each
// food that left the field. It does nothing while the game is not active.
func (g *Game) Advance() {
	if !g.active() {
		return
	}

	for _, f := range g.foods.Advance() {
		delta := -g.cfg.Score.MissPenalty
		g.events = append(g.events, MissedEvent{
			Kind:     f.Kind,
			Category: f.Spec.Category,
			X:        f.X,
			Delta:    delta,
		})
		g.addPopup(delta, f.X+f.Spec.Size/2, g.cfg.Field.Height-f.Spec.Size/2)
		g.applyDelta(delta)
	}
}

// Spawn drops a new food if the game is active and no food is in flight.
func (g *Game) Spawn() bool {
	if !g.active() {
		return false
	}
	_, ok := g.foods.Spawn()
	return ok
}

// Detect classifies a detection taken at now and resolves matching foods
// against the current expression. A nil detection means no face was found
// and changes nothing. During the cooldown the previous expression stays
// current and keeps resolving foods; after it, a face showing no gesture
// clears it. The newly accepted label is returned; it is none while the
// game is inactive or cooling down.
func (g *Game) Detect(d *face.Detection, now time.Time) face.Label {
	if !g.active() || d == nil {
		return face.LabelNone
	}

	cooling := g.classifier.CoolingDown(now)
	label := g.classifier.ClassifyDetection(d, now)
	switch {
	case !label.IsNone():
		g.current = label
		g.lastExpressionAt = now
	case !cooling:
		g.current = face.LabelNone
	}
	if g.current.IsNone() {
		return label
	}

	resolved, remaining := Resolve(g.current, g.foods.Foods())
	g.foods.Replace(remaining)

	for _, r := range resolved {
		cx, cy := r.Food.Center()
		g.events = append(g.events, FeedbackEvent{
			Kind:     r.Food.Kind,
			Category: r.Food.Spec.Category,
			X:        cx,
			Y:        cy,
			Success:  r.Success,
			Delta:    r.Delta,
		})
		g.addPopup(r.Delta, cx, cy)
		g.applyDelta(r.Delta)
	}

	return label
}

// Events drains the events produced since the last call.
func (g *Game) Events() []Event {
	ev := g.events
	g.events = nil
	return ev
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score.Score(),
		Started:  g.started,
		GameOver: g.GameOver(),
		Paused:   g.paused,
	}
}

// Status returns the game state plus the HUD expression.
func (g *Game) Status() Status {
	return Status{
		GameState:        g.State(),
		Current:          g.current,
		LastExpressionAt: g.lastExpressionAt,
		InFlight:         len(g.foods.Foods()),
	}
}

// GameOver reports whether the score fell below the floor.
func (g *Game) GameOver() bool {
	return g.started && !g.score.Active()
}

// Foods returns the foods in flight.
func (g *Game) Foods() []Food {
	return g.foods.Foods()
}

// Specs returns the food table.
func (g *Game) Specs() []FoodSpec {
	return g.specs
}

// Popups returns the visible feedback popups.
func (g *Game) Popups() []Popup {
	return g.popups
}

// Config returns the configuration the game was built with.
func (g *Game) Config() config.FighterConfig {
	return g.cfg
}

func (g *Game) active() bool {
	return g.started && !g.paused && g.score.Active()
}

func (g *Game) applyDelta(delta int) {
	if g.score.ApplyDelta(delta) {
		g.events = append(g.events, GameOverEvent{FinalScore: g.score.Score()})
	}
}

func (g *Game) addPopup(delta int, x, y float64) {
	ttl := g.cfg.Timing.FeedbackMS * g.tickRate / 1000
	if ttl < 1 {
		ttl = 1
	}
	g.popups = append(g.popups, Popup{
		Text:    fmt.Sprintf("%+d", delta),
		X:       x,
		Y:       y,
		Success: delta > 0,
		TTL:     ttl,
	})
}

func (g *Game) decayPopups() {
	kept := g.popups[:0]
	for _, p := range g.popups {
		p.TTL--
		if p.TTL > 0 {
			kept = append(kept, p)
		}
	}
	g.popups = kept
}
