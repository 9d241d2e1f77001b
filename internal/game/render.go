package game

import (
	"fmt"
	"math"

	"github.com/vovakirdan/food-fighter/internal/core"
)

// hudHeight is the number of rows above the field.
const hudHeight = 2

var spinner = []rune{'|', '/', '-', '\\'}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if !g.started {
		g.renderInstructions(dst)
		return
	}

	g.renderHUD(dst)
	g.renderFoods(dst)
	g.renderPopups(dst)

	switch {
	case g.GameOver():
		g.renderOverlay(dst, "Game Over",
			fmt.Sprintf("Final score: %d", g.score.Score()),
			"Press R to restart")
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// FieldToScreen maps field coordinates to a cell inside the play area
// below the HUD.
func (g *Game) FieldToScreen(dst *core.Screen, x, y float64) (int, int) {
	w := dst.Width()
	h := dst.Height() - hudHeight
	if w <= 0 || h <= 0 {
		return -1, -1
	}
	sx := int(math.Floor(x / g.cfg.Field.Width * float64(w)))
	sy := int(math.Floor(y / g.cfg.Field.Height * float64(h)))
	return sx, sy + hudHeight
}

// renderHUD draws the score, the current expression and a separator.
func (g *Game) renderHUD(dst *core.Screen) {
	current := "-"
	if !g.current.IsNone() {
		current = g.current.String()
	}
	hud := fmt.Sprintf(" Food Fighter  Score: %d  Expression: %s", g.score.Score(), current)
	dst.DrawTextColor(0, 0, hud, core.ColorHUD)
	dst.DrawHLine(0, 1, dst.Width(), '─', core.ColorBorder)
}

// renderFoods draws each food glyph at its centre with a spinner showing
// its rotation. Foods still above the field are not drawn.
func (g *Game) renderFoods(dst *core.Screen) {
	for _, f := range g.foods.Foods() {
		cx, cy := f.Center()
		if cy < 0 {
			continue
		}
		sx, sy := g.FieldToScreen(dst, cx, cy)
		if sy < hudHeight {
			continue
		}

		glyph := []rune(f.Spec.Glyph)
		x := sx - len(glyph)/2
		dst.DrawTextColor(x, sy, f.Spec.Glyph, f.Spec.Color())
		dst.SetColor(x+len(glyph), sy, spinnerRune(f.Rotation), core.ColorSubtle)
	}
}

// renderPopups draws the "+10"/"-10" feedback labels one row above their
// position, kept inside the play area.
func (g *Game) renderPopups(dst *core.Screen) {
	for _, p := range g.popups {
		sx, sy := g.FieldToScreen(dst, p.X, p.Y)
		x := core.Clamp(sx-len(p.Text)/2, 0, dst.Width()-len(p.Text))
		y := core.Clamp(sy-1, hudHeight, dst.Height()-1)
		c := core.ColorFailure
		if p.Success {
			c = core.ColorSuccess
		}
		dst.DrawTextColor(x, y, p.Text, c)
	}
}

// renderInstructions draws the start screen listing every food.
func (g *Game) renderInstructions(dst *core.Screen) {
	lines := []string{"Eat healthy food, reject junk food with your face.", ""}
	for _, s := range g.specs {
		lines = append(lines, fmt.Sprintf("%-4s %-9s %-7s %s: %s",
			s.Glyph, s.Kind, s.Category, s.Verb(), s.Required.Description()))
	}
	lines = append(lines, "",
		fmt.Sprintf("Missed food costs %d. Below %d the game is over.", g.cfg.Score.MissPenalty, g.cfg.Score.GameOverBelow),
		"",
		"Press Enter to start")

	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	box := core.CenteredRect(dst.Width(), dst.Height(), width+4, len(lines)+4)
	dst.DrawBox(box, core.ColorBorder)
	dst.DrawTextCentered(box.Y+1, "FOOD FIGHTER", core.ColorHUD)
	for i, l := range lines {
		c := core.ColorDefault
		if i >= 2 && i-2 < len(g.specs) {
			c = g.specs[i-2].Color()
		}
		dst.DrawTextColor(box.X+2, box.Y+3+i, l, c)
	}
}

// renderOverlay draws a centered box with the given lines.
func (g *Game) renderOverlay(dst *core.Screen, lines ...string) {
	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	box := core.CenteredRect(dst.Width(), dst.Height(), width+4, len(lines)*2+1)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box, core.ColorBorder)
	for i, l := range lines {
		dst.DrawTextCentered(box.Y+1+i*2, l, core.ColorHUD)
	}
}

func spinnerRune(rotation float64) rune {
	quarter := int(math.Floor(rotation / (math.Pi / 4)))
	idx := ((quarter % len(spinner)) + len(spinner)) % len(spinner)
	return spinner[idx]
}
