package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/food-fighter/internal/core"
	"github.com/vovakirdan/food-fighter/internal/stats"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:     lipgloss.NewStyle(),
	core.ColorRed:         lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:       lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:      lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorMagenta:     lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:        lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorBrightRed:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorBrightGreen: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorBrightWhite: lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
	core.ColorOrange:      lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:        lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// breakdownLines formats the per-food tally shown after a game.
func breakdownLines(rows []stats.KindStats, best int, hasBest bool) []string {
	if len(rows) == 0 && !hasBest {
		return nil
	}
	lines := make([]string, 0, len(rows)+2)
	if len(rows) > 0 {
		lines = append(lines, fmt.Sprintf("%-9s %4s %5s %6s %6s", "food", "ok", "wrong", "missed", "points"))
	}
	for _, r := range rows {
		lines = append(lines, fmt.Sprintf("%-9s %4d %5d %6d %+6d", r.Kind, r.Resolved, r.Wrong, r.Missed, r.Points))
	}
	if hasBest {
		lines = append(lines, fmt.Sprintf("Best this session: %d", best))
	}
	return lines
}

// drawBreakdown draws the tally below the game over box.
func drawBreakdown(s *core.Screen, rows []stats.KindStats, best int, hasBest bool) {
	lines := breakdownLines(rows, best, hasBest)
	if len(lines) == 0 {
		return
	}

	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	// The game over overlay is three lines tall plus borders.
	y := s.Height()/2 + 5
	x := (s.Width() - width) / 2
	for i, l := range lines {
		if y+i >= s.Height() {
			return
		}
		c := core.ColorSubtle
		if i == len(lines)-1 && hasBest {
			c = core.ColorHUD
		}
		s.DrawTextColor(x, y+i, l, c)
	}
}
