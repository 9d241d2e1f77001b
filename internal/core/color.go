package core

// Color represents a foreground color for a screen cell.
// The platform maps each value to an ANSI 256-color code.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorMagenta
	ColorCyan
	ColorBrightGreen
	ColorBrightRed
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// Semantic aliases used by the game renderer.
const (
	ColorHUD      = ColorBrightWhite
	ColorSuccess  = ColorBrightGreen
	ColorFailure  = ColorBrightRed
	ColorBorder   = ColorCyan
	ColorSubtle   = ColorGray
	ColorHealthy  = ColorGreen
	ColorJunkFood = ColorMagenta
)
