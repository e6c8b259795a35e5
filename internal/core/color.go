package core

// Color represents a foreground color for a screen glyph.
// Values map to ANSI colors in the platform renderer.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorCyan
	ColorWhite
	ColorBrightGreen
	ColorBrightRed
	ColorGray
)
