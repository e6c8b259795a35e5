package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// Board layout constants
const (
	cellWidth  = 2 // Terminal cells are about twice as tall as wide
	hudHeight  = 1
	debugLines = 3
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:     lipgloss.NewStyle(),
	core.ColorRed:         lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:       lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:      lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorCyan:        lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:       lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightRed:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorBrightGreen: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorGray:        lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetGlyph(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				g := s.GetGlyph(x, y)
				if g.Color != startColor {
					break
				}
				run.WriteRune(g.Rune)
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

// BoardSize returns the screen size needed to draw a grid with its border,
// HUD and debug panel.
func BoardSize(g core.Grid) (width, height int) {
	return g.Columns*cellWidth + 2, g.Rows + 2 + hudHeight + debugLines
}

// DrawSession draws the HUD, the board and, when debug is set, the grid
// overlay and the debug panel. A finished session gets a result box on top.
func DrawSession(scr *core.Screen, snap snake.Snapshot, debug bool) {
	scr.Clear()

	needW, needH := BoardSize(snap.Grid)
	if scr.Width() < needW || scr.Height() < needH {
		scr.DrawTextCentered(scr.Height()/2, fmt.Sprintf("Terminal too small: need %dx%d", needW, needH), core.ColorYellow)
		return
	}

	boardW, boardH := snap.Grid.Columns*cellWidth+2, snap.Grid.Rows+2
	ox := (scr.Width() - boardW) / 2
	oy := hudHeight

	drawHUD(scr, ox, boardW, snap)
	scr.DrawBox(ox, oy, boardW, boardH, core.ColorGray)

	if debug {
		for y := 0; y < snap.Grid.Rows; y++ {
			for x := 0; x < snap.Grid.Columns; x++ {
				setCell(scr, ox, oy, core.Cell{X: x, Y: y}, '·', ' ', core.ColorGray)
			}
		}
	}

	if snap.HasFood {
		setCell(scr, ox, oy, snap.Food, '●', ' ', core.ColorBrightRed)
	}
	for i, c := range snap.Snake {
		color := core.ColorGreen
		if i == 0 {
			color = core.ColorBrightGreen
		}
		setCell(scr, ox, oy, c, '█', '█', color)
	}

	if debug {
		drawDebugPanel(scr, ox, oy+boardH, snap)
	}

	if snap.State.Terminal() {
		drawResult(scr, ox, oy, boardW, boardH, snap)
	}
}

func setCell(scr *core.Screen, ox, oy int, c core.Cell, left, right rune, color core.Color) {
	x := ox + 1 + c.X*cellWidth
	y := oy + 1 + c.Y
	scr.SetColored(x, y, left, color)
	scr.SetColored(x+1, y, right, color)
}

func drawHUD(scr *core.Screen, ox, boardW int, snap snake.Snapshot) {
	left := fmt.Sprintf("%s | %s", snap.Player, snap.Level.Name)
	right := fmt.Sprintf("Score: %d  High: %d", snap.Score, snap.HighScore)
	scr.DrawText(ox, 0, left, core.ColorCyan)
	scr.DrawText(ox+boardW-len(right), 0, right, core.ColorWhite)
}

func drawDebugPanel(scr *core.Screen, ox, y int, snap snake.Snapshot) {
	food := "none"
	if snap.HasFood {
		food = snap.Food.String()
	}
	head := "none"
	if h, ok := snap.Head(); ok {
		head = h.String()
	}
	scr.DrawText(ox, y, snap.Grid.Describe(), core.ColorGray)
	scr.DrawText(ox, y+1, "Grid info: "+snap.Grid.Info(), core.ColorGray)
	scr.DrawText(ox, y+2, fmt.Sprintf("Food: %s  Head: %s  Length: %d  Tick: %d",
		food, head, snap.Length(), snap.Tick), core.ColorGray)
}

// resultLines returns the text of the result box for a finished session.
func resultLines(snap snake.Snapshot) []string {
	title := "GAME OVER"
	if snap.State == snake.StateWin {
		title = "YOU WIN!"
	}
	high := fmt.Sprintf("High score: %d", snap.HighScore)
	if snap.NewHighScore {
		high += "  NEW!"
	}
	return []string{
		title,
		"",
		fmt.Sprintf("Final score: %d", snap.Score),
		high,
		fmt.Sprintf("Length: %d", snap.Length()),
		"",
		"r: play again  q: quit",
	}
}

func drawResult(scr *core.Screen, ox, oy, boardW, boardH int, snap snake.Snapshot) {
	lines := resultLines(snap)
	w := 0
	for _, l := range lines {
		w = max(w, len(l))
	}
	w += 4
	h := len(lines) + 2
	if w > boardW || h > boardH {
		return
	}

	bx := ox + (boardW-w)/2
	by := oy + (boardH-h)/2
	color := core.ColorRed
	if snap.State == snake.StateWin {
		color = core.ColorYellow
	}
	scr.DrawBox(bx, by, w, h, color)
	for i, l := range lines {
		c := core.ColorWhite
		if i == 0 {
			c = color
		}
		scr.DrawText(bx+(w-len(l))/2, by+1+i, l, c)
	}
}

// centerText centers text within the given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}
