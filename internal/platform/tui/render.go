// Package tui provides the Bubble Tea screens for reclaim: the heatmap
// viewer, the level picker, the run history table and the SSH front end.
package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/reclaim/internal/canvas"
)

// colorStyles maps canvas.Color to lipgloss styles.
var colorStyles = map[canvas.Color]lipgloss.Style{
	canvas.ColorDefault:       lipgloss.NewStyle(),
	canvas.ColorRed:           lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	canvas.ColorGreen:         lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	canvas.ColorYellow:        lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	canvas.ColorBlue:          lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	canvas.ColorMagenta:       lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	canvas.ColorCyan:          lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	canvas.ColorWhite:         lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	canvas.ColorBrightRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	canvas.ColorBrightGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	canvas.ColorBrightYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	canvas.ColorBrightBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	canvas.ColorBrightMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	canvas.ColorBrightCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	canvas.ColorBrightWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	canvas.ColorOrange:        lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	canvas.ColorGray:          lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
// The cell at (cursorX, cursorY), if any, is drawn with the cursor style.
func RenderScreen(s *canvas.Screen, cursorX, cursorY int, cursor lipgloss.Style) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			if x == cursorX && y == cursorY {
				sb.WriteString(cursor.Render(string(s.Get(x, y))))
				x++
				continue
			}

			startColor := s.GetCell(x, y).Color

			// Collect consecutive cells with same color, stopping at the cursor
			var run strings.Builder
			for x < s.Width() && !(x == cursorX && y == cursorY) {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[canvas.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}
