package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/natrix/internal/core"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:   lipgloss.NewStyle(),
	core.ColorFloor:     lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	core.ColorWall:      lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorFood:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorSnake:     lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorSnakeHead: lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
	core.ColorHUD:       lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorCaption:   lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	core.ColorTitle:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
	core.ColorSelected:  lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("10")),
	core.ColorDim:       lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
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
