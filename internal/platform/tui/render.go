package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/handball/internal/core"
)

// TermColor returns the lipgloss color for c.
func TermColor(c core.Color) lipgloss.Color {
	return lipgloss.Color(strconv.Itoa(c.ANSI()))
}

// styleKey identifies a run of cells that share one style.
type styleKey struct {
	fg, bg core.Color
	text   bool
}

func keyOf(c core.Cell, bg core.Color) styleKey {
	if c.Rune != 0 {
		return styleKey{fg: c.Color, bg: c.BG, text: true}
	}
	if c.Color == bg {
		// Background pixels render as blanks; their color is irrelevant.
		return styleKey{fg: bg, bg: bg}
	}
	return styleKey{fg: c.Color, bg: bg}
}

func (k styleKey) style(bg core.Color) lipgloss.Style {
	st := lipgloss.NewStyle().Foreground(TermColor(k.fg))
	if k.text && k.bg != bg {
		st = st.Background(TermColor(k.bg))
	}
	return st
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same style to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen, bg core.Color) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := keyOf(s.GetCell(x, y), bg)

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if keyOf(cell, bg) != start {
					break
				}
				run.WriteRune(cell.Glyph(bg))
				x++
			}

			sb.WriteString(start.style(bg).Render(run.String()))
		}
	}
	return sb.String()
}
