// Package lcd drives handball on a raw tcell screen. The terminal is
// treated as a pixel panel: one cell is one pixel, written through the
// same area/pixel protocol an LCD controller exposes.
package lcd

import (
	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/handball/internal/core"
)

// Panel is a scene.Display backed by a tcell screen. Pixels are drawn as
// blank cells with the pixel color as background.
type Panel struct {
	screen tcell.Screen
	origin core.Vec2
	size   core.Vec2
	area   core.Region
	cursor core.Vec2
}

// NewPanel creates a width x height panel whose top-left pixel sits at
// origin on the terminal.
func NewPanel(screen tcell.Screen, origin core.Vec2, width, height int) *Panel {
	return &Panel{
		screen: screen,
		origin: origin,
		size:   core.V(width, height),
	}
}

// Centered creates a panel centered on the screen. Panels larger than the
// terminal are anchored at the top-left corner.
func Centered(screen tcell.Screen, width, height int) *Panel {
	w, h := screen.Size()
	origin := core.V(max((w-width)/2, 0), max((h-height)/2, 0))
	return NewPanel(screen, origin, width, height)
}

// Origin returns the terminal cell of the panel's top-left pixel.
func (p *Panel) Origin() core.Vec2 {
	return p.origin
}

// Color converts a palette color to a tcell color.
func Color(c core.Color) tcell.Color {
	return tcell.PaletteColor(c.ANSI())
}

// SetArea declares the rectangle that following WritePixel calls fill.
func (p *Panel) SetArea(r core.Region) {
	p.area = r
	p.cursor = r.TopLeft
}

// WritePixel writes one pixel at the cursor and advances it row-major
// within the declared area.
func (p *Panel) WritePixel(c core.Color) {
	x, y := p.cursor.X, p.cursor.Y
	if x >= 0 && x < p.size.X && y >= 0 && y < p.size.Y {
		style := tcell.StyleDefault.Background(Color(c))
		p.screen.SetContent(p.origin.X+x, p.origin.Y+y, ' ', nil, style)
	}

	p.cursor.X++
	if p.cursor.X > p.area.BotRight.X {
		p.cursor.X = p.area.TopLeft.X
		p.cursor.Y++
		if p.cursor.Y > p.area.BotRight.Y {
			p.cursor.Y = p.area.TopLeft.Y
		}
	}
}

// DrawText writes a string on panel row y starting at column x, clipped
// to the panel.
func (p *Panel) DrawText(x, y int, s string, fg, bg core.Color) {
	if y < 0 || y >= p.size.Y {
		return
	}
	style := tcell.StyleDefault.Foreground(Color(fg)).Background(Color(bg))
	i := 0
	for _, r := range s {
		cx := x + i
		i++
		if cx < 0 || cx >= p.size.X {
			continue
		}
		p.screen.SetContent(p.origin.X+cx, p.origin.Y+y, r, nil, style)
	}
}

// Show flushes pending writes to the terminal.
func (p *Panel) Show() {
	p.screen.Show()
}
