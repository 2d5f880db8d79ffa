package core

import (
	"strings"
)

// PixelRune is the glyph used for a painted pixel in text dumps.
const PixelRune = '█'

// Cell is one display pixel. Shape pixels carry Rune == 0 and are drawn
// as solid blocks of Color; text pixels carry the glyph in Rune.
type Cell struct {
	Rune  rune
	Color Color
	BG    Color
}

// Glyph returns the rune a text dump shows for the cell: the glyph of a
// text cell, a space for a background pixel, PixelRune otherwise.
func (c Cell) Glyph(bg Color) rune {
	switch {
	case c.Rune != 0:
		return c.Rune
	case c.Color == bg:
		return ' '
	default:
		return PixelRune
	}
}

// Screen is an in-memory pixel framebuffer. It implements the area/pixel
// write protocol of an LCD controller (SetArea then WritePixel in row-major
// order) plus a text overlay, and tracks which rows changed since the last
// flush so front ends can repaint only dirty lines.
type Screen struct {
	width  int
	height int
	cells  [][]Cell

	area   Region
	cursor Vec2
	dirty  []bool
}

// NewScreen creates a new screen buffer filled with the background color.
func NewScreen(width, height int, bg Color) *Screen {
	s := &Screen{
		width:  width,
		height: height,
	}
	s.cells = make([][]Cell, height)
	for y := range s.cells {
		s.cells[y] = make([]Cell, width)
	}
	s.dirty = make([]bool, height)
	s.Fill(bg)
	return s
}

// Width returns the screen width in pixels.
func (s *Screen) Width() int {
	return s.width
}

// Height returns the screen height in pixels.
func (s *Screen) Height() int {
	return s.height
}

// Bounds returns the region covering the whole screen.
func (s *Screen) Bounds() Region {
	return NewRegion(0, 0, s.width-1, s.height-1)
}

// Fill paints every pixel with the given color and drops any text.
func (s *Screen) Fill(c Color) {
	for y := range s.cells {
		for x := range s.cells[y] {
			s.cells[y][x] = Cell{Color: c, BG: c}
		}
		s.dirty[y] = true
	}
}

// SetArea declares the rectangle that following WritePixel calls fill,
// left to right, top to bottom. The cursor starts at the top-left corner.
func (s *Screen) SetArea(r Region) {
	s.area = r
	s.cursor = r.TopLeft
}

// WritePixel writes one pixel at the cursor and advances it within the
// declared area. Pixels that fall outside the screen are dropped but still
// advance the cursor, so the caller's row-major order stays aligned.
func (s *Screen) WritePixel(c Color) {
	x, y := s.cursor.X, s.cursor.Y
	if x >= 0 && x < s.width && y >= 0 && y < s.height {
		s.cells[y][x] = Cell{Color: c, BG: c}
		s.dirty[y] = true
	}

	s.cursor.X++
	if s.cursor.X > s.area.BotRight.X {
		s.cursor.X = s.area.TopLeft.X
		s.cursor.Y++
		if s.cursor.Y > s.area.BotRight.Y {
			s.cursor.Y = s.area.TopLeft.Y
		}
	}
}

// DrawText writes a string horizontally starting at (x, y).
// Characters that extend beyond screen bounds are clipped.
func (s *Screen) DrawText(x, y int, text string, fg, bg Color) {
	if y < 0 || y >= s.height {
		return
	}
	i := 0
	for _, r := range text {
		cx := x + i
		i++
		if cx < 0 || cx >= s.width {
			continue
		}
		s.cells[y][cx] = Cell{Rune: r, Color: fg, BG: bg}
	}
	s.dirty[y] = true
}

// GetCell returns the cell at the given position.
// Out-of-bounds coordinates return an empty cell.
func (s *Screen) GetCell(x, y int) Cell {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return Cell{}
	}
	return s.cells[y][x]
}

// ColorAt returns the pixel color at the given position.
func (s *Screen) ColorAt(x, y int) Color {
	return s.GetCell(x, y).Color
}

// DirtyRows returns the rows modified since the last call and clears the marks.
func (s *Screen) DirtyRows() []int {
	var rows []int
	for y, d := range s.dirty {
		if d {
			rows = append(rows, y)
			s.dirty[y] = false
		}
	}
	return rows
}

// String converts the screen buffer to plain text, one line per row.
// Pixels of the background color become spaces, other pixels become
// PixelRune, text cells keep their glyph.
func (s *Screen) String(bg Color) string {
	var sb strings.Builder
	sb.Grow(s.width*s.height*3 + s.height)

	for y := 0; y < s.height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		s.writeRow(&sb, y, bg)
	}
	return sb.String()
}

// Row returns one row as plain text, like a line of String.
func (s *Screen) Row(y int, bg Color) string {
	if y < 0 || y >= s.height {
		return ""
	}
	var sb strings.Builder
	sb.Grow(s.width * 3)
	s.writeRow(&sb, y, bg)
	return sb.String()
}

func (s *Screen) writeRow(sb *strings.Builder, y int, bg Color) {
	for x := 0; x < s.width; x++ {
		sb.WriteRune(s.cells[y][x].Glyph(bg))
	}
}
