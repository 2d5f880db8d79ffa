package core

import (
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24, ColorBlack)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}
	if s.Bounds() != NewRegion(0, 0, 79, 23) {
		t.Errorf("Bounds() = %s", s.Bounds())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.ColorAt(x, y) != ColorBlack {
				t.Fatalf("New screen should be filled with background, got %s at (%d, %d)", s.ColorAt(x, y), x, y)
			}
		}
	}
}

func TestScreenAreaWriteRowMajor(t *testing.T) {
	s := NewScreen(10, 10, ColorBlack)
	s.SetArea(NewRegion(2, 3, 4, 4))

	colors := []Color{ColorRed, ColorGreen, ColorBlue, ColorWhite, ColorYellow, ColorCyan}
	for _, c := range colors {
		s.WritePixel(c)
	}

	expected := map[Vec2]Color{
		V(2, 3): ColorRed, V(3, 3): ColorGreen, V(4, 3): ColorBlue,
		V(2, 4): ColorWhite, V(3, 4): ColorYellow, V(4, 4): ColorCyan,
	}
	for p, c := range expected {
		if got := s.ColorAt(p.X, p.Y); got != c {
			t.Errorf("pixel %s = %s, expected %s", p, got, c)
		}
	}
	if s.ColorAt(5, 3) != ColorBlack {
		t.Error("WritePixel should not leave the declared area")
	}
}

func TestScreenAreaClipsOffscreen(t *testing.T) {
	s := NewScreen(4, 4, ColorBlack)
	s.SetArea(NewRegion(-1, 0, 1, 0))

	// (-1,0) is dropped, (0,0) and (1,0) land.
	s.WritePixel(ColorRed)
	s.WritePixel(ColorGreen)
	s.WritePixel(ColorBlue)

	if s.ColorAt(0, 0) != ColorGreen || s.ColorAt(1, 0) != ColorBlue {
		t.Errorf("offscreen pixel should still advance the cursor: got %s %s", s.ColorAt(0, 0), s.ColorAt(1, 0))
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(20, 5, ColorBlack)
	s.DrawText(2, 1, "Hello", ColorWhite, ColorBlack)

	for i, ch := range "Hello" {
		cell := s.GetCell(2+i, 1)
		if cell.Rune != ch || cell.Color != ColorWhite {
			t.Errorf("DrawText: expected %q at (%d, 1), got %q/%s", ch, 2+i, cell.Rune, cell.Color)
		}
	}

	// Text should be clipped at boundaries
	s.DrawText(18, 0, "Hello", ColorWhite, ColorBlack)
	if s.GetCell(18, 0).Rune != 'H' || s.GetCell(19, 0).Rune != 'e' {
		t.Error("Text should be clipped at right boundary")
	}

	// Out of bounds rows are ignored
	s.DrawText(0, 99, "x", ColorWhite, ColorBlack)
}

func TestScreenDirtyRows(t *testing.T) {
	s := NewScreen(5, 5, ColorBlack)
	if rows := s.DirtyRows(); len(rows) != 5 {
		t.Fatalf("fresh screen should have all rows dirty, got %v", rows)
	}
	if rows := s.DirtyRows(); len(rows) != 0 {
		t.Fatalf("DirtyRows should clear marks, got %v", rows)
	}

	s.SetArea(NewRegion(1, 2, 1, 3))
	s.WritePixel(ColorRed)
	s.WritePixel(ColorRed)

	rows := s.DirtyRows()
	if len(rows) != 2 || rows[0] != 2 || rows[1] != 3 {
		t.Errorf("DirtyRows() = %v, expected [2 3]", rows)
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(3, 2, ColorBlack)
	s.SetArea(NewRegion(1, 0, 1, 0))
	s.WritePixel(ColorRed)
	s.DrawText(0, 1, "ab", ColorWhite, ColorBlack)

	expected := " █ \nab "
	if got := s.String(ColorBlack); got != expected {
		t.Errorf("String() = %q, expected %q", got, expected)
	}
	if got := s.Row(1, ColorBlack); got != "ab " {
		t.Errorf("Row(1) = %q, expected %q", got, "ab ")
	}
	if got := s.Row(5, ColorBlack); got != "" {
		t.Errorf("Row(5) = %q, expected empty", got)
	}
}

func TestCellGlyph(t *testing.T) {
	tests := []struct {
		name     string
		cell     Cell
		expected rune
	}{
		{"text", Cell{Rune: 'a', Color: ColorWhite, BG: ColorBlack}, 'a'},
		{"background pixel", Cell{Color: ColorBlack, BG: ColorBlack}, ' '},
		{"shape pixel", Cell{Color: ColorRed, BG: ColorRed}, PixelRune},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.cell.Glyph(ColorBlack); got != tc.expected {
				t.Errorf("Glyph() = %q, expected %q", got, tc.expected)
			}
		})
	}
}
