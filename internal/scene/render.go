package scene

import (
	"github.com/vovakirdan/handball/internal/core"
)

// Display is the pixel sink of the renderer, modeled on an LCD controller:
// declare a target rectangle, then stream its pixels in row-major order.
type Display interface {
	SetArea(r core.Region)
	WritePixel(c core.Color)
}

// Renderer paints regions of a scene by resolving occlusion per pixel.
type Renderer struct {
	display Display
	bounds  core.Region
}

// NewRenderer creates a renderer for a display covering bounds.
// Regions are clipped to bounds before they are declared to the display.
func NewRenderer(d Display, bounds core.Region) *Renderer {
	return &Renderer{display: d, bounds: bounds}
}

// Paint recomputes and writes every pixel of region. For each pixel the
// stack is probed front to back and the first covering layer's color wins;
// uncovered pixels get the background. Returns the number of pixels written.
func (r *Renderer) Paint(st *Stack, region core.Region, bg core.Color) int {
	region = region.Clip(r.bounds)
	if !region.Valid() {
		return 0
	}

	r.display.SetArea(region)
	for y := region.TopLeft.Y; y <= region.BotRight.Y; y++ {
		for x := region.TopLeft.X; x <= region.BotRight.X; x++ {
			r.display.WritePixel(st.ColorAt(core.V(x, y), bg))
		}
	}
	return region.Area()
}

// Full repaints the entire display.
func (r *Renderer) Full(s *Scene) int {
	return r.Paint(s.Stack(), r.bounds, s.Background())
}

// Moving repaints the dirty region of every moving layer, erasing the old
// footprint and painting the new one. Call it after Scene.Commit, from the
// goroutine that commits.
func (r *Renderer) Moving(s *Scene) int {
	n := 0
	for _, region := range s.DirtyRegions() {
		n += r.Paint(s.Stack(), region, s.Background())
	}
	return n
}
