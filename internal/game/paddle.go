package game

import (
	"github.com/vovakirdan/handball/internal/core"
	"github.com/vovakirdan/handball/internal/scene"
)

// Paddle moves a layer vertically from two active-low input lines.
// Movement on each line stops once the paddle, at its tentative position,
// covers that direction's boundary marker.
type Paddle struct {
	scene    *scene.Scene
	layer    *scene.Layer
	step     int
	upLine   int
	downLine int
	top      core.Vec2
	bottom   core.Vec2
}

// PaddleSpec configures a Paddle.
type PaddleSpec struct {
	Step         int
	UpLine       int
	DownLine     int
	TopMarker    core.Vec2
	BottomMarker core.Vec2
}

// NewPaddle binds a paddle to a layer of the scene.
func NewPaddle(sc *scene.Scene, layer *scene.Layer, spec PaddleSpec) *Paddle {
	return &Paddle{
		scene:    sc,
		layer:    layer,
		step:     spec.Step,
		upLine:   spec.UpLine,
		downLine: spec.DownLine,
		top:      spec.TopMarker,
		bottom:   spec.BottomMarker,
	}
}

// Layer returns the paddle's layer.
func (p *Paddle) Layer() *scene.Layer {
	return p.layer
}

// Apply moves the paddle's PosNext according to the switch snapshot. It
// returns the resulting PosNext, read inside the critical section, and
// whether the paddle moved. Both directions are guarded against the
// position before this call, so pressing both lines cancels out.
func (p *Paddle) Apply(sw core.Switches) (core.Vec2, bool) {
	var pos core.Vec2
	moved := false
	p.scene.Critical(func() {
		prev := p.layer.PosNext
		s := p.layer.Shape

		if sw.Active(p.downLine) && !s.Contains(prev, p.bottom) {
			p.layer.PosNext.Y += p.step
			p.layer.PosLast = prev
			moved = true
		}
		if sw.Active(p.upLine) && !s.Contains(prev, p.top) {
			p.layer.PosNext.Y -= p.step
			p.layer.PosLast = prev
			moved = true
		}
		pos = p.layer.PosNext
	})
	return pos, moved
}
