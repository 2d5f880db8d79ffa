package config

import (
	"github.com/vovakirdan/handball/internal/core"
	"github.com/vovakirdan/handball/internal/shape"
)

// ClassicHandballConfig returns the handball board of a 128x160 LCD: a
// 3x20 paddle on the left, a tall wall on the right and a radius-3 ball.
// Physics runs on every 15th firing of a 250 Hz timer and scoring uses
// the legacy boundary comparisons. The board is taller than most
// terminals; it is meant for headless runs and large windows.
func ClassicHandballConfig() HandballConfig {
	const w, h = 128, 160
	return HandballConfig{
		Screen: ScreenConfig{Width: w, Height: h},
		Timer:  TimerConfig{RateHz: 250, Divider: 15},
		Layers: []LayerConfig{
			{Name: "ball", Shape: shape.Spec{Kind: "circle", Radius: 3}, Pos: core.V(w/2+10, h/2+5), Color: core.ColorWhite},
			{Name: "paddle", Shape: shape.Spec{Kind: "rect", HalfW: 3, HalfH: 20}, Pos: core.V(15, h/2), Color: core.ColorRed},
			{Name: "field", Shape: shape.Spec{Kind: "rect_outline", HalfW: w/2 - 10, HalfH: h/2 - 10}, Pos: core.V(w/2, h/2), Color: core.ColorGreen},
			{Name: "wall", Shape: shape.Spec{Kind: "rect", HalfW: 1, HalfH: 70}, Pos: core.V(116, h/2), Color: core.ColorWhite},
		},
		Motion: []MotionConfig{
			{Layer: "ball", Velocity: core.V(3, 3)},
			{Layer: "paddle"},
		},
		FenceLayer: "field",
		Paddle: PaddleConfig{
			Layer:        "paddle",
			Step:         5,
			UpLine:       0,
			DownLine:     3,
			Lines:        4,
			TopMarker:    core.V(15, 11),
			BottomMarker: core.V(15, 149),
		},
		Contact: ContactConfig{Paddle: "paddle", Probe: "ball"},
		Rules: RulesConfig{
			Policy:        "legacy",
			ScoreTarget:   10,
			LossThreshold: 1,
			PulseSpins:    250,
		},
		Background: core.ColorBlack,
	}
}
