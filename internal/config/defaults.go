package config

import (
	_ "embed"

	"github.com/vovakirdan/handball/internal/core"
	"github.com/vovakirdan/handball/internal/shape"
)

//go:embed defaults/handball.yaml
var defaultHandballYAML []byte

// DefaultHandballConfig returns the default handball layout for an 80x24
// terminal. Row 0 is left to the score line.
func DefaultHandballConfig() HandballConfig {
	return HandballConfig{
		Screen: ScreenConfig{Width: 80, Height: 24},
		Timer:  TimerConfig{RateHz: 60, Divider: 4},
		Layers: []LayerConfig{
			{Name: "ball", Shape: shape.Spec{Kind: "circle", Radius: 1}, Pos: core.V(42, 13), Color: core.ColorWhite},
			{Name: "paddle", Shape: shape.Spec{Kind: "rect", HalfW: 1, HalfH: 3}, Pos: core.V(6, 12), Color: core.ColorRed},
			{Name: "field", Shape: shape.Spec{Kind: "rect_outline", HalfW: 37, HalfH: 10}, Pos: core.V(40, 12), Color: core.ColorGreen},
			{Name: "wall", Shape: shape.Spec{Kind: "rect", HalfW: 0, HalfH: 10}, Pos: core.V(75, 12), Color: core.ColorWhite},
		},
		Motion: []MotionConfig{
			{Layer: "ball", Velocity: core.V(1, 1)},
			{Layer: "paddle"},
		},
		FenceLayer: "field",
		Paddle: PaddleConfig{
			Layer:        "paddle",
			Step:         2,
			UpLine:       0,
			DownLine:     3,
			Lines:        4,
			TopMarker:    core.V(6, 3),
			BottomMarker: core.V(6, 21),
		},
		Contact: ContactConfig{Paddle: "paddle", Probe: "ball"},
		Rules: RulesConfig{
			Policy:        "edge",
			ScoreTarget:   10,
			LossThreshold: 1,
			PulseSpins:    250,
		},
		Background: core.ColorBlack,
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 10,
			},
			Scaling: ScalingConfig{
				DividerReduction: 2,
			},
		},
	}
}

// DefaultYAML returns the embedded default handball YAML.
func DefaultYAML() []byte {
	return defaultHandballYAML
}
