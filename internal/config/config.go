// Package config provides YAML-based configuration loading and difficulty
// management for the handball engine.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/handball/internal/core"
	"github.com/vovakirdan/handball/internal/shape"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// HandballConfig contains all configuration for the handball game.
type HandballConfig struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Timer      TimerConfig      `yaml:"timer"`
	Layers     []LayerConfig    `yaml:"layers"` // front to back
	Motion     []MotionConfig   `yaml:"motion"`
	FenceLayer string           `yaml:"fence_layer"`
	Paddle     PaddleConfig     `yaml:"paddle"`
	Contact    ContactConfig    `yaml:"contact"`
	Rules      RulesConfig      `yaml:"rules"`
	Background core.Color       `yaml:"background"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// ScreenConfig defines the display surface in pixels (terminal cells).
type ScreenConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Bounds returns the full display region.
func (s ScreenConfig) Bounds() core.Region {
	return core.NewRegion(0, 0, s.Width-1, s.Height-1)
}

// TimerConfig defines the periodic tick source.
type TimerConfig struct {
	RateHz  int `yaml:"rate_hz"` // Timer firings per second
	Divider int `yaml:"divider"` // Physics runs on every Nth firing
}

// LayerConfig describes one drawable layer.
type LayerConfig struct {
	Name  string     `yaml:"name"`
	Shape shape.Spec `yaml:"shape"`
	Pos   core.Vec2  `yaml:"pos"`
	Color core.Color `yaml:"color"`
}

// MotionConfig puts a layer under physics with an initial velocity.
type MotionConfig struct {
	Layer    string    `yaml:"layer"`
	Velocity core.Vec2 `yaml:"velocity"`
}

// PaddleConfig defines the player-controlled layer. An empty Layer disables input.
type PaddleConfig struct {
	Layer        string    `yaml:"layer"`
	Step         int       `yaml:"step"`
	UpLine       int       `yaml:"up_line"`
	DownLine     int       `yaml:"down_line"`
	Lines        int       `yaml:"lines"`
	TopMarker    core.Vec2 `yaml:"top_marker"`
	BottomMarker core.Vec2 `yaml:"bottom_marker"`
}

// ContactConfig names the layers of the paddle hit test. Empty disables it.
type ContactConfig struct {
	Paddle string `yaml:"paddle"`
	Probe  string `yaml:"probe"`
}

// Enabled reports whether a contact test is configured.
func (c ContactConfig) Enabled() bool {
	return c.Paddle != "" && c.Probe != ""
}

// RulesConfig defines scoring and game-over conditions.
type RulesConfig struct {
	Policy        string     `yaml:"policy"`          // "edge" or "legacy"
	Edges         []EdgeRule `yaml:"edges,omitempty"` // edge policy rules; empty uses the default mapping
	ScoreTarget   int        `yaml:"score_target"`
	LossThreshold int        `yaml:"loss_threshold"`
	PulseSpins    int        `yaml:"pulse_spins"` // Indicator writes per score pulse
}

// EdgeRule maps a fence edge to an event under the edge policy.
type EdgeRule struct {
	Axis  string `yaml:"axis"`  // "x" or "y"
	Edge  string `yaml:"edge"`  // "min" or "max"
	Event string `yaml:"event"` // "score", "loss" or "none"
}

// DifficultyConfig defines how the tick rate speeds up as the rally goes on.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	DividerReduction int `yaml:"divider_reduction"` // Timer divider reduction at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset resolves a preset name. The empty name is normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	}
	return "", fmt.Errorf("config: unknown difficulty %q: %w", name, ErrInvalid)
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// Validate checks the settings that can be verified without building the
// scene. Layer geometry and policy names are checked by the game on construction.
func (c HandballConfig) Validate() error {
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		return fmt.Errorf("config: screen %dx%d: %w", c.Screen.Width, c.Screen.Height, ErrInvalid)
	}
	if c.Timer.RateHz <= 0 {
		return fmt.Errorf("config: timer.rate_hz must be positive: %w", ErrInvalid)
	}
	if c.Timer.Divider < 1 {
		return fmt.Errorf("config: timer.divider must be at least 1: %w", ErrInvalid)
	}
	if len(c.Layers) == 0 {
		return fmt.Errorf("config: no layers: %w", ErrInvalid)
	}

	names := make(map[string]bool, len(c.Layers))
	for _, l := range c.Layers {
		if l.Name == "" {
			return fmt.Errorf("config: layer without a name: %w", ErrInvalid)
		}
		if names[l.Name] {
			return fmt.Errorf("config: duplicate layer %q: %w", l.Name, ErrInvalid)
		}
		names[l.Name] = true
	}

	known := func(field, name string) error {
		if !names[name] {
			return fmt.Errorf("config: %s refers to unknown layer %q: %w", field, name, ErrInvalid)
		}
		return nil
	}
	for _, m := range c.Motion {
		if err := known("motion", m.Layer); err != nil {
			return err
		}
	}
	if err := known("fence_layer", c.FenceLayer); err != nil {
		return err
	}
	if c.Paddle.Layer != "" {
		if err := known("paddle.layer", c.Paddle.Layer); err != nil {
			return err
		}
		if c.Paddle.Lines < 1 || c.Paddle.Lines > core.MaxLines {
			return fmt.Errorf("config: paddle.lines must be 1..%d: %w", core.MaxLines, ErrInvalid)
		}
		for _, line := range []int{c.Paddle.UpLine, c.Paddle.DownLine} {
			if line < 0 || line >= c.Paddle.Lines {
				return fmt.Errorf("config: paddle line %d out of range: %w", line, ErrInvalid)
			}
		}
		if c.Paddle.Step <= 0 {
			return fmt.Errorf("config: paddle.step must be positive: %w", ErrInvalid)
		}
	}
	if c.Contact.Enabled() {
		if err := known("contact.paddle", c.Contact.Paddle); err != nil {
			return err
		}
		if err := known("contact.probe", c.Contact.Probe); err != nil {
			return err
		}
	}

	if c.Rules.ScoreTarget < 1 {
		return fmt.Errorf("config: rules.score_target must be at least 1: %w", ErrInvalid)
	}
	if c.Rules.LossThreshold < 1 {
		return fmt.Errorf("config: rules.loss_threshold must be at least 1: %w", ErrInvalid)
	}
	if c.Rules.PulseSpins < 0 {
		return fmt.Errorf("config: rules.pulse_spins must not be negative: %w", ErrInvalid)
	}
	return nil
}
