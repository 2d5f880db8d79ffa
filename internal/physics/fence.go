// Package physics advances moving layers by their velocity and bounces them
// off the fence that encloses the playing field.
package physics

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/handball/internal/core"
	"github.com/vovakirdan/handball/internal/scene"
)

// ErrDegenerateFence is returned for a fence with no interior on some axis.
var ErrDegenerateFence = errors.New("degenerate fence")

// Fence is the playable boundary. A moving layer whose bounds cross one of
// its edges is reflected back inside.
type Fence struct {
	core.Region
}

// NewFence validates the region and wraps it as a fence.
func NewFence(r core.Region) (Fence, error) {
	for axis := core.AxisX; axis <= core.AxisY; axis++ {
		if r.Min(axis) >= r.Max(axis) {
			return Fence{}, fmt.Errorf("physics: %s: %w", r, ErrDegenerateFence)
		}
	}
	return Fence{Region: r}, nil
}

// FenceFromLayer computes a fence once from a layer's bounds at its current position.
func FenceFromLayer(l *scene.Layer) (Fence, error) {
	f, err := NewFence(l.Bounds())
	if err != nil {
		return Fence{}, fmt.Errorf("physics: fence layer %q: %w", l.Name, err)
	}
	return f, nil
}

// Breached reports which edges of the fence bounds crosses on axis.
func (f Fence) Breached(bounds core.Region, axis int) (low, high bool) {
	return bounds.Min(axis) < f.Min(axis), bounds.Max(axis) > f.Max(axis)
}
