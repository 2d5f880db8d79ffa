// Package core provides fundamental types and utilities for the handball engine.
// It contains no external dependencies (especially no Bubble Tea) to keep the
// scene, physics and game logic pure and testable.
package core

import "fmt"

// Axis indices used by Vec2.Axis and Region.Min/Max.
const (
	AxisX = 0
	AxisY = 1
)

// Vec2 is an integer 2D vector used for positions and velocities.
type Vec2 struct {
	X, Y int
}

// V is shorthand for Vec2{X: x, Y: y}.
func V(x, y int) Vec2 {
	return Vec2{X: x, Y: y}
}

// Axis returns the component on the given axis (AxisX or AxisY).
func (v Vec2) Axis(axis int) int {
	if axis == AxisX {
		return v.X
	}
	return v.Y
}

// SetAxis sets the component on the given axis.
func (v *Vec2) SetAxis(axis, val int) {
	if axis == AxisX {
		v.X = val
		return
	}
	v.Y = val
}

// Add returns the component-wise sum of two vectors.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns the component-wise difference of two vectors.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vec2) String() string {
	return fmt.Sprintf("(%d,%d)", v.X, v.Y)
}

// Region is an axis-aligned rectangle with inclusive corners.
// A valid region has TopLeft <= BotRight on both axes.
type Region struct {
	TopLeft  Vec2
	BotRight Vec2
}

// NewRegion creates a region from its inclusive corner coordinates.
func NewRegion(x0, y0, x1, y1 int) Region {
	return Region{TopLeft: V(x0, y0), BotRight: V(x1, y1)}
}

// Valid reports whether the corners are ordered on both axes.
func (r Region) Valid() bool {
	return r.TopLeft.X <= r.BotRight.X && r.TopLeft.Y <= r.BotRight.Y
}

// Width returns the number of columns covered by the region.
func (r Region) Width() int {
	return r.BotRight.X - r.TopLeft.X + 1
}

// Height returns the number of rows covered by the region.
func (r Region) Height() int {
	return r.BotRight.Y - r.TopLeft.Y + 1
}

// Area returns the pixel count of the region, 0 for invalid regions.
func (r Region) Area() int {
	if !r.Valid() {
		return 0
	}
	return r.Width() * r.Height()
}

// Min returns the low edge on the given axis.
func (r Region) Min(axis int) int {
	return r.TopLeft.Axis(axis)
}

// Max returns the high edge on the given axis.
func (r Region) Max(axis int) int {
	return r.BotRight.Axis(axis)
}

// Contains returns true if p lies inside the region (edges included).
func (r Region) Contains(p Vec2) bool {
	return p.X >= r.TopLeft.X && p.X <= r.BotRight.X &&
		p.Y >= r.TopLeft.Y && p.Y <= r.BotRight.Y
}

// Intersects returns true if the two regions share at least one pixel.
func (r Region) Intersects(o Region) bool {
	if r.BotRight.X < o.TopLeft.X || o.BotRight.X < r.TopLeft.X {
		return false
	}
	if r.BotRight.Y < o.TopLeft.Y || o.BotRight.Y < r.TopLeft.Y {
		return false
	}
	return true
}

// Union returns the smallest region covering both regions.
func (r Region) Union(o Region) Region {
	return Region{
		TopLeft:  V(Min(r.TopLeft.X, o.TopLeft.X), Min(r.TopLeft.Y, o.TopLeft.Y)),
		BotRight: V(Max(r.BotRight.X, o.BotRight.X), Max(r.BotRight.Y, o.BotRight.Y)),
	}
}

// Clip restricts the region to the bounds. The result may be invalid
// when the regions do not overlap; check Valid before using it.
func (r Region) Clip(bounds Region) Region {
	return Region{
		TopLeft:  V(Max(r.TopLeft.X, bounds.TopLeft.X), Max(r.TopLeft.Y, bounds.TopLeft.Y)),
		BotRight: V(Min(r.BotRight.X, bounds.BotRight.X), Min(r.BotRight.Y, bounds.BotRight.Y)),
	}
}

func (r Region) String() string {
	return fmt.Sprintf("[%s-%s]", r.TopLeft, r.BotRight)
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Sign returns -1, 0 or 1.
func Sign(x int) int {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	}
	return 0
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
