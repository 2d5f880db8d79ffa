// Package shape provides the fixed set of geometric primitives a layer can
// draw. Shapes carry no position: every query takes the center explicitly,
// so one shape value can be shared by any number of layers.
package shape

import (
	"fmt"

	"github.com/vovakirdan/handball/internal/core"
)

// Kind identifies one of the closed set of shape primitives.
type Kind int

const (
	KindRect Kind = iota
	KindRectOutline
	KindCircle
)

// String returns the config name of the kind.
func (k Kind) String() string {
	switch k {
	case KindRect:
		return "rect"
	case KindRectOutline:
		return "rect_outline"
	case KindCircle:
		return "circle"
	default:
		return "unknown"
	}
}

// ParseKind resolves a config shape name.
func ParseKind(name string) (Kind, error) {
	switch name {
	case "rect":
		return KindRect, nil
	case "rect_outline", "outline":
		return KindRectOutline, nil
	case "circle":
		return KindCircle, nil
	}
	return 0, fmt.Errorf("shape: unknown kind %q", name)
}

// Shape is a position-free geometric descriptor.
// The interface is sealed: only this package's primitives implement it.
type Shape interface {
	// Kind returns which primitive this is.
	Kind() Kind

	// Bounds returns the axis-aligned bounding region when centered at c.
	Bounds(c core.Vec2) core.Region

	// Contains reports whether p is a pixel of the shape centered at c.
	Contains(c, p core.Vec2) bool

	sealed()
}

// Rect is a filled rectangle described by its half extents.
// It covers center±Half inclusive, so a Rect{Half: (1,2)} is 3x5 pixels.
type Rect struct {
	Half core.Vec2
}

// NewRect creates a filled rectangle with the given half extents.
func NewRect(halfW, halfH int) Rect {
	return Rect{Half: core.V(halfW, halfH)}
}

func (Rect) Kind() Kind { return KindRect }

func (r Rect) Bounds(c core.Vec2) core.Region {
	return core.Region{TopLeft: c.Sub(r.Half), BotRight: c.Add(r.Half)}
}

func (r Rect) Contains(c, p core.Vec2) bool {
	return r.Bounds(c).Contains(p)
}

func (Rect) sealed() {}

// RectOutline is the one-pixel border of a rectangle.
type RectOutline struct {
	Half core.Vec2
}

// NewRectOutline creates a rectangle outline with the given half extents.
func NewRectOutline(halfW, halfH int) RectOutline {
	return RectOutline{Half: core.V(halfW, halfH)}
}

func (RectOutline) Kind() Kind { return KindRectOutline }

func (r RectOutline) Bounds(c core.Vec2) core.Region {
	return core.Region{TopLeft: c.Sub(r.Half), BotRight: c.Add(r.Half)}
}

func (r RectOutline) Contains(c, p core.Vec2) bool {
	b := r.Bounds(c)
	if !b.Contains(p) {
		return false
	}
	return p.X == b.TopLeft.X || p.X == b.BotRight.X ||
		p.Y == b.TopLeft.Y || p.Y == b.BotRight.Y
}

func (RectOutline) sealed() {}

// Circle is a filled disc of the given radius.
type Circle struct {
	Radius int
}

// NewCircle creates a filled circle.
func NewCircle(radius int) Circle {
	return Circle{Radius: radius}
}

func (Circle) Kind() Kind { return KindCircle }

func (ci Circle) Bounds(c core.Vec2) core.Region {
	r := core.V(ci.Radius, ci.Radius)
	return core.Region{TopLeft: c.Sub(r), BotRight: c.Add(r)}
}

func (ci Circle) Contains(c, p core.Vec2) bool {
	d := p.Sub(c)
	return d.X*d.X+d.Y*d.Y <= ci.Radius*ci.Radius
}

func (Circle) sealed() {}

// Spec is the serializable description of a shape.
type Spec struct {
	Kind   string `yaml:"kind"`
	HalfW  int    `yaml:"half_w,omitempty"`
	HalfH  int    `yaml:"half_h,omitempty"`
	Radius int    `yaml:"radius,omitempty"`
}

// Build constructs the shape described by the spec.
// Negative extents are rejected since they would yield inverted bounds.
func (s Spec) Build() (Shape, error) {
	kind, err := ParseKind(s.Kind)
	if err != nil {
		return nil, err
	}

	switch kind {
	case KindRect, KindRectOutline:
		if s.HalfW < 0 || s.HalfH < 0 {
			return nil, fmt.Errorf("shape: %s half extents must be non-negative, got (%d,%d)", kind, s.HalfW, s.HalfH)
		}
		if kind == KindRect {
			return NewRect(s.HalfW, s.HalfH), nil
		}
		return NewRectOutline(s.HalfW, s.HalfH), nil
	case KindCircle:
		if s.Radius < 0 {
			return nil, fmt.Errorf("shape: circle radius must be non-negative, got %d", s.Radius)
		}
		return NewCircle(s.Radius), nil
	}
	return nil, fmt.Errorf("shape: unhandled kind %s", kind)
}
