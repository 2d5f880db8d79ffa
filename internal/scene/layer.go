// Package scene holds the ordered layer stack, the set of layers that move,
// and the occlusion renderer that paints them.
package scene

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/handball/internal/core"
	"github.com/vovakirdan/handball/internal/shape"
)

// Construction errors.
var (
	ErrDuplicateLayer = errors.New("duplicate layer name")
	ErrUnknownLayer   = errors.New("unknown layer")
	ErrNoShape        = errors.New("layer has no shape")
	ErrEmptyStack     = errors.New("layer stack is empty")
)

// Layer is a positioned, colored shape.
//
// Pos is the position used for rendering this frame, PosLast the position
// of the previous frame (its footprint must be erased) and PosNext the
// tentative position for the next frame, written by the physics tick and
// committed into Pos by Scene.Commit.
type Layer struct {
	Name    string
	Shape   shape.Shape
	Color   core.Color
	Pos     core.Vec2
	PosLast core.Vec2
	PosNext core.Vec2
}

// NewLayer creates a layer resting at pos.
func NewLayer(name string, s shape.Shape, color core.Color, pos core.Vec2) Layer {
	return Layer{
		Name:    name,
		Shape:   s,
		Color:   color,
		Pos:     pos,
		PosLast: pos,
		PosNext: pos,
	}
}

// Bounds returns the layer's bounding region at its current position.
func (l *Layer) Bounds() core.Region {
	return l.Shape.Bounds(l.Pos)
}

// Contains reports whether the layer's shape covers p at its current position.
func (l *Layer) Contains(p core.Vec2) bool {
	return l.Shape.Contains(l.Pos, p)
}

// Stack is the ordered set of layers. Index 0 is the front-most layer:
// when shapes overlap, the earlier layer hides the later ones.
// The stack is fixed after construction.
type Stack struct {
	layers []Layer
	index  map[string]int
}

// NewStack builds a stack from front to back.
func NewStack(layers ...Layer) (*Stack, error) {
	if len(layers) == 0 {
		return nil, fmt.Errorf("scene: %w", ErrEmptyStack)
	}

	st := &Stack{
		layers: make([]Layer, len(layers)),
		index:  make(map[string]int, len(layers)),
	}
	copy(st.layers, layers)

	for i := range st.layers {
		l := &st.layers[i]
		if l.Shape == nil {
			return nil, fmt.Errorf("scene: layer %q: %w", l.Name, ErrNoShape)
		}
		if _, dup := st.index[l.Name]; dup {
			return nil, fmt.Errorf("scene: layer %q: %w", l.Name, ErrDuplicateLayer)
		}
		st.index[l.Name] = i
	}

	return st, nil
}

// Len returns the number of layers.
func (st *Stack) Len() int {
	return len(st.layers)
}

// At returns the layer at the given depth (0 = front).
func (st *Stack) At(i int) *Layer {
	return &st.layers[i]
}

// Index returns the depth of the named layer.
func (st *Stack) Index(name string) (int, error) {
	i, ok := st.index[name]
	if !ok {
		return 0, fmt.Errorf("scene: %q: %w", name, ErrUnknownLayer)
	}
	return i, nil
}

// Lookup returns the named layer.
func (st *Stack) Lookup(name string) (*Layer, error) {
	i, err := st.Index(name)
	if err != nil {
		return nil, err
	}
	return &st.layers[i], nil
}

// ColorAt resolves the visible color of pixel p: the color of the first
// layer, front to back, whose shape covers p, or bg if none does.
func (st *Stack) ColorAt(p core.Vec2, bg core.Color) core.Color {
	for i := range st.layers {
		if st.layers[i].Contains(p) {
			return st.layers[i].Color
		}
	}
	return bg
}
