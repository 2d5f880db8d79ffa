package scene

import (
	"fmt"
	"sync"

	"github.com/vovakirdan/handball/internal/core"
)

// Moving marks a layer of the stack as participating in physics.
// Velocity is applied once per tick and flips sign on collisions.
type Moving struct {
	Layer    int
	Velocity core.Vec2
}

// Scene couples the layer stack with its moving subset and the critical
// section that serializes position updates between the tick goroutine and
// the render loop.
type Scene struct {
	mu     sync.Mutex
	stack  *Stack
	motion []Moving
	bg     core.Color
}

// New creates a scene. Every motion entry must reference a layer of the
// stack, and a layer may appear in the motion list only once.
func New(stack *Stack, motion []Moving, bg core.Color) (*Scene, error) {
	seen := make(map[int]bool, len(motion))
	for _, m := range motion {
		if m.Layer < 0 || m.Layer >= stack.Len() {
			return nil, fmt.Errorf("scene: motion entry for layer #%d: %w", m.Layer, ErrUnknownLayer)
		}
		if seen[m.Layer] {
			return nil, fmt.Errorf("scene: layer %q moves twice: %w", stack.At(m.Layer).Name, ErrDuplicateLayer)
		}
		seen[m.Layer] = true
	}

	mv := make([]Moving, len(motion))
	copy(mv, motion)

	return &Scene{
		stack:  stack,
		motion: mv,
		bg:     bg,
	}, nil
}

// Stack returns the layer stack.
func (s *Scene) Stack() *Stack {
	return s.stack
}

// Background returns the color of pixels no layer covers.
func (s *Scene) Background() core.Color {
	return s.bg
}

// Motion returns the moving entries. Elements are shared with the scene;
// mutate them only inside Critical.
func (s *Scene) Motion() []Moving {
	return s.motion
}

// MovingLayer returns the layer of the i-th motion entry.
func (s *Scene) MovingLayer(i int) *Layer {
	return s.stack.At(s.motion[i].Layer)
}

// Critical runs fn with the scene's position fields locked. Every writer of
// PosNext and every reconciliation of PosNext into Pos goes through here.
func (s *Scene) Critical(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
}

// Commit moves every moving layer one frame forward: PosLast takes Pos and
// Pos takes PosNext. Both writes happen inside one critical section so the
// tick goroutine never sees a half-committed layer.
func (s *Scene) Commit() {
	s.Critical(func() {
		for i := range s.motion {
			l := s.MovingLayer(i)
			l.PosLast = l.Pos
			l.Pos = l.PosNext
		}
	})
}

// DirtyRegions returns, for each moving layer, the union of its bounds at
// PosLast and at Pos: the area to repaint after a commit.
func (s *Scene) DirtyRegions() []core.Region {
	regions := make([]core.Region, 0, len(s.motion))
	for i := range s.motion {
		l := s.MovingLayer(i)
		old := l.Shape.Bounds(l.PosLast)
		regions = append(regions, old.Union(l.Bounds()))
	}
	return regions
}
