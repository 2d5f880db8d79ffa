package physics

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/handball/internal/core"
	"github.com/vovakirdan/handball/internal/scene"
)

// Scorer receives the events raised by collisions. Implementations decide
// whether the event still counts (a finished game ignores them).
type Scorer interface {
	AddPoint() bool
	AddLoss() bool
}

// Contact is the paddle hit test: it reports contact when the probe
// layer's position lies inside the paddle's shape at the paddle's position.
// Contact reflects every moving layer on both axes, like a fence breach.
type Contact struct {
	Paddle int
	Probe  int
}

// Touching evaluates the contact against the stack's current positions.
func (c Contact) Touching(st *scene.Stack) bool {
	return st.At(c.Paddle).Contains(st.At(c.Probe).Pos)
}

// Options configures an Engine.
type Options struct {
	Policy     Policy
	Contact    *Contact
	Indicator  Indicator
	PulseSpins int
	Scorer     Scorer
	Logger     *log.Logger
}

// Report summarizes one Advance call.
type Report struct {
	Reflections int
	Events      []Event
}

// Engine advances every moving layer of a scene by one tick.
type Engine struct {
	scene      *scene.Scene
	fence      Fence
	policy     Policy
	contact    *Contact
	indicator  Indicator
	pulseSpins int
	scorer     Scorer
	logger     *log.Logger
}

// NewEngine creates an engine bouncing the scene's moving layers inside fence.
func NewEngine(sc *scene.Scene, fence Fence, opts Options) *Engine {
	if opts.Indicator == nil {
		opts.Indicator = NopIndicator{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return &Engine{
		scene:      sc,
		fence:      fence,
		policy:     opts.Policy,
		contact:    opts.Contact,
		indicator:  opts.Indicator,
		pulseSpins: opts.PulseSpins,
		scorer:     opts.Scorer,
		logger:     opts.Logger,
	}
}

// Fence returns the engine's boundary.
func (e *Engine) Fence() Fence {
	return e.fence
}

// Advance moves every moving layer's PosNext by its velocity, reflecting
// off the fence, inside the scene's critical section.
func (e *Engine) Advance() Report {
	var rep Report
	e.scene.Critical(func() {
		touching := e.contact != nil && e.contact.Touching(e.scene.Stack())
		for i := range e.scene.Motion() {
			e.advance(i, touching, &rep)
		}
	})
	return rep
}

// advance handles one moving layer. Both axes are tested against the
// bounds of the unreflected candidate, so a corner hit flips both.
func (e *Engine) advance(i int, touching bool, rep *Report) {
	m := &e.scene.Motion()[i]
	l := e.scene.MovingLayer(i)

	next := l.PosNext.Add(m.Velocity)
	bounds := l.Shape.Bounds(next)

	for axis := core.AxisX; axis <= core.AxisY; axis++ {
		low, high := e.fence.Breached(bounds, axis)
		if !low && !high && !touching {
			continue
		}

		v := -m.Velocity.Axis(axis)
		m.Velocity.SetAxis(axis, v)
		next.SetAxis(axis, next.Axis(axis)+2*v)
		rep.Reflections++

		for _, ev := range e.policy.Events(axis, bounds, e.fence) {
			e.raise(l, ev, rep)
		}
	}

	l.PosNext = next
}

func (e *Engine) raise(l *scene.Layer, ev Event, rep *Report) {
	if e.scorer == nil {
		return
	}

	var counted bool
	switch ev {
	case EventLoss:
		counted = e.scorer.AddLoss()
	case EventScore:
		counted = e.scorer.AddPoint()
		if counted {
			Pulse(e.indicator, e.pulseSpins)
		}
	}
	if !counted {
		return
	}

	rep.Events = append(rep.Events, ev)
	e.logger.Debug("boundary event", "layer", l.Name, "event", ev, "pos", l.PosNext)
}
