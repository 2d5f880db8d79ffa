package physics

import (
	"fmt"

	"github.com/vovakirdan/handball/internal/core"
)

// Edge selects the low or high side of a fence axis.
type Edge int

const (
	EdgeMin Edge = iota
	EdgeMax
)

func (e Edge) String() string {
	if e == EdgeMin {
		return "min"
	}
	return "max"
}

// Event is a game consequence of a boundary collision.
type Event int

const (
	EventNone Event = iota
	EventScore
	EventLoss
)

func (e Event) String() string {
	switch e {
	case EventScore:
		return "score"
	case EventLoss:
		return "loss"
	default:
		return "none"
	}
}

// Rule maps a breach of one fence edge to an event.
type Rule struct {
	Axis  int
	Edge  Edge
	Event Event
}

// PolicyMode selects how collisions are turned into events.
type PolicyMode int

const (
	// PolicyEdge fires a rule's event when the reflected axis breaches the
	// rule's edge.
	PolicyEdge PolicyMode = iota

	// PolicyLegacy uses the LCD board's comparisons: a loss whenever the
	// shape's left edge is left of the reflected axis's fence minimum, and a
	// score whenever the reflected axis's high edge is right of the fence's
	// X maximum but not past its Y maximum. The edge/axis coupling is
	// unconfirmed.
	PolicyLegacy
)

func (m PolicyMode) String() string {
	if m == PolicyLegacy {
		return "legacy"
	}
	return "edge"
}

// ParsePolicyMode resolves a config policy name.
func ParsePolicyMode(name string) (PolicyMode, error) {
	switch name {
	case "", "edge":
		return PolicyEdge, nil
	case "legacy":
		return PolicyLegacy, nil
	}
	return 0, fmt.Errorf("physics: unknown policy %q", name)
}

// ParseRule resolves a rule written as axis ("x" or "y"), edge ("min" or
// "max") and event ("score", "loss" or "none").
func ParseRule(axis, edge, event string) (Rule, error) {
	var r Rule
	switch axis {
	case "x":
		r.Axis = core.AxisX
	case "y":
		r.Axis = core.AxisY
	default:
		return r, fmt.Errorf("physics: unknown axis %q", axis)
	}
	switch edge {
	case "min":
		r.Edge = EdgeMin
	case "max":
		r.Edge = EdgeMax
	default:
		return r, fmt.Errorf("physics: unknown edge %q", edge)
	}
	switch event {
	case "score":
		r.Event = EventScore
	case "loss":
		r.Event = EventLoss
	case "none":
		r.Event = EventNone
	default:
		return r, fmt.Errorf("physics: unknown event %q", event)
	}
	return r, nil
}

// Policy decides which events a collision on one axis produces.
type Policy struct {
	Mode  PolicyMode
	Rules []Rule
}

// DefaultPolicy is the handball mapping: leaving through the left edge
// loses, bouncing off the right edge scores.
func DefaultPolicy() Policy {
	return Policy{
		Mode: PolicyEdge,
		Rules: []Rule{
			{Axis: core.AxisX, Edge: EdgeMin, Event: EventLoss},
			{Axis: core.AxisX, Edge: EdgeMax, Event: EventScore},
		},
	}
}

// Events returns the events raised by a reflection on axis, given the
// candidate bounds before reflection. Losses are listed before scores.
func (p Policy) Events(axis int, bounds core.Region, f Fence) []Event {
	var events []Event

	if p.Mode == PolicyLegacy {
		if bounds.Min(core.AxisX) < f.Min(axis) {
			events = append(events, EventLoss)
		}
		if bounds.Max(axis) > f.Max(core.AxisX) && !(bounds.Max(axis) > f.Max(core.AxisY)) {
			events = append(events, EventScore)
		}
		return events
	}

	low, high := f.Breached(bounds, axis)
	for _, ev := range []Event{EventLoss, EventScore} {
		for _, r := range p.Rules {
			if r.Axis != axis || r.Event != ev {
				continue
			}
			if (r.Edge == EdgeMin && low) || (r.Edge == EdgeMax && high) {
				events = append(events, ev)
				break
			}
		}
	}
	return events
}
