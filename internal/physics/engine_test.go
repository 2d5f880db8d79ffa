package physics

import (
	"errors"
	"testing"

	"github.com/vovakirdan/handball/internal/core"
	"github.com/vovakirdan/handball/internal/scene"
	"github.com/vovakirdan/handball/internal/shape"
)

// tally is a Scorer that stops counting after the first loss or at target.
type tally struct {
	points, losses int
	target         int
}

func (s *tally) done() bool {
	return s.losses > 0 || (s.target > 0 && s.points >= s.target)
}

func (s *tally) AddPoint() bool {
	if s.done() {
		return false
	}
	s.points++
	return true
}

func (s *tally) AddLoss() bool {
	if s.done() {
		return false
	}
	s.losses++
	return true
}

// countingIndicator records writes.
type countingIndicator struct {
	on, off int
}

func (c *countingIndicator) Set(on bool) {
	if on {
		c.on++
	} else {
		c.off++
	}
}

var testFence = core.NewRegion(0, 0, 20, 20)

func newBallScene(t *testing.T, pos, vel core.Vec2) (*scene.Scene, *scene.Layer) {
	t.Helper()
	st, err := scene.NewStack(scene.NewLayer("ball", shape.NewCircle(1), core.ColorWhite, pos))
	if err != nil {
		t.Fatal(err)
	}
	sc, err := scene.New(st, []scene.Moving{{Layer: 0, Velocity: vel}}, core.ColorBlack)
	if err != nil {
		t.Fatal(err)
	}
	return sc, st.At(0)
}

func newEngine(t *testing.T, sc *scene.Scene, opts Options) *Engine {
	t.Helper()
	f, err := NewFence(testFence)
	if err != nil {
		t.Fatal(err)
	}
	if opts.Policy.Mode == PolicyEdge && opts.Policy.Rules == nil {
		opts.Policy = DefaultPolicy()
	}
	return NewEngine(sc, f, opts)
}

func TestAdvanceFreeFlight(t *testing.T) {
	sc, ball := newBallScene(t, core.V(10, 10), core.V(2, -1))
	e := newEngine(t, sc, Options{})

	rep := e.Advance()
	if rep.Reflections != 0 {
		t.Errorf("Reflections = %d, expected 0", rep.Reflections)
	}
	if ball.PosNext != core.V(12, 9) {
		t.Errorf("PosNext = %s, expected (12,9)", ball.PosNext)
	}
	if ball.Pos != core.V(10, 10) {
		t.Error("Advance must not touch Pos")
	}

	// Consecutive ticks build on PosNext, not Pos.
	e.Advance()
	if ball.PosNext != core.V(14, 8) {
		t.Errorf("PosNext after 2 ticks = %s, expected (14,8)", ball.PosNext)
	}
}

func TestAdvanceRightEdgeScores(t *testing.T) {
	// Ball bounds end 1 pixel inside the right edge.
	sc, ball := newBallScene(t, core.V(18, 10), core.V(3, 0))
	score := &tally{}
	led := &countingIndicator{}
	e := newEngine(t, sc, Options{Scorer: score, Indicator: led, PulseSpins: 250})

	rep := e.Advance()

	if v := sc.Motion()[0].Velocity; v != core.V(-3, 0) {
		t.Errorf("Velocity = %s, expected (-3,0)", v)
	}
	if score.points != 1 || score.losses != 0 {
		t.Errorf("points=%d losses=%d, expected 1/0", score.points, score.losses)
	}
	if len(rep.Events) != 1 || rep.Events[0] != EventScore {
		t.Errorf("Events = %v, expected [score]", rep.Events)
	}
	if ball.PosNext != core.V(15, 10) {
		t.Errorf("PosNext = %s, expected mirrored (15,10)", ball.PosNext)
	}
	if b := ball.Shape.Bounds(ball.PosNext); b.Max(core.AxisX) > testFence.Max(core.AxisX) {
		t.Errorf("post-tick bounds %s still past the fence", b)
	}
	if led.on != 250 || led.off != 1 {
		t.Errorf("indicator on=%d off=%d, expected 250/1", led.on, led.off)
	}
}

func TestAdvanceLeftEdgeLoses(t *testing.T) {
	sc, ball := newBallScene(t, core.V(2, 10), core.V(-3, 0))
	score := &tally{}
	e := newEngine(t, sc, Options{Scorer: score})

	rep := e.Advance()

	if v := sc.Motion()[0].Velocity; v != core.V(3, 0) {
		t.Errorf("Velocity = %s, expected (3,0)", v)
	}
	if score.losses != 1 || score.points != 0 {
		t.Errorf("points=%d losses=%d, expected 0/1", score.points, score.losses)
	}
	if len(rep.Events) != 1 || rep.Events[0] != EventLoss {
		t.Errorf("Events = %v, expected [loss]", rep.Events)
	}
	if ball.PosNext != core.V(5, 10) {
		t.Errorf("PosNext = %s, expected (5,10)", ball.PosNext)
	}
}

func TestAdvanceReflectionLaw(t *testing.T) {
	tests := []struct {
		name string
		pos  core.Vec2
		vel  core.Vec2
		axis int
	}{
		{"top", core.V(10, 2), core.V(0, -2), core.AxisY},
		{"bottom", core.V(10, 18), core.V(1, 3), core.AxisY},
		{"left", core.V(1, 10), core.V(-1, 0), core.AxisX},
		{"right", core.V(19, 10), core.V(4, 1), core.AxisX},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sc, ball := newBallScene(t, tc.pos, tc.vel)
			e := newEngine(t, sc, Options{})
			e.Advance()

			after := sc.Motion()[0].Velocity.Axis(tc.axis)
			before := tc.vel.Axis(tc.axis)
			if core.Sign(after) != -core.Sign(before) {
				t.Errorf("axis %d velocity %d -> %d, expected sign flip", tc.axis, before, after)
			}

			b := ball.Shape.Bounds(ball.PosNext)
			if b.Min(tc.axis) < testFence.Min(tc.axis) || b.Max(tc.axis) > testFence.Max(tc.axis) {
				t.Errorf("post-tick bounds %s outside fence on axis %d", b, tc.axis)
			}
		})
	}
}

func TestAdvanceCornerFlipsBothAxes(t *testing.T) {
	sc, ball := newBallScene(t, core.V(19, 19), core.V(2, 2))
	e := newEngine(t, sc, Options{})

	rep := e.Advance()
	if rep.Reflections != 2 {
		t.Errorf("Reflections = %d, expected 2", rep.Reflections)
	}
	if v := sc.Motion()[0].Velocity; v != core.V(-2, -2) {
		t.Errorf("Velocity = %s, expected (-2,-2)", v)
	}
	if ball.PosNext != core.V(17, 17) {
		t.Errorf("PosNext = %s, expected (17,17)", ball.PosNext)
	}
}

func TestAdvanceContactReflects(t *testing.T) {
	st, err := scene.NewStack(
		scene.NewLayer("ball", shape.NewCircle(1), core.ColorWhite, core.V(6, 10)),
		scene.NewLayer("paddle", shape.NewRect(1, 3), core.ColorRed, core.V(5, 10)),
	)
	if err != nil {
		t.Fatal(err)
	}
	sc, err := scene.New(st, []scene.Moving{{Layer: 0, Velocity: core.V(-1, 1)}, {Layer: 1}}, core.ColorBlack)
	if err != nil {
		t.Fatal(err)
	}
	e := newEngine(t, sc, Options{Contact: &Contact{Paddle: 1, Probe: 0}})

	e.Advance()

	if v := sc.Motion()[0].Velocity; v != core.V(1, -1) {
		t.Errorf("ball Velocity = %s, expected (1,-1)", v)
	}
	if p := st.At(0).PosNext; p != core.V(7, 9) {
		t.Errorf("ball PosNext = %s, expected (7,9)", p)
	}
	if v := sc.Motion()[1].Velocity; v != core.V(0, 0) {
		t.Errorf("paddle Velocity = %s, expected unchanged (0,0)", v)
	}
	if p := st.At(1).PosNext; p != core.V(5, 10) {
		t.Errorf("paddle PosNext = %s, expected unchanged", p)
	}
}

func TestAdvanceIgnoredAfterTerminal(t *testing.T) {
	sc, _ := newBallScene(t, core.V(18, 10), core.V(3, 0))
	score := &tally{target: 1, points: 1}
	led := &countingIndicator{}
	e := newEngine(t, sc, Options{Scorer: score, Indicator: led, PulseSpins: 5})

	rep := e.Advance()
	if score.points != 1 {
		t.Errorf("points = %d, expected no change after target", score.points)
	}
	if len(rep.Events) != 0 {
		t.Errorf("Events = %v, expected none", rep.Events)
	}
	if led.on != 0 {
		t.Error("indicator should not pulse for an ignored score")
	}
	if v := sc.Motion()[0].Velocity; v != core.V(-3, 0) {
		t.Error("reflection still applies after the game ended")
	}
}

func TestNewFenceRejectsDegenerate(t *testing.T) {
	bad := []core.Region{
		core.NewRegion(5, 0, 5, 10),
		core.NewRegion(0, 3, 10, 3),
		core.NewRegion(10, 10, 0, 0),
	}
	for _, r := range bad {
		if _, err := NewFence(r); !errors.Is(err, ErrDegenerateFence) {
			t.Errorf("NewFence(%s) err = %v, expected ErrDegenerateFence", r, err)
		}
	}
}

func TestFenceFromLayer(t *testing.T) {
	l := scene.NewLayer("field", shape.NewRectOutline(30, 10), core.ColorGreen, core.V(40, 12))
	f, err := FenceFromLayer(&l)
	if err != nil {
		t.Fatal(err)
	}
	if f.Region != core.NewRegion(10, 2, 70, 22) {
		t.Errorf("fence = %s", f.Region)
	}

	flat := scene.NewLayer("line", shape.NewRect(5, 0), core.ColorGreen, core.V(0, 0))
	if _, err := FenceFromLayer(&flat); !errors.Is(err, ErrDegenerateFence) {
		t.Errorf("flat layer err = %v, expected ErrDegenerateFence", err)
	}
}
