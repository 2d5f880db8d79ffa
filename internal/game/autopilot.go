package game

import (
	"context"
	"errors"
	"math/rand"

	"github.com/vovakirdan/handball/internal/core"
	"github.com/vovakirdan/handball/internal/scene"
)

// ErrNoPaddle is returned when an autopilot is requested for a game without input.
var ErrNoPaddle = errors.New("game: no paddle configured")

// Autopilot is a SwitchReader that steers the paddle toward the ball.
// It only reacts while the ball is heading for the paddle's side, and
// misses a reaction with probability 1-skill.
type Autopilot struct {
	scene    *scene.Scene
	paddle   *scene.Layer
	ball     int // index into the scene's motion list
	lines    int
	upLine   int
	downLine int
	skill    float64
	rng      *rand.Rand
}

// NewAutopilot creates an autopilot for g's paddle tracking the first
// moving layer that is not the paddle.
func NewAutopilot(g *Game, skill float64, seed int64) (*Autopilot, error) {
	if g.paddle == nil {
		return nil, ErrNoPaddle
	}

	ball := -1
	for i := range g.scene.Motion() {
		if g.scene.MovingLayer(i) != g.paddle.Layer() {
			ball = i
			break
		}
	}
	if ball < 0 {
		return nil, errors.New("game: no ball to track")
	}

	return &Autopilot{
		scene:    g.scene,
		paddle:   g.paddle.Layer(),
		ball:     ball,
		lines:    g.cfg.Paddle.Lines,
		upLine:   g.cfg.Paddle.UpLine,
		downLine: g.cfg.Paddle.DownLine,
		skill:    skill,
		rng:      rand.New(rand.NewSource(seed)),
	}, nil
}

// ReadSwitches returns the lines the autopilot presses this frame.
func (a *Autopilot) ReadSwitches() core.Switches {
	sw := core.Idle(a.lines)

	var ballPos, vel, paddlePos core.Vec2
	a.scene.Critical(func() {
		ballPos = a.scene.MovingLayer(a.ball).Pos
		vel = a.scene.Motion()[a.ball].Velocity
		paddlePos = a.paddle.PosNext
	})

	// Only move if ball is coming towards the paddle
	towards := (paddlePos.X < ballPos.X && vel.X < 0) || (paddlePos.X > ballPos.X && vel.X > 0)
	if !towards {
		return sw
	}
	if a.rng.Float64() > a.skill {
		return sw
	}

	switch diff := ballPos.Y - paddlePos.Y; {
	case diff < 0:
		sw = sw.Press(a.upLine)
	case diff > 0:
		sw = sw.Press(a.downLine)
	}
	return sw
}

// Simulate runs the game headless: each iteration polls input, runs one
// physics tick and renders a frame, in the order the scheduled loop uses.
// It stops when the game ends, after maxFrames frames (0 means no limit)
// or when ctx is canceled.
func Simulate(ctx context.Context, g *Game, maxFrames int) (Result, error) {
	g.Start()
	for n := 0; maxFrames <= 0 || n < maxFrames; n++ {
		if err := ctx.Err(); err != nil {
			return g.Result(), err
		}
		g.Poll()
		g.Tick()
		if g.Frame() {
			break
		}
	}
	return g.Result(), nil
}
