// Package game assembles the handball scene, physics engine, paddle and
// score state from a configuration and exposes the two halves of the loop:
// Tick for the timer goroutine and Poll/Frame for the render loop.
package game

import (
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/handball/internal/config"
	"github.com/vovakirdan/handball/internal/core"
	"github.com/vovakirdan/handball/internal/physics"
	"github.com/vovakirdan/handball/internal/scene"
)

// ID identifies the game in score storage.
const ID = "handball"

// Banner texts drawn on the terminal transition.
const (
	LoseBanner = "YOU LOSE!"
	WinBanner  = "YOU WIN!"
)

// ErrNoDisplay is returned when Options carries no display.
var ErrNoDisplay = errors.New("game: no display")

// SwitchReader samples the input lines. Lines are active-low.
type SwitchReader interface {
	ReadSwitches() core.Switches
}

// switchPeeker is implemented by readers that can report the raw lines
// without consuming held presses.
type switchPeeker interface {
	Peek() core.Switches
}

// TextOverlay draws status text over the display.
type TextOverlay interface {
	DrawText(x, y int, s string, fg, bg core.Color)
}

// Pacer accepts a new timer divider as the difficulty rises.
type Pacer interface {
	SetDivider(n int)
}

// Options wires a Game to its collaborators. Display is required; Text
// defaults to the display if it can draw text.
type Options struct {
	Display   scene.Display
	Text      TextOverlay
	Switches  SwitchReader
	Indicator physics.Indicator
	Pacer     Pacer
	Logger    *log.Logger
}

// Result summarizes a finished or interrupted game.
type Result struct {
	Score  int
	Losses int
	Status Status
	Ticks  int64
	Frames int
}

// Game is one handball session. Tick runs on the timer goroutine; every
// other method belongs to the render loop.
type Game struct {
	cfg        config.HandballConfig
	scene      *scene.Scene
	engine     *physics.Engine
	state      *State
	paddle     *Paddle
	renderer   *scene.Renderer
	text       TextOverlay
	switches   SwitchReader
	pacer      Pacer
	difficulty *config.DifficultyManager
	logger     *log.Logger

	ticks   atomic.Int64
	frames  int
	divider int
	ended   bool
}

// New builds a game from cfg. Unknown layer names, duplicate layers, bad
// shapes, unknown policies and degenerate fences are reported here.
func New(cfg config.HandballConfig, opts Options) (*Game, error) {
	if opts.Display == nil {
		return nil, ErrNoDisplay
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Text == nil {
		if t, ok := opts.Display.(TextOverlay); ok {
			opts.Text = t
		}
	}

	layers := make([]scene.Layer, 0, len(cfg.Layers))
	for _, lc := range cfg.Layers {
		s, err := lc.Shape.Build()
		if err != nil {
			return nil, fmt.Errorf("game: layer %q: %w", lc.Name, err)
		}
		layers = append(layers, scene.NewLayer(lc.Name, s, lc.Color, lc.Pos))
	}
	st, err := scene.NewStack(layers...)
	if err != nil {
		return nil, err
	}

	motion, err := buildMotion(st, cfg)
	if err != nil {
		return nil, err
	}
	sc, err := scene.New(st, motion, cfg.Background)
	if err != nil {
		return nil, err
	}

	fenceLayer, err := st.Lookup(cfg.FenceLayer)
	if err != nil {
		return nil, err
	}
	fence, err := physics.FenceFromLayer(fenceLayer)
	if err != nil {
		return nil, err
	}

	policy, err := buildPolicy(cfg.Rules)
	if err != nil {
		return nil, err
	}

	var contact *physics.Contact
	if cfg.Contact.Enabled() {
		p, err := st.Index(cfg.Contact.Paddle)
		if err != nil {
			return nil, err
		}
		q, err := st.Index(cfg.Contact.Probe)
		if err != nil {
			return nil, err
		}
		contact = &physics.Contact{Paddle: p, Probe: q}
	}

	state := NewState(cfg.Rules.ScoreTarget, cfg.Rules.LossThreshold)
	engine := physics.NewEngine(sc, fence, physics.Options{
		Policy:     policy,
		Contact:    contact,
		Indicator:  opts.Indicator,
		PulseSpins: cfg.Rules.PulseSpins,
		Scorer:     state,
		Logger:     opts.Logger,
	})

	g := &Game{
		cfg:        cfg,
		scene:      sc,
		engine:     engine,
		state:      state,
		renderer:   scene.NewRenderer(opts.Display, cfg.Screen.Bounds()),
		text:       opts.Text,
		switches:   opts.Switches,
		pacer:      opts.Pacer,
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		logger:     opts.Logger,
		divider:    cfg.Timer.Divider,
	}

	if cfg.Paddle.Layer != "" {
		l, err := st.Lookup(cfg.Paddle.Layer)
		if err != nil {
			return nil, err
		}
		g.paddle = NewPaddle(sc, l, PaddleSpec{
			Step:         cfg.Paddle.Step,
			UpLine:       cfg.Paddle.UpLine,
			DownLine:     cfg.Paddle.DownLine,
			TopMarker:    cfg.Paddle.TopMarker,
			BottomMarker: cfg.Paddle.BottomMarker,
		})
	}

	g.logger.Debug("game assembled",
		"layers", st.Len(), "moving", len(motion), "fence", fence.Region, "policy", policy.Mode)
	return g, nil
}

// buildMotion resolves motion entries. The paddle layer always moves,
// with zero velocity unless configured, so its input is committed.
func buildMotion(st *scene.Stack, cfg config.HandballConfig) ([]scene.Moving, error) {
	motion := make([]scene.Moving, 0, len(cfg.Motion)+1)
	paddleMoves := cfg.Paddle.Layer == ""
	for _, mc := range cfg.Motion {
		i, err := st.Index(mc.Layer)
		if err != nil {
			return nil, err
		}
		motion = append(motion, scene.Moving{Layer: i, Velocity: mc.Velocity})
		if mc.Layer == cfg.Paddle.Layer {
			paddleMoves = true
		}
	}
	if !paddleMoves {
		i, err := st.Index(cfg.Paddle.Layer)
		if err != nil {
			return nil, err
		}
		motion = append(motion, scene.Moving{Layer: i})
	}
	return motion, nil
}

func buildPolicy(rules config.RulesConfig) (physics.Policy, error) {
	mode, err := physics.ParsePolicyMode(rules.Policy)
	if err != nil {
		return physics.Policy{}, fmt.Errorf("game: %w: %w", config.ErrInvalid, err)
	}
	if mode == physics.PolicyLegacy {
		return physics.Policy{Mode: physics.PolicyLegacy}, nil
	}
	if len(rules.Edges) == 0 {
		return physics.DefaultPolicy(), nil
	}

	p := physics.Policy{Mode: physics.PolicyEdge}
	for _, e := range rules.Edges {
		r, err := physics.ParseRule(e.Axis, e.Edge, e.Event)
		if err != nil {
			return physics.Policy{}, fmt.Errorf("game: %w: %w", config.ErrInvalid, err)
		}
		p.Rules = append(p.Rules, r)
	}
	return p, nil
}

// SetSwitches replaces the input source. Call it before the loop starts.
func (g *Game) SetSwitches(r SwitchReader) {
	g.switches = r
}

// Config returns the configuration the game was built from.
func (g *Game) Config() config.HandballConfig {
	return g.cfg
}

// Scene returns the game's scene.
func (g *Game) Scene() *scene.Scene {
	return g.scene
}

// Fence returns the playing field boundary.
func (g *Game) Fence() physics.Fence {
	return g.engine.Fence()
}

// State returns the score state.
func (g *Game) State() *State {
	return g.state
}

// Paddle returns the player's paddle, or nil if input is disabled.
func (g *Game) Paddle() *Paddle {
	return g.paddle
}

// Ticks returns the number of physics ticks run so far.
func (g *Game) Ticks() int64 {
	return g.ticks.Load()
}

// Result returns the current outcome.
func (g *Game) Result() Result {
	snap := g.state.Snapshot()
	return Result{
		Score:  snap.Score,
		Losses: snap.Losses,
		Status: snap.Status,
		Ticks:  g.Ticks(),
		Frames: g.frames,
	}
}

// Tick advances the physics by one step. It reports whether a redraw
// should be requested: any raw switch snapshot other than zero does.
func (g *Game) Tick() bool {
	rep := g.engine.Advance()
	g.ticks.Add(1)
	for _, ev := range rep.Events {
		g.logger.Info("point", "event", ev, "score", g.state.Score())
	}

	if p, ok := g.switches.(switchPeeker); ok {
		return p.Peek() != 0
	}
	return true
}

// Start paints the whole scene and the score line. Call it once before the loop.
func (g *Game) Start() {
	g.renderer.Full(g.scene)
	g.drawScore()
}

// Poll redraws the score line and applies the paddle input.
func (g *Game) Poll() {
	g.drawScore()
	if g.paddle == nil || g.switches == nil {
		return
	}
	if pos, moved := g.paddle.Apply(g.switches.ReadSwitches()); moved {
		g.logger.Debug("paddle moved", "pos", pos)
	}
}

// Frame commits the positions produced by the last tick, repaints the
// moving layers and checks for the end of the game. It returns true once
// the game is over; the banner has been drawn by then.
func (g *Game) Frame() bool {
	g.scene.Commit()
	g.renderer.Moving(g.scene)
	g.frames++

	snap := g.state.Snapshot()
	g.pace(snap.Score)

	if !snap.Status.Terminal() {
		return false
	}
	if !g.ended {
		g.ended = true
		g.drawScore()
		g.drawBanner(snap.Status)
		g.logger.Info("game over", "status", snap.Status, "score", snap.Score, "ticks", g.Ticks())
	}
	return true
}

func (g *Game) pace(score int) {
	if g.pacer == nil {
		return
	}
	d := g.difficulty.Divider(g.cfg.Timer.Divider, score, int(g.Ticks()))
	if d == g.divider {
		return
	}
	g.divider = d
	g.pacer.SetDivider(d)
	g.logger.Debug("tick divider changed", "divider", d)
}

func (g *Game) drawScore() {
	if g.text == nil {
		return
	}
	g.text.DrawText(1, 0, fmt.Sprintf("Score: %d", g.state.Score()), core.ColorWhite, g.cfg.Background)
}

func (g *Game) drawBanner(status Status) {
	if g.text == nil {
		return
	}
	text, color := LoseBanner, core.ColorRed
	if status == StatusWon {
		text, color = WinBanner, core.ColorGreen
	}
	x, y := BannerPos(g.cfg.Screen, text)
	g.text.DrawText(x, y, text, color, g.cfg.Background)
}

// BannerPos returns where a banner is drawn: centered, a little above the middle row.
func BannerPos(screen config.ScreenConfig, text string) (x, y int) {
	return (screen.Width - utf8.RuneCountInString(text)) / 2, screen.Height/2 - 2
}
