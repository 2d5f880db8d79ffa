package web

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/handball/internal/config"
	"github.com/vovakirdan/handball/internal/core"
	"github.com/vovakirdan/handball/internal/game"
	"github.com/vovakirdan/handball/internal/scheduler"
	"github.com/vovakirdan/handball/internal/storage"
)

const (
	arenaPlayer  = "arena"
	ledAfterglow = 400 * time.Millisecond
)

// ArenaConfig configures the games an Arena plays.
type ArenaConfig struct {
	Game   config.HandballConfig
	Skill  float64        // autopilot skill
	Seed   int64          // round n plays with Seed+n
	Pause  time.Duration  // idle time between rounds
	Rounds int            // 0 plays until canceled
	Store  *storage.Store // nil disables score recording
	Logger *log.Logger
}

// Arena plays autopilot games back to back and publishes every frame to
// a hub.
type Arena struct {
	cfg    ArenaConfig
	hub    *Hub
	rounds atomic.Int64

	mu       sync.RWMutex
	snapshot Frame
}

// NewArena validates cfg and creates an arena publishing to hub.
func NewArena(cfg ArenaConfig, hub *Hub) (*Arena, error) {
	if err := cfg.Game.Validate(); err != nil {
		return nil, err
	}
	if cfg.Skill <= 0 {
		return nil, fmt.Errorf("web: autopilot skill must be positive, got %g", cfg.Skill)
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	return &Arena{cfg: cfg, hub: hub}, nil
}

// Run plays rounds until ctx is canceled or the configured number of
// rounds is done.
func (a *Arena) Run(ctx context.Context) error {
	for round := 1; a.cfg.Rounds <= 0 || round <= a.cfg.Rounds; round++ {
		res, err := a.play(ctx, round)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, scheduler.ErrStopped) {
				return nil
			}
			return err
		}
		a.rounds.Add(1)
		a.cfg.Logger.Info("round over", "round", round, "status", res.Status, "score", res.Score)
		a.record(res)

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(a.cfg.Pause):
		}
	}
	return nil
}

// Rounds returns the number of finished rounds.
func (a *Arena) Rounds() int {
	return int(a.rounds.Load())
}

// Snapshot returns the whole screen of the latest frame.
func (a *Arena) Snapshot() Frame {
	a.mu.RLock()
	defer a.mu.RUnlock()

	f := a.snapshot
	f.Full = true
	f.Rows = append([]Row(nil), a.snapshot.Rows...)
	return f
}

func (a *Arena) play(ctx context.Context, round int) (game.Result, error) {
	cfg := a.cfg.Game
	screen := core.NewScreen(cfg.Screen.Width, cfg.Screen.Height, cfg.Background)
	led := core.NewLED()

	var g *game.Game
	sched, err := scheduler.New(scheduler.Config{
		RateHz:  cfg.Timer.RateHz,
		Divider: cfg.Timer.Divider,
		Handler: func() bool { return g.Tick() },
		Logger:  a.cfg.Logger,
	})
	if err != nil {
		return game.Result{}, err
	}
	g, err = game.New(cfg, game.Options{
		Display:   screen,
		Indicator: led,
		Pacer:     sched,
		Logger:    a.cfg.Logger,
	})
	if err != nil {
		return game.Result{}, err
	}
	pilot, err := game.NewAutopilot(g, a.cfg.Skill, a.cfg.Seed+int64(round))
	if err != nil {
		return game.Result{}, err
	}
	g.SetSwitches(pilot)

	loop := &arenaLoop{arena: a, round: round, game: g, screen: screen, led: led}
	g.Start()
	loop.publish()
	sched.Start()
	defer sched.Stop()

	err = scheduler.RunLoop(ctx, sched, loop)
	return g.Result(), err
}

func (a *Arena) record(res game.Result) {
	if a.cfg.Store == nil {
		return
	}
	if _, err := a.cfg.Store.SaveResult(res.Entry(arenaPlayer)); err != nil {
		a.cfg.Logger.Error("cannot save result", "err", err)
	}
}

// arenaLoop renders one round and publishes the rows each frame changed.
type arenaLoop struct {
	arena  *Arena
	round  int
	game   *game.Game
	screen *core.Screen
	led    *core.LED
}

func (l *arenaLoop) Poll() {
	l.game.Poll()
}

func (l *arenaLoop) Frame() bool {
	done := l.game.Frame()
	l.publish()
	return done
}

func (l *arenaLoop) publish() {
	a := l.arena
	cfg := a.cfg.Game
	res := l.game.Result()

	delta := Frame{
		Round:  l.round,
		Width:  cfg.Screen.Width,
		Height: cfg.Screen.Height,
		Score:  res.Score,
		Target: cfg.Rules.ScoreTarget,
		Losses: res.Losses,
		Status: res.Status.String(),
		LED:    l.led.Lit(ledAfterglow),
	}
	for _, y := range l.screen.DirtyRows() {
		delta.Rows = append(delta.Rows, Row{Y: y, Text: l.screen.Row(y, cfg.Background)})
	}

	a.mu.Lock()
	if a.snapshot.Round != l.round {
		a.snapshot.Rows = make([]Row, cfg.Screen.Height)
		for y := range a.snapshot.Rows {
			a.snapshot.Rows[y] = Row{Y: y}
		}
	}
	rows := a.snapshot.Rows
	a.snapshot = delta
	a.snapshot.Full = true
	a.snapshot.Rows = rows
	for _, r := range delta.Rows {
		a.snapshot.Rows[r.Y] = r
	}
	a.mu.Unlock()

	a.hub.Broadcast(delta)
}
