package lcd

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/handball/internal/config"
	"github.com/vovakirdan/handball/internal/core"
	"github.com/vovakirdan/handball/internal/game"
	"github.com/vovakirdan/handball/internal/scheduler"
	"github.com/vovakirdan/handball/internal/storage"
)

const (
	defaultHold  = 2
	ledAfterglow = 400 * time.Millisecond
)

// Options configures Run.
type Options struct {
	Store     *storage.Store // nil disables score recording
	Player    string
	Logger    *log.Logger
	Hold      int     // frames a key press stays active
	Autopilot float64 // skill of the demo player; 0 means the keyboard plays
	Seed      int64
	HoldOnEnd bool // keep the final frame up until a key is pressed
}

// Controls maps terminal keys to switch lines.
type Controls struct {
	UpLine   int
	DownLine int
}

// Line returns the switch line a key presses.
func (c Controls) Line(ev *tcell.EventKey) (int, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return c.UpLine, true
	case tcell.KeyDown:
		return c.DownLine, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'k':
			return c.UpLine, true
		case 's', 'j':
			return c.DownLine, true
		}
	}
	return 0, false
}

// IsQuit reports whether a key ends the game.
func IsQuit(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q'
	}
	return false
}

// panelLoop is the render side of a running game.
type panelLoop struct {
	game     *game.Game
	panel    *Panel
	led      *core.LED
	switches *core.SwitchBank
	screen   tcell.Screen
	cfg      config.HandballConfig
	resized  atomic.Bool
}

func (l *panelLoop) Poll() {
	if l.resized.Swap(false) {
		fresh := Centered(l.screen, l.cfg.Screen.Width, l.cfg.Screen.Height)
		l.panel.origin = fresh.origin
		l.screen.Clear()
		l.switches.ReleaseAll()
		l.game.Start()
	}
	l.game.Poll()
}

func (l *panelLoop) Frame() bool {
	done := l.game.Frame()
	l.drawLED()
	l.panel.Show()
	return done
}

func (l *panelLoop) drawLED() {
	glyph, color := "○", core.ColorGray
	if l.led.Lit(ledAfterglow) {
		glyph, color = "●", core.ColorBrightGreen
	}
	l.panel.DrawText(l.cfg.Screen.Width-2, 0, glyph, color, l.cfg.Background)
}

// Run plays one game on an initialized screen and returns its result.
// The caller owns the screen and must Fini it. A quit key or a canceled
// context interrupts the game; interrupted games are not recorded.
func Run(ctx context.Context, screen tcell.Screen, cfg config.HandballConfig, opts Options) (game.Result, error) {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Hold <= 0 {
		opts.Hold = defaultHold
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	screen.SetStyle(tcell.StyleDefault.Background(Color(cfg.Background)))
	screen.Clear()

	panel := Centered(screen, cfg.Screen.Width, cfg.Screen.Height)
	switches := core.NewSwitchBank(max(cfg.Paddle.Lines, 1), opts.Hold)
	led := core.NewLED()

	var g *game.Game
	sched, err := scheduler.New(scheduler.Config{
		RateHz:  cfg.Timer.RateHz,
		Divider: cfg.Timer.Divider,
		Handler: func() bool { return g.Tick() },
		Logger:  opts.Logger,
	})
	if err != nil {
		return game.Result{}, err
	}

	g, err = game.New(cfg, game.Options{
		Display:   panel,
		Switches:  switches,
		Indicator: led,
		Pacer:     sched,
		Logger:    opts.Logger,
	})
	if err != nil {
		return game.Result{}, err
	}
	if opts.Autopilot > 0 {
		ap, apErr := game.NewAutopilot(g, opts.Autopilot, opts.Seed)
		if apErr != nil {
			return game.Result{}, apErr
		}
		g.SetSwitches(ap)
	}

	loop := &panelLoop{game: g, panel: panel, led: led, switches: switches, screen: screen, cfg: cfg}
	controls := Controls{UpLine: cfg.Paddle.UpLine, DownLine: cfg.Paddle.DownLine}

	var over atomic.Bool
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		pumpEvents(ctx, screen, func(ev tcell.Event) {
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if IsQuit(ev) || over.Load() {
					cancel()
					return
				}
				if line, ok := controls.Line(ev); ok {
					switches.Press(line)
				}
			case *tcell.EventResize:
				screen.Sync()
				loop.resized.Store(true)
			}
		})
	}()
	defer func() {
		cancel()
		// Wake the pump out of PollEvent.
		_ = screen.PostEvent(tcell.NewEventInterrupt(nil))
		wg.Wait()
	}()

	g.Start()
	panel.Show()
	sched.Start()
	err = scheduler.RunLoop(ctx, sched, loop)
	sched.Stop()

	res := g.Result()
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, scheduler.ErrStopped) {
			opts.Logger.Info("game interrupted", "score", res.Score, "ticks", res.Ticks)
			return res, nil
		}
		return res, err
	}

	if opts.Store != nil {
		if _, saveErr := opts.Store.SaveResult(res.Entry(opts.Player)); saveErr != nil {
			opts.Logger.Error("cannot save result", "err", saveErr)
		}
	}

	if opts.HoldOnEnd {
		over.Store(true)
		<-ctx.Done()
	}
	return res, nil
}

// pumpEvents feeds screen events to handle until ctx is done or the
// screen is finalized.
func pumpEvents(ctx context.Context, screen tcell.Screen, handle func(tcell.Event)) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		if ctx.Err() != nil {
			return
		}
		if _, ok := ev.(*tcell.EventInterrupt); ok {
			continue
		}
		handle(ev)
	}
}
