package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/handball/internal/config"
	"github.com/vovakirdan/handball/internal/core"
	"github.com/vovakirdan/handball/internal/game"
	"github.com/vovakirdan/handball/internal/scheduler"
	"github.com/vovakirdan/handball/internal/storage"
)

// ledAfterglow is how long the score LED stays visibly lit after a pulse.
const ledAfterglow = 400 * time.Millisecond

// defaultHold is how many frames a key press keeps its switch line low.
const defaultHold = 2

// Options configures a Model.
type Options struct {
	Store  *storage.Store // nil disables score recording
	Player string
	Logger *log.Logger
	Hold   int // frames a key press stays active
}

// session is one running game with its own timer.
type session struct {
	id       int
	game     *game.Game
	sched    *scheduler.Scheduler
	screen   *core.Screen
	switches *core.SwitchBank
	ctx      context.Context
	cancel   context.CancelFunc
}

func newSession(id int, cfg config.HandballConfig, led *core.LED, opts Options) (*session, error) {
	screen := core.NewScreen(cfg.Screen.Width, cfg.Screen.Height, cfg.Background)
	switches := core.NewSwitchBank(max(cfg.Paddle.Lines, 1), opts.Hold)

	var g *game.Game
	sched, err := scheduler.New(scheduler.Config{
		RateHz:  cfg.Timer.RateHz,
		Divider: cfg.Timer.Divider,
		Handler: func() bool { return g.Tick() },
		Logger:  opts.Logger,
	})
	if err != nil {
		return nil, err
	}

	g, err = game.New(cfg, game.Options{
		Display:   screen,
		Switches:  switches,
		Indicator: led,
		Pacer:     sched,
		Logger:    opts.Logger,
	})
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &session{
		id:       id,
		game:     g,
		sched:    sched,
		screen:   screen,
		switches: switches,
		ctx:      ctx,
		cancel:   cancel,
	}, nil
}

// start paints the first frame, starts the timer and polls input once,
// then waits for the first redraw.
func (s *session) start() tea.Cmd {
	s.game.Start()
	s.sched.Start()
	s.game.Poll()
	return waitCmd(s.ctx, s.sched, s.id)
}

func (s *session) stop() {
	s.cancel()
	s.sched.Stop()
}

// activeSession tracks the running session across model copies so it
// can be stopped from outside the program loop.
type activeSession struct {
	mu   sync.Mutex
	sess *session
}

func (a *activeSession) set(s *session) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sess = s
}

func (a *activeSession) stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.sess != nil {
		a.sess.stop()
	}
}

// Model is the Bubble Tea model running handball sessions.
type Model struct {
	cfg        config.HandballConfig
	opts       Options
	sess       *session
	active     *activeSession
	led        *core.LED
	keys       *KeyMapper
	keyMap     GameKeyMap
	help       help.Model
	width      int
	height     int
	over       bool
	quitting   bool
	scoreSaved bool // Whether the result has been saved for the current game
	err        error
}

// NewModel creates a new Bubble Tea model for a handball game built from cfg.
func NewModel(cfg config.HandballConfig, opts Options) (Model, error) {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Hold <= 0 {
		opts.Hold = defaultHold
	}

	led := core.NewLED()
	sess, err := newSession(1, cfg, led, opts)
	if err != nil {
		return Model{}, err
	}

	active := &activeSession{}
	active.set(sess)

	keyMap := DefaultGameKeyMap()
	return Model{
		cfg:    cfg,
		opts:   opts,
		sess:   sess,
		active: active,
		led:    led,
		keys:   NewKeyMapper(keyMap, cfg.Paddle),
		keyMap: keyMap,
		help:   help.New(),
		width:  cfg.Screen.Width,
		height: cfg.Screen.Height,
	}, nil
}

// Init paints the scene and starts the timer.
func (m Model) Init() tea.Cmd {
	return m.sess.start()
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case redrawMsg:
		return m.handleRedraw(msg)

	case stoppedMsg:
		if msg.session == m.sess.id && !m.over && !m.quitting {
			m.opts.Logger.Debug("redraw wait ended", "err", msg.err)
		}
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.MapKey(msg)
	switch action {
	case ActionQuit:
		m.quitting = true
		m.sess.stop()
		return m, tea.Quit

	case ActionScreenshot:
		if path, err := m.saveScreenshot(); err != nil {
			m.opts.Logger.Warn("screenshot failed", "err", err)
		} else {
			m.opts.Logger.Info("screenshot saved", "path", path)
		}
		return m, nil

	case ActionRestart:
		if !m.over {
			return m, nil
		}
		return m.restart()
	}

	if line, ok := m.keys.Line(action); ok && !m.over {
		m.sess.switches.Press(line)
	}
	return m, nil
}

// handleRedraw runs one frame of the render loop: render, check for the
// end of the game, poll input, then wait for the next redraw.
func (m Model) handleRedraw(msg redrawMsg) (tea.Model, tea.Cmd) {
	if msg.session != m.sess.id || m.over {
		return m, nil
	}

	if m.sess.game.Frame() {
		m.sess.stop()
		m.sess.switches.ReleaseAll()
		m.over = true
		m.saveResult()
		return m, nil
	}

	m.sess.game.Poll()
	return m, waitCmd(m.sess.ctx, m.sess.sched, m.sess.id)
}

// restart replaces the finished session with a fresh one.
func (m Model) restart() (tea.Model, tea.Cmd) {
	sess, err := newSession(m.sess.id+1, m.cfg, m.led, m.opts)
	if err != nil {
		m.err = err
		return m, nil
	}
	m.sess = sess
	m.active.set(sess)
	m.over = false
	m.scoreSaved = false
	m.err = nil
	return m, sess.start()
}

// saveResult records the finished game once.
func (m *Model) saveResult() {
	if m.scoreSaved || m.opts.Store == nil {
		return
	}
	m.scoreSaved = true

	res := m.sess.game.Result()
	if _, err := m.opts.Store.SaveResult(res.Entry(m.opts.Player)); err != nil {
		m.opts.Logger.Error("cannot save result", "err", err)
		return
	}
	m.opts.Logger.Info("result saved", "player", m.opts.Player, "score", res.Score, "status", res.Status)
}

// saveScreenshot saves the current screen to a file.
func (m Model) saveScreenshot() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".handball", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", game.ID, timestamp))
	return path, os.WriteFile(path, []byte(m.sess.screen.String(m.cfg.Background)), 0o600)
}

// Close stops the running session's timer. It is safe to call from any
// goroutine, and more than once.
func (m Model) Close() {
	m.active.stop()
}

// Result returns the result of the current game.
func (m Model) Result() game.Result {
	return m.sess.game.Result()
}

// Over reports whether the current game has ended.
func (m Model) Over() bool {
	return m.over
}

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	ledOnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	ledOffStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.width < m.cfg.Screen.Width || m.height < m.cfg.Screen.Height {
		return fmt.Sprintf("Terminal too small: need %dx%d, have %dx%d",
			m.cfg.Screen.Width, m.cfg.Screen.Height, m.width, m.height)
	}

	var b strings.Builder
	b.WriteString(RenderScreen(m.sess.screen, m.cfg.Background))
	b.WriteString("\n")
	b.WriteString(m.statusLine())

	if m.height > m.cfg.Screen.Height+1 {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(m.help.View(m.keyMap)))
	}
	return b.String()
}

func (m Model) statusLine() string {
	led := ledOffStyle.Render("○")
	if m.led.Lit(ledAfterglow) {
		led = ledOnStyle.Render("●")
	}

	res := m.sess.game.Result()
	line := fmt.Sprintf(" %d/%d  losses %d/%d  divider %d  %s",
		res.Score, m.cfg.Rules.ScoreTarget,
		res.Losses, m.cfg.Rules.LossThreshold,
		m.sess.sched.Divider(), res.Status)
	if m.err != nil {
		return led + statusStyle.Render(line) + "  " + errorStyle.Render(m.err.Error())
	}
	return led + statusStyle.Render(line)
}

// Run starts the Bubble Tea program for one local player.
func Run(cfg config.HandballConfig, opts Options) (game.Result, error) {
	model, err := NewModel(cfg, opts)
	if err != nil {
		return game.Result{}, err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	model.Close()
	if err != nil {
		return game.Result{}, err
	}
	if fm, ok := final.(Model); ok {
		return fm.Result(), nil
	}
	return model.Result(), nil
}
