package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/handball/internal/config"
	"github.com/vovakirdan/handball/internal/game"
	"github.com/vovakirdan/handball/internal/storage"
)

// unguardedConfig is the default field without a paddle: the ball scores
// once on the right edge and then loses on the left edge.
func unguardedConfig() config.HandballConfig {
	cfg := config.DefaultHandballConfig()
	cfg.Paddle = config.PaddleConfig{}
	cfg.Contact = config.ContactConfig{}
	return cfg
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func newTestModel(t *testing.T, cfg config.HandballConfig, opts Options) Model {
	t.Helper()
	m, err := NewModel(cfg, opts)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(m.Close)
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

// playOut drives the model by hand: one physics tick per redraw message.
func playOut(t *testing.T, m Model) Model {
	t.Helper()
	m.sess.game.Start()
	for i := 0; i < 5000 && !m.Over(); i++ {
		m.sess.game.Tick()
		m, _ = update(t, m, redrawMsg{session: m.sess.id})
	}
	if !m.Over() {
		t.Fatal("game did not end")
	}
	return m
}

func TestModelSavesResultOnce(t *testing.T) {
	store := openStore(t)
	m := newTestModel(t, unguardedConfig(), Options{Store: store, Player: "tester"})

	m = playOut(t, m)

	res := m.Result()
	if res.Status != game.StatusLost || res.Score != 1 {
		t.Errorf("result = %+v, expected lost with score 1", res)
	}

	// Late redraws after the end must not save again.
	m, cmd := update(t, m, redrawMsg{session: m.sess.id})
	if cmd != nil {
		t.Error("no wait expected after the game ended")
	}

	scores, err := store.TopScores(game.ID, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(scores) != 1 {
		t.Fatalf("saved %d results, expected 1", len(scores))
	}
	if scores[0].Player != "tester" || scores[0].Outcome != storage.OutcomeLost || scores[0].Score != 1 {
		t.Errorf("saved entry = %+v", scores[0])
	}
	if scores[0].Ticks != res.Ticks {
		t.Errorf("saved ticks = %d, expected %d", scores[0].Ticks, res.Ticks)
	}
}

func TestModelBannerInView(t *testing.T) {
	m := newTestModel(t, unguardedConfig(), Options{})
	m = playOut(t, m)

	view := ansiEscape.ReplaceAllString(m.View(), "")
	if !strings.Contains(view, game.LoseBanner) {
		t.Error("view should show the lose banner")
	}
	if !strings.Contains(view, "Score: 1") {
		t.Error("view should show the final score")
	}
}

func TestModelRestart(t *testing.T) {
	m := newTestModel(t, unguardedConfig(), Options{})

	// Restart is ignored while playing.
	m, _ = update(t, m, runeKey('r'))
	if m.sess.id != 1 {
		t.Fatal("restart must wait for the end of the game")
	}

	m = playOut(t, m)
	m, cmd := update(t, m, runeKey('r'))
	if cmd == nil {
		t.Fatal("restart should start the new session")
	}
	if m.sess.id != 2 || m.Over() {
		t.Errorf("session=%d over=%v, expected a fresh session", m.sess.id, m.Over())
	}
	if m.Result().Score != 0 {
		t.Error("score should start from zero")
	}
}

func TestModelIgnoresStaleRedraw(t *testing.T) {
	m := newTestModel(t, unguardedConfig(), Options{})
	m, cmd := update(t, m, redrawMsg{session: 99})
	if cmd != nil || m.Result().Frames != 0 {
		t.Error("a redraw from another session must be ignored")
	}
}

func TestModelKeysPressSwitches(t *testing.T) {
	cfg := config.DefaultHandballConfig()
	m := newTestModel(t, cfg, Options{})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	sw := m.sess.switches.Peek()
	if !sw.Active(cfg.Paddle.UpLine) {
		t.Errorf("up line not pressed: %s", sw)
	}
	if sw.Active(cfg.Paddle.DownLine) {
		t.Errorf("down line pressed: %s", sw)
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t, unguardedConfig(), Options{})
	m, cmd := update(t, m, runeKey('q'))
	if cmd == nil {
		t.Fatal("quit should return tea.Quit")
	}
	if m.View() != "" {
		t.Error("view should be empty after quit")
	}
}

func TestModelTerminalTooSmall(t *testing.T) {
	m := newTestModel(t, unguardedConfig(), Options{})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 20, Height: 10})
	if !strings.Contains(m.View(), "Terminal too small") {
		t.Error("expected size warning")
	}
}
