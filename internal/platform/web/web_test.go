package web

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vovakirdan/handball/internal/config"
	"github.com/vovakirdan/handball/internal/storage"
)

func TestHubBroadcast(t *testing.T) {
	h := NewHub()
	id1, ch1 := h.Register()
	_, ch2 := h.Register()
	if h.Count() != 2 {
		t.Fatalf("Count() = %d, expected 2", h.Count())
	}

	h.Broadcast(Frame{Round: 3})
	for i, ch := range []<-chan Frame{ch1, ch2} {
		if f := <-ch; f.Round != 3 {
			t.Errorf("subscriber %d got round %d", i, f.Round)
		}
	}

	h.SendTo(id1, Frame{Round: 4})
	if f := <-ch1; f.Round != 4 {
		t.Errorf("SendTo delivered round %d", f.Round)
	}
	select {
	case f := <-ch2:
		t.Errorf("unicast leaked to other subscriber: %+v", f)
	default:
	}

	h.Unregister(id1)
	if _, ok := <-ch1; ok {
		t.Error("channel not closed on Unregister")
	}
	h.Unregister(id1)
	if h.Count() != 1 {
		t.Errorf("Count() = %d, expected 1", h.Count())
	}
}

func TestHubDropsForSlowSubscriber(t *testing.T) {
	h := NewHub()
	_, ch := h.Register()

	done := make(chan struct{})
	go func() {
		for i := 0; i < sendBuffer*3; i++ {
			h.Broadcast(Frame{Round: i})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Broadcast blocked on a full subscriber")
	}
	if len(ch) != sendBuffer {
		t.Errorf("buffered = %d, expected %d", len(ch), sendBuffer)
	}
}

// arenaConfig is a short game the autopilot plays quickly.
func arenaConfig() config.HandballConfig {
	cfg := config.DefaultHandballConfig()
	cfg.Timer = config.TimerConfig{RateHz: 200, Divider: 1}
	cfg.Difficulty.Enabled = false
	cfg.Rules.ScoreTarget = 1
	return cfg
}

func TestNewArenaValidates(t *testing.T) {
	if _, err := NewArena(ArenaConfig{Game: arenaConfig()}, NewHub()); err == nil {
		t.Error("expected error for zero skill")
	}

	bad := arenaConfig()
	bad.FenceLayer = "missing"
	if _, err := NewArena(ArenaConfig{Game: bad, Skill: 1}, NewHub()); err == nil {
		t.Error("expected error for invalid game config")
	}
}

func TestArenaPlaysRounds(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	hub := NewHub()
	_, frames := hub.Register()
	arena, err := NewArena(ArenaConfig{
		Game:   arenaConfig(),
		Skill:  1,
		Seed:   3,
		Rounds: 2,
		Store:  store,
	}, hub)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := arena.Run(ctx); err != nil {
		t.Fatal(err)
	}
	if ctx.Err() != nil {
		t.Fatal("arena did not finish before the timeout")
	}
	if arena.Rounds() != 2 {
		t.Errorf("Rounds() = %d, expected 2", arena.Rounds())
	}

	snap := arena.Snapshot()
	if !snap.Full || snap.Round != 2 || len(snap.Rows) != arenaConfig().Screen.Height {
		t.Errorf("snapshot round %d full %v rows %d", snap.Round, snap.Full, len(snap.Rows))
	}
	if snap.Status == "running" {
		t.Error("final snapshot still running")
	}

	if len(frames) == 0 {
		t.Fatal("no frames broadcast")
	}
	first := <-frames
	if first.Round != 1 || len(first.Rows) == 0 {
		t.Errorf("first frame round %d with %d rows", first.Round, len(first.Rows))
	}

	entries, err := store.RecentResults("handball", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("saved %d results, expected 2", len(entries))
	}
	for _, e := range entries {
		if e.Player != arenaPlayer || e.Outcome == storage.OutcomeInterrupted {
			t.Errorf("saved entry = %+v", e)
		}
	}
}

func TestServerStreamsFrames(t *testing.T) {
	srv, err := NewServer(ServerConfig{
		Arena: ArenaConfig{Game: arenaConfig(), Skill: 1, Pause: 50 * time.Millisecond},
	})
	if err != nil {
		t.Fatal(err)
	}
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = srv.Arena().Run(ctx) }()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(10 * time.Second))

	var f Frame
	if err := conn.ReadJSON(&f); err != nil {
		t.Fatal(err)
	}
	if !f.Full {
		t.Error("first message should be a full snapshot")
	}

	sawDelta := false
	for i := 0; i < 100 && !sawDelta; i++ {
		if err := conn.ReadJSON(&f); err != nil {
			t.Fatal(err)
		}
		sawDelta = !f.Full && f.Round >= 1 && f.Width > 0
	}
	if !sawDelta {
		t.Error("no delta frames received")
	}

	resp, err := http.Get(ts.URL + "/stats")
	if err != nil {
		t.Fatal(err)
	}
	var stats Stats
	err = json.NewDecoder(resp.Body).Decode(&stats)
	resp.Body.Close()
	if err != nil {
		t.Fatal(err)
	}
	if stats.Spectators != 1 {
		t.Errorf("spectators = %d, expected 1", stats.Spectators)
	}

	conn.Close()
	deadline := time.Now().Add(5 * time.Second)
	for srv.hub.Count() > 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if srv.hub.Count() != 0 {
		t.Error("spectator not unregistered after disconnect")
	}
}

func TestServeStopsOnCancel(t *testing.T) {
	srv, err := NewServer(ServerConfig{
		Arena: ArenaConfig{Game: arenaConfig(), Skill: 1, Pause: 10 * time.Millisecond},
	})
	if err != nil {
		t.Fatal(err)
	}
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/health")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("health status = %d", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve() = %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("Serve did not stop")
	}
}
