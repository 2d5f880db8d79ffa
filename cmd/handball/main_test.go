package main

import (
	"testing"

	"github.com/vovakirdan/handball/internal/core"
	"github.com/vovakirdan/handball/internal/game"
)

func TestPortOf(t *testing.T) {
	tests := []struct {
		addr     string
		expected string
	}{
		{":23234", "23234"},
		{"localhost:2222", "2222"},
		{"8080", "8080"},
	}
	for _, tc := range tests {
		if got := portOf(tc.addr); got != tc.expected {
			t.Errorf("portOf(%q) = %q, expected %q", tc.addr, got, tc.expected)
		}
	}
}

func TestPlayerName(t *testing.T) {
	if got := playerName("alice"); got != "alice" {
		t.Errorf("playerName(alice) = %q", got)
	}
	t.Setenv("USER", "")
	if got := playerName(""); got != "player" {
		t.Errorf("playerName() = %q, expected player", got)
	}
}

// withFlags sets the global config flags for one test.
func withFlags(t *testing.T, field, difficulty string) {
	t.Helper()
	oldConfig, oldField, oldDifficulty := flagConfig, flagField, flagDifficulty
	t.Cleanup(func() {
		flagConfig, flagField, flagDifficulty = oldConfig, oldField, oldDifficulty
	})
	flagConfig, flagField, flagDifficulty = "", field, difficulty
}

func TestLoadGameConfigField(t *testing.T) {
	withFlags(t, "classic", "fixed")

	cfg, err := loadGameConfig(core.RuntimeConfig{TickRate: 500})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Screen.Width != 128 || cfg.Screen.Height != 160 {
		t.Errorf("screen = %dx%d, expected the classic board", cfg.Screen.Width, cfg.Screen.Height)
	}
	if cfg.Timer.RateHz != 500 {
		t.Errorf("rate = %d, expected the --fps override", cfg.Timer.RateHz)
	}
	if cfg.Difficulty.Enabled {
		t.Error("fixed preset should disable difficulty")
	}
}

func TestLoadGameConfigUnknownField(t *testing.T) {
	withFlags(t, "nope", "")
	if _, err := loadGameConfig(core.RuntimeConfig{}); err == nil {
		t.Error("expected error for unknown field")
	}
}

func TestLoadGameConfigBadDifficulty(t *testing.T) {
	withFlags(t, game.DefaultField, "impossible")
	if _, err := loadGameConfig(core.RuntimeConfig{}); err == nil {
		t.Error("expected error for unknown preset")
	}
}
