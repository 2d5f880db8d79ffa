package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/handball/internal/config"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper(DefaultGameKeyMap(), config.DefaultHandballConfig().Paddle)

	tests := []struct {
		name     string
		msg      tea.KeyMsg
		expected Action
	}{
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, ActionUp},
		{"w", runeKey('w'), ActionUp},
		{"arrow down", tea.KeyMsg{Type: tea.KeyDown}, ActionDown},
		{"s", runeKey('s'), ActionDown},
		{"r", runeKey('r'), ActionRestart},
		{"q", runeKey('q'), ActionQuit},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, ActionQuit},
		{"ctrl+s", tea.KeyMsg{Type: tea.KeyCtrlS}, ActionScreenshot},
		{"unbound", runeKey('x'), ActionNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := km.MapKey(tc.msg); got != tc.expected {
				t.Errorf("MapKey(%s) = %d, expected %d", tc.msg, got, tc.expected)
			}
		})
	}
}

func TestKeyMapperLines(t *testing.T) {
	paddle := config.PaddleConfig{UpLine: 2, DownLine: 5}
	km := NewKeyMapper(DefaultGameKeyMap(), paddle)

	if line, ok := km.Line(ActionUp); !ok || line != 2 {
		t.Errorf("Line(up) = %d, %v", line, ok)
	}
	if line, ok := km.Line(ActionDown); !ok || line != 5 {
		t.Errorf("Line(down) = %d, %v", line, ok)
	}
	if _, ok := km.Line(ActionQuit); ok {
		t.Error("quit must not map to a switch line")
	}
}
