package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/handball/internal/config"
)

// Action is what a key does in the game view.
type Action int

const (
	ActionNone Action = iota
	ActionUp
	ActionDown
	ActionRestart
	ActionScreenshot
	ActionQuit
)

// GameKeyMap defines the key bindings of the game view.
type GameKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Restart    key.Binding
	Screenshot key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Restart, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Restart, k.Screenshot, k.Quit},
	}
}

// DefaultGameKeyMap returns default key bindings.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w", "k"),
			key.WithHelp("up/w", "paddle up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s", "j"),
			key.WithHelp("down/s", "paddle down"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "new game"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// KeyMapper translates Bubble Tea key messages to game actions and
// actions to the switch lines they pull low.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	keys     GameKeyMap
	upLine   int
	downLine int
}

// NewKeyMapper creates a key mapper driving the paddle lines of cfg.
func NewKeyMapper(keys GameKeyMap, paddle config.PaddleConfig) *KeyMapper {
	return &KeyMapper{
		keys:     keys,
		upLine:   paddle.UpLine,
		downLine: paddle.DownLine,
	}
}

// MapKey translates a key message to an action.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) Action {
	switch {
	case key.Matches(msg, km.keys.Quit):
		return ActionQuit
	case key.Matches(msg, km.keys.Screenshot):
		return ActionScreenshot
	case key.Matches(msg, km.keys.Up):
		return ActionUp
	case key.Matches(msg, km.keys.Down):
		return ActionDown
	case key.Matches(msg, km.keys.Restart):
		return ActionRestart
	}
	return ActionNone
}

// Line returns the switch line an action presses.
// ok is false for actions that do not touch the switches.
func (km *KeyMapper) Line(a Action) (line int, ok bool) {
	switch a {
	case ActionUp:
		return km.upLine, true
	case ActionDown:
		return km.downLine, true
	}
	return 0, false
}
