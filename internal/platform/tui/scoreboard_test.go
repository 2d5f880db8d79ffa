package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/handball/internal/game"
	"github.com/vovakirdan/handball/internal/storage"
)

func TestScoreboardEmpty(t *testing.T) {
	m := NewScoreboardModel(openStore(t), 100, 30)
	if !strings.Contains(m.View(), "No scores recorded yet") {
		t.Error("expected empty message")
	}
}

func TestScoreboardViews(t *testing.T) {
	store := openStore(t)
	for _, e := range []storage.ScoreEntry{
		{GameID: game.ID, Player: "ann", Score: 3, Outcome: storage.OutcomeLost, Ticks: 400},
		{GameID: game.ID, Player: "bob", Score: 10, Outcome: storage.OutcomeWon, Ticks: 900},
		{GameID: game.ID, Player: "cid", Score: 1, Outcome: storage.OutcomeLost, Ticks: 100},
	} {
		if _, err := store.SaveResult(e); err != nil {
			t.Fatal(err)
		}
	}

	m := NewScoreboardModel(store, 100, 30)
	if len(m.scores) != 3 || m.scores[0].Player != "bob" {
		t.Fatalf("top listing = %+v", m.scores)
	}
	view := m.View()
	if !strings.Contains(view, "HIGH SCORES") || !strings.Contains(view, "games 3") {
		t.Errorf("unexpected view:\n%s", view)
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if m.view != viewRecent || m.scores[0].Player != "cid" {
		t.Errorf("recent listing = %+v", m.scores)
	}
	if !strings.Contains(m.View(), "RECENT GAMES") {
		t.Error("title should follow the view")
	}
}

func TestScoreRows(t *testing.T) {
	rows := scoreRows([]storage.ScoreEntry{{Score: 7, Losses: 1, Outcome: storage.OutcomeLost, Ticks: 55}})
	if len(rows) != 1 {
		t.Fatal("expected one row")
	}
	if rows[0][0] != "1" || rows[0][1] != "-" || rows[0][2] != "7" || rows[0][4] != "lost" {
		t.Errorf("row = %v", rows[0])
	}
}
