package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func save(t *testing.T, store *Store, e ScoreEntry) {
	t.Helper()
	if _, err := store.SaveResult(e); err != nil {
		t.Fatalf("SaveResult() failed: %v", err)
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	save(t, store, ScoreEntry{GameID: "handball", Player: "ana", Score: 4, Losses: 1, Outcome: OutcomeLost, Ticks: 900})
	save(t, store, ScoreEntry{GameID: "handball", Player: "bo", Score: 10, Outcome: OutcomeWon, Ticks: 2100})
	save(t, store, ScoreEntry{GameID: "handball", Player: "cy", Score: 7, Losses: 1, Outcome: OutcomeLost, Ticks: 1500})
	// Different game
	save(t, store, ScoreEntry{GameID: "other", Score: 50, Outcome: OutcomeWon})

	scores, err := store.TopScores("handball", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	if scores[0].Score != 10 || scores[1].Score != 7 || scores[2].Score != 4 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
	top := scores[0]
	if top.Player != "bo" || top.Outcome != OutcomeWon || top.Ticks != 2100 || top.Losses != 0 {
		t.Errorf("Top entry fields lost: %+v", top)
	}
	if top.CreatedAt.IsZero() {
		t.Error("CreatedAt was not populated")
	}
}

func TestStoreTiesPreferFewerTicks(t *testing.T) {
	store := openTestStore(t)

	save(t, store, ScoreEntry{GameID: "handball", Player: "slow", Score: 10, Outcome: OutcomeWon, Ticks: 3000})
	save(t, store, ScoreEntry{GameID: "handball", Player: "fast", Score: 10, Outcome: OutcomeWon, Ticks: 1200})

	scores, err := store.TopScores("handball", 1)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 1 || scores[0].Player != "fast" {
		t.Errorf("Expected the faster win first, got %v", scores)
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	// Save 5 scores
	for i := 0; i < 5; i++ {
		save(t, store, ScoreEntry{GameID: "test", Score: i + 1, Outcome: OutcomeLost})
	}

	// Request only top 3
	scores, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}

	// Should be 5, 4, 3 (top 3)
	if scores[0].Score != 5 || scores[1].Score != 4 || scores[2].Score != 3 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreRecentResults(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 4; i++ {
		save(t, store, ScoreEntry{GameID: "handball", Score: i, Outcome: OutcomeLost})
	}

	recent, err := store.RecentResults("handball", 2)
	if err != nil {
		t.Fatalf("RecentResults() failed: %v", err)
	}
	if len(recent) != 2 || recent[0].Score != 3 || recent[1].Score != 2 {
		t.Errorf("Expected newest two results, got %v", recent)
	}
}

func TestStoreSaveResultDefaults(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveResult(ScoreEntry{Score: 1}); err == nil {
		t.Error("Expected error for missing game id")
	}

	save(t, store, ScoreEntry{GameID: "handball", Score: 2})
	scores, err := store.TopScores("handball", 1)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if scores[0].Outcome != OutcomeInterrupted {
		t.Errorf("Expected default outcome %q, got %q", OutcomeInterrupted, scores[0].Outcome)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	// No scores yet
	high, err := store.HighScore("handball")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	// Add scores
	save(t, store, ScoreEntry{GameID: "handball", Score: 3, Outcome: OutcomeLost})
	save(t, store, ScoreEntry{GameID: "handball", Score: 10, Outcome: OutcomeWon})
	save(t, store, ScoreEntry{GameID: "handball", Score: 6, Outcome: OutcomeLost})

	high, err = store.HighScore("handball")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 10 {
		t.Errorf("Expected high score of 10, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	save(t, store, ScoreEntry{GameID: "handball", Score: 1, Outcome: OutcomeLost})
	save(t, store, ScoreEntry{GameID: "handball", Score: 2, Outcome: OutcomeLost})
	save(t, store, ScoreEntry{GameID: "other", Score: 3, Outcome: OutcomeLost})

	// Clear only handball scores
	if err := store.ClearScores("handball"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	handball, _ := store.TopScores("handball", 10)
	if len(handball) != 0 {
		t.Errorf("Expected 0 handball scores after clear, got %d", len(handball))
	}

	other, _ := store.TopScores("other", 10)
	if len(other) != 1 {
		t.Errorf("Other game scores should not be affected by clearing handball")
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetGameStats("handball")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Expected empty stats, got %+v", empty)
	}

	save(t, store, ScoreEntry{GameID: "handball", Score: 10, Outcome: OutcomeWon})
	save(t, store, ScoreEntry{GameID: "handball", Score: 4, Losses: 1, Outcome: OutcomeLost})
	save(t, store, ScoreEntry{GameID: "handball", Score: 1, Outcome: OutcomeInterrupted})

	stats, err := store.GetGameStats("handball")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 3 || stats.Wins != 1 || stats.Losses != 1 {
		t.Errorf("Unexpected counts: %+v", stats)
	}
	if stats.HighScore != 10 || stats.TotalScore != 15 || stats.AvgScore != 5 {
		t.Errorf("Unexpected aggregates: %+v", stats)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed was not populated")
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
