package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/handball/internal/game"
	"github.com/vovakirdan/handball/internal/platform/tui"
	"github.com/vovakirdan/handball/internal/storage"
)

var (
	flagRecent bool
	flagLimit  int
	flagClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the best (or most recent) recorded games.

Examples:
  handball scores
  handball scores --recent --limit 20
  handball scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Interactive scoreboard",
	Long:  `Browse high scores and recent games in a full-screen table.`,
	Args:  cobra.NoArgs,
	Run:   runBoard,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagRecent, "recent", false, "List the most recent games instead of the best")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of entries to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded games")
}

func runScores(_ *cobra.Command, _ []string) {
	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening scores database: %v", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(game.ID); err != nil {
			fail("clearing scores: %v", err)
		}
		fmt.Println("Scores cleared.")
		return
	}

	var scores []storage.ScoreEntry
	title := "High Scores"
	if flagRecent {
		title = "Recent Games"
		scores, err = store.RecentResults(game.ID, flagLimit)
	} else {
		scores, err = store.TopScores(game.ID, flagLimit)
	}
	if err != nil {
		fail("retrieving scores: %v", err)
	}

	// Display scores
	fmt.Printf("%s - Handball\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'handball play' to set the first high score!")
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-12s  %-5s  %-6s  %-11s  %-8s  %s\n", "Rank", "Player", "Score", "Losses", "Result", "Ticks", "Date")
	fmt.Printf("  %-4s  %-12s  %-5s  %-6s  %-11s  %-8s  %s\n", "----", "------", "-----", "------", "------", "-----", "----")

	// Print scores
	for i, e := range scores {
		dateStr := e.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-12s  %-5d  %-6d  %-11s  %-8d  %s\n", i+1, e.Player, e.Score, e.Losses, e.Outcome, e.Ticks, dateStr)
	}

	// Show summary
	fmt.Println()
	if stats, err := store.GetGameStats(game.ID); err == nil {
		fmt.Printf("Games: %d  Won: %d  Lost: %d  Best: %d  Average: %.1f\n",
			stats.GamesCount, stats.Wins, stats.Losses, stats.HighScore, stats.AvgScore)
	}
}

func runBoard(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening scores database: %v", err)
	}
	defer store.Close()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	if err := tui.RunScoreboard(store, width, height); err != nil {
		fail("%v", err)
	}
}
