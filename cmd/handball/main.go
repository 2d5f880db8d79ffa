// handball is a terminal handball game: a ball bounces inside a fenced
// field, scores on the far wall and is lost past the paddle.
//
// Usage:
//
//	handball play            - Play in the terminal (bubbletea or tcell backend)
//	handball sim             - Run a headless game with the autopilot paddle
//	handball serve           - Start SSH server for remote play
//	handball watch           - Stream autopilot games to websocket spectators
//	handball scores          - Print high scores
//	handball board           - Interactive scoreboard
//	handball config          - Print the effective configuration
//	handball fields          - List the available field layouts
//
// Global flags:
//
//	--config <path>       - Game config YAML (default search: ~/.handball/configs, ./configs)
//	--field <id>          - Built-in field layout when no config file is given
//	--difficulty <preset> - easy, normal, hard or fixed
//	--fps <rate>          - Override the timer rate
//	--seed <value>        - RNG seed for the autopilot
//	--db <path>           - Scores database (default: ~/.handball/scores.db)
//	--log-level <level>   - debug, info, warn or error
//	--log-file <path>     - Write logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/handball/internal/game"
)

var (
	// Global flags
	flagConfig     string
	flagField      string
	flagDifficulty string
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "handball",
	Short: "Handball - bounce a ball past the far wall in your terminal",
	Long: `Handball is a one-player paddle game rendered as layered shapes on a
pixel display. The ball reflects off the field fence: hitting the far
wall scores, slipping past the paddle loses.

Available commands:
  play     - Play a game in this terminal
  sim      - Let the autopilot play a headless game
  serve    - Start SSH server for remote play
  watch    - Stream autopilot games to websocket spectators
  scores   - Print high scores
  board    - Interactive scoreboard
  config   - Print the effective configuration
  fields   - List the available field layouts

Examples:
  handball play
  handball play --backend lcd --difficulty hard
  handball sim --skill 0.8 --seed 42
  handball sim --field classic
  handball serve --ssh :2222
  handball scores --recent`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagField, "field", game.DefaultField, "Field layout (see 'handball fields')")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Timer rate in Hz (0 = use config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.handball/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(fieldsCmd)
}
