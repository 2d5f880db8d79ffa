package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/handball/internal/config"
	"github.com/vovakirdan/handball/internal/game"
	"github.com/vovakirdan/handball/internal/platform/lcd"
	"github.com/vovakirdan/handball/internal/platform/tui"
	"github.com/vovakirdan/handball/internal/storage"
)

var (
	flagBackend string
	flagPlayer  string
	flagDemo    float64
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play handball",
	Long: `Start a game in this terminal.

Controls:
  Up/W       - Paddle up
  Down/S     - Paddle down
  R          - New game (after game over, tui backend)
  Ctrl+S     - Screenshot (tui backend)
  Q/Ctrl+C   - Quit

Backends:
  tui - Bubble Tea renderer (default)
  lcd - tcell panel, one terminal cell per pixel

Difficulty options:
  easy   - Slower timer, faster paddle, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Faster timer, slower paddle, starts at 70%
  fixed  - No progression, stays at the config's pace

Examples:
  handball play
  handball play --difficulty hard
  handball play --backend lcd --demo 0.9
  handball play --config ./my-field.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagBackend, "backend", "tui", "Display backend: tui or lcd")
	playCmd.Flags().StringVar(&flagPlayer, "player", "", "Name to record scores under (default $USER)")
	playCmd.Flags().Float64Var(&flagDemo, "demo", 0, "Let the autopilot play with this skill (lcd backend)")
}

func runPlay(_ *cobra.Command, _ []string) {
	logger, closeLog, err := newLogger("handball", true)
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	rt := runtimeConfig()
	cfg, err := loadGameConfig(rt)
	if err != nil {
		fail("%v", err)
	}
	if rt.ScreenW < cfg.Screen.Width || rt.ScreenH < cfg.Screen.Height {
		fmt.Fprintf(os.Stderr, "Warning: terminal is %dx%d, the field needs %dx%d\n",
			rt.ScreenW, rt.ScreenH, cfg.Screen.Width, cfg.Screen.Height)
	}

	// Open score storage
	store := openStore(logger)

	var res game.Result
	switch flagBackend {
	case "tui":
		res, err = tui.Run(cfg, tui.Options{
			Store:  store,
			Player: playerName(flagPlayer),
			Logger: logger,
		})
	case "lcd":
		res, err = playPanel(cfg, store, rt.Seed, logger)
	default:
		err = fmt.Errorf("unknown backend %q (expected tui or lcd)", flagBackend)
	}

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if err != nil {
		fail("running game: %v", err)
	}
	fmt.Printf("%s - score %d, losses %d\n", res.Status, res.Score, res.Losses)
}

func playPanel(cfg config.HandballConfig, store *storage.Store, seed int64, logger *log.Logger) (game.Result, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return game.Result{}, err
	}
	if err := screen.Init(); err != nil {
		return game.Result{}, err
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	player := playerName(flagPlayer)
	if flagDemo > 0 {
		player = "autopilot"
	}
	return lcd.Run(ctx, screen, cfg, lcd.Options{
		Store:     store,
		Player:    player,
		Logger:    logger,
		Autopilot: flagDemo,
		Seed:      seed,
		HoldOnEnd: true,
	})
}
