package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/handball/internal/core"
	"github.com/vovakirdan/handball/internal/game"
)

var (
	flagSkill     float64
	flagMaxFrames int
	flagShow      bool
	flagNoSave    bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a headless game with the autopilot",
	Long: `Run a game without a terminal display. The autopilot steers the paddle
toward the ball, missing a reaction with probability 1-skill. Physics and
rendering run in lockstep, so a fixed --seed reproduces the game exactly.

Examples:
  handball sim
  handball sim --skill 0.6 --seed 42 --show
  handball sim --max-frames 5000 --no-save`,
	Args: cobra.NoArgs,
	Run:  runSim,
}

func init() {
	simCmd.Flags().Float64Var(&flagSkill, "skill", 0.9, "Autopilot skill from 0 to 1")
	simCmd.Flags().IntVar(&flagMaxFrames, "max-frames", 100000, "Stop after this many frames (0 = no limit)")
	simCmd.Flags().BoolVar(&flagShow, "show", false, "Print the final frame")
	simCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not record the result")
}

func runSim(_ *cobra.Command, _ []string) {
	logger, closeLog, err := newLogger("handball-sim", false)
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	rt := runtimeConfig()
	cfg, err := loadGameConfig(rt)
	if err != nil {
		fail("%v", err)
	}

	screen := core.NewScreen(cfg.Screen.Width, cfg.Screen.Height, cfg.Background)
	g, err := game.New(cfg, game.Options{Display: screen, Logger: logger})
	if err != nil {
		fail("%v", err)
	}
	pilot, err := game.NewAutopilot(g, flagSkill, rt.Seed)
	if err != nil {
		fail("%v", err)
	}
	g.SetSwitches(pilot)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("simulation started", "skill", flagSkill, "seed", rt.Seed)
	res, err := game.Simulate(ctx, g, flagMaxFrames)
	if err != nil {
		logger.Warn("simulation interrupted", "err", err)
	}

	if flagShow {
		fmt.Println(screen.String(cfg.Background))
		fmt.Println()
	}
	fmt.Printf("Result:  %s\n", res.Status)
	fmt.Printf("Score:   %d/%d\n", res.Score, cfg.Rules.ScoreTarget)
	fmt.Printf("Losses:  %d/%d\n", res.Losses, cfg.Rules.LossThreshold)
	fmt.Printf("Ticks:   %d\n", res.Ticks)
	fmt.Printf("Frames:  %d\n", res.Frames)
	fmt.Printf("Seed:    %d\n", rt.Seed)

	if flagNoSave {
		return
	}
	store := openStore(logger)
	if store == nil {
		return
	}
	defer store.Close()
	if _, err := store.SaveResult(res.Entry("autopilot")); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not save result: %v\n", err)
	}
}
