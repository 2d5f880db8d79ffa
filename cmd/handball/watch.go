package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/handball/internal/platform/web"
)

var (
	flagHTTPAddr   string
	flagWatchSkill float64
	flagPause      time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream autopilot games to websocket spectators",
	Long: `Start an HTTP server that plays autopilot games back to back and
streams every frame to websocket clients.

Endpoints:
  /ws      - Frames as JSON: the whole screen on connect, then changed rows
  /stats   - Spectator count and the current round
  /health  - Liveness check

Examples:
  handball watch
  handball watch --http :9000 --skill 0.7
  handball watch --field classic --pause 5s`,
	Args: cobra.NoArgs,
	Run:  runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&flagHTTPAddr, "http", ":8080", "HTTP server address (host:port)")
	watchCmd.Flags().Float64Var(&flagWatchSkill, "skill", 0.9, "Autopilot skill from 0 to 1")
	watchCmd.Flags().DurationVar(&flagPause, "pause", 3*time.Second, "Pause between rounds")
}

func runWatch(_ *cobra.Command, _ []string) {
	logger, closeLog, err := newLogger("handball-web", false)
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	rt := runtimeConfig()
	gameCfg, err := loadGameConfig(rt)
	if err != nil {
		fail("%v", err)
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	server, err := web.NewServer(web.ServerConfig{
		Address: flagHTTPAddr,
		Arena: web.ArenaConfig{
			Game:  gameCfg,
			Skill: flagWatchSkill,
			Seed:  rt.Seed,
			Pause: flagPause,
			Store: store,
		},
		Logger: logger,
	})
	if err != nil {
		fail("creating server: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Streaming handball on %s\n", flagHTTPAddr)
	fmt.Printf("Spectators connect to ws://localhost:%s/ws\n", portOf(flagHTTPAddr))
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(ctx); err != nil {
		fail("server: %v", err)
	}
}
