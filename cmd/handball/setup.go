package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/handball/internal/config"
	"github.com/vovakirdan/handball/internal/core"
	"github.com/vovakirdan/handball/internal/game"
	"github.com/vovakirdan/handball/internal/registry"
	"github.com/vovakirdan/handball/internal/storage"
)

// newLogger builds the command logger. Full-screen modes must not write to
// the terminal they draw on, so they log to --log-file or nowhere.
// The returned closer releases the log file.
func newLogger(prefix string, fullscreen bool) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	var w io.Writer = os.Stderr
	closer := func() {}
	switch {
	case flagLogFile != "":
		f, openErr := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if openErr != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", openErr)
		}
		w = f
		closer = func() { f.Close() }
	case fullscreen:
		w = io.Discard
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closer, nil
}

// runtimeConfig collects the session parameters from flags and the terminal.
func runtimeConfig() core.RuntimeConfig {
	rt := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		rt.ScreenW = w
		rt.ScreenH = h
	}
	rt.TickRate = flagFPS
	rt.Seed = flagSeed
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}
	return rt
}

// loadGameConfig loads the game config and applies the difficulty preset
// and the runtime overrides.
// baseConfig picks the starting configuration: an explicit config file
// wins, then a non-default field layout, then the config search path.
func baseConfig() (config.HandballConfig, error) {
	if !registry.Exists(flagField) {
		return config.HandballConfig{}, fmt.Errorf("unknown field %q", flagField)
	}
	if flagConfig == "" && flagField != game.DefaultField {
		return registry.Create(flagField)
	}
	return config.LoadHandball(flagConfig)
}

func loadGameConfig(rt core.RuntimeConfig) (config.HandballConfig, error) {
	cfg, err := baseConfig()
	if err != nil {
		return cfg, err
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return cfg, err
	}
	config.ApplyHandballPreset(&cfg, preset)
	config.ApplyRuntime(&cfg, rt)

	return cfg, cfg.Validate()
}

// openStore opens the scores database. Failure is reported as a warning;
// the game runs without recording.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("scores database unavailable", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}

// playerName is the name results are recorded under.
func playerName(flag string) string {
	if flag != "" {
		return flag
	}
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "player"
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
