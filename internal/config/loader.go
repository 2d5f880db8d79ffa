package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/handball/internal/core"
)

// LoadHandball loads handball configuration.
// Search order: customPath -> ~/.handball/configs/handball.yaml -> ./configs/handball.yaml -> embedded default
func LoadHandball(customPath string) (HandballConfig, error) {
	var cfg HandballConfig

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("handball.yaml"); userCfgPath != "" {
		if c, ok := readValid(userCfgPath); ok {
			return c, nil
		}
	}

	// Try local configs directory
	if c, ok := readValid(filepath.Join("configs", "handball.yaml")); ok {
		return c, nil
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultHandballYAML, &cfg); err != nil || cfg.Validate() != nil {
		return DefaultHandballConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// readValid reads an optional config file. Unreadable or invalid files are skipped.
func readValid(path string) (HandballConfig, bool) {
	var cfg HandballConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, false
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, false
	}
	return cfg, cfg.Validate() == nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".handball", "configs", filename)
}

// ApplyHandballPreset modifies the config based on a difficulty preset.
func ApplyHandballPreset(cfg *HandballConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust gameplay based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Timer.Divider += 2
		cfg.Paddle.Step++
	case DifficultyHard:
		cfg.Timer.Divider = max(cfg.Timer.Divider-1, 1)
		cfg.Paddle.Step = max(cfg.Paddle.Step-1, 1)
	}
}

// ApplyRuntime overrides the timer rate with the session's tick rate.
// A zero rate keeps the configured one.
func ApplyRuntime(cfg *HandballConfig, rt core.RuntimeConfig) {
	if rt.TickRate > 0 {
		cfg.Timer.RateHz = rt.TickRate
	}
}
