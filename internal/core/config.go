package core

// RuntimeConfig contains the session parameters passed to the game at start.
type RuntimeConfig struct {
	ScreenW  int   // Display width in pixels (terminal cells)
	ScreenH  int   // Display height in pixels (terminal cells)
	TickRate int   // Timer firings per second before the rate divider
	Seed     int64 // RNG seed for the autopilot jitter
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}
