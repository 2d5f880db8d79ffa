package game

import (
	"github.com/vovakirdan/handball/internal/config"
	"github.com/vovakirdan/handball/internal/registry"
)

// DefaultField is the layout played when none is chosen.
const DefaultField = "handball"

func init() {
	registry.Register(DefaultField, "Handball (terminal field)", config.DefaultHandballConfig)
	registry.Register("classic", "Handball (128x160 LCD)", config.ClassicHandballConfig)
}
