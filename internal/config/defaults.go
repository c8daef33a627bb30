package config

import (
	_ "embed"

	"github.com/vovakirdan/natrix/internal/core"
	"github.com/vovakirdan/natrix/internal/games/snake"
)

//go:embed defaults/natrix.yaml
var defaultNatrixYAML []byte

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultNatrixYAML
}

// DefaultNatrixConfig returns the hard-coded defaults.
func DefaultNatrixConfig() NatrixConfig {
	return NatrixConfig{
		Timing: TimingConfig{
			TickMS: int(core.DefaultTickDelay.Milliseconds()),
		},
		Snake: SnakeConfig{
			InitialGrow: snake.DefaultInitialGrow,
			FoodGrow:    snake.DefaultFoodGrow,
		},
		Food: FoodConfig{
			MaxAttempts: snake.DefaultOptions().MaxFoodAttempts,
		},
		Maps: MapsConfig{
			Builtin: true,
		},
	}
}
