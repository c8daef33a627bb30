package core

import "time"

// DefaultTickDelay is the fixed delay between two simulation steps.
const DefaultTickDelay = 100 * time.Millisecond

// RuntimeConfig contains configuration passed to the platform at startup.
type RuntimeConfig struct {
	ScreenW   int           // Screen width in characters
	ScreenH   int           // Screen height in characters
	TickDelay time.Duration // Delay between simulation steps
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:   80,
		ScreenH:   24,
		TickDelay: DefaultTickDelay,
	}
}
