// Package config provides YAML-based configuration loading and tick speed
// presets for Natrix.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/natrix/internal/games/snake"
)

// NatrixConfig is the complete game configuration.
type NatrixConfig struct {
	Timing TimingConfig `yaml:"timing"`
	Snake  SnakeConfig  `yaml:"snake"`
	Food   FoodConfig   `yaml:"food"`
	Maps   MapsConfig   `yaml:"maps"`
}

// TimingConfig controls the simulation rate.
type TimingConfig struct {
	TickMS int `yaml:"tick_ms"`
}

// SnakeConfig controls growth.
type SnakeConfig struct {
	InitialGrow int `yaml:"initial_grow"`
	FoodGrow    int `yaml:"food_grow"`
}

// FoodConfig controls food placement.
type FoodConfig struct {
	MaxAttempts int `yaml:"max_attempts"`
}

// MapsConfig says where maps come from.
type MapsConfig struct {
	Dir     string `yaml:"dir"`
	Catalog string `yaml:"catalog"`
	Builtin bool   `yaml:"builtin"`
}

const maxTickMS = 10000

// TickDelay returns the tick interval.
func (c NatrixConfig) TickDelay() time.Duration {
	return time.Duration(c.Timing.TickMS) * time.Millisecond
}

// SnakeOptions converts the config into session rules.
func (c NatrixConfig) SnakeOptions() snake.Options {
	return snake.Options{
		InitialGrow:     c.Snake.InitialGrow,
		FoodGrow:        c.Snake.FoodGrow,
		MaxFoodAttempts: c.Food.MaxAttempts,
	}
}

// Validate checks value ranges. All problems are reported together.
func (c NatrixConfig) Validate() error {
	var errs []error
	if c.Timing.TickMS <= 0 || c.Timing.TickMS > maxTickMS {
		errs = append(errs, fmt.Errorf("timing.tick_ms must be in 1..%d, got %d", maxTickMS, c.Timing.TickMS))
	}
	// With less than two ticks of growth the tail would step onto the head.
	if c.Snake.InitialGrow < 2 {
		errs = append(errs, fmt.Errorf("snake.initial_grow must be at least 2, got %d", c.Snake.InitialGrow))
	}
	if c.Snake.FoodGrow < 0 {
		errs = append(errs, fmt.Errorf("snake.food_grow must not be negative, got %d", c.Snake.FoodGrow))
	}
	if c.Food.MaxAttempts < 0 {
		errs = append(errs, fmt.Errorf("food.max_attempts must not be negative, got %d", c.Food.MaxAttempts))
	}
	return errors.Join(errs...)
}
