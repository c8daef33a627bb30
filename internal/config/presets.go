package config

import (
	"fmt"
	"strings"
)

// Preset is a named tick speed.
type Preset string

const (
	PresetSlow   Preset = "slow"
	PresetNormal Preset = "normal"
	PresetFast   Preset = "fast"
)

// Presets lists the presets from slowest to fastest.
func Presets() []Preset {
	return []Preset{PresetSlow, PresetNormal, PresetFast}
}

// TickMS returns the tick interval of the preset in milliseconds.
func (p Preset) TickMS() int {
	switch p {
	case PresetSlow:
		return 150
	case PresetFast:
		return 70
	default:
		return 100
	}
}

// ParsePreset parses a preset name, case-insensitively.
func ParsePreset(s string) (Preset, error) {
	p := Preset(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Presets() {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown preset %q (want slow, normal or fast)", s)
}

// ApplyPreset sets the tick interval from a preset. Only timing changes.
func ApplyPreset(cfg *NatrixConfig, p Preset) {
	cfg.Timing.TickMS = p.TickMS()
}
