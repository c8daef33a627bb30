package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	dataDirName    = ".natrix"
	configFileName = "config.yaml"
	localConfig    = "configs/natrix.yaml"
)

// Load loads the Natrix configuration.
// Search order: customPath -> ~/.natrix/config.yaml -> ./configs/natrix.yaml -> embedded default.
// Keys missing from a file keep their default values.
func Load(customPath string) (NatrixConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultNatrixConfig(), fmt.Errorf("config: read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return DefaultNatrixConfig(), fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(localConfig); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultNatrixYAML)
	if err != nil {
		return DefaultNatrixConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML on top of the defaults and validates the result.
func Parse(data []byte) (NatrixConfig, error) {
	cfg := DefaultNatrixConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid: %w", err)
	}
	return cfg, nil
}

// DataDir returns ~/.natrix, or an empty string if home is unavailable.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, dataDirName)
}

// DataPath joins name onto DataDir, falling back to the working directory.
func DataPath(name string) string {
	dir := DataDir()
	if dir == "" {
		return name
	}
	return filepath.Join(dir, name)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath() string {
	dir := DataDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, configFileName)
}
