package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/natrix/internal/config"
	"github.com/vovakirdan/natrix/internal/grid"
	"github.com/vovakirdan/natrix/internal/storage"
)

// loadSettings reads the config file and applies the preset and flags on top.
func loadSettings() (config.NatrixConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	if flagPreset != "" {
		p, err := config.ParsePreset(flagPreset)
		if err != nil {
			return cfg, err
		}
		config.ApplyPreset(&cfg, p)
	}
	if flagTick > 0 {
		cfg.Timing.TickMS = flagTick
	}
	if flagMapsDir != "" {
		cfg.Maps.Dir = flagMapsDir
	}
	if flagDBPath != "" {
		cfg.Maps.Catalog = flagDBPath
	}
	if cfg.Maps.Catalog == "" {
		cfg.Maps.Catalog = config.DataPath("maps.db")
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// newLogger builds the logger for w at the --log-level level.
func newLogger(w io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(strings.ToLower(flagLogLevel))
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "natrix",
		Level:           level,
	}), nil
}

// openLogFile opens the play log, creating its directory.
func openLogFile() (*os.File, error) {
	path := flagLogFile
	if path == "" {
		path = config.DataPath("natrix.log")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return f, nil
}

// mapSource is a playable map and where it came from.
type mapSource struct {
	Map    *grid.Map
	Origin string
}

// collectMaps lists the directory or built-in maps followed by the catalog
// maps. Files that fail to parse are logged and skipped. store may be nil.
func collectMaps(cfg config.NatrixConfig, store *storage.Store, logger *log.Logger) []mapSource {
	var sources []mapSource

	var loader *grid.Loader
	origin := "builtin"
	switch {
	case cfg.Maps.Dir != "":
		loader = grid.NewLoader(os.DirFS(cfg.Maps.Dir))
		origin = cfg.Maps.Dir
	case cfg.Maps.Builtin:
		loader = grid.NewLoader(grid.Builtin())
	}

	if loader != nil {
		loader.OnError = func(path string, err error) {
			logger.Warn("skipping map", "path", path, "error", err)
		}
		entries, err := loader.LoadAll()
		if err != nil {
			logger.Warn("cannot read maps", "source", origin, "error", err)
		}
		for _, e := range entries {
			where := "builtin:" + e.Path
			if origin != "builtin" {
				where = filepath.Join(origin, e.Path)
			}
			sources = append(sources, mapSource{Map: e.Map, Origin: where})
		}
	}

	if store != nil {
		maps, err := store.GridMaps()
		if err != nil {
			logger.Warn("skipping catalog maps", "error", err)
		}
		for _, m := range maps {
			sources = append(sources, mapSource{Map: m, Origin: "catalog"})
		}
	}

	return sources
}

// findMap returns the first map with the given name, ignoring case.
func findMap(sources []mapSource, name string) (*grid.Map, bool) {
	for _, s := range sources {
		if strings.EqualFold(s.Map.Name, name) {
			return s.Map, true
		}
	}
	return nil, false
}

// loadMapFile parses a map file from disk in any supported format.
func loadMapFile(path string) (*grid.Map, error) {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	return grid.NewLoader(os.DirFS(dir)).LoadFile(base)
}
