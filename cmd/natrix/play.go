package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/natrix/internal/app"
	"github.com/vovakirdan/natrix/internal/core"
	"github.com/vovakirdan/natrix/internal/grid"
	"github.com/vovakirdan/natrix/internal/platform/tui"
	"github.com/vovakirdan/natrix/internal/storage"
)

var flagMapName string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Natrix",
	Long: `Open the map menu and play.

Controls:
  W/A/S/D, arrows - Steer (menu: W/S move the cursor)
  Space/Enter     - Play the highlighted map
  R               - Restart after death
  M               - Back to the menu after death
  Q/Ctrl+C        - Quit

Examples:
  natrix play
  natrix play --map Tunnels
  natrix play --maps ./maps --preset slow --seed 42`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagMapName, "map", "", "Start directly on the named map")
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	// Logs go to a file so they never draw over the game.
	logFile, err := openLogFile()
	if err != nil {
		return err
	}
	defer logFile.Close()

	logger, err := newLogger(logFile)
	if err != nil {
		return err
	}

	store, err := storage.Open(cfg.Maps.Catalog)
	if err != nil {
		logger.Warn("could not open map catalog", "path", cfg.Maps.Catalog, "error", err)
		// Continue without the catalog
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	env := &app.Env{
		Logger: logger,
		LoadMaps: func() []*grid.Map {
			var maps []*grid.Map
			for _, s := range collectMaps(cfg, store, logger) {
				maps = append(maps, s.Map)
			}
			return maps
		},
		Options: cfg.SnakeOptions(),
		Rand:    rand.New(rand.NewSource(seed)),
	}

	var machine *app.Machine
	if flagMapName != "" {
		m, ok := findMap(collectMaps(cfg, store, logger), flagMapName)
		if !ok {
			return fmt.Errorf("unknown map %q, run 'natrix maps list' to see available maps", flagMapName)
		}
		machine = app.NewMachineAt(env, app.NewGame(env, m))
	} else {
		machine = app.NewMachine(env)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	rc := core.DefaultConfig()
	rc.ScreenW, rc.ScreenH = width, height
	rc.TickDelay = cfg.TickDelay()
	logger.Info("starting", "tick", rc.TickDelay, "seed", seed, "maps_dir", cfg.Maps.Dir)

	if err := tui.Run(machine, rc); err != nil {
		logger.Error("game stopped", "error", err)
		return fmt.Errorf("game stopped: %w", err)
	}
	return nil
}
