package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/natrix/internal/config"
	"github.com/vovakirdan/natrix/internal/core"
	"github.com/vovakirdan/natrix/internal/games/snake"
	"github.com/vovakirdan/natrix/internal/grid"
	"github.com/vovakirdan/natrix/internal/platform/tui"
	"github.com/vovakirdan/natrix/internal/storage"
	"github.com/vovakirdan/natrix/internal/tile"
)

var (
	flagShowText bool
	flagShowYAML bool
)

var mapsCmd = &cobra.Command{
	Use:   "maps",
	Short: "Manage maps",
	Long: `List, preview, validate and import maps.

Map files are plain text: the first line is the map name, the next 23 lines
are rows of up to 32 cells where X is a wall and @ is the snake spawn.
YAML files with "name" and "rows" keys are accepted too.`,
}

var mapsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available maps",
	Args:  cobra.NoArgs,
	RunE:  runMapsList,
}

var mapsShowCmd = &cobra.Command{
	Use:   "show <name|file>",
	Short: "Preview a map",
	Args:  cobra.ExactArgs(1),
	RunE:  runMapsShow,
}

var mapsCheckCmd = &cobra.Command{
	Use:   "check <file>...",
	Short: "Validate map files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runMapsCheck,
}

var mapsImportCmd = &cobra.Command{
	Use:   "import <file>...",
	Short: "Validate map files and store them in the catalog",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runMapsImport,
}

var mapsRmCmd = &cobra.Command{
	Use:   "rm <name>",
	Short: "Remove a map from the catalog",
	Args:  cobra.ExactArgs(1),
	RunE:  runMapsRm,
}

func init() {
	mapsShowCmd.Flags().BoolVar(&flagShowText, "text", false, "Print the map in text file format")
	mapsShowCmd.Flags().BoolVar(&flagShowYAML, "yaml", false, "Print the map in YAML format")

	mapsCmd.AddCommand(mapsListCmd)
	mapsCmd.AddCommand(mapsShowCmd)
	mapsCmd.AddCommand(mapsCheckCmd)
	mapsCmd.AddCommand(mapsImportCmd)
	mapsCmd.AddCommand(mapsRmCmd)
}

// cliEnv loads settings and a stderr logger for the maps commands.
func cliEnv() (config.NatrixConfig, *log.Logger, error) {
	cfg, err := loadSettings()
	if err != nil {
		return cfg, nil, err
	}
	logger, err := newLogger(os.Stderr)
	if err != nil {
		return cfg, nil, err
	}
	return cfg, logger, nil
}

func runMapsList(cmd *cobra.Command, args []string) error {
	cfg, logger, err := cliEnv()
	if err != nil {
		return err
	}

	store, err := storage.Open(cfg.Maps.Catalog)
	if err != nil {
		logger.Warn("could not open map catalog", "path", cfg.Maps.Catalog, "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	sources := collectMaps(cfg, store, logger)
	out := cmd.OutOrStdout()
	if len(sources) == 0 {
		fmt.Fprintln(out, "No maps available. The empty default map will be used.")
		return nil
	}

	writeMapTable(out, sources)
	fmt.Fprintln(out)
	if store != nil {
		if err := writeCatalogFooter(out, store, len(sources), cfg.Maps.Catalog); err != nil {
			logger.Warn("cannot count catalog maps", "error", err)
		}
	}
	fmt.Fprintln(out, "Run 'natrix play --map <name>' to play a map.")
	return nil
}

// writeCatalogFooter tells how many of the listed maps are stored in the catalog.
func writeCatalogFooter(w io.Writer, store *storage.Store, total int, path string) error {
	n, err := store.Count()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%d of %d maps come from the catalog at %s.\n", n, total, path)
	return err
}

// writeMapTable prints maps as a bordered table.
func writeMapTable(w io.Writer, sources []mapSource) {
	headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers("NAME", "ORIGIN", "SPAWN", "WALLS").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	for _, s := range sources {
		t.Row(
			s.Map.Name,
			s.Origin,
			s.Map.Spawn.String(),
			fmt.Sprint(s.Map.Count(tile.Tile.IsWall)),
		)
	}
	fmt.Fprintln(w, t)
}

func runMapsShow(cmd *cobra.Command, args []string) error {
	cfg, logger, err := cliEnv()
	if err != nil {
		return err
	}

	m, err := resolveMap(cfg, logger, args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case flagShowText:
		fmt.Fprint(out, m.Text())
		return nil
	case flagShowYAML:
		data, err := yaml.Marshal(m)
		if err != nil {
			return fmt.Errorf("encode %q: %w", m.Name, err)
		}
		_, err = out.Write(data)
		return err
	}
	fmt.Fprintln(out, m.Name)
	fmt.Fprintln(out, tui.RenderScreen(previewScreen(m)))
	return nil
}

// resolveMap loads arg as a file if one exists, otherwise looks it up by name.
func resolveMap(cfg config.NatrixConfig, logger *log.Logger, arg string) (*grid.Map, error) {
	if info, err := os.Stat(arg); err == nil && !info.IsDir() {
		return loadMapFile(arg)
	}

	store, err := storage.Open(cfg.Maps.Catalog)
	if err != nil {
		logger.Warn("could not open map catalog", "path", cfg.Maps.Catalog, "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
		e, err := store.Map(arg)
		switch {
		case err == nil:
			return e.Map()
		case !errors.Is(err, storage.ErrNotFound):
			logger.Warn("catalog lookup failed", "name", arg, "error", err)
		}
	}

	m, ok := findMap(collectMaps(cfg, store, logger), arg)
	if !ok {
		return nil, fmt.Errorf("no map file or map named %q", arg)
	}
	return m, nil
}

// previewScreen draws m with the in-game glyphs and the head at the spawn.
func previewScreen(m *grid.Map) *core.Screen {
	screen := core.NewScreen(grid.Width, grid.Height)
	snake.DrawBoard(screen, core.Pt(0, 0), m, true)
	r, c := snake.Glyph(tile.Head(core.DirRight))
	screen.SetCell(m.Spawn.X, m.Spawn.Y, r, c)
	return screen
}

// checkFiles parses every file and reports one line per file.
// It returns the number of invalid files.
func checkFiles(w io.Writer, paths []string) int {
	failed := 0
	for _, p := range paths {
		m, err := loadMapFile(p)
		if err != nil {
			failed++
			fmt.Fprintf(w, "FAIL  %s: %v\n", p, err)
			continue
		}
		fmt.Fprintf(w, "ok    %s (%s)\n", p, m.Name)
	}
	return failed
}

func runMapsCheck(cmd *cobra.Command, args []string) error {
	if failed := checkFiles(cmd.OutOrStdout(), args); failed > 0 {
		return fmt.Errorf("%d of %d map files are invalid", failed, len(args))
	}
	return nil
}

func runMapsImport(cmd *cobra.Command, args []string) error {
	cfg, logger, err := cliEnv()
	if err != nil {
		return err
	}

	store, err := storage.Open(cfg.Maps.Catalog)
	if err != nil {
		return err
	}
	defer store.Close()

	var errs []error
	for _, p := range args {
		m, err := loadMapFile(p)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", p, err))
			continue
		}
		origin := p
		if abs, err := filepath.Abs(p); err == nil {
			origin = abs
		}
		if err := store.SaveMap(m, origin); err != nil {
			errs = append(errs, err)
			continue
		}
		logger.Info("imported map", "name", m.Name, "file", p)
		fmt.Fprintf(cmd.OutOrStdout(), "imported %q from %s\n", m.Name, p)
	}
	return errors.Join(errs...)
}

func runMapsRm(cmd *cobra.Command, args []string) error {
	cfg, _, err := cliEnv()
	if err != nil {
		return err
	}

	store, err := storage.Open(cfg.Maps.Catalog)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.DeleteMap(args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "removed %q\n", args[0])
	return nil
}
