// natrix is a terminal snake game played on grid maps.
//
// Usage:
//
//	natrix                   - Open the map menu and play
//	natrix play [--map NAME] - Same, optionally starting on a map
//	natrix maps list         - List available maps
//	natrix maps show <map>   - Preview a map by name or file
//	natrix maps check <file> - Validate map files
//	natrix maps import <file>- Store map files in the catalog
//	natrix maps rm <name>    - Remove a map from the catalog
//
// Global flags:
//
//	--tick <ms>       - Tick interval in milliseconds (default from config: 100)
//	--preset <name>   - Tick speed preset: slow, normal, fast
//	--seed <value>    - Set RNG seed for reproducible food placement
//	--config <path>   - Config file (default: ~/.natrix/config.yaml)
//	--maps <dir>      - Load maps from a directory instead of the built-in set
//	--db <path>       - Map catalog database (default: ~/.natrix/maps.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var (
	// Global flags
	flagTick     int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagPreset   string
	flagMapsDir  string
	flagLogFile  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "natrix",
	Short: "Natrix - snake on grid maps in your terminal",
	Long: `Natrix is a terminal snake game. Pick a map, steer with WASD or the
arrow keys, eat food to grow and avoid walls and your own body.
The board wraps around at its edges.

Examples:
  natrix
  natrix play --map Arena --preset fast
  natrix maps list
  natrix maps import ./my-maps/*.txt`,
	SilenceUsage: true,
	RunE:         runPlay,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "natrix", version)
	},
}

func init() {
	// Global persistent flags
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagTick, "tick", 0, "Tick interval in milliseconds (0 = from config)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "", "Path to the map catalog (default ~/.natrix/maps.db)")
	pf.StringVar(&flagConfig, "config", "", "Path to a config YAML")
	pf.StringVar(&flagPreset, "preset", "", "Tick speed preset: slow, normal, fast")
	pf.StringVar(&flagMapsDir, "maps", "", "Directory with map files")
	pf.StringVar(&flagLogFile, "log-file", "", "Log file used while playing (default ~/.natrix/natrix.log)")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(mapsCmd)
	rootCmd.AddCommand(versionCmd)
}
