// shooter is a terminal splat shooter: fly the ship, collect ammo and shoot
// down the enemies before they reach you.
//
// Usage:
//
//	shooter play             - Play in the terminal
//	shooter simulate         - Run a headless game and print the last frame
//	shooter list             - List available games
//	shooter config           - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--log-file <path>     - Write logs to a file
//	--log-level <level>   - debug, info, warn or error (default: info)
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-shooter/internal/asset"

	// Import games to register them
	_ "github.com/vovakirdan/tui-shooter/internal/games/shooter"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagLogFile  string
	flagLogLevel string
	flagAssets   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "shooter",
	Short: "Splat Shooter - an arcade shooter in your terminal",
	Long: `Splat Shooter is a vertical arcade shooter rendered in the terminal.
Ammo refills over time; enemies fall in waves and end the game if they
reach your ship.

Available commands:
  play      - Play in the terminal
  simulate  - Run a headless game and print the final frame
  list      - Show all available games
  config    - Print the effective configuration

Examples:
  shooter play
  shooter play --difficulty hard --enemy hollande
  shooter simulate --duration 20s --fire --seed 7
  shooter config --config ./my-shooter.yaml`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagAssets, "assets", "", "Load assets from this directory instead of the built-in set")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds the process logger. Logs go to --log-file when set,
// otherwise to fallback. The returned close func must be called on exit.
func newLogger(fallback io.Writer) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}

	w, closeFn := fallback, func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w, closeFn = f, func() { _ = f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "shooter",
		Level:           level,
	})
	return logger, closeFn, nil
}

// newLoader returns the asset loader for --assets.
func newLoader(logger *log.Logger) *asset.Loader {
	opts := []asset.Option{asset.WithLogger(logger.WithPrefix("assets"))}
	if flagAssets != "" {
		opts = append(opts, asset.WithDir(flagAssets))
	}
	return asset.NewLoader(opts...)
}
