package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-shooter/internal/config"
	"github.com/vovakirdan/tui-shooter/internal/core"
	"github.com/vovakirdan/tui-shooter/internal/platform/tui"
	"github.com/vovakirdan/tui-shooter/internal/registry"
)

var (
	flagConfig     string
	flagDifficulty string
	flagEnemy      string
	flagSkipTitle  bool
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game",
	Long: `Start playing. The game defaults to the shooter.

Controls:
  Arrows/WASD  - Move the ship
  Space/M      - Fire (uses one round of ammo)
  P/Esc        - Pause
  R            - Restart (after game over)
  Ctrl+S       - Save a screenshot
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - More ammo, fewer enemies, faster fire
  normal - Config defaults, waves speed up with score
  hard   - Less ammo, more enemies, slower fire
  fixed  - No progression

Examples:
  shooter play
  shooter play --difficulty easy
  shooter play --enemy random --seed 42
  shooter play --config ./my-shooter.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	addGameFlags(playCmd)
	playCmd.Flags().BoolVar(&flagSkipTitle, "no-title", false, "Skip the title screen")
}

// addGameFlags registers the flags that shape a game's configuration.
func addGameFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	cmd.Flags().StringVar(&flagEnemy, "enemy", "", "Enemy kind: a sprite name from the config, or random")
}

func gameID(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "shooter"
}

// gameOptions parses the shared game flags into registry options.
func gameOptions(logger *log.Logger) (registry.Options, error) {
	var preset config.DifficultyPreset
	if flagDifficulty != "" {
		p, err := config.ParsePreset(flagDifficulty)
		if err != nil {
			return registry.Options{}, err
		}
		preset = p
	}
	return registry.Options{
		Loader:     newLoader(logger),
		Logger:     logger,
		ConfigPath: flagConfig,
		Difficulty: preset,
		Variant:    flagEnemy,
	}, nil
}

func runPlay(cmd *cobra.Command, args []string) {
	id := gameID(args)
	if !registry.Exists(id) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", id)
		fmt.Fprintln(os.Stderr, "Run 'shooter list' to see available games.")
		os.Exit(1)
	}

	// Logs would tear the alt screen, so they go to a file or nowhere.
	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	cfg, source, err := config.LoadShooterFrom(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	logger.Info("config loaded", "source", source)

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	rt := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	opts, err := gameOptions(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	renderer := tui.NewTerminalRenderer(width, height)
	opts.Renderer = renderer

	game, err := registry.Create(id, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	st, runErr := tui.Run(game, renderer, rt, tui.Options{
		HoldMs:    cfg.Input.HoldMs,
		SkipTitle: flagSkipTitle,
		Logger:    logger,
	})
	if err := game.Close(); err != nil {
		logger.Warn("close", "err", err)
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		closeLog()
		os.Exit(1)
	}
	if st.Score > 0 {
		fmt.Printf("Final score: %d\n", st.Score)
	}
}
