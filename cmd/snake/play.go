package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagDifficulty string
	flagFPS        int
	flagRefresh    int
	flagNoJournal  bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start a game in this terminal.

Without --difficulty a menu lets you pick one before every game.

Controls:
  Arrows/HJKL/WASD - Steer
  Ctrl+S           - Save a text screenshot to ~/.snake/screenshots
  ?                - Toggle help
  Esc              - Back to the difficulty menu
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Frame interval x0.95 per apple
  medium - Frame interval x0.9 per apple
  hard   - Frame interval x0.8 per apple
  fixed  - Speed never changes
  0.85   - Any multiplier in (0, 1]

Every game is written to the session journal (see 'snake sessions')
unless --no-journal is given.

Examples:
  snake play
  snake play --difficulty hard
  snake play --fps 10 --seed 42
  snake play --config ./my-snake.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset (easy, medium, hard, fixed) or multiplier")
	playCmd.Flags().IntVar(&flagFPS, "fps", 0, "Starting steps per second (default from config)")
	playCmd.Flags().IntVar(&flagRefresh, "refresh", 0, "Display refresh rate (default from config)")
	playCmd.Flags().BoolVar(&flagNoJournal, "no-journal", false, "Do not record this session")
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		exitErr("%v", err)
	}

	// Presets may also adjust timing, so apply them before explicit flags.
	skipMenu := flagDifficulty != ""
	if skipMenu {
		preset := config.DifficultyPreset(flagDifficulty)
		if _, ok := config.MultiplierForPreset(preset); ok {
			config.ApplySnakePreset(&cfg, preset)
		} else {
			cfg.Difficulty = flagDifficulty
		}
	}
	if flagFPS > 0 {
		cfg.Timing.StartFPS = flagFPS
	}
	if flagRefresh > 0 {
		cfg.Timing.RefreshFPS = flagRefresh
	}
	if err := cfg.Validate(); err != nil {
		exitErr("%v", err)
	}
	difficulty, err := cfg.DifficultyValue()
	if err != nil {
		exitErr("%v", err)
	}

	// The alternate screen owns the terminal; only log to a file.
	logger, closeLog, err := newLogger(io.Discard, "snake")
	if err != nil {
		exitErr("%v", err)
	}
	defer closeLog()

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// Open the journal
	var store *storage.Store
	if !flagNoJournal {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open session journal: %v\n", err)
			// Continue without the journal - game still works
			store = nil
		}
	}

	opts := tui.SessionOptions{
		Game: tui.GameConfig{
			Runtime: core.RuntimeConfig{
				ScreenW:     width,
				ScreenH:     height,
				RefreshRate: cfg.Timing.RefreshFPS,
				Seed:        flagSeed,
			},
			Difficulty: difficulty,
			TargetFPS:  cfg.Timing.StartFPS,
			GridSize:   cfg.Grid.Size,
		},
		SkipMenu: skipMenu,
		Store:    store,
		Logger:   logger,
	}

	// Run the game
	runErr := tui.Run(opts)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		closeLog()
		exitErr("running game: %v", runErr)
	}
}
