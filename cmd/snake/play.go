package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagPlayName  string
	flagPlayLevel string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play snake",
	Long: `Start the game. Enter your name, pick a level and press Enter.

Controls:
  Arrows/WASD  - Steer
  Esc          - Stop the session
  G            - Toggle the debug grid
  R/Enter      - Play again (after game over)
  Q/Ctrl+C     - Quit

Levels only change the speed:
  beginner      150ms per step
  intermediate  100ms per step
  expert         70ms per step

Examples:
  snake play
  snake play --name Ann --level expert
  snake play --config ./my-snake.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPlayName, "name", "", "Player name to prefill (default: last used)")
	playCmd.Flags().StringVar(&flagPlayLevel, "level", "", "Level to preselect: beginner, intermediate, expert")
}

func runPlay(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig(flagPlayLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// The TUI owns the terminal, so logs go to a file or nowhere
	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	runtime := core.DefaultConfig()
	runtime.Seed = flagSeed
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		runtime.ScreenW = w
		runtime.ScreenH = h
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	game, err := snake.New(cfg, gameOptions(store, logger)...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	defaults := snake.StartCommand{PlayerName: flagPlayName, Level: flagPlayLevel}
	if found, ok := cfg.FindLevel(flagPlayLevel); ok {
		defaults.Level = found.ID
	}

	runErr := tui.Run(game, store, logger, runtime, defaults)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}

	if snap := game.Snapshot(); snap.State.Terminal() {
		fmt.Printf("%s scored %d (high score %d)\n", snap.Player, snap.Score, snap.HighScore)
	}
}
