package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagDemoName    string
	flagDemoLevel   string
	flagDemoTimeout time.Duration
	flagDemoRecord  bool
	flagDemoBoard   bool
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Watch the autopilot play a headless session",
	Long: `Run one session on the real clock with the autopilot steering.
Progress is logged to stderr; the result is printed when the session ends.

The session ends on game over or win, after --timeout, or on Ctrl+C.

Examples:
  snake demo
  snake demo --seed 42 --level expert --board
  snake demo --timeout 10s --log-level debug`,
	Args: cobra.NoArgs,
	RunE: runDemo,
}

func init() {
	demoCmd.Flags().StringVar(&flagDemoName, "name", "autopilot", "Player name for the session")
	demoCmd.Flags().StringVar(&flagDemoLevel, "level", "", "Level: beginner, intermediate, expert")
	demoCmd.Flags().DurationVar(&flagDemoTimeout, "timeout", 0, "Stop the session after this long (0 = no limit)")
	demoCmd.Flags().BoolVar(&flagDemoRecord, "record", false, "Record the session in the scores database")
	demoCmd.Flags().BoolVar(&flagDemoBoard, "board", false, "Print the final board")
}

func runDemo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(flagDemoLevel)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	var store *storage.Store
	if flagDemoRecord {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			return err
		}
		defer store.Close()
	}

	game, err := snake.New(cfg, gameOptions(store, logger)...)
	if err != nil {
		return err
	}
	if err := game.Start(snake.StartCommand{PlayerName: flagDemoName, Level: flagDemoLevel}); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	if flagDemoTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, flagDemoTimeout)
		defer cancel()
	}

	score := 0
	loop := snake.NewLoop(game, func(s snake.Snapshot) {
		if s.Score != score {
			score = s.Score
			logger.Debug("food eaten", "tick", s.Tick, "score", s.Score, "length", s.Length(), "next", s.Food)
		}
		if s.State == snake.StateRunning {
			game.Steer(snake.Autopilot(s))
		}
	})
	game.Steer(snake.Autopilot(game.Snapshot()))

	snap, err := loop.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	if flagDemoBoard {
		w, h := tui.BoardSize(snap.Grid)
		scr := core.NewScreen(w, h)
		tui.DrawSession(scr, snap, false)
		fmt.Println(scr.String())
	}

	fmt.Printf("%s: %s (%s) score %d, length %d, %d ticks, high score %d\n",
		snap.Player, snap.State, snap.Reason, snap.Score, snap.Length(), snap.Tick, snap.HighScore)
	return nil
}
