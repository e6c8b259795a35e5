package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// newLogger builds the command logger. Logs go to --log-file when set,
// otherwise to fallback. The returned close func releases the file.
func newLogger(fallback io.Writer) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	out, closeFn := fallback, func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out, closeFn = f, func() { f.Close() }
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "snake",
		Level:           level,
	})
	return logger, closeFn, nil
}

// loadConfig loads the snake config and checks a requested level against it.
func loadConfig(level string) (config.SnakeConfig, error) {
	cfg, err := config.LoadSnake(flagConfig)
	if err != nil {
		return cfg, err
	}
	if level != "" {
		if _, ok := cfg.FindLevel(level); !ok {
			return cfg, fmt.Errorf("unknown level %q (available: %v)", level, cfg.LevelIDs())
		}
	}
	return cfg, nil
}

// gameOptions returns the engine options shared by all commands.
// store may be nil.
func gameOptions(store *storage.Store, logger *log.Logger) []snake.Option {
	opts := []snake.Option{snake.WithLogger(logger)}
	if flagSeed != 0 {
		opts = append(opts, snake.WithSeed(flagSeed))
	}
	if store != nil {
		opts = append(opts, snake.WithHighScores(store), snake.WithRecorder(store))
	}
	return opts
}
