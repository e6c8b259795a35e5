// Package config provides YAML-based game configuration loading and
// difficulty levels for the snake game.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// SnakeConfig contains all configuration for the snake game.
type SnakeConfig struct {
	Board   BoardConfig   `yaml:"board"`
	Snake   StartConfig   `yaml:"snake"`
	Scoring ScoringConfig `yaml:"scoring"`
	Levels  []Level       `yaml:"levels"`
}

// BoardConfig defines the drawing surface the grid is derived from.
type BoardConfig struct {
	CanvasWidth  int `yaml:"canvas_width"`
	CanvasHeight int `yaml:"canvas_height"`
	TileSize     int `yaml:"tile_size"`
}

// StartConfig defines the canonical snake at session start.
type StartConfig struct {
	StartX        int    `yaml:"start_x"`
	StartY        int    `yaml:"start_y"`
	InitialLength int    `yaml:"initial_length"`
	Direction     string `yaml:"direction"`
}

// ScoringConfig defines score awards.
type ScoringConfig struct {
	Award int `yaml:"award"` // Points per food eaten
}

// Grid derives the playing grid from the board settings.
func (c SnakeConfig) Grid() (core.Grid, error) {
	return core.NewGrid(c.Board.CanvasWidth, c.Board.CanvasHeight, c.Board.TileSize, c.Board.TileSize)
}

// StartDirection parses the configured initial direction.
func (c SnakeConfig) StartDirection() (core.Direction, error) {
	return core.ParseDirection(c.Snake.Direction)
}

// StartBody returns the initial snake cells, head first, trailing away from
// the start direction.
func (c SnakeConfig) StartBody() ([]core.Cell, error) {
	dir, err := c.StartDirection()
	if err != nil {
		return nil, err
	}
	body := make([]core.Cell, 0, c.Snake.InitialLength)
	cell := core.Cell{X: c.Snake.StartX, Y: c.Snake.StartY}
	for range c.Snake.InitialLength {
		body = append(body, cell)
		cell = cell.Step(dir.Opposite())
	}
	return body, nil
}

// Validate checks the configuration for values the engine cannot run with.
func (c SnakeConfig) Validate() error {
	grid, err := c.Grid()
	if err != nil {
		return fmt.Errorf("config: board: %w", err)
	}
	if c.Snake.InitialLength < 1 {
		return fmt.Errorf("config: snake: initial_length %d must be at least 1", c.Snake.InitialLength)
	}
	if c.Snake.InitialLength >= grid.Area() {
		return fmt.Errorf("config: snake: initial_length %d leaves no room for food on %s",
			c.Snake.InitialLength, grid.Info())
	}
	body, err := c.StartBody()
	if err != nil {
		return fmt.Errorf("config: snake: %w", err)
	}
	for _, cell := range body {
		if !grid.Contains(cell) {
			return fmt.Errorf("config: snake: start segment %v is outside the %s grid", cell, grid.Info())
		}
	}
	if c.Scoring.Award <= 0 {
		return fmt.Errorf("config: scoring: award %d must be positive", c.Scoring.Award)
	}
	if len(c.Levels) == 0 {
		return errors.New("config: levels: at least one level is required")
	}
	seen := make(map[string]bool, len(c.Levels))
	for _, l := range c.Levels {
		if l.ID == "" {
			return errors.New("config: levels: level id must not be empty")
		}
		id := strings.ToLower(l.ID)
		if seen[id] {
			return fmt.Errorf("config: levels: duplicate level %q", l.ID)
		}
		seen[id] = true
		if l.TickMS <= 0 {
			return fmt.Errorf("config: levels: %s tick_ms %d must be positive", l.ID, l.TickMS)
		}
	}
	return nil
}

// Level is a named difficulty. The only parameter it controls is speed.
type Level struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name"`
	TickMS int    `yaml:"tick_ms"`
}

// TickInterval returns the simulation period for the level.
func (l Level) TickInterval() time.Duration {
	return time.Duration(l.TickMS) * time.Millisecond
}
