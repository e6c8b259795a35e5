package snake

import (
	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
)

// GameState represents the engine state.
type GameState string

const (
	StateIdle     GameState = "idle"
	StateRunning  GameState = "running"
	StateGameOver GameState = "game_over"
	StateWin      GameState = "win"
)

// Terminal reports whether the state ends a session.
func (s GameState) Terminal() bool {
	return s == StateGameOver || s == StateWin
}

// EndReason explains a terminal transition.
type EndReason string

const (
	ReasonNone      EndReason = ""
	ReasonWall      EndReason = "wall"
	ReasonSelf      EndReason = "self"
	ReasonBoardFull EndReason = "board_full"
	ReasonStopped   EndReason = "stopped"
)

// Snapshot is a read-only copy of the session state for renderers.
// Nothing in it aliases engine memory.
type Snapshot struct {
	Tick      uint64
	State     GameState
	Reason    EndReason
	Player    string
	Level     config.Level
	Grid      core.Grid
	Snake     []core.Cell // Head first
	Direction core.Direction
	Food      core.Cell
	HasFood   bool
	Score     int
	HighScore int
	// NewHighScore is set on the terminal snapshot when Score beat the
	// previous high score.
	NewHighScore bool
}

// Head returns the snake head, if there is a snake.
func (s Snapshot) Head() (core.Cell, bool) {
	if len(s.Snake) == 0 {
		return core.Cell{}, false
	}
	return s.Snake[0], true
}

// Length returns the number of snake segments.
func (s Snapshot) Length() int {
	return len(s.Snake)
}
