package snake

import (
	"errors"
	"fmt"
)

var (
	// ErrBoardFull is returned by PlaceFood when every cell is occupied.
	// The engine treats it as a win, never as a failure.
	ErrBoardFull = errors.New("snake: no free cell for food")

	// ErrNotRunning is returned when a loop is started without a running session.
	ErrNotRunning = errors.New("snake: no session is running")

	// ErrUnvalidatedMove is returned by CommitMove when the move was not
	// cleared by Advance first.
	ErrUnvalidatedMove = errors.New("snake: move was not validated by Advance")
)

// ValidationError reports a rejected command. State is left unchanged.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("snake: invalid %s: %s", e.Field, e.Reason)
}
