package core

// Action represents a semantic game action, abstracted from physical key presses
// or touch buttons. Front-ends map their input devices onto actions.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow, K
	ActionDown           // S, Down arrow, J
	ActionLeft           // A, Left arrow, H
	ActionRight          // D, Right arrow, L
	ActionConfirm        // Enter - start game from the form
	ActionStop           // Esc - end the running session
	ActionRestart        // R - play again after game over
	ActionDebug          // G - toggle the debug grid
	ActionQuit           // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionConfirm:
		return "Confirm"
	case ActionStop:
		return "Stop"
	case ActionRestart:
		return "Restart"
	case ActionDebug:
		return "Debug"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Direction returns the movement direction carried by a steering action.
func (a Action) Direction() (Direction, bool) {
	switch a {
	case ActionUp:
		return DirUp, true
	case ActionDown:
		return DirDown, true
	case ActionLeft:
		return DirLeft, true
	case ActionRight:
		return DirRight, true
	}
	return 0, false
}
