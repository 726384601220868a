package model

import "fmt"

// Pane is a handle to a tmux pane. ranger-drop never owns the pane; tmux
// creates and destroys it in response to split-window and kill.
type Pane struct {
	// ID is the tmux pane id (e.g., "%3").
	ID string `json:"id"`
	// Height is the pane height in rows.
	Height int `json:"height,omitempty"`
	// CurrentPath is the working directory of the pane's foreground process.
	CurrentPath string `json:"current_path,omitempty"`
	// StartCommand is the command tmux recorded when the pane was created.
	// Empty for panes running the default shell.
	StartCommand string `json:"start_command"`
	// PID is the pid of the pane's initial process.
	PID int `json:"pid"`
}

// Window is the tmux window holding a pane. Only the height is consulted.
type Window struct {
	Height int `json:"height"`
}

// RowsForPercent converts a percentage of the window height to rows,
// rounding down the way tmux does for "-l N%".
func (w Window) RowsForPercent(percent int) int {
	return percent * w.Height / 100
}

// State is whether the managed ranger pane is currently open.
type State int

const (
	StateClosed State = iota
	StateOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}
