package mux

import (
	"log/slog"
	"os"
	"os/exec"
)

// Detect returns a Tmux runner for the server this process was started
// from. It fails with *EnvironmentError when $TMUX is unset or the tmux
// binary cannot be found; in both cases nothing has been touched yet.
func Detect(logger *slog.Logger) (*Tmux, error) {
	if os.Getenv("TMUX") == "" {
		return nil, &EnvironmentError{Reason: "$TMUX is not set"}
	}
	path, err := exec.LookPath("tmux")
	if err != nil || path == "" {
		return nil, &EnvironmentError{Reason: "tmux not found in PATH"}
	}
	t := NewTmux(path)
	t.Logger = logger
	return t, nil
}
