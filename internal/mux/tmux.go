package mux

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

// Tmux implements Runner by executing the tmux binary.
type Tmux struct {
	// Binary is the tmux executable; "tmux" when empty.
	Binary string
	// Logger receives one debug record per command. Optional.
	Logger *slog.Logger
}

// NewTmux creates a runner for the given tmux binary.
func NewTmux(binary string) *Tmux {
	return &Tmux{Binary: binary}
}

// Run executes tmux with args and returns stdout with surrounding
// whitespace removed.
func (t *Tmux) Run(ctx context.Context, args ...string) (string, error) {
	bin := t.Binary
	if bin == "" {
		bin = "tmux"
	}

	start := time.Now()
	cmd := exec.CommandContext(ctx, bin, args...)
	out, err := cmd.Output()
	if t.Logger != nil {
		t.Logger.Debug("tmux",
			slog.String("cmd", Command(args)),
			slog.Duration("took", time.Since(start)),
			slog.Bool("ok", err == nil))
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", &ExternalCommandError{
				Args:     args,
				ExitCode: exitErr.ExitCode(),
				Stderr:   strings.TrimSpace(string(exitErr.Stderr)),
			}
		}
		return "", fmt.Errorf("%s: %w", Command(args), err)
	}
	return strings.TrimSpace(string(out)), nil
}
