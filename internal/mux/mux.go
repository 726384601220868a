// Package mux is the gateway between ranger-drop and tmux.
//
// Every interaction with the multiplexer goes through Runner.Run: one
// blocking tmux process per call, stdout returned trimmed, a non-zero exit
// surfaced as *ExternalCommandError. Nothing is retried. Client layers the
// handful of typed queries and actions the controllers need on top of a
// Runner, so tests can swap the tmux binary for a fake.
package mux

import (
	"context"
	"fmt"
	"strings"
)

// Runner executes a single tmux command and returns its trimmed stdout.
type Runner interface {
	Run(ctx context.Context, args ...string) (string, error)
}

// ExternalCommandError reports a tmux command that exited non-zero.
type ExternalCommandError struct {
	Args     []string
	ExitCode int
	Stderr   string
}

func (e *ExternalCommandError) Error() string {
	sub := ""
	if len(e.Args) > 0 {
		sub = e.Args[0]
	}
	if e.Stderr == "" {
		return fmt.Sprintf("tmux %s: exit status %d", sub, e.ExitCode)
	}
	return fmt.Sprintf("tmux %s: exit status %d: %s", sub, e.ExitCode, e.Stderr)
}

// EnvironmentError means ranger-drop is not running inside tmux.
// Callers exit silently on it.
type EnvironmentError struct {
	Reason string
}

func (e *EnvironmentError) Error() string {
	return "not running inside tmux: " + e.Reason
}

// Command renders args as a single line for logs and messages.
func Command(args []string) string {
	return "tmux " + strings.Join(args, " ")
}
