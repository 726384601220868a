// Package proc observes the operating-system process behind a pane:
// find it by pid, signal it, wait a bounded time for it to exit, and
// force-kill it. The process is not ours; tmux is its parent and reaps it.
package proc

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sys/unix"
)

// ErrNotFound reports a pid that no longer names a live process.
var ErrNotFound = errors.New("process not found")

// DefaultPollInterval is how often Wait checks whether the process is gone.
const DefaultPollInterval = 50 * time.Millisecond

// Process is a handle to a running process.
type Process interface {
	Pid() int
	// Signal delivers sig. It returns an error wrapping ErrNotFound when the
	// process has already exited.
	Signal(sig unix.Signal) error
	// Wait blocks until the process exits, timeout elapses or ctx is done,
	// and reports whether the process is gone.
	Wait(ctx context.Context, timeout time.Duration) bool
	// Kill sends SIGKILL. Killing a process that already exited is not an
	// error.
	Kill() error
}

// Finder looks processes up by pid.
type Finder interface {
	Find(pid int) (Process, error)
}
