//go:build unix

package proc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sys/unix"
)

// System finds processes on the local machine.
type System struct {
	// PollInterval overrides DefaultPollInterval for Wait.
	PollInterval time.Duration
}

// Find returns a handle to pid, or an error wrapping ErrNotFound.
func (s System) Find(pid int) (Process, error) {
	if pid <= 0 || !isAlive(pid) {
		return nil, fmt.Errorf("pid %d: %w", pid, ErrNotFound)
	}
	poll := s.PollInterval
	if poll <= 0 {
		poll = DefaultPollInterval
	}
	return &process{pid: pid, poll: poll}, nil
}

type process struct {
	pid  int
	poll time.Duration
}

func (p *process) Pid() int { return p.pid }

func (p *process) Signal(sig unix.Signal) error {
	if err := unix.Kill(p.pid, sig); err != nil {
		if errors.Is(err, unix.ESRCH) {
			return fmt.Errorf("signal %s to pid %d: %w", unix.SignalName(sig), p.pid, ErrNotFound)
		}
		return fmt.Errorf("signal %s to pid %d: %w", unix.SignalName(sig), p.pid, err)
	}
	return nil
}

func (p *process) Wait(ctx context.Context, timeout time.Duration) bool {
	if !isAlive(p.pid) {
		return true
	}

	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	ticker := time.NewTicker(p.poll)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return !isAlive(p.pid)
		case <-deadline.C:
			return !isAlive(p.pid)
		case <-ticker.C:
			if !isAlive(p.pid) {
				return true
			}
		}
	}
}

func (p *process) Kill() error {
	if err := unix.Kill(p.pid, unix.SIGKILL); err != nil && !errors.Is(err, unix.ESRCH) {
		return fmt.Errorf("kill pid %d: %w", p.pid, err)
	}
	return nil
}

// isAlive probes pid with signal 0. EPERM means the process exists but
// belongs to someone else.
func isAlive(pid int) bool {
	err := unix.Kill(pid, 0)
	return err == nil || errors.Is(err, unix.EPERM)
}
