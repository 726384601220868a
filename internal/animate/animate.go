// Package animate slides a pane to a target height.
//
// The schedule is a pure function of the start height, the target height
// and the duration (NewPlan). Animator replays it as relative resizes with
// a sleep between frames, then issues one absolute resize so the pane
// always ends at exactly the requested percentage.
package animate

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/timvw/ranger-drop/internal/mux"
)

// fineThreshold is the duration from which frames move one row instead of two.
const fineThreshold = 500 * time.Millisecond

// Direction is whether the pane grows or shrinks.
type Direction int

const (
	Grow Direction = iota
	Shrink
)

func (d Direction) String() string {
	if d == Grow {
		return "grow"
	}
	return "shrink"
}

// resizeFlag maps a direction onto resize-pane for a pane anchored at the
// top of the window: growing moves its bottom border down.
func (d Direction) resizeFlag() mux.ResizeDirection {
	if d == Grow {
		return mux.ResizeDown
	}
	return mux.ResizeUp
}

// Frame is one step of an animation.
type Frame struct {
	Direction Direction
	Rows      int
	Delay     time.Duration
}

// Plan is the frame schedule for one animation.
type Plan struct {
	Start     int
	Target    int
	Direction Direction
	Step      int
	Frames    int
	Delay     time.Duration
}

// NewPlan computes the schedule for moving a pane from current to target
// rows over duration. Frames is never below one, so Delay is always defined.
func NewPlan(current, target int, duration time.Duration) Plan {
	if duration < 0 {
		duration = 0
	}
	dir := Shrink
	if current < target {
		dir = Grow
	}
	step := 1
	if duration < fineThreshold {
		step = 2
	}
	frames := abs(current-target)/step - 1
	if frames < 1 {
		frames = 1
	}
	return Plan{
		Start:     current,
		Target:    target,
		Direction: dir,
		Step:      step,
		Frames:    frames,
		Delay:     duration / time.Duration(frames),
	}
}

// Steps expands the plan into its ordered frames.
func (p Plan) Steps() []Frame {
	out := make([]Frame, p.Frames)
	for i := range out {
		out[i] = Frame{Direction: p.Direction, Rows: p.Step, Delay: p.Delay}
	}
	return out
}

// Animator drives a Plan against tmux.
type Animator struct {
	Mux *mux.Client
	// Sleep waits between frames. When nil the wait is a timer that ends
	// early if ctx is cancelled.
	Sleep  func(time.Duration)
	Logger *slog.Logger
}

// Animate resizes paneID to percent of its window height over duration.
// It blocks for roughly duration and returns the plan together with the
// number of relative resizes it issued, which is below plan.Frames when
// it stopped early.
func (a *Animator) Animate(ctx context.Context, paneID string, percent int, duration time.Duration) (Plan, int, error) {
	current, err := a.Mux.PaneHeight(ctx, paneID)
	if err != nil {
		return Plan{}, 0, fmt.Errorf("animate: %w", err)
	}
	win, err := a.Mux.WindowHeight(ctx, paneID)
	if err != nil {
		return Plan{}, 0, fmt.Errorf("animate: %w", err)
	}

	plan := NewPlan(current, win.RowsForPercent(percent), duration)
	if a.Logger != nil {
		a.Logger.Debug("animate",
			slog.String("pane", paneID),
			slog.Int("from", plan.Start),
			slog.Int("to", plan.Target),
			slog.String("direction", plan.Direction.String()),
			slog.Int("frames", plan.Frames),
			slog.Duration("delay", plan.Delay))
	}

	issued := 0
	for _, f := range plan.Steps() {
		if err := ctx.Err(); err != nil {
			return plan, issued, err
		}
		if err := a.Mux.ResizeRelative(ctx, paneID, f.Direction.resizeFlag(), f.Rows); err != nil {
			return plan, issued, fmt.Errorf("animate: %w", err)
		}
		issued++
		if err := a.wait(ctx, f.Delay); err != nil {
			return plan, issued, err
		}
	}

	if err := a.Mux.ResizeAbsolute(ctx, paneID, percent); err != nil {
		return plan, issued, fmt.Errorf("animate: %w", err)
	}
	return plan, issued, nil
}

func (a *Animator) wait(ctx context.Context, d time.Duration) error {
	if a.Sleep != nil {
		a.Sleep(d)
		return nil
	}
	return sleepContext(ctx, d)
}

// sleepContext waits for d or until ctx is done, whichever comes first.
func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
