// Package drop opens and closes the ranger drop-down pane.
//
// The pane is OPEN when the top pane of the window was started with
// exactly the command ranger-drop launches ranger with; anything else is
// CLOSED. Nothing else is remembered between invocations. Closing animates
// the pane away first, then interrupts ranger, asks it to quit and kills it
// if it is still alive after the grace period. Opening splits a full-width
// pane off the top of the window in the directory of the pane the user is
// in and optionally grows it to the configured height.
package drop

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sys/unix"

	"github.com/timvw/ranger-drop/internal/animate"
	"github.com/timvw/ranger-drop/internal/config"
	"github.com/timvw/ranger-drop/internal/model"
	"github.com/timvw/ranger-drop/internal/mux"
	telem "github.com/timvw/ranger-drop/internal/otel"
	"github.com/timvw/ranger-drop/internal/proc"
	"github.com/timvw/ranger-drop/internal/session"
)

const (
	// QuitKey is ranger's "quit all tabs" binding.
	QuitKey = "Q"
	// DefaultGracePeriod is how long ranger gets to exit after QuitKey.
	DefaultGracePeriod = 500 * time.Millisecond
)

// LaunchCommand is the argv ranger is started with: browse the pane's
// working directory.
func LaunchCommand(ranger string) []string {
	return []string{ranger, "--", "."}
}

// StartCommand renders argv the way tmux records it in #{pane_start_command}.
func StartCommand(argv []string) string {
	return mux.StartCommand(argv)
}

// DetectState decides whether startCommand belongs to a ranger pane opened
// by us. It is the only place that knows how a managed pane is recognised.
func DetectState(startCommand, expected string) model.State {
	if expected != "" && startCommand == expected {
		return model.StateOpen
	}
	return model.StateClosed
}

// Controller toggles the ranger pane.
type Controller struct {
	cfg    config.Config
	launch []string

	mux      *mux.Client
	store    session.Store
	procs    proc.Finder
	animator *animate.Animator

	// Grace is how long ranger gets to quit; DefaultGracePeriod when zero.
	Grace   time.Duration
	Logger  *slog.Logger
	Tracer  trace.Tracer
	Metrics *telem.Metrics
}

// New returns a controller that launches ranger with launch (see
// LaunchCommand) and sizes the pane according to cfg.
func New(cfg config.Config, launch []string, m *mux.Client, store session.Store, procs proc.Finder) *Controller {
	return &Controller{
		cfg:      cfg,
		launch:   launch,
		mux:      m,
		store:    store,
		procs:    procs,
		animator: &animate.Animator{Mux: m},
	}
}

// SetSleep replaces the animator's frame delay, for tests.
func (c *Controller) SetSleep(sleep func(time.Duration)) {
	c.animator.Sleep = sleep
}

// Expected returns the start command of a pane opened by this controller.
func (c *Controller) Expected() string {
	return StartCommand(c.launch)
}

// State inspects the top pane without changing anything.
func (c *Controller) State(ctx context.Context) (model.Pane, model.State, error) {
	top, err := c.mux.PaneInfo(ctx, mux.TopPane)
	if err != nil {
		return model.Pane{}, model.StateClosed, err
	}
	return top, DetectState(top.StartCommand, c.Expected()), nil
}

// Toggle closes the ranger pane if it is open and opens it otherwise.
// It returns the state the pane was left in.
func (c *Controller) Toggle(ctx context.Context) (model.State, error) {
	ctx, span := c.tracer().Start(ctx, "drop.toggle")
	defer span.End()

	top, state, err := c.State(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return model.StateClosed, err
	}
	span.SetAttributes(
		attribute.String("pane.id", top.ID),
		attribute.String("state.before", state.String()),
	)

	action, next := telem.ActionOpen, model.StateOpen
	if state == model.StateOpen {
		action, next = telem.ActionClose, model.StateClosed
		err = c.close(ctx, top)
	} else {
		err = c.open(ctx, top)
	}
	c.Metrics.RecordToggle(ctx, action, err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return state, err
	}
	c.logger().Info("toggled", slog.String("action", action), slog.String("pane", top.ID))
	return next, nil
}

func (c *Controller) close(ctx context.Context, top model.Pane) error {
	log := c.logger().With(slog.String("pane", top.ID), slog.Int("pid", top.PID))

	// Shrink while ranger is still drawing so the close is visible.
	if c.cfg.Animate {
		if err := c.animate(ctx, top.ID, 0); err != nil {
			return err
		}
	}

	p, err := c.procs.Find(top.PID)
	switch {
	case errors.Is(err, proc.ErrNotFound):
		log.Info("ranger already exited")
		p = nil
	case err != nil:
		return fmt.Errorf("find ranger process: %w", err)
	}

	// SIGINT cancels a half-typed ranger command without quitting.
	if p != nil {
		if err := p.Signal(unix.SIGINT); err != nil {
			if !errors.Is(err, proc.ErrNotFound) {
				return err
			}
			log.Info("ranger exited before interrupt")
			p = nil
		}
	}

	if err := c.mux.SendKeys(ctx, top.ID, QuitKey); err != nil {
		// The pane goes away with ranger; the wait below settles it either way.
		log.Warn("quit key not delivered", slog.Any("err", err))
	}

	if p != nil && !p.Wait(ctx, c.grace()) {
		log.Warn("ranger did not quit in time, killing", slog.Duration("grace", c.grace()))
		c.Metrics.RecordForcedKill(ctx)
		if err := p.Kill(); err != nil {
			return err
		}
	}

	c.forget(ctx, top.ID)
	return nil
}

// forget clears the managed pane registration if it names paneID.
func (c *Controller) forget(ctx context.Context, paneID string) {
	v, ok, err := c.store.Get(ctx, session.ManagedPane)
	if err == nil && ok && v == paneID {
		err = c.store.Unset(ctx, session.ManagedPane)
	}
	if err != nil {
		c.logger().Warn("could not clear managed pane", slog.String("pane", paneID), slog.Any("err", err))
	}
}

func (c *Controller) open(ctx context.Context, top model.Pane) error {
	// Start from one row when animating so the pane visibly grows.
	size := fmt.Sprintf("%d%%", c.cfg.Percent)
	if c.cfg.Animate {
		size = "1"
	}

	dir, err := c.mux.CurrentPath(ctx, top.ID)
	if err != nil {
		return err
	}

	id, err := c.mux.SplitWindow(ctx, mux.SplitOptions{
		Target:  mux.TopPane,
		Dir:     dir,
		Size:    size,
		Command: c.launch,
	})
	if err != nil {
		return err
	}
	c.logger().Debug("opened ranger pane", slog.String("pane", id), slog.String("dir", dir))

	if err := c.store.Set(ctx, session.ManagedPane, id); err != nil {
		return err
	}

	if c.cfg.Animate {
		return c.animate(ctx, id, c.cfg.Percent)
	}
	return nil
}

func (c *Controller) animate(ctx context.Context, paneID string, percent int) error {
	c.animator.Logger = c.logger()
	_, issued, err := c.animator.Animate(ctx, paneID, percent, c.cfg.Duration)
	c.Metrics.RecordFrames(ctx, issued)
	return err
}

func (c *Controller) grace() time.Duration {
	if c.Grace > 0 {
		return c.Grace
	}
	return DefaultGracePeriod
}

func (c *Controller) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

func (c *Controller) tracer() trace.Tracer {
	if c.Tracer != nil {
		return c.Tracer
	}
	return otel.Tracer("ranger-drop")
}
