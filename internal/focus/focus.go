// Package focus moves the cursor between the ranger pane and the pane the
// user came from, carrying the working directory along.
package focus

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/timvw/ranger-drop/internal/mux"
	telem "github.com/timvw/ranger-drop/internal/otel"
	"github.com/timvw/ranger-drop/internal/session"
)

// JumpCommand is the ranger command that sends ranger's directory back to
// the last pane.
const JumpCommand = "tmux_cwd_jump"

// NoPaneMessage is shown in the status line when no ranger pane is registered.
const NoPaneMessage = "ranger-drop: no ranger pane registered"

// Toggler switches focus into and out of the ranger pane.
type Toggler struct {
	mux   *mux.Client
	store session.Store

	Logger  *slog.Logger
	Tracer  trace.Tracer
	Metrics *telem.Metrics
}

// New returns a Toggler.
func New(m *mux.Client, store session.Store) *Toggler {
	return &Toggler{mux: m, store: store}
}

// Toggle jumps out of the ranger pane when it has focus and into it
// otherwise.
func (t *Toggler) Toggle(ctx context.Context) error {
	ctx, span := t.tracer().Start(ctx, "focus.toggle")
	defer span.End()

	action, err := t.toggle(ctx, span)
	t.Metrics.RecordToggle(ctx, action, err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	span.SetAttributes(attribute.String("action", action))
	return nil
}

func (t *Toggler) toggle(ctx context.Context, span trace.Span) (string, error) {
	current, err := t.mux.CurrentPaneID(ctx)
	if err != nil {
		return telem.ActionFocusNone, err
	}
	managed, ok, err := t.store.Get(ctx, session.ManagedPane)
	if err != nil {
		return telem.ActionFocusNone, err
	}
	span.SetAttributes(
		attribute.String("pane.current", current),
		attribute.String("pane.managed", managed),
	)
	if !ok {
		t.logger().Info("no ranger pane registered", slog.String("pane", current))
		return telem.ActionFocusNone, t.mux.DisplayMessage(ctx, NoPaneMessage)
	}

	if current == managed {
		return t.out(ctx, managed)
	}
	return telem.ActionFocusIn, t.in(ctx, current, managed)
}

// out hands ranger's directory to the last pane and focuses it.
func (t *Toggler) out(ctx context.Context, managed string) (string, error) {
	last, ok, err := t.store.Get(ctx, session.LastPane)
	if err != nil {
		return telem.ActionFocusNone, err
	}
	if !ok {
		t.logger().Info("no previous pane to return to", slog.String("pane", managed))
		return telem.ActionFocusNone, nil
	}

	if err := t.mux.SendKeys(ctx, managed, ":", JumpCommand, "Enter"); err != nil {
		return telem.ActionFocusOut, err
	}
	if err := t.mux.SelectWindow(ctx, last); err != nil {
		return telem.ActionFocusOut, err
	}
	if err := t.mux.SelectPane(ctx, last); err != nil {
		return telem.ActionFocusOut, err
	}
	t.logger().Debug("focused last pane", slog.String("pane", last))
	return telem.ActionFocusOut, nil
}

// in remembers current, focuses ranger and points it at current's directory.
func (t *Toggler) in(ctx context.Context, current, managed string) error {
	dir, err := t.mux.CurrentPath(ctx, "")
	if err != nil {
		return err
	}
	if err := t.store.Set(ctx, session.LastPane, current); err != nil {
		return err
	}
	if err := t.mux.SelectWindow(ctx, managed); err != nil {
		return err
	}
	if err := t.mux.SelectPane(ctx, managed); err != nil {
		return err
	}
	if err := t.mux.SendKeys(ctx, managed, ":", "cd "+dir, "Enter"); err != nil {
		return err
	}
	t.logger().Debug("focused ranger", slog.String("pane", managed), slog.String("dir", dir))
	return nil
}

func (t *Toggler) logger() *slog.Logger {
	if t.Logger != nil {
		return t.Logger
	}
	return slog.Default()
}

func (t *Toggler) tracer() trace.Tracer {
	if t.Tracer != nil {
		return t.Tracer
	}
	return otel.Tracer("ranger-drop")
}
