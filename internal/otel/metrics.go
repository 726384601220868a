package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "ranger-drop"

// Actions recorded on the toggles counter.
const (
	ActionOpen      = "open"
	ActionClose     = "close"
	ActionFocusIn   = "focus_in"
	ActionFocusOut  = "focus_out"
	ActionFocusNone = "focus_none"
)

// Metrics holds the OTEL metric instruments for ranger-drop.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	// Toggles counts completed and failed toggles, partitioned by action.
	Toggles metric.Int64Counter
	// ForcedKills counts ranger processes that ignored the quit request.
	ForcedKills metric.Int64Counter
	// AnimationFrames counts relative resize steps issued.
	AnimationFrames metric.Int64Counter
}

// NewMetrics creates all metric instruments. Returns no-op instruments
// when no MeterProvider is registered (safe to call unconditionally).
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)
	m := &Metrics{}
	var err error

	m.Toggles, err = meter.Int64Counter("toggles.total",
		metric.WithDescription("Toggles partitioned by action (open, close, focus_in, focus_out) and outcome"))
	if err != nil {
		return nil, err
	}

	m.ForcedKills, err = meter.Int64Counter("process.forced_kills",
		metric.WithDescription("Managed processes still alive after the grace period and killed"))
	if err != nil {
		return nil, err
	}

	m.AnimationFrames, err = meter.Int64Counter("animation.frames",
		metric.WithDescription("Relative resize steps issued by the pane animator"),
		metric.WithUnit("{frame}"))
	if err != nil {
		return nil, err
	}

	return m, nil
}

// RecordToggle records one toggle. err is the outcome of the action.
func (m *Metrics) RecordToggle(ctx context.Context, action string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.Toggles.Add(ctx, 1, metric.WithAttributes(
		attribute.String("action", action),
		attribute.String("outcome", outcome),
	))
}

// RecordForcedKill records a process killed after the grace period.
func (m *Metrics) RecordForcedKill(ctx context.Context) {
	if m == nil {
		return
	}
	m.ForcedKills.Add(ctx, 1)
}

// RecordFrames records animation steps.
func (m *Metrics) RecordFrames(ctx context.Context, frames int) {
	if m == nil || frames <= 0 {
		return
	}
	m.AnimationFrames.Add(ctx, int64(frames))
}
