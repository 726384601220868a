// Package status renders what ranger-drop sees in the current window.
package status

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/timvw/ranger-drop/internal/config"
	"github.com/timvw/ranger-drop/internal/model"
)

// Report is a snapshot of the drop-down state and the configuration
// that produced it.
type Report struct {
	State    model.State
	TopPane  model.Pane
	Expected string

	// Session variables; empty means unset.
	ManagedPane string
	LastPane    string

	Config  config.Config
	LogFile string

	// Err is set when the panes could not be read.
	Err string
}

// Render formats r as aligned label/value rows.
func Render(r Report, theme Theme) string {
	s := newStyles(theme)
	var b strings.Builder

	b.WriteString(s.title.Render("ranger-drop"))
	b.WriteString(" ")
	switch {
	case r.Err != "":
		b.WriteString(s.err.Render("error"))
	case r.State == model.StateOpen:
		b.WriteString(s.open.Render(r.State.String()))
	default:
		b.WriteString(s.closed.Render(r.State.String()))
	}
	b.WriteString("\n")
	if r.Err != "" {
		b.WriteString("  " + s.err.Render(r.Err) + "\n")
	}

	section := func(name string, rows [][2]string) {
		b.WriteString(s.header.Render("── " + name))
		b.WriteString("\n")
		width := 0
		for _, row := range rows {
			width = max(width, lipgloss.Width(row[0]))
		}
		for _, row := range rows {
			label := s.label.Render(fmt.Sprintf("  %-*s", width, row[0]))
			val := s.value.Render(row[1])
			if row[1] == "" {
				val = s.unset.Render("(unset)")
			}
			b.WriteString(label + "  " + val + "\n")
		}
	}

	section("panes", [][2]string{
		{"top", r.TopPane.ID},
		{"top command", r.TopPane.StartCommand},
		{"expected", r.Expected},
		{"ranger pane", r.ManagedPane},
		{"last pane", r.LastPane},
	})

	cfg := r.Config
	section("config", [][2]string{
		{"animate", fmt.Sprintf("%t", cfg.Animate)},
		{"duration", (time.Duration(cfg.DurationMS) * time.Millisecond).String()},
		{"percent", fmt.Sprintf("%d%%", cfg.Percent)},
		{"ranger", cfg.RangerCommand},
		{"log", logTarget(cfg.LogSink, r.LogFile)},
		{"otel", cfg.OTELEndpoint},
		{"sources", strings.Join(cfg.Sources, ", ")},
	})
	return b.String()
}

func logTarget(sink, file string) string {
	if sink == "file" {
		return file
	}
	return sink
}
