package mux_test

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/timvw/ranger-drop/internal/mux"
	"github.com/timvw/ranger-drop/internal/mux/muxtest"
)

func TestClientPaneInfo(t *testing.T) {
	srv := muxtest.NewServer(40, "/home/u")
	srv.Panes[0].StartCommand = "/usr/bin/ranger -- ."
	srv.Panes[0].PID = 4242
	c := mux.NewClient(srv)

	p, err := c.PaneInfo(context.Background(), mux.TopPane)
	if err != nil {
		t.Fatalf("PaneInfo() error: %v", err)
	}
	if p.ID != "%0" || p.StartCommand != "/usr/bin/ranger -- ." || p.PID != 4242 {
		t.Errorf("PaneInfo() = %+v, want {%%0 /usr/bin/ranger -- . 4242}", p)
	}
}

func TestClientPaneInfo_StartCommand(t *testing.T) {
	tests := []struct {
		name  string
		start string
	}{
		{"separator inside command", "sh -c 'ls | less'"},
		{"shell pane", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := muxtest.NewServer(40, "/home/u")
			srv.Panes[0].StartCommand = tt.start
			p, err := mux.NewClient(srv).PaneInfo(context.Background(), mux.TopPane)
			if err != nil {
				t.Fatalf("PaneInfo() error: %v", err)
			}
			if p.StartCommand != tt.start {
				t.Errorf("StartCommand = %q, want %q", p.StartCommand, tt.start)
			}
			if p.PID != 1000 {
				t.Errorf("PID = %d, want 1000", p.PID)
			}
		})
	}
}

func TestClientPaneInfo_UnknownPane(t *testing.T) {
	c := mux.NewClient(muxtest.NewServer(40, "/home/u"))

	_, err := c.PaneInfo(context.Background(), "%99")
	var cmdErr *mux.ExternalCommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("expected *ExternalCommandError, got %T: %v", err, err)
	}
	if cmdErr.ExitCode != 1 {
		t.Errorf("ExitCode = %d, want 1", cmdErr.ExitCode)
	}
	if !strings.Contains(cmdErr.Stderr, "can't find pane") {
		t.Errorf("Stderr = %q, want it to mention the missing pane", cmdErr.Stderr)
	}
}

func TestClientHeights(t *testing.T) {
	srv := muxtest.NewServer(40, "/home/u")
	srv.Panes[0].Height = 17
	c := mux.NewClient(srv)
	ctx := context.Background()

	h, err := c.PaneHeight(ctx, "%0")
	if err != nil || h != 17 {
		t.Errorf("PaneHeight() = %d, %v; want 17", h, err)
	}
	w, err := c.WindowHeight(ctx, "%0")
	if err != nil || w.Height != 40 {
		t.Errorf("WindowHeight() = %d, %v; want 40", w.Height, err)
	}
}

func TestClientResize(t *testing.T) {
	srv := muxtest.NewServer(40, "/home/u")
	srv.Panes[0].Height = 10
	c := mux.NewClient(srv)
	ctx := context.Background()

	steps := []struct {
		name string
		run  func() error
		want int
	}{
		{"down 2", func() error { return c.ResizeRelative(ctx, "%0", mux.ResizeDown, 2) }, 12},
		{"up 1", func() error { return c.ResizeRelative(ctx, "%0", mux.ResizeUp, 1) }, 11},
		{"25 percent", func() error { return c.ResizeAbsolute(ctx, "%0", 25) }, 10},
	}
	for _, s := range steps {
		if err := s.run(); err != nil {
			t.Fatalf("%s: %v", s.name, err)
		}
		if got := srv.Pane("%0").Height; got != s.want {
			t.Errorf("%s: height = %d, want %d", s.name, got, s.want)
		}
	}

	calls := srv.CallsTo("resize-pane")
	want := [][]string{
		{"resize-pane", "-D", "-t", "%0", "2"},
		{"resize-pane", "-U", "-t", "%0", "1"},
		{"resize-pane", "-t", "%0", "-y", "25%"},
	}
	if !reflect.DeepEqual(calls, want) {
		t.Errorf("resize calls = %q, want %q", calls, want)
	}
}

func TestClientSplitWindow(t *testing.T) {
	srv := muxtest.NewServer(40, "/home/u")
	c := mux.NewClient(srv)

	id, err := c.SplitWindow(context.Background(), mux.SplitOptions{
		Target:  mux.TopPane,
		Dir:     "/srv/project",
		Size:    "60%",
		Command: []string{"/usr/bin/ranger", "--", "."},
	})
	if err != nil {
		t.Fatalf("SplitWindow() error: %v", err)
	}
	if id != "%1" {
		t.Errorf("SplitWindow() = %q, want %%1", id)
	}

	calls := srv.CallsTo("split-window")
	want := []string{
		"split-window", "-bfvP", "-F", "#{pane_id}", "-c", "/srv/project",
		"-t", "{top}", "-l", "60%", "/usr/bin/ranger", "--", ".",
	}
	if len(calls) != 1 || !reflect.DeepEqual(calls[0], want) {
		t.Errorf("split calls = %q, want [%q]", calls, want)
	}

	p := srv.Pane(id)
	if p == nil {
		t.Fatalf("pane %s not created", id)
	}
	if p.Height != 24 || p.Path != "/srv/project" || p.StartCommand != "/usr/bin/ranger -- ." {
		t.Errorf("new pane = %+v", *p)
	}
	if srv.Panes[0].ID != id {
		t.Errorf("top pane = %s, want the new pane %s", srv.Panes[0].ID, id)
	}
}

func TestServerSplitPrintsOnlyWithP(t *testing.T) {
	srv := muxtest.NewServer(40, "/home/u")
	out, err := srv.Run(context.Background(), "split-window", "-bfv", "-F", "#{pane_id}", "-t", "{top}", "-l", "1", "ranger")
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if out != "" {
		t.Errorf("split-window without -P printed %q, want nothing", out)
	}
}

// silentRunner succeeds without printing anything.
type silentRunner struct{}

func (silentRunner) Run(context.Context, ...string) (string, error) { return "", nil }

func TestClientSplitWindow_NoPaneIDIsAnError(t *testing.T) {
	_, err := mux.NewClient(silentRunner{}).SplitWindow(context.Background(), mux.SplitOptions{
		Target:  mux.TopPane,
		Size:    "1",
		Command: []string{"ranger"},
	})
	if err == nil {
		t.Fatal("expected error when split-window prints no pane id")
	}
}

func TestClientSendKeys(t *testing.T) {
	srv := muxtest.NewServer(40, "/home/u")
	c := mux.NewClient(srv)

	if err := c.SendKeys(context.Background(), "%0", ":", "cd /tmp/Enter", "Enter"); err != nil {
		t.Fatalf("SendKeys() error: %v", err)
	}
	want := []muxtest.SentKey{
		{Target: "%0", Literal: true, Key: ":"},
		{Target: "%0", Literal: true, Key: "cd /tmp/Enter"},
		{Target: "%0", Literal: false, Key: "Enter"},
	}
	if !reflect.DeepEqual(srv.Keys, want) {
		t.Errorf("keys = %+v, want %+v", srv.Keys, want)
	}
}

func TestClientSendKeys_StopsOnFirstFailure(t *testing.T) {
	srv := muxtest.NewServer(40, "/home/u")
	srv.FailOn = map[string]string{"send-keys": "no server running"}
	c := mux.NewClient(srv)

	err := c.SendKeys(context.Background(), "%0", ":", "Enter")
	if err == nil || !strings.Contains(err.Error(), "no server running") {
		t.Fatalf("SendKeys() error = %v, want the tmux failure", err)
	}
	if n := len(srv.CallsTo("send-keys")); n != 1 {
		t.Errorf("send-keys calls = %d, want 1", n)
	}
}

func TestClientOptions(t *testing.T) {
	srv := muxtest.NewServer(40, "/home/u")
	c := mux.NewClient(srv)
	ctx := context.Background()

	if err := c.SetOption(ctx, "@ranger_tmux_pane", "%3"); err != nil {
		t.Fatalf("SetOption() error: %v", err)
	}
	if v, err := c.ShowOption(ctx, "@ranger_tmux_pane"); err != nil || v != "%3" {
		t.Errorf("ShowOption() = %q, %v; want %%3", v, err)
	}
	if err := c.UnsetOption(ctx, "@ranger_tmux_pane"); err != nil {
		t.Fatalf("UnsetOption() error: %v", err)
	}
	if v, err := c.ShowOption(ctx, "@ranger_tmux_pane"); err != nil || v != "" {
		t.Errorf("ShowOption() after unset = %q, %v; want empty", v, err)
	}
}

func TestClientCurrentPathAndPane(t *testing.T) {
	srv := muxtest.NewServer(40, "/home/u/src")
	c := mux.NewClient(srv)
	ctx := context.Background()

	if dir, err := c.CurrentPath(ctx, ""); err != nil || dir != "/home/u/src" {
		t.Errorf("CurrentPath() = %q, %v; want /home/u/src", dir, err)
	}
	if id, err := c.CurrentPaneID(ctx); err != nil || id != "%0" {
		t.Errorf("CurrentPaneID() = %q, %v; want %%0", id, err)
	}
	if err := c.DisplayMessage(ctx, "hello"); err != nil {
		t.Fatalf("DisplayMessage() error: %v", err)
	}
	if !reflect.DeepEqual(srv.Messages, []string{"hello"}) {
		t.Errorf("messages = %q, want [hello]", srv.Messages)
	}
}
