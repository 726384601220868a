package mux

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/timvw/ranger-drop/internal/model"
)

// TopPane is the tmux target for the topmost pane of the current window.
const TopPane = "{top}"

// ResizeDirection is the resize-pane flag for a relative resize.
type ResizeDirection string

const (
	// ResizeDown moves the bottom border down, growing a top pane.
	ResizeDown ResizeDirection = "-D"
	// ResizeUp moves the bottom border up, shrinking a top pane.
	ResizeUp ResizeDirection = "-U"
)

// Client issues typed tmux queries and actions through a Runner.
type Client struct {
	r Runner
}

// NewClient wraps r.
func NewClient(r Runner) *Client {
	return &Client{r: r}
}

// Run passes args straight to the underlying Runner.
func (c *Client) Run(ctx context.Context, args ...string) (string, error) {
	return c.r.Run(ctx, args...)
}

// PaneInfo reads the id, recorded start command and pid of target.
// The start command sits between the first and last separator so a '|'
// inside it does not break parsing.
func (c *Client) PaneInfo(ctx context.Context, target string) (model.Pane, error) {
	out, err := c.r.Run(ctx, "display", "-t", target, "-p", "#{pane_id}|#{pane_start_command}|#{pane_pid}")
	if err != nil {
		return model.Pane{}, fmt.Errorf("read pane %s: %w", target, err)
	}
	first := strings.Index(out, "|")
	last := strings.LastIndex(out, "|")
	if first < 0 || first == last {
		return model.Pane{}, fmt.Errorf("read pane %s: unexpected output %q", target, out)
	}
	pid, err := strconv.Atoi(strings.TrimSpace(out[last+1:]))
	if err != nil {
		return model.Pane{}, fmt.Errorf("read pane %s: invalid pid in %q: %w", target, out, err)
	}
	return model.Pane{
		ID:           out[:first],
		StartCommand: out[first+1 : last],
		PID:          pid,
	}, nil
}

// PaneHeight returns the height of target in rows.
func (c *Client) PaneHeight(ctx context.Context, target string) (int, error) {
	return c.displayInt(ctx, target, "#{pane_height}")
}

// WindowHeight returns the height of the window containing target.
func (c *Client) WindowHeight(ctx context.Context, target string) (model.Window, error) {
	h, err := c.displayInt(ctx, target, "#{window_height}")
	if err != nil {
		return model.Window{}, err
	}
	return model.Window{Height: h}, nil
}

func (c *Client) displayInt(ctx context.Context, target, format string) (int, error) {
	out, err := c.r.Run(ctx, "display", "-t", target, "-p", format)
	if err != nil {
		return 0, fmt.Errorf("read %s of %s: %w", format, target, err)
	}
	n, err := strconv.Atoi(out)
	if err != nil {
		return 0, fmt.Errorf("read %s of %s: not a number %q", format, target, out)
	}
	return n, nil
}

// CurrentPath returns the working directory of target, or of the active
// pane when target is empty.
func (c *Client) CurrentPath(ctx context.Context, target string) (string, error) {
	args := []string{"display-message", "-p"}
	if target != "" {
		args = append(args, "-t", target)
	}
	args = append(args, "#{pane_current_path}")
	out, err := c.r.Run(ctx, args...)
	if err != nil {
		return "", fmt.Errorf("read current path: %w", err)
	}
	return out, nil
}

// CurrentPaneID returns the id of the active pane.
func (c *Client) CurrentPaneID(ctx context.Context) (string, error) {
	out, err := c.r.Run(ctx, "display", "-p", "#{pane_id}")
	if err != nil {
		return "", fmt.Errorf("read current pane: %w", err)
	}
	return out, nil
}

// ResizeRelative moves the pane border by rows in dir.
func (c *Client) ResizeRelative(ctx context.Context, paneID string, dir ResizeDirection, rows int) error {
	if _, err := c.r.Run(ctx, "resize-pane", string(dir), "-t", paneID, strconv.Itoa(rows)); err != nil {
		return fmt.Errorf("resize pane %s: %w", paneID, err)
	}
	return nil
}

// ResizeAbsolute sets the pane height to percent of the window height.
func (c *Client) ResizeAbsolute(ctx context.Context, paneID string, percent int) error {
	if _, err := c.r.Run(ctx, "resize-pane", "-t", paneID, "-y", fmt.Sprintf("%d%%", percent)); err != nil {
		return fmt.Errorf("resize pane %s: %w", paneID, err)
	}
	return nil
}

// SplitOptions describes a full-width split placed above Target.
type SplitOptions struct {
	Target string
	Dir    string
	// Size is passed to -l verbatim: rows ("1") or a percentage ("60%").
	Size    string
	Command []string
}

// SplitWindow creates a full-width pane above the target, running
// Command, and returns the new pane id. tmux prints the -F format only
// with -P.
func (c *Client) SplitWindow(ctx context.Context, opts SplitOptions) (string, error) {
	args := []string{"split-window", "-bfvP", "-F", "#{pane_id}"}
	if opts.Dir != "" {
		args = append(args, "-c", opts.Dir)
	}
	args = append(args, "-t", opts.Target, "-l", opts.Size)
	args = append(args, opts.Command...)
	out, err := c.r.Run(ctx, args...)
	if err != nil {
		return "", fmt.Errorf("split window: %w", err)
	}
	if out == "" {
		return "", fmt.Errorf("split window: no pane id printed")
	}
	return out, nil
}

// SelectWindow makes the window containing target current.
func (c *Client) SelectWindow(ctx context.Context, target string) error {
	if _, err := c.r.Run(ctx, "select-window", "-t", target); err != nil {
		return fmt.Errorf("select window %s: %w", target, err)
	}
	return nil
}

// SelectPane makes target the active pane.
func (c *Client) SelectPane(ctx context.Context, target string) error {
	if _, err := c.r.Run(ctx, "select-pane", "-t", target); err != nil {
		return fmt.Errorf("select pane %s: %w", target, err)
	}
	return nil
}

// DisplayMessage shows msg in the tmux status line.
func (c *Client) DisplayMessage(ctx context.Context, msg string) error {
	if _, err := c.r.Run(ctx, "display-message", msg); err != nil {
		return fmt.Errorf("display message: %w", err)
	}
	return nil
}

// ShowOption returns the value of a session option.
func (c *Client) ShowOption(ctx context.Context, name string) (string, error) {
	return c.r.Run(ctx, "show", "-v", name)
}

// SetOption sets a session option.
func (c *Client) SetOption(ctx context.Context, name, value string) error {
	if _, err := c.r.Run(ctx, "set", name, value); err != nil {
		return fmt.Errorf("set %s: %w", name, err)
	}
	return nil
}

// UnsetOption removes a session option.
func (c *Client) UnsetOption(ctx context.Context, name string) error {
	if _, err := c.r.Run(ctx, "set", "-u", name); err != nil {
		return fmt.Errorf("unset %s: %w", name, err)
	}
	return nil
}
