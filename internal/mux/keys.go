package mux

import (
	"context"
	"fmt"
)

// SendKeys types each key into target, one send-keys call per key.
// Named keys (Enter, Escape, C-x, ...) are sent raw; anything else is sent
// with -l so text such as a directory name is never read as a key name.
// An empty target sends to the active pane.
func (c *Client) SendKeys(ctx context.Context, target string, keys ...string) error {
	for _, k := range keys {
		args := []string{"send-keys"}
		if target != "" {
			args = append(args, "-t", target)
		}
		if !isControlSequence(k) {
			args = append(args, "-l")
		}
		args = append(args, k)
		if _, err := c.r.Run(ctx, args...); err != nil {
			return fmt.Errorf("send keys %q: %w", k, err)
		}
	}
	return nil
}

// isControlSequence returns true if keys is a tmux key name rather than
// literal text to type.
func isControlSequence(keys string) bool {
	switch keys {
	case "Enter", "Escape", "Up", "Down", "Left", "Right",
		"Tab", "BTab", "Space", "BSpace", "DC":
		return true
	}
	// C-x patterns (Ctrl+key)
	if len(keys) == 3 && keys[0] == 'C' && keys[1] == '-' {
		return true
	}
	// M-x patterns (Meta/Alt+key)
	if len(keys) == 3 && keys[0] == 'M' && keys[1] == '-' {
		return true
	}
	return false
}
