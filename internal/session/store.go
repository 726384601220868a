// Package session stores ranger-drop's cross-invocation state in tmux
// session user options.
//
// An option that is unset and an option set to the empty string are the
// same thing here: Get reports ok=false for both. tmux itself cannot tell
// them apart through "show -v", and no caller has a use for an empty id.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/timvw/ranger-drop/internal/mux"
)

const (
	// ManagedPane holds the id of the ranger pane.
	ManagedPane = "@ranger_tmux_pane"
	// LastPane holds the id of the pane focused before jumping into ranger.
	LastPane = "@ranger_tmux_last_pane"
)

// Store is a key/value store scoped to the tmux session.
type Store interface {
	Get(ctx context.Context, name string) (value string, ok bool, err error)
	Set(ctx context.Context, name, value string) error
	Unset(ctx context.Context, name string) error
}

// TmuxStore keeps values in tmux user options.
type TmuxStore struct {
	c *mux.Client
}

// NewTmuxStore returns a store backed by c.
func NewTmuxStore(c *mux.Client) *TmuxStore {
	return &TmuxStore{c: c}
}

// Get returns the value of name. Depending on the tmux version an unknown
// user option either prints nothing or fails with "invalid option"; both
// are reported as ok=false.
func (s *TmuxStore) Get(ctx context.Context, name string) (string, bool, error) {
	v, err := s.c.ShowOption(ctx, name)
	if err != nil {
		var cmdErr *mux.ExternalCommandError
		if errors.As(err, &cmdErr) && isUnknownOption(cmdErr.Stderr) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read %s: %w", name, err)
	}
	if v == "" {
		return "", false, nil
	}
	return v, true, nil
}

// Set stores value under name.
func (s *TmuxStore) Set(ctx context.Context, name, value string) error {
	return s.c.SetOption(ctx, name, value)
}

// Unset removes name.
func (s *TmuxStore) Unset(ctx context.Context, name string) error {
	return s.c.UnsetOption(ctx, name)
}

func isUnknownOption(stderr string) bool {
	return strings.Contains(stderr, "invalid option") || strings.Contains(stderr, "unknown option")
}
