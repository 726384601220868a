package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/timvw/ranger-drop/internal/mux"
)

// Global flags.
var flagConfig string

var rootCmd = &cobra.Command{
	Use:   "ranger-drop",
	Short: "Toggle a ranger file manager drop-down pane in tmux",
	Long: `ranger-drop opens ranger in a full-width pane at the top of the current
tmux window, and closes it again on the next invocation.

Bind it in tmux.conf:

  bind-key C-e run-shell -b 'ranger-drop drop'
  bind-key C-f run-shell -b 'ranger-drop jump'

Settings are read from ranger's rc.conf (set tmux_dropdown_percent 60),
an optional YAML file and RANGER_DROP_* environment variables.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	os.Exit(exitCode(err, os.Stderr))
}

// exitCode maps a command error to the process exit status. Running
// outside tmux is not an error: key bindings may fire from anywhere.
func exitCode(err error, stderr io.Writer) int {
	if err == nil {
		return 0
	}
	var envErr *mux.EnvironmentError
	if errors.As(err, &envErr) {
		return 0
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return 1
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", envOrDefault("RANGER_DROP_CONFIG", ""), "config file (default: .ranger-drop.yaml or ~/.config/ranger-drop/config.yaml)")
}

func envOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
