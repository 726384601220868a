package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/timvw/ranger-drop/internal/mux"
	"github.com/timvw/ranger-drop/internal/session"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Record the current pane as the ranger pane",
	Long: `Store $TMUX_PANE in the @ranger_tmux_pane session option.

Call it from ranger's startup hook when ranger was started by hand, so that
"ranger-drop jump" finds it.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pane := os.Getenv("TMUX_PANE")
		if pane == "" {
			return &mux.EnvironmentError{Reason: "$TMUX_PANE is not set"}
		}

		a, err := setup(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.store.Set(cmd.Context(), session.ManagedPane, pane); err != nil {
			return err
		}
		a.logger.Info("registered ranger pane", slog.String("pane", pane))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(registerCmd)
}
