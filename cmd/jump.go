package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/timvw/ranger-drop/internal/focus"
)

var jumpCmd = &cobra.Command{
	Use:   "jump",
	Short: "Move focus between ranger and the previous pane",
	Long: `From any pane, focus the ranger pane and cd it to that pane's directory.
From the ranger pane, run ranger's tmux_cwd_jump command and return to the
pane focused before.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		t := focus.New(a.client, a.store)
		t.Logger = a.logger
		t.Metrics = a.metrics()
		if a.tel != nil {
			t.Tracer = a.tel.Tracer
		}
		if err := t.Toggle(cmd.Context()); err != nil {
			a.logger.Error("jump failed", slog.Any("err", err))
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(jumpCmd)
}
