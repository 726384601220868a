package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var dropCmd = &cobra.Command{
	Use:   "drop",
	Short: "Open or close the ranger pane",
	Long: `Toggle the ranger drop-down in the current window.

If the topmost pane is the ranger pane opened by ranger-drop it is shrunk
away, ranger is asked to quit and is killed if it does not exit within
half a second. Otherwise a full-width pane running ranger is split off the
top of the window in the current pane's directory.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		ctrl, err := a.controller()
		if err != nil {
			return err
		}
		state, err := ctrl.Toggle(cmd.Context())
		if err != nil {
			a.logger.Error("drop failed", slog.Any("err", err))
			return err
		}
		a.logger.Debug("drop done", slog.String("state", state.String()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dropCmd)
}
