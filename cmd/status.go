package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/timvw/ranger-drop/internal/session"
	"github.com/timvw/ranger-drop/internal/status"
)

var flagTheme string

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the drop-down state and effective configuration",
	Args:  cobra.NoArgs,
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
		ctx := cmd.Context()
		theme := status.ThemeByName(flagTheme)
		top, state, err := ctrl.State(ctx)
		if err != nil {
			fmt.Fprint(cmd.OutOrStdout(), status.Render(status.Report{
				Expected: ctrl.Expected(),
				Config:   *a.cfg,
				LogFile:  a.logFile,
				Err:      err.Error(),
			}, theme))
			return err
		}
		managed, _, err := a.store.Get(ctx, session.ManagedPane)
		if err != nil {
			return err
		}
		last, _, err := a.store.Get(ctx, session.LastPane)
		if err != nil {
			return err
		}

		fmt.Fprint(cmd.OutOrStdout(), status.Render(status.Report{
			State:       state,
			TopPane:     top,
			Expected:    ctrl.Expected(),
			ManagedPane: managed,
			LastPane:    last,
			Config:      *a.cfg,
			LogFile:     a.logFile,
		}, theme))
		return nil
	},
}

func init() {
	statusCmd.Flags().StringVar(&flagTheme, "theme", "dark", "Color theme: dark, light")
	rootCmd.AddCommand(statusCmd)
}
