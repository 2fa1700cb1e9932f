package task

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/tasklist/adapter/cli"
)

var daysCmd = &cobra.Command{
	Use:   "days",
	Short: "List the days that have tasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ListDaysHandler == nil {
			return cli.ErrNotInitialized
		}

		days, err := app.ListDaysHandler.Handle(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(days) == 0 {
			fmt.Fprintln(out, "No tasks found.")
			return nil
		}
		for _, d := range days {
			fmt.Fprintf(out, "%s  %d/%d done\n", d.Day, d.Completed, d.Total)
		}
		return nil
	},
}
