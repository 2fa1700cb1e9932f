package task

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/tasklist/adapter/cli"
	"github.com/felixgeelhaar/tasklist/internal/tasks/application/queries"
)

var dayHideDone bool

var dayCmd = &cobra.Command{
	Use:   "day [YYYY-MM-DD|today|tomorrow|yesterday]",
	Short: "Show the tasks of one day",
	Long: `Show the tasks due on one day, ordered by due time. Defaults to today.

Examples:
  tasklist task day
  tasklist task day tomorrow
  tasklist task day 2024-11-20`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ListTasksHandler == nil {
			return cli.ErrNotInitialized
		}

		arg := ""
		if len(args) == 1 {
			arg = args[0]
		}
		day, err := app.ParseDay(arg)
		if err != nil {
			return err
		}

		days, err := app.ListTasksHandler.Handle(cmd.Context(), queries.ListTasksQuery{
			Day:      day.String(),
			HideDone: dayHideDone,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(days) == 0 {
			fmt.Fprintf(out, "No tasks for %s.\n", day)
			return nil
		}

		fmt.Fprintf(out, "%s (%d)\n", day, len(days[0].Tasks))
		for _, t := range days[0].Tasks {
			printTaskLine(out, t, app.Location)
		}
		return nil
	},
}

func init() {
	dayCmd.Flags().BoolVar(&dayHideDone, "hide-done", false, "leave out completed tasks")
}
