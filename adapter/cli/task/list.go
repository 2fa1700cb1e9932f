package task

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/tasklist/adapter/cli"
	"github.com/felixgeelhaar/tasklist/internal/tasks/application/queries"
)

var (
	listDay       string
	listStatus    string
	listPriority  string
	listHideDone  bool
	listCompleted bool
	listJSON      bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks grouped by day",
	Long: `List tasks grouped by the day they are due, earliest day first.

Filter Options:
  --day         Only this day (YYYY-MM-DD, today, tomorrow, yesterday)
  --status      Filter by status (todo, in_progress, completed)
  --priority    Filter by priority (high, medium, low)
  --hide-done   Leave out completed tasks
  --completed   Show only completed tasks

Examples:
  tasklist task list
  tasklist task list --hide-done
  tasklist task list --day tomorrow --priority high
  tasklist task list --json`,
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ListTasksHandler == nil {
			return cli.ErrNotInitialized
		}

		query := queries.ListTasksQuery{
			Status:   listStatus,
			Priority: listPriority,
			HideDone: listHideDone,
		}
		if listCompleted {
			query.Status = "completed"
		}
		if listDay != "" {
			day, err := app.ParseDay(listDay)
			if err != nil {
				return err
			}
			query.Day = day.String()
		}

		days, err := app.ListTasksHandler.Handle(cmd.Context(), query)
		if err != nil {
			return fmt.Errorf("failed to list tasks: %w", err)
		}

		out := cmd.OutOrStdout()
		if listJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(days)
		}

		if len(days) == 0 {
			fmt.Fprintln(out, "No tasks found.")
			return nil
		}

		total := 0
		for _, d := range days {
			total += len(d.Tasks)
		}
		fmt.Fprintf(out, "Tasks (%d):\n", total)
		fmt.Fprintln(out, strings.Repeat("-", 60))

		for _, d := range days {
			fmt.Fprintf(out, "%s\n", d.Day)
			for _, t := range d.Tasks {
				printTaskLine(out, t, app.Location)
			}
			fmt.Fprintln(out)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().StringVarP(&listDay, "day", "d", "", "only this day (YYYY-MM-DD, today, tomorrow, yesterday)")
	listCmd.Flags().StringVarP(&listStatus, "status", "s", "", "filter by status (todo, in_progress, completed)")
	listCmd.Flags().StringVarP(&listPriority, "priority", "p", "", "filter by priority (high, medium, low)")
	listCmd.Flags().BoolVar(&listHideDone, "hide-done", false, "leave out completed tasks")
	listCmd.Flags().BoolVar(&listCompleted, "completed", false, "show only completed tasks")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "print JSON")
}
