package task

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/tasklist/adapter/cli"
	"github.com/felixgeelhaar/tasklist/internal/tasks/application/commands"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <task-id>",
	Short: "Delete a task",
	Long: `Delete a task and cancel its reminder. A day left without tasks
disappears from the list.

Examples:
  tasklist task delete 550e8400`,
	Aliases: []string{"rm", "remove"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.DeleteTaskHandler == nil {
			return cli.ErrNotInitialized
		}

		ctx := cmd.Context()
		taskID, err := resolveTaskID(ctx, app, args[0])
		if err != nil {
			return err
		}

		t, err := app.DeleteTaskHandler.Handle(ctx, commands.DeleteTaskCommand{TaskID: taskID})
		if t == nil {
			return fmt.Errorf("failed to delete task: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Task deleted!")
		fmt.Fprintln(out, strings.Repeat("-", 40))
		fmt.Fprintf(out, "  Task ID: %s\n", t.ID)
		fmt.Fprintf(out, "  Title:   %s\n", t.Title)

		if err != nil {
			return fmt.Errorf("task deleted but not saved: %w", err)
		}
		return nil
	},
}
