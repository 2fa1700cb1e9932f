package task

import (
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/tasklist/adapter/cli"
	"github.com/felixgeelhaar/tasklist/internal/tasks/application/commands"
	domain "github.com/felixgeelhaar/tasklist/internal/tasks/domain/task"
)

var completeCmd = &cobra.Command{
	Use:   "complete [task-id]",
	Short: "Mark a task as complete",
	Long: `Mark a task as complete by its ID.

Examples:
  tasklist task complete 550e8400
  tasklist task done 550e8400-e29b-41d4-a716-446655440000`,
	Aliases: []string{"done"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setStatus(cmd, args[0], domain.StatusCompleted, "Task completed")
	},
}

func setStatus(cmd *cobra.Command, arg string, status domain.Status, verb string) error {
	app := cli.GetApp()
	if app == nil || app.UpdateTaskHandler == nil {
		return cli.ErrNotInitialized
	}

	taskID, err := resolveTaskID(cmd.Context(), app, arg)
	if err != nil {
		return err
	}

	label := status.String()
	return runUpdate(cmd, app, commands.UpdateTaskCommand{TaskID: taskID, Status: &label}, verb)
}
