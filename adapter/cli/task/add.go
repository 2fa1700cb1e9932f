package task

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/tasklist/adapter/cli"
	"github.com/felixgeelhaar/tasklist/internal/tasks/application/commands"
)

var (
	addDue         string
	addDescription string
	addPriority    string
	addStatus      string
	addNotify      bool
)

var addCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a new task",
	Long: `Add a new task due at the given time. The task is filed under the
day its due date falls on.

Examples:
  tasklist task add "Pay rent" --due 2024-11-20T09:00
  tasklist task add "Call mom" --due tomorrow -p high --notify
  tasklist task add "Write docs" --due 2024-12-01 --description "API section"`,
	Aliases: []string{"create", "new"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.AddTaskHandler == nil {
			return cli.ErrNotInitialized
		}

		due, err := app.ParseDue(addDue)
		if err != nil {
			return err
		}

		result, err := app.AddTaskHandler.Handle(cmd.Context(), commands.AddTaskCommand{
			Title:               args[0],
			Description:         addDescription,
			DueDate:             due,
			Status:              addStatus,
			Priority:            addPriority,
			NotificationEnabled: addNotify,
		})
		if result == nil {
			return fmt.Errorf("failed to add task: %w", err)
		}

		out := cmd.OutOrStdout()
		t := result.Task
		fmt.Fprintf(out, "Task added: %s\n", t.ID)
		fmt.Fprintf(out, "  title:    %s\n", t.Title)
		fmt.Fprintf(out, "  due:      %s\n", t.DueDate.In(app.Location).Format("2006-01-02 15:04"))
		fmt.Fprintf(out, "  priority: %s\n", t.Priority)
		if t.NotificationEnabled {
			fmt.Fprintln(out, "  reminder: on")
		}

		if err != nil {
			return fmt.Errorf("task added but not saved: %w", err)
		}
		return nil
	},
}

func init() {
	addCmd.Flags().StringVar(&addDue, "due", "", "due date (YYYY-MM-DD, YYYY-MM-DDTHH:MM, RFC 3339, today, tomorrow)")
	addCmd.Flags().StringVar(&addDescription, "description", "", "task description")
	addCmd.Flags().StringVarP(&addPriority, "priority", "p", "", "task priority (low, medium, high)")
	addCmd.Flags().StringVarP(&addStatus, "status", "s", "", "initial status (todo, in_progress, completed)")
	addCmd.Flags().BoolVarP(&addNotify, "notify", "n", false, "remind me when the task is due")
	_ = addCmd.MarkFlagRequired("due")
}
