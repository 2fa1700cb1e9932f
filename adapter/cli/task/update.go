package task

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/tasklist/adapter/cli"
	"github.com/felixgeelhaar/tasklist/internal/tasks/application/commands"
)

var (
	updateTitle       string
	updateDescription string
	updatePriority    string
	updateStatus      string
	updateDue         string
	updateNotify      bool
)

var updateCmd = &cobra.Command{
	Use:   "update [task-id]",
	Short: "Update a task",
	Long: `Update the properties of an existing task. Changing the due date to
another day moves the task to that day.

Examples:
  tasklist task update 550e8400 --title "New title"
  tasklist task update 550e8400 --priority high --notify
  tasklist task update 550e8400 --due 2024-12-31T17:00`,
	Aliases: []string{"edit", "modify"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.UpdateTaskHandler == nil {
			return cli.ErrNotInitialized
		}

		ctx := cmd.Context()
		taskID, err := resolveTaskID(ctx, app, args[0])
		if err != nil {
			return err
		}

		updateTaskCmd := commands.UpdateTaskCommand{TaskID: taskID}
		flags := cmd.Flags()
		flagsProvided := false

		if flags.Changed("title") {
			updateTaskCmd.Title = &updateTitle
			flagsProvided = true
		}
		if flags.Changed("description") {
			updateTaskCmd.Description = &updateDescription
			flagsProvided = true
		}
		if flags.Changed("priority") {
			updateTaskCmd.Priority = &updatePriority
			flagsProvided = true
		}
		if flags.Changed("status") {
			updateTaskCmd.Status = &updateStatus
			flagsProvided = true
		}
		if flags.Changed("notify") {
			updateTaskCmd.NotificationEnabled = &updateNotify
			flagsProvided = true
		}
		if flags.Changed("due") {
			due, err := app.ParseDue(updateDue)
			if err != nil {
				return err
			}
			updateTaskCmd.DueDate = &due
			flagsProvided = true
		}

		if !flagsProvided {
			return errors.New("no updates provided - use flags like --title, --due, --status, --priority, or --notify")
		}

		return runUpdate(cmd, app, updateTaskCmd, "Task updated")
	},
}

func runUpdate(cmd *cobra.Command, app *cli.App, update commands.UpdateTaskCommand, verb string) error {
	result, err := app.UpdateTaskHandler.Handle(cmd.Context(), update)
	if result == nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	t := result.Task
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (%s, due %s)\n",
		verb, t.ID, t.Status, t.DueDate.In(app.Location).Format("2006-01-02 15:04"))

	if err != nil {
		return fmt.Errorf("task updated but not saved: %w", err)
	}
	return nil
}

func init() {
	updateCmd.Flags().StringVarP(&updateTitle, "title", "t", "", "New title for the task")
	updateCmd.Flags().StringVar(&updateDescription, "description", "", "New description for the task")
	updateCmd.Flags().StringVarP(&updatePriority, "priority", "p", "", "New priority (low, medium, high)")
	updateCmd.Flags().StringVarP(&updateStatus, "status", "s", "", "New status (todo, in_progress, completed)")
	updateCmd.Flags().StringVar(&updateDue, "due", "", "New due date (YYYY-MM-DD, YYYY-MM-DDTHH:MM, RFC 3339, today, tomorrow)")
	updateCmd.Flags().BoolVarP(&updateNotify, "notify", "n", false, "Remind when due (use --notify=false to turn off)")
}
