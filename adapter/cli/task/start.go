package task

import (
	"github.com/spf13/cobra"

	domain "github.com/felixgeelhaar/tasklist/internal/tasks/domain/task"
)

var startCmd = &cobra.Command{
	Use:   "start [task-id]",
	Short: "Mark a task as in progress",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setStatus(cmd, args[0], domain.StatusInProgress, "Task started")
	},
}
