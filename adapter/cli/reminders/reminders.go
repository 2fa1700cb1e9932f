package reminders

import "github.com/spf13/cobra"

// Cmd is the reminders command group.
var Cmd = &cobra.Command{
	Use:   "reminders",
	Short: "Work with task reminders",
	Long: `Reminders fire when a task with notifications enabled comes due.

With TASKLIST_REMINDERS=timer they fire inside the running tasklist or
tasklist-mcp process. With TASKLIST_REMINDERS=rabbitmq the task store
publishes them to RabbitMQ and 'tasklist reminders watch' delivers them.`,
}

func init() {
	Cmd.AddCommand(watchCmd)
}
