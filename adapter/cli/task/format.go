package task

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/tasklist/adapter/cli"
	"github.com/felixgeelhaar/tasklist/internal/tasks/application/queries"
	domain "github.com/felixgeelhaar/tasklist/internal/tasks/domain/task"
)

const minIDPrefix = 4

// resolveTaskID accepts a full id or a unique prefix of at least four
// characters, as printed by task list.
func resolveTaskID(ctx context.Context, app *cli.App, value string) (uuid.UUID, error) {
	if id, err := uuid.Parse(value); err == nil {
		return id, nil
	}
	if len(value) < minIDPrefix || app.ListTasksHandler == nil {
		return uuid.Nil, fmt.Errorf("invalid task ID: %s", value)
	}

	days, err := app.ListTasksHandler.Handle(ctx, queries.ListTasksQuery{})
	if err != nil {
		return uuid.Nil, err
	}

	var matches []uuid.UUID
	prefix := strings.ToLower(value)
	for _, d := range days {
		for _, t := range d.Tasks {
			if strings.HasPrefix(t.ID.String(), prefix) {
				matches = append(matches, t.ID)
			}
		}
	}

	switch len(matches) {
	case 0:
		return uuid.Nil, fmt.Errorf("%w: %s", domain.ErrTaskNotFound, value)
	case 1:
		return matches[0], nil
	default:
		return uuid.Nil, fmt.Errorf("task ID prefix %q is ambiguous (%d matches)", value, len(matches))
	}
}

func printTaskLine(out io.Writer, t queries.TaskDTO, loc *time.Location) {
	notify := ""
	if t.NotificationEnabled {
		notify = " *"
	}
	fmt.Fprintf(out, "  %s %s  %s %s%s\n",
		statusIcon(t.Status),
		t.DueDate.In(loc).Format("15:04"),
		t.Title,
		priorityBadge(t.Priority),
		notify,
	)
	if cli.Verbose() {
		fmt.Fprintf(out, "     ID: %s\n", t.ID)
		if t.Description != "" {
			fmt.Fprintf(out, "     %s\n", t.Description)
		}
		return
	}
	fmt.Fprintf(out, "     ID: %s\n", t.ID.String()[:8])
}

func printTaskDetails(out io.Writer, t queries.TaskDTO, loc *time.Location) {
	fmt.Fprintf(out, "Task: %s\n", t.ID)
	fmt.Fprintf(out, "  Title:        %s\n", t.Title)
	fmt.Fprintf(out, "  Status:       %s\n", formatStatus(t.Status))
	fmt.Fprintf(out, "  Priority:     %s\n", formatPriority(t.Priority))
	if t.Description != "" {
		fmt.Fprintf(out, "  Description:  %s\n", t.Description)
	}
	fmt.Fprintf(out, "  Due:          %s\n", t.DueDate.In(loc).Format("2006-01-02 15:04"))
	fmt.Fprintf(out, "  Day:          %s\n", t.Day)
	fmt.Fprintf(out, "  Notification: %s\n", onOff(t.NotificationEnabled))
}

func statusIcon(status string) string {
	switch status {
	case "completed":
		return "[x]"
	case "in_progress":
		return "[>]"
	default:
		return "[ ]"
	}
}

func priorityBadge(priority string) string {
	switch priority {
	case "high":
		return "(!)"
	case "medium":
		return "(~)"
	case "low":
		return "(.)"
	default:
		return ""
	}
}

func formatStatus(status string) string {
	switch status {
	case "todo":
		return "To do"
	case "in_progress":
		return "In Progress"
	case "completed":
		return "Completed"
	default:
		return status
	}
}

func formatPriority(priority string) string {
	switch priority {
	case "low":
		return "Low"
	case "medium":
		return "Medium"
	case "high":
		return "High"
	default:
		return priority
	}
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
