package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/tasklist/internal/tasks/application"
	"github.com/felixgeelhaar/tasklist/internal/tasks/domain/task"
	"github.com/felixgeelhaar/tasklist/internal/tasks/domain/value_objects"
)

// AddTaskCommand contains the data needed to add a task.
type AddTaskCommand struct {
	Title               string
	Description         string
	DueDate             time.Time
	Status              string
	Priority            string
	NotificationEnabled bool
}

// AddTaskResult contains the stored task.
type AddTaskResult struct {
	Task task.Task
}

// AddTaskHandler handles the AddTaskCommand.
type AddTaskHandler struct {
	store     application.TaskStore
	reminders reminderSync
}

// NewAddTaskHandler creates a new AddTaskHandler. reminders may be nil.
func NewAddTaskHandler(store application.TaskStore, reminders application.ReminderScheduler, logger *slog.Logger) *AddTaskHandler {
	return &AddTaskHandler{
		store:     store,
		reminders: newReminderSync(reminders, logger),
	}
}

// Handle validates and stores a new task, then schedules its reminder when
// notifications are enabled. A persistence failure is returned together with
// the task, which stays in the store and still gets its reminder.
func (h *AddTaskHandler) Handle(ctx context.Context, cmd AddTaskCommand) (*AddTaskResult, error) {
	t, err := task.NewTask(cmd.Title, cmd.DueDate)
	if err != nil {
		return nil, err
	}
	t.Description = cmd.Description
	t.NotificationEnabled = cmd.NotificationEnabled

	if cmd.Status != "" {
		status, err := task.ParseStatus(cmd.Status)
		if err != nil {
			return nil, err
		}
		t.Status = status
	}

	if cmd.Priority != "" {
		priority, err := value_objects.ParsePriority(cmd.Priority)
		if err != nil {
			return nil, err
		}
		t.Priority = priority
	}

	if err := h.store.Add(ctx, t); err != nil {
		if !keptInMemory(err) {
			return nil, err
		}
		h.reminders.schedule(ctx, t)
		return &AddTaskResult{Task: t}, err
	}

	h.reminders.schedule(ctx, t)
	return &AddTaskResult{Task: t}, nil
}
