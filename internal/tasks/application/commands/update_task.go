package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/tasklist/internal/tasks/application"
	"github.com/felixgeelhaar/tasklist/internal/tasks/domain/task"
	"github.com/felixgeelhaar/tasklist/internal/tasks/domain/value_objects"
)

// UpdateTaskCommand changes the fields that are set; nil fields keep their
// stored value.
type UpdateTaskCommand struct {
	TaskID              uuid.UUID
	Title               *string
	Description         *string
	DueDate             *time.Time
	Status              *string
	Priority            *string
	NotificationEnabled *bool
}

// UpdateTaskResult contains the task as stored after the update.
type UpdateTaskResult struct {
	Task task.Task
}

// UpdateTaskHandler handles the UpdateTaskCommand.
type UpdateTaskHandler struct {
	store     application.TaskStore
	reminders reminderSync
}

// NewUpdateTaskHandler creates a new UpdateTaskHandler. reminders may be nil.
func NewUpdateTaskHandler(store application.TaskStore, reminders application.ReminderScheduler, logger *slog.Logger) *UpdateTaskHandler {
	return &UpdateTaskHandler{
		store:     store,
		reminders: newReminderSync(reminders, logger),
	}
}

// Handle applies the command. A changed due date moves the task to its new
// day. The reminder for the task is cancelled and, when notifications are
// enabled, scheduled again for the new due date. A persistence failure is
// returned together with the updated task, and the reminder is still synced.
func (h *UpdateTaskHandler) Handle(ctx context.Context, cmd UpdateTaskCommand) (*UpdateTaskResult, error) {
	t, err := h.store.Get(cmd.TaskID)
	if err != nil {
		return nil, err
	}

	if cmd.Title != nil {
		t.Title = strings.TrimSpace(*cmd.Title)
	}
	if cmd.Description != nil {
		t.Description = *cmd.Description
	}
	if cmd.DueDate != nil {
		t.DueDate = *cmd.DueDate
	}
	if cmd.Status != nil {
		status, err := task.ParseStatus(*cmd.Status)
		if err != nil {
			return nil, err
		}
		t.Status = status
	}
	if cmd.Priority != nil {
		priority, err := value_objects.ParsePriority(*cmd.Priority)
		if err != nil {
			return nil, err
		}
		t.Priority = priority
	}
	if cmd.NotificationEnabled != nil {
		t.NotificationEnabled = *cmd.NotificationEnabled
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}

	if err := h.store.Update(ctx, t); err != nil {
		if !keptInMemory(err) {
			return nil, err
		}
		h.reminders.cancel(ctx, t.ID)
		h.reminders.schedule(ctx, t)
		return &UpdateTaskResult{Task: t}, err
	}

	h.reminders.cancel(ctx, t.ID)
	h.reminders.schedule(ctx, t)
	return &UpdateTaskResult{Task: t}, nil
}
