package commands

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/tasklist/internal/tasks/application"
	"github.com/felixgeelhaar/tasklist/internal/tasks/domain/task"
)

// DeleteTaskCommand removes a task by id.
type DeleteTaskCommand struct {
	TaskID uuid.UUID
}

// DeleteTaskHandler handles the DeleteTaskCommand.
type DeleteTaskHandler struct {
	store     application.TaskStore
	reminders reminderSync
}

// NewDeleteTaskHandler creates a new DeleteTaskHandler. reminders may be nil.
func NewDeleteTaskHandler(store application.TaskStore, reminders application.ReminderScheduler, logger *slog.Logger) *DeleteTaskHandler {
	return &DeleteTaskHandler{
		store:     store,
		reminders: newReminderSync(reminders, logger),
	}
}

// Handle deletes the task and cancels its reminder. Returns
// task.ErrTaskNotFound when no task has the id. On a persistence failure the
// task is gone from the store, its reminder is cancelled, and the task is
// returned together with the error.
func (h *DeleteTaskHandler) Handle(ctx context.Context, cmd DeleteTaskCommand) (*task.Task, error) {
	t, err := h.store.Get(cmd.TaskID)
	if err != nil {
		return nil, err
	}

	if err := h.store.Delete(ctx, t); err != nil {
		if !keptInMemory(err) {
			return nil, err
		}
		h.reminders.cancel(ctx, t.ID)
		return &t, err
	}

	h.reminders.cancel(ctx, t.ID)
	return &t, nil
}
