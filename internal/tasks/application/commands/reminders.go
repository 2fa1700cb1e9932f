package commands

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/tasklist/internal/tasks/application"
	"github.com/felixgeelhaar/tasklist/internal/tasks/domain/task"
	"github.com/felixgeelhaar/tasklist/pkg/observability"
)

// reminderSync applies the reminder side of a CRUD result. Failures are
// logged and never change the outcome of the command.
type reminderSync struct {
	scheduler application.ReminderScheduler
	logger    *slog.Logger
}

func newReminderSync(scheduler application.ReminderScheduler, logger *slog.Logger) reminderSync {
	if logger == nil {
		logger = slog.Default()
	}
	return reminderSync{scheduler: scheduler, logger: logger}
}

// schedule arms a reminder for an open task with notifications on.
// Completed tasks get none, matching TimerScheduler.Restore.
func (r reminderSync) schedule(ctx context.Context, t task.Task) {
	if r.scheduler == nil || !t.NotificationEnabled || t.IsCompleted() {
		return
	}
	if err := r.scheduler.Schedule(ctx, t); err != nil {
		r.logger.WarnContext(ctx, "failed to schedule reminder",
			observability.TaskIDKey, t.ID.String(),
			observability.ErrorKey, err.Error(),
		)
	}
}

// keptInMemory reports whether a store error left the mutation applied:
// the write failed but the store itself changed.
func keptInMemory(err error) bool {
	return errors.Is(err, task.ErrPersistence)
}

func (r reminderSync) cancel(ctx context.Context, id uuid.UUID) {
	if r.scheduler == nil {
		return
	}
	if err := r.scheduler.Cancel(ctx, id); err != nil {
		r.logger.WarnContext(ctx, "failed to cancel reminder",
			observability.TaskIDKey, id.String(),
			observability.ErrorKey, err.Error(),
		)
	}
}
