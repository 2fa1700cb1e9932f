// Package application holds the use cases of the task list: the Manager
// service, command and query handlers, and the ports they depend on.
package application

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/tasklist/internal/tasks/domain/task"
)

// TaskStore is the day-grouped task store consumed by the handlers.
// services.Manager implements it.
type TaskStore interface {
	GetTasks(day task.Day) []task.Task
	GetAllTasks() []task.Task
	GetAllDays() []task.Day
	GetGrouped() []task.DayGroup
	Get(id uuid.UUID) (task.Task, error)
	DayOf(t time.Time) task.Day

	Add(ctx context.Context, t task.Task) error
	Update(ctx context.Context, t task.Task) error
	Delete(ctx context.Context, t task.Task) error
}

// ReminderScheduler schedules due-date reminders keyed by task id.
type ReminderScheduler interface {
	// Schedule arranges a reminder for t at t.DueDate, replacing any
	// reminder already scheduled for t.ID.
	Schedule(ctx context.Context, t task.Task) error

	// Cancel drops the reminder for id. Cancelling an unknown id is not an
	// error.
	Cancel(ctx context.Context, id uuid.UUID) error
}
