// Package reminders implements application.ReminderScheduler: in process
// with timers, or by publishing reminder events to a broker.
package reminders

import (
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/tasklist/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/tasklist/internal/tasks/domain/task"
)

// Routing keys of reminder events.
const (
	RoutingScheduled = "reminder.scheduled"
	RoutingCancelled = "reminder.cancelled"
	RoutingDue       = "reminder.due"
)

// Payload describes the task a reminder is for.
type Payload struct {
	TaskID      uuid.UUID `json:"task_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	DueDate     time.Time `json:"due_date"`
	Priority    string    `json:"priority"`
}

// PayloadFor builds the payload for t.
func PayloadFor(t task.Task) Payload {
	return Payload{
		TaskID:      t.ID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		Priority:    t.Priority.String(),
	}
}

func newReminderEvent(routingKey string, t task.Task) (*eventbus.Event, error) {
	return eventbus.NewEvent(routingKey, t.ID, PayloadFor(t))
}
