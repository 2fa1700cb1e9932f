package reminders

import (
	"context"

	"github.com/felixgeelhaar/tasklist/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/tasklist/internal/tasks/domain/task"
	"github.com/felixgeelhaar/tasklist/internal/tasks/domain/value_objects"
)

// Relay consumes reminder.scheduled and reminder.cancelled events from a
// broker and keeps a local timer per task, so a watcher process can fire
// reminders published by another process.
type Relay struct {
	scheduler *TimerScheduler
}

var _ eventbus.EventConsumer = (*Relay)(nil)

// NewRelay creates a relay that schedules onto scheduler.
func NewRelay(scheduler *TimerScheduler) *Relay {
	return &Relay{scheduler: scheduler}
}

func (r *Relay) EventTypes() []string {
	return []string{RoutingScheduled, RoutingCancelled}
}

func (r *Relay) Handle(ctx context.Context, event *eventbus.Event) error {
	switch event.RoutingKey {
	case RoutingCancelled:
		return r.scheduler.Cancel(ctx, event.TaskID)
	case RoutingScheduled:
		var p Payload
		if err := event.DecodePayload(&p); err != nil {
			return err
		}
		return r.scheduler.Schedule(ctx, p.Task())
	default:
		return nil
	}
}

// Task rebuilds the reminded task from the payload. Unknown priorities fall
// back to medium.
func (p Payload) Task() task.Task {
	priority, err := value_objects.ParsePriority(p.Priority)
	if err != nil {
		priority = value_objects.PriorityMedium
	}
	return task.Task{
		ID:                  p.TaskID,
		Title:               p.Title,
		Description:         p.Description,
		DueDate:             p.DueDate,
		Status:              task.StatusTodo,
		Priority:            priority,
		NotificationEnabled: true,
	}
}
