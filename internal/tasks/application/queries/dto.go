package queries

import (
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/tasklist/internal/tasks/domain/task"
)

// TaskDTO is a data transfer object for tasks.
type TaskDTO struct {
	ID                  uuid.UUID `json:"id"`
	Title               string    `json:"title"`
	Description         string    `json:"description,omitempty"`
	DueDate             time.Time `json:"due_date"`
	Day                 string    `json:"day"`
	Status              string    `json:"status"`
	Priority            string    `json:"priority"`
	NotificationEnabled bool      `json:"notification_enabled"`
}

// DayDTO is one day of the grouped view.
type DayDTO struct {
	Day   string    `json:"day"`
	Tasks []TaskDTO `json:"tasks"`
}

// ToDTO converts a task; day is the key of the bucket holding it.
func ToDTO(t task.Task, day task.Day) TaskDTO {
	return TaskDTO{
		ID:                  t.ID,
		Title:               t.Title,
		Description:         t.Description,
		DueDate:             t.DueDate,
		Day:                 day.String(),
		Status:              t.Status.String(),
		Priority:            t.Priority.String(),
		NotificationEnabled: t.NotificationEnabled,
	}
}
