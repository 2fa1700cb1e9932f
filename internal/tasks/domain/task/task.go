package task

import (
	"fmt"
	"strings"
	"time"

	"github.com/felixgeelhaar/tasklist/internal/tasks/domain/value_objects"
	"github.com/google/uuid"
)

// Task is a to-do item due at a point in time. It is a value record: the
// store copies tasks in and out and matches them by ID.
type Task struct {
	ID                  uuid.UUID
	Title               string
	Description         string
	DueDate             time.Time
	Status              Status
	Priority            value_objects.Priority
	NotificationEnabled bool
}

// NewTask creates a todo task with medium priority and notifications off.
func NewTask(title string, dueDate time.Time) (Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Task{}, ErrEmptyTitle
	}

	return Task{
		ID:       uuid.New(),
		Title:    title,
		DueDate:  dueDate,
		Status:   StatusTodo,
		Priority: value_objects.PriorityMedium,
	}, nil
}

// Validate reports whether the task can be admitted by an editor.
func (t Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTitle
	}
	if !t.Status.IsValid() {
		return ErrInvalidStatus
	}
	if !t.Priority.IsValid() {
		return value_objects.ErrInvalidPriority
	}
	return nil
}

// ValidateRecord reports whether the task can be stored and encoded. Unlike
// Validate it accepts a blank title.
func (t Task) ValidateRecord() error {
	if t.ID == uuid.Nil {
		return fmt.Errorf("%w: task %q has no id", ErrMalformedTask, t.Title)
	}
	if !t.Status.IsValid() {
		return fmt.Errorf("%w: task %s: %w", ErrMalformedTask, t.ID, ErrInvalidStatus)
	}
	if !t.Priority.IsValid() {
		return fmt.Errorf("%w: task %s: %w", ErrMalformedTask, t.ID, value_objects.ErrInvalidPriority)
	}
	return nil
}

// Day returns the bucket key of the task in the given location.
func (t Task) Day(loc *time.Location) Day {
	return NormalizeDay(t.DueDate, loc)
}

func (t Task) IsCompleted() bool { return t.Status == StatusCompleted }

// Equal compares every field. Due dates are compared as instants.
func (t Task) Equal(other Task) bool {
	return t.ID == other.ID &&
		t.Title == other.Title &&
		t.Description == other.Description &&
		t.DueDate.Equal(other.DueDate) &&
		t.Status == other.Status &&
		t.Priority == other.Priority &&
		t.NotificationEnabled == other.NotificationEnabled
}
