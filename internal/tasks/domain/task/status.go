package task

import "strings"

// Status represents the task lifecycle state.
type Status int

const (
	StatusTodo Status = iota + 1
	StatusInProgress
	StatusCompleted
)

var statusNames = map[Status]string{
	StatusTodo:       "todo",
	StatusInProgress: "in_progress",
	StatusCompleted:  "completed",
}

var statusValues = map[string]Status{
	"todo":        StatusTodo,
	"in_progress": StatusInProgress,
	"in-progress": StatusInProgress,
	"completed":   StatusCompleted,
}

// Statuses lists every status in workflow order.
func Statuses() []Status {
	return []Status{StatusTodo, StatusInProgress, StatusCompleted}
}

// ParseStatus creates a Status from its label. Both "in_progress" and
// "in-progress" are accepted; String always returns the underscore form.
func ParseStatus(s string) (Status, error) {
	st, ok := statusValues[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, ErrInvalidStatus
	}
	return st, nil
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// IsValid returns true if the status is a valid value.
func (s Status) IsValid() bool {
	_, ok := statusNames[s]
	return ok
}
