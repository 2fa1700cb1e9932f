package queries

import (
	"context"

	"github.com/felixgeelhaar/tasklist/internal/tasks/application"
)

// DaySummary counts the tasks of one day.
type DaySummary struct {
	Day       string `json:"day"`
	Total     int    `json:"total"`
	Completed int    `json:"completed"`
}

// ListDaysHandler lists the days that hold tasks.
type ListDaysHandler struct {
	store application.TaskStore
}

// NewListDaysHandler creates a new ListDaysHandler.
func NewListDaysHandler(store application.TaskStore) *ListDaysHandler {
	return &ListDaysHandler{store: store}
}

// Handle returns one summary per non-empty day, ascending.
func (h *ListDaysHandler) Handle(ctx context.Context) ([]DaySummary, error) {
	days := h.store.GetAllDays()
	out := make([]DaySummary, 0, len(days))
	for _, day := range days {
		tasks := h.store.GetTasks(day)
		summary := DaySummary{Day: day.String(), Total: len(tasks)}
		for _, t := range tasks {
			if t.IsCompleted() {
				summary.Completed++
			}
		}
		out = append(out, summary)
	}
	return out, nil
}
