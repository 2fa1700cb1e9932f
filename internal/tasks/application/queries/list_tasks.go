package queries

import (
	"context"

	"github.com/felixgeelhaar/tasklist/internal/tasks/application"
	"github.com/felixgeelhaar/tasklist/internal/tasks/domain/task"
	"github.com/felixgeelhaar/tasklist/internal/tasks/domain/value_objects"
)

// ListTasksQuery contains the parameters for listing tasks.
type ListTasksQuery struct {
	Day      string // Only this day (YYYY-MM-DD); empty means every day
	Status   string // Filter by status label
	Priority string // Filter by priority label
	HideDone bool   // Drop completed tasks
}

// ListTasksHandler handles the ListTasksQuery.
type ListTasksHandler struct {
	store application.TaskStore
}

// NewListTasksHandler creates a new ListTasksHandler.
func NewListTasksHandler(store application.TaskStore) *ListTasksHandler {
	return &ListTasksHandler{store: store}
}

// Handle returns the matching tasks grouped by day, days ascending and
// tasks ascending by due time. Days left empty by the filters are omitted.
func (h *ListTasksHandler) Handle(ctx context.Context, query ListTasksQuery) ([]DayDTO, error) {
	match, err := newFilter(query)
	if err != nil {
		return nil, err
	}

	var groups []task.DayGroup
	if query.Day != "" {
		day, err := task.ParseDay(query.Day)
		if err != nil {
			return nil, err
		}
		groups = []task.DayGroup{{Day: day, Tasks: h.store.GetTasks(day)}}
	} else {
		groups = h.store.GetGrouped()
	}

	result := make([]DayDTO, 0, len(groups))
	for _, g := range groups {
		dtos := make([]TaskDTO, 0, len(g.Tasks))
		for _, t := range g.Tasks {
			if match(t) {
				dtos = append(dtos, ToDTO(t, g.Day))
			}
		}
		if len(dtos) > 0 {
			result = append(result, DayDTO{Day: g.Day.String(), Tasks: dtos})
		}
	}
	return result, nil
}

func newFilter(query ListTasksQuery) (func(task.Task) bool, error) {
	var (
		status   task.Status
		priority value_objects.Priority
		err      error
	)
	if query.Status != "" {
		if status, err = task.ParseStatus(query.Status); err != nil {
			return nil, err
		}
	}
	if query.Priority != "" {
		if priority, err = value_objects.ParsePriority(query.Priority); err != nil {
			return nil, err
		}
	}

	return func(t task.Task) bool {
		if status != 0 && t.Status != status {
			return false
		}
		if priority != 0 && t.Priority != priority {
			return false
		}
		if query.HideDone && t.IsCompleted() {
			return false
		}
		return true
	}, nil
}
