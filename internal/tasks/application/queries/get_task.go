package queries

import (
	"context"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/tasklist/internal/tasks/application"
)

// GetTaskHandler returns a single task by id.
type GetTaskHandler struct {
	store application.TaskStore
}

// NewGetTaskHandler creates a new GetTaskHandler.
func NewGetTaskHandler(store application.TaskStore) *GetTaskHandler {
	return &GetTaskHandler{store: store}
}

// Handle looks up the task. Returns task.ErrTaskNotFound for unknown ids.
func (h *GetTaskHandler) Handle(ctx context.Context, id uuid.UUID) (*TaskDTO, error) {
	t, err := h.store.Get(id)
	if err != nil {
		return nil, err
	}

	dto := ToDTO(t, h.store.DayOf(t.DueDate))
	return &dto, nil
}
