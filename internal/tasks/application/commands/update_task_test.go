package commands

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/tasklist/internal/tasks/domain/task"
	"github.com/felixgeelhaar/tasklist/internal/tasks/domain/value_objects"
	"github.com/felixgeelhaar/tasklist/pkg/observability"
)

func existingTask(t *testing.T, notify bool) task.Task {
	t.Helper()
	tsk, err := task.NewTask("Pay rent", time.Date(2024, 11, 20, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	tsk.NotificationEnabled = notify
	return tsk
}

func TestUpdateTaskHandler_Handle(t *testing.T) {
	newDue := time.Date(2024, 11, 22, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		notify      bool
		cmd         func(id uuid.UUID) UpdateTaskCommand
		setupMocks  func(*MockTaskStore, *MockReminderScheduler, task.Task)
		expectError error
		check       func(*testing.T, task.Task)
	}{
		{
			name: "updates title and priority",
			cmd: func(id uuid.UUID) UpdateTaskCommand {
				return UpdateTaskCommand{TaskID: id, Title: stringPtr(" Pay rent now "), Priority: stringPtr("high")}
			},
			setupMocks: func(store *MockTaskStore, reminders *MockReminderScheduler, existing task.Task) {
				store.On("Get", existing.ID).Return(existing, nil)
				store.On("Update", mock.Anything, mock.AnythingOfType("task.Task")).Return(nil)
				reminders.On("Cancel", mock.Anything, existing.ID).Return(nil)
			},
			check: func(t *testing.T, got task.Task) {
				assert.Equal(t, "Pay rent now", got.Title)
				assert.Equal(t, value_objects.PriorityHigh, got.Priority)
			},
		},
		{
			name:   "reschedules reminder on new due date",
			notify: true,
			cmd: func(id uuid.UUID) UpdateTaskCommand {
				return UpdateTaskCommand{TaskID: id, DueDate: &newDue}
			},
			setupMocks: func(store *MockTaskStore, reminders *MockReminderScheduler, existing task.Task) {
				store.On("Get", existing.ID).Return(existing, nil)
				store.On("Update", mock.Anything, mock.AnythingOfType("task.Task")).Return(nil)
				cancel := reminders.On("Cancel", mock.Anything, existing.ID).Return(nil)
				reminders.On("Schedule", mock.Anything, mock.MatchedBy(func(t task.Task) bool {
					return t.DueDate.Equal(newDue)
				})).Return(nil).NotBefore(cancel)
			},
			check: func(t *testing.T, got task.Task) {
				assert.True(t, got.DueDate.Equal(newDue))
			},
		},
		{
			name:   "disabling notifications only cancels",
			notify: true,
			cmd: func(id uuid.UUID) UpdateTaskCommand {
				return UpdateTaskCommand{TaskID: id, NotificationEnabled: boolPtr(false)}
			},
			setupMocks: func(store *MockTaskStore, reminders *MockReminderScheduler, existing task.Task) {
				store.On("Get", existing.ID).Return(existing, nil)
				store.On("Update", mock.Anything, mock.AnythingOfType("task.Task")).Return(nil)
				reminders.On("Cancel", mock.Anything, existing.ID).Return(nil)
			},
			check: func(t *testing.T, got task.Task) {
				assert.False(t, got.NotificationEnabled)
			},
		},
		{
			name: "completes task",
			cmd: func(id uuid.UUID) UpdateTaskCommand {
				return UpdateTaskCommand{TaskID: id, Status: stringPtr("completed"), Description: stringPtr("paid")}
			},
			setupMocks: func(store *MockTaskStore, reminders *MockReminderScheduler, existing task.Task) {
				store.On("Get", existing.ID).Return(existing, nil)
				store.On("Update", mock.Anything, mock.AnythingOfType("task.Task")).Return(nil)
				reminders.On("Cancel", mock.Anything, existing.ID).Return(nil)
			},
			check: func(t *testing.T, got task.Task) {
				assert.True(t, got.IsCompleted())
				assert.Equal(t, "paid", got.Description)
			},
		},
		{
			name: "task not found",
			cmd: func(id uuid.UUID) UpdateTaskCommand {
				return UpdateTaskCommand{TaskID: id, Title: stringPtr("x")}
			},
			setupMocks: func(store *MockTaskStore, reminders *MockReminderScheduler, existing task.Task) {
				store.On("Get", existing.ID).Return(task.Task{}, task.ErrTaskNotFound)
			},
			expectError: task.ErrTaskNotFound,
		},
		{
			name: "empty title rejected",
			cmd: func(id uuid.UUID) UpdateTaskCommand {
				return UpdateTaskCommand{TaskID: id, Title: stringPtr("  ")}
			},
			setupMocks: func(store *MockTaskStore, reminders *MockReminderScheduler, existing task.Task) {
				store.On("Get", existing.ID).Return(existing, nil)
			},
			expectError: task.ErrEmptyTitle,
		},
		{
			name: "invalid status rejected",
			cmd: func(id uuid.UUID) UpdateTaskCommand {
				return UpdateTaskCommand{TaskID: id, Status: stringPtr("blocked")}
			},
			setupMocks: func(store *MockTaskStore, reminders *MockReminderScheduler, existing task.Task) {
				store.On("Get", existing.ID).Return(existing, nil)
			},
			expectError: task.ErrInvalidStatus,
		},
		{
			name:   "completing a notified task only cancels",
			notify: true,
			cmd: func(id uuid.UUID) UpdateTaskCommand {
				return UpdateTaskCommand{TaskID: id, Status: stringPtr("completed")}
			},
			setupMocks: func(store *MockTaskStore, reminders *MockReminderScheduler, existing task.Task) {
				store.On("Get", existing.ID).Return(existing, nil)
				store.On("Update", mock.Anything, mock.AnythingOfType("task.Task")).Return(nil)
				reminders.On("Cancel", mock.Anything, existing.ID).Return(nil)
			},
			check: func(t *testing.T, got task.Task) {
				assert.True(t, got.IsCompleted())
				assert.True(t, got.NotificationEnabled)
			},
		},
		{
			name:   "store rejection leaves reminders alone",
			notify: true,
			cmd: func(id uuid.UUID) UpdateTaskCommand {
				return UpdateTaskCommand{TaskID: id, Title: stringPtr("b")}
			},
			setupMocks: func(store *MockTaskStore, reminders *MockReminderScheduler, existing task.Task) {
				store.On("Get", existing.ID).Return(existing, nil)
				store.On("Update", mock.Anything, mock.Anything).Return(task.ErrTaskNotFound)
			},
			expectError: task.ErrTaskNotFound,
		},
		{
			name:   "persistence failure still reschedules reminder",
			notify: true,
			cmd: func(id uuid.UUID) UpdateTaskCommand {
				return UpdateTaskCommand{TaskID: id, DueDate: &newDue}
			},
			setupMocks: func(store *MockTaskStore, reminders *MockReminderScheduler, existing task.Task) {
				store.On("Get", existing.ID).Return(existing, nil)
				store.On("Update", mock.Anything, mock.Anything).Return(fmt.Errorf("%w: offline", task.ErrWrite))
				cancel := reminders.On("Cancel", mock.Anything, existing.ID).Return(nil)
				reminders.On("Schedule", mock.Anything, mock.MatchedBy(func(t task.Task) bool {
					return t.DueDate.Equal(newDue)
				})).Return(nil).NotBefore(cancel)
			},
			expectError: task.ErrPersistence,
			check: func(t *testing.T, got task.Task) {
				assert.True(t, got.DueDate.Equal(newDue))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			existing := existingTask(t, tt.notify)
			store := new(MockTaskStore)
			reminders := new(MockReminderScheduler)
			tt.setupMocks(store, reminders, existing)

			handler := NewUpdateTaskHandler(store, reminders, observability.NewDiscardLogger())
			result, err := handler.Handle(context.Background(), tt.cmd(existing.ID))

			switch {
			case errors.Is(tt.expectError, task.ErrPersistence):
				assert.ErrorIs(t, err, tt.expectError)
				require.NotNil(t, result)
				tt.check(t, result.Task)
			case tt.expectError != nil:
				assert.ErrorIs(t, err, tt.expectError)
				assert.Nil(t, result)
			default:
				require.NoError(t, err)
				require.NotNil(t, result)
				assert.Equal(t, existing.ID, result.Task.ID)
				tt.check(t, result.Task)
			}

			store.AssertExpectations(t)
			reminders.AssertExpectations(t)
			if tt.expectError != nil && !errors.Is(tt.expectError, task.ErrPersistence) {
				reminders.AssertNotCalled(t, "Schedule", mock.Anything, mock.Anything)
				reminders.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything)
			}
		})
	}
}
