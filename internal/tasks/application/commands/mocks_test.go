package commands

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/felixgeelhaar/tasklist/internal/tasks/application"
	"github.com/felixgeelhaar/tasklist/internal/tasks/domain/task"
)

// MockTaskStore is a mock implementation of application.TaskStore
type MockTaskStore struct {
	mock.Mock
}

func (m *MockTaskStore) GetTasks(day task.Day) []task.Task {
	args := m.Called(day)
	return args.Get(0).([]task.Task)
}

func (m *MockTaskStore) GetAllTasks() []task.Task {
	args := m.Called()
	return args.Get(0).([]task.Task)
}

func (m *MockTaskStore) GetAllDays() []task.Day {
	args := m.Called()
	return args.Get(0).([]task.Day)
}

func (m *MockTaskStore) GetGrouped() []task.DayGroup {
	args := m.Called()
	return args.Get(0).([]task.DayGroup)
}

func (m *MockTaskStore) Get(id uuid.UUID) (task.Task, error) {
	args := m.Called(id)
	return args.Get(0).(task.Task), args.Error(1)
}

func (m *MockTaskStore) DayOf(t time.Time) task.Day {
	args := m.Called(t)
	return args.Get(0).(task.Day)
}

func (m *MockTaskStore) Add(ctx context.Context, t task.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTaskStore) Update(ctx context.Context, t task.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTaskStore) Delete(ctx context.Context, t task.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

var _ application.TaskStore = (*MockTaskStore)(nil)

// MockReminderScheduler is a mock implementation of application.ReminderScheduler
type MockReminderScheduler struct {
	mock.Mock
}

func (m *MockReminderScheduler) Schedule(ctx context.Context, t task.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockReminderScheduler) Cancel(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var _ application.ReminderScheduler = (*MockReminderScheduler)(nil)

func stringPtr(s string) *string {
	return &s
}

func boolPtr(b bool) *bool {
	return &b
}
