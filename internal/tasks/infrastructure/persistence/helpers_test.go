package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/tasklist/internal/tasks/domain/task"
	"github.com/felixgeelhaar/tasklist/internal/tasks/domain/value_objects"
)

func newTestTask(t *testing.T, title string, due time.Time) task.Task {
	t.Helper()
	tsk, err := task.NewTask(title, due)
	require.NoError(t, err)
	return tsk
}

func sampleState(t *testing.T) task.State {
	t.Helper()

	rent := newTestTask(t, "Pay rent", time.Date(2024, 11, 20, 9, 0, 0, 0, time.UTC))
	rent.Description = "transfer before noon"
	rent.Priority = value_objects.PriorityHigh
	rent.NotificationEnabled = true

	gym := newTestTask(t, "Gym", time.Date(2024, 11, 20, 18, 30, 0, 0, time.UTC))
	gym.Status = task.StatusInProgress
	gym.Priority = value_objects.PriorityLow

	report := newTestTask(t, "Send report", time.Date(2024, 11, 21, 17, 0, 0, 123456789, time.UTC))
	report.Status = task.StatusCompleted

	return task.State{
		task.NormalizeDay(rent.DueDate, time.UTC):   {rent, gym},
		task.NormalizeDay(report.DueDate, time.UTC): {report},
	}
}

// testSlotContract checks the behavior every Slot implementation shares.
func testSlotContract(t *testing.T, slot Slot) {
	t.Helper()
	ctx := context.Background()

	_, err := slot.Read(ctx)
	require.ErrorIs(t, err, task.ErrSlotNotFound, "never-written slot")

	require.NoError(t, slot.Write(ctx, []byte(`{"first":true}`)))
	got, err := slot.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, `{"first":true}`, string(got))

	require.NoError(t, slot.Write(ctx, []byte(`{"second":true}`)))
	got, err = slot.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, `{"second":true}`, string(got), "write replaces the whole content")

	assert.NotEmpty(t, slot.Name())
}
