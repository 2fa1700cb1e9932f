package app

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/tasklist/internal/tasks/application/commands"
	"github.com/felixgeelhaar/tasklist/internal/tasks/application/queries"
	"github.com/felixgeelhaar/tasklist/internal/tasks/infrastructure/reminders"
	"github.com/felixgeelhaar/tasklist/pkg/config"
	"github.com/felixgeelhaar/tasklist/pkg/observability"
)

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func testConfig(store, remindersBackend string) *config.Config {
	return &config.Config{
		AppEnv:    "test",
		Store:     store,
		SlotName:  "tasks",
		SlotTable: "task_slots",
		Reminders: remindersBackend,
		TimeZone:  "UTC",
	}
}

func TestNewContainer_MemoryStore(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(config.StoreMemory, config.RemindersNone)

	c, err := NewContainer(ctx, cfg, observability.NewDiscardLogger())
	require.NoError(t, err)
	defer c.Close()

	assert.NotNil(t, c.Manager)
	assert.NotNil(t, c.Repo)
	assert.Nil(t, c.Reminders)
	assert.Nil(t, c.EventPublisher)
	assert.Equal(t, time.UTC, c.Manager.Location())

	due := time.Date(2024, 11, 20, 9, 0, 0, 0, time.UTC)
	added, err := c.AddTaskHandler.Handle(ctx, commands.AddTaskCommand{Title: "Pay rent", DueDate: due})
	require.NoError(t, err)

	days, err := c.ListTasksHandler.Handle(ctx, queries.ListTasksQuery{})
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, "2024-11-20", days[0].Day)
	assert.Equal(t, added.Task.ID, days[0].Tasks[0].ID)

	got, err := c.GetTaskHandler.Handle(ctx, added.Task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pay rent", got.Title)
}

func TestNewContainer_FileStoreSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(config.StoreFile, config.RemindersNone)
	cfg.FilePath = filepath.Join(t.TempDir(), "tasks.json")

	first, err := NewContainer(ctx, cfg, observability.NewDiscardLogger())
	require.NoError(t, err)

	due := time.Date(2024, 11, 21, 18, 30, 0, 0, time.UTC)
	added, err := first.AddTaskHandler.Handle(ctx, commands.AddTaskCommand{Title: "Call mom", DueDate: due, Priority: "high"})
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := NewContainer(ctx, cfg, observability.NewDiscardLogger())
	require.NoError(t, err)
	defer second.Close()

	summaries, err := second.ListDaysHandler.Handle(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "2024-11-21", summaries[0].Day)
	assert.Equal(t, 1, summaries[0].Total)

	got, err := second.GetTaskHandler.Handle(ctx, added.Task.ID)
	require.NoError(t, err)
	assert.Equal(t, "high", got.Priority)
}

func TestNewContainer_TimerRemindersRestoreFromStore(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(config.StoreFile, config.RemindersNone)
	cfg.FilePath = filepath.Join(t.TempDir(), "tasks.json")

	seed, err := NewContainer(ctx, cfg, observability.NewDiscardLogger())
	require.NoError(t, err)
	_, err = seed.AddTaskHandler.Handle(ctx, commands.AddTaskCommand{
		Title:               "Dentist",
		DueDate:             time.Now().Add(time.Hour),
		NotificationEnabled: true,
	})
	require.NoError(t, err)
	_, err = seed.AddTaskHandler.Handle(ctx, commands.AddTaskCommand{
		Title:   "Quiet",
		DueDate: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)
	require.NoError(t, seed.Close())

	cfg.Reminders = config.RemindersTimer
	c, err := NewContainer(ctx, cfg, observability.NewDiscardLogger(), WithReminderOutput(&lockedBuffer{}))
	require.NoError(t, err)
	defer c.Close()

	scheduler, ok := c.Reminders.(*reminders.TimerScheduler)
	require.True(t, ok)
	assert.Equal(t, 1, scheduler.Pending())
	assert.NotNil(t, c.EventPublisher)
}

func TestNewContainer_TimerReminderFires(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(config.StoreMemory, config.RemindersTimer)

	out := &lockedBuffer{}
	c, err := NewContainer(ctx, cfg, observability.NewDiscardLogger(), WithReminderOutput(out))
	require.NoError(t, err)
	defer c.Close()

	_, err = c.AddTaskHandler.Handle(ctx, commands.AddTaskCommand{
		Title:               "Stretch",
		DueDate:             time.Now().Add(50 * time.Millisecond),
		NotificationEnabled: true,
	})
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return strings.Contains(out.String(), "Stretch")
	}, 2*time.Second, 10*time.Millisecond)
}

func TestNewContainer_Metrics(t *testing.T) {
	ctx := context.Background()
	metrics := observability.NewInMemoryMetrics()

	c, err := NewContainer(ctx, testConfig(config.StoreMemory, config.RemindersNone), observability.NewDiscardLogger(), WithMetrics(metrics))
	require.NoError(t, err)
	defer c.Close()

	_, err = c.AddTaskHandler.Handle(ctx, commands.AddTaskCommand{Title: "a", DueDate: time.Now()})
	require.NoError(t, err)
	assert.Equal(t, float64(1), metrics.GetGauge(observability.MetricTasksStored))
}

func TestNewContainer_InvalidConfig(t *testing.T) {
	ctx := context.Background()

	cfg := testConfig(config.StoreMemory, config.RemindersNone)
	cfg.TimeZone = "Mars/Olympus"
	_, err := NewContainer(ctx, cfg, observability.NewDiscardLogger())
	assert.Error(t, err)

	cfg = testConfig(config.StoreMemory, "carrier-pigeon")
	_, err = NewContainer(ctx, cfg, observability.NewDiscardLogger())
	assert.Error(t, err)
}
