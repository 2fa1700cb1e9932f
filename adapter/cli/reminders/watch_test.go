package reminders

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/tasklist/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/tasklist/internal/tasks/infrastructure/reminders"
	"github.com/felixgeelhaar/tasklist/pkg/observability"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func scheduledEvent(t *testing.T, title string, due time.Time) *eventbus.Event {
	t.Helper()
	id := uuid.New()
	event, err := eventbus.NewEvent(reminders.RoutingScheduled, id, reminders.Payload{
		TaskID:   id,
		Title:    title,
		DueDate:  due,
		Priority: "high",
	})
	require.NoError(t, err)
	return event
}

func dispatch(t *testing.T, w *watcher, event *eventbus.Event) {
	t.Helper()
	registry := eventbus.NewConsumerRegistry(observability.NewDiscardLogger())
	for _, c := range w.consumers {
		registry.Register(c)
	}
	require.NoError(t, registry.Dispatch(context.Background(), event))
}

func TestWatcher_PrintsDueReminder(t *testing.T) {
	out := &syncBuffer{}
	w := newWatcher(out, time.UTC, false, observability.NewDiscardLogger())
	defer w.Close()

	dispatch(t, w, scheduledEvent(t, "Stretch", time.Now().Add(20*time.Millisecond)))

	assert.Eventually(t, func() bool {
		return bytes.Contains([]byte(out.String()), []byte("Stretch [high]"))
	}, 2*time.Second, 10*time.Millisecond)
	assert.NotContains(t, out.String(), "scheduled")
}

func TestWatcher_AllPrintsScheduling(t *testing.T) {
	out := &syncBuffer{}
	w := newWatcher(out, time.UTC, true, observability.NewDiscardLogger())
	defer w.Close()

	dispatch(t, w, scheduledEvent(t, "Dentist", time.Now().Add(time.Hour)))

	assert.Contains(t, out.String(), "scheduled")
	assert.Contains(t, out.String(), "Dentist")
	assert.Equal(t, 1, w.scheduler.Pending())
}
