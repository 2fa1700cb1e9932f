package reminders

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/tasklist/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/tasklist/internal/tasks/application"
	"github.com/felixgeelhaar/tasklist/internal/tasks/domain/task"
	"github.com/felixgeelhaar/tasklist/pkg/observability"
)

// FireFunc is called when a reminder is due.
type FireFunc func(ctx context.Context, t task.Task)

// TimerScheduler keeps one in-process timer per task and calls the fire
// function at the task's due date. Reminders for due dates that already
// passed are not scheduled. Timers do not survive the process.
type TimerScheduler struct {
	mu      sync.Mutex
	timers  map[uuid.UUID]*time.Timer
	fire    FireFunc
	now     func() time.Time
	logger  *slog.Logger
	metrics observability.Metrics
	closed  bool
}

var _ application.ReminderScheduler = (*TimerScheduler)(nil)

// TimerOption configures a TimerScheduler.
type TimerOption func(*TimerScheduler)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) TimerOption {
	return func(s *TimerScheduler) { s.now = now }
}

// WithTimerLogger sets the logger.
func WithTimerLogger(logger *slog.Logger) TimerOption {
	return func(s *TimerScheduler) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithTimerMetrics sets the metrics collector.
func WithTimerMetrics(metrics observability.Metrics) TimerOption {
	return func(s *TimerScheduler) {
		if metrics != nil {
			s.metrics = metrics
		}
	}
}

// NewTimerScheduler creates a scheduler that calls fire for due reminders.
func NewTimerScheduler(fire FireFunc, opts ...TimerOption) *TimerScheduler {
	s := &TimerScheduler{
		timers:  make(map[uuid.UUID]*time.Timer),
		fire:    fire,
		now:     time.Now,
		logger:  slog.Default(),
		metrics: observability.NoopMetrics{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Schedule replaces any pending reminder for t.ID with one at t.DueDate.
func (s *TimerScheduler) Schedule(ctx context.Context, t task.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.stopLocked(t.ID)

	wait := t.DueDate.Sub(s.now())
	if wait <= 0 {
		s.logger.DebugContext(ctx, "reminder not scheduled, due date passed",
			observability.TaskIDKey, t.ID.String(),
		)
		return nil
	}

	correlationID := observability.CorrelationIDFromContext(ctx)
	var timer *time.Timer
	timer = time.AfterFunc(wait, func() {
		s.mu.Lock()
		current := s.timers[t.ID] == timer
		if current {
			delete(s.timers, t.ID)
		}
		s.mu.Unlock()
		if !current {
			return
		}

		fireCtx := context.Background()
		if correlationID != "" {
			fireCtx = observability.WithCorrelationID(fireCtx, correlationID)
		}
		s.metrics.Counter(observability.MetricRemindersFired, 1)
		s.fire(fireCtx, t)
	})
	s.timers[t.ID] = timer

	s.metrics.Counter(observability.MetricRemindersScheduled, 1)
	s.logger.DebugContext(ctx, "reminder scheduled",
		observability.TaskIDKey, t.ID.String(),
		"in", wait.String(),
	)
	return nil
}

// Cancel stops the pending reminder for id, if any.
func (s *TimerScheduler) Cancel(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopLocked(id) {
		s.metrics.Counter(observability.MetricRemindersCancelled, 1)
		s.logger.DebugContext(ctx, "reminder cancelled", observability.TaskIDKey, id.String())
	}
	return nil
}

// Pending returns the number of scheduled reminders.
func (s *TimerScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Restore schedules reminders for every task with notifications enabled.
// Used at startup, since timers are lost when the process exits.
func (s *TimerScheduler) Restore(ctx context.Context, tasks []task.Task) int {
	n := 0
	for _, t := range tasks {
		if !t.NotificationEnabled || t.IsCompleted() || !t.DueDate.After(s.now()) {
			continue
		}
		if err := s.Schedule(ctx, t); err == nil {
			n++
		}
	}
	return n
}

// Close stops every pending timer. Later calls to Schedule are ignored.
func (s *TimerScheduler) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id := range s.timers {
		s.stopLocked(id)
	}
	s.closed = true
	return nil
}

func (s *TimerScheduler) stopLocked(id uuid.UUID) bool {
	timer, ok := s.timers[id]
	if !ok {
		return false
	}
	timer.Stop()
	delete(s.timers, id)
	return true
}

// PublishDue returns a FireFunc that publishes a reminder.due event.
func PublishDue(publisher eventbus.Publisher, logger *slog.Logger) FireFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(ctx context.Context, t task.Task) {
		event, err := newReminderEvent(RoutingDue, t)
		if err == nil {
			event.Metadata.CorrelationID = observability.CorrelationIDFromContext(ctx)
			err = eventbus.PublishEvent(ctx, publisher, event)
		}
		if err != nil {
			logger.ErrorContext(ctx, "failed to publish due reminder",
				observability.TaskIDKey, t.ID.String(),
				observability.ErrorKey, err.Error(),
			)
		}
	}
}
