package reminders

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/tasklist/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/tasklist/internal/tasks/application"
	"github.com/felixgeelhaar/tasklist/internal/tasks/domain/task"
	"github.com/felixgeelhaar/tasklist/pkg/observability"
)

// PublishingScheduler hands reminders to an external service by publishing
// reminder.scheduled and reminder.cancelled events.
type PublishingScheduler struct {
	publisher eventbus.Publisher
	logger    *slog.Logger
	metrics   observability.Metrics
}

var _ application.ReminderScheduler = (*PublishingScheduler)(nil)

// NewPublishingScheduler creates a scheduler publishing through publisher.
func NewPublishingScheduler(publisher eventbus.Publisher, logger *slog.Logger, metrics observability.Metrics) *PublishingScheduler {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	return &PublishingScheduler{
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
	}
}

// Schedule publishes reminder.scheduled for t.
func (s *PublishingScheduler) Schedule(ctx context.Context, t task.Task) error {
	event, err := newReminderEvent(RoutingScheduled, t)
	if err != nil {
		return err
	}
	if err := s.publish(ctx, event); err != nil {
		return err
	}
	s.metrics.Counter(observability.MetricRemindersScheduled, 1)
	return nil
}

// Cancel publishes reminder.cancelled for id.
func (s *PublishingScheduler) Cancel(ctx context.Context, id uuid.UUID) error {
	event, err := eventbus.NewEvent(RoutingCancelled, id, nil)
	if err != nil {
		return err
	}
	if err := s.publish(ctx, event); err != nil {
		return err
	}
	s.metrics.Counter(observability.MetricRemindersCancelled, 1)
	return nil
}

func (s *PublishingScheduler) publish(ctx context.Context, event *eventbus.Event) error {
	event.Metadata.CorrelationID = observability.CorrelationIDFromContext(ctx)

	if err := eventbus.PublishEvent(ctx, s.publisher, event); err != nil {
		s.metrics.Counter(observability.MetricRemindersFailed, 1)
		return fmt.Errorf("publish %s for task %s: %w", event.RoutingKey, event.TaskID, err)
	}

	s.logger.DebugContext(ctx, "reminder event published",
		"routing_key", event.RoutingKey,
		observability.TaskIDKey, event.TaskID.String(),
	)
	return nil
}

// Close closes the publisher.
func (s *PublishingScheduler) Close() error {
	return s.publisher.Close()
}
