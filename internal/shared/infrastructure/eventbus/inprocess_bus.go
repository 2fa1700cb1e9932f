package eventbus

import (
	"context"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/tasklist/pkg/observability"
)

// InProcessBus delivers events synchronously to consumers registered in the
// same process. It stands in for RabbitMQ when the CLI or MCP server fires
// reminders locally.
type InProcessBus struct {
	registry *ConsumerRegistry
	logger   *slog.Logger
}

var _ Publisher = (*InProcessBus)(nil)

// NewInProcessBus creates a new in-process bus.
func NewInProcessBus(logger *slog.Logger) *InProcessBus {
	if logger == nil {
		logger = slog.Default()
	}
	return &InProcessBus{
		registry: NewConsumerRegistry(logger),
		logger:   logger,
	}
}

// RegisterConsumer registers an event consumer.
func (b *InProcessBus) RegisterConsumer(consumer EventConsumer) {
	b.registry.Register(consumer)
}

// Publish decodes the envelope and dispatches it. Malformed payloads and
// consumer failures are logged, never returned: a local publish cannot be
// retried by a broker.
func (b *InProcessBus) Publish(ctx context.Context, routingKey string, payload []byte) error {
	event, err := ParseEvent(payload, routingKey, observability.CorrelationIDFromContext(ctx))
	if err != nil {
		b.logger.Error("dropping event", "routing_key", routingKey, "error", err)
		return nil
	}

	start := time.Now()
	if err := b.registry.Dispatch(ctx, event); err != nil {
		b.logger.Error("event dispatch failed",
			"routing_key", routingKey,
			"event_id", event.EventID,
			"duration_ms", time.Since(start).Milliseconds(),
			"error", err,
		)
		return nil
	}

	b.logger.Debug("event dispatched",
		"routing_key", routingKey,
		"event_id", event.EventID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// Close is a no-op for the in-process bus.
func (b *InProcessBus) Close() error {
	return nil
}
