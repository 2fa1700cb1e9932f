// Package eventbus carries reminder events between the scheduler and the
// components that deliver them, either in process or through RabbitMQ.
package eventbus

import (
	"context"
)

// Publisher defines the interface for publishing events to a message broker.
type Publisher interface {
	// Publish sends a message to the event bus.
	Publish(ctx context.Context, routingKey string, payload []byte) error

	// Close closes the publisher connection.
	Close() error
}

// PublishEvent encodes event and publishes it under its routing key.
func PublishEvent(ctx context.Context, p Publisher, event *Event) error {
	payload, err := event.Marshal()
	if err != nil {
		return err
	}
	return p.Publish(ctx, event.RoutingKey, payload)
}
