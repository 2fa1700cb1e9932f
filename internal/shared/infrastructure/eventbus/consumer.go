package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EventConsumer handles specific event types.
type EventConsumer interface {
	// EventTypes returns the routing keys this consumer handles,
	// e.g. ["reminder.due"].
	EventTypes() []string

	// Handle processes the event.
	Handle(ctx context.Context, event *Event) error
}

// Event is the envelope of every message on the bus.
type Event struct {
	EventID    uuid.UUID       `json:"event_id"`
	TaskID     uuid.UUID       `json:"task_id"`
	RoutingKey string          `json:"routing_key"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	Metadata   EventMetadata   `json:"metadata,omitempty"`
}

// EventMetadata contains optional metadata about the event.
type EventMetadata struct {
	CorrelationID string `json:"correlation_id,omitempty"`
}

// NewEvent creates an event for taskID with payload encoded as JSON.
// A nil payload is omitted.
func NewEvent(routingKey string, taskID uuid.UUID, payload any) (*Event, error) {
	event := &Event{
		EventID:    uuid.New(),
		TaskID:     taskID,
		RoutingKey: routingKey,
		OccurredAt: time.Now().UTC(),
	}

	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s payload: %w", routingKey, err)
		}
		event.Payload = raw
	}
	return event, nil
}

// ParseEvent decodes an envelope received under routingKey. The routing key
// and correlation id of the delivery fill in fields the sender left empty.
func ParseEvent(body []byte, routingKey, correlationID string) (*Event, error) {
	event := &Event{}
	if err := json.Unmarshal(body, event); err != nil {
		return nil, fmt.Errorf("decode %s event: %w", routingKey, err)
	}
	if event.RoutingKey == "" {
		event.RoutingKey = routingKey
	}
	if event.Metadata.CorrelationID == "" {
		event.Metadata.CorrelationID = correlationID
	}
	return event, nil
}

// Marshal encodes the envelope.
func (e *Event) Marshal() ([]byte, error) {
	return json.Marshal(e)
}

// DecodePayload unmarshals the payload into v.
func (e *Event) DecodePayload(v any) error {
	if len(e.Payload) == 0 {
		return fmt.Errorf("event %s has no payload", e.EventID)
	}
	return json.Unmarshal(e.Payload, v)
}

// Consumer defines the interface for consuming events from a message broker.
type Consumer interface {
	// Start begins consuming messages. This is a blocking call.
	Start(ctx context.Context) error

	// RegisterConsumer registers an event consumer.
	RegisterConsumer(consumer EventConsumer)

	// Close closes the consumer connection.
	Close() error
}
