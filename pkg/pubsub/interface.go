package pubsub

import (
	"context"
	"encoding/json"
	"time"
)

// Event is a message published to the event bus. BookingNumber doubles as
// the partition key on brokers that support keyed messages.
type Event struct {
	Type          string          `json:"type"`
	BookingNumber string          `json:"booking_number"`
	Payload       json.RawMessage `json:"payload"`
	Timestamp     time.Time       `json:"timestamp"`
}

// NewEvent creates an event with the current timestamp.
func NewEvent(eventType, bookingNumber string, payload interface{}) (*Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Event{
		Type:          eventType,
		BookingNumber: bookingNumber,
		Payload:       data,
		Timestamp:     time.Now(),
	}, nil
}

// UnmarshalPayload unmarshals the event payload into the given struct.
func (e *Event) UnmarshalPayload(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

// Publisher publishes events to the event bus. Downstream consumers
// (notification and analytics workers) live outside this service.
type Publisher interface {
	Publish(ctx context.Context, channel string, event *Event) error
	Close() error
}
