package pubsub

import (
	"context"
)

// Message is the structure passed between components on the bus.
// It is intentionally simple to act as a wrapper for raw data.
type Message struct {
	// Topic identifies the channel the message belongs to (e.g., "bot.activity.received").
	Topic string
	// ConversationID identifies the conversation the event belongs to, if any.
	ConversationID string
	// Payload contains the raw message data, JSON encoded.
	Payload []byte
	// Metadata can contain arbitrary key-value pairs for context (e.g., channel id).
	Metadata map[string]string
}

// Handler defines the function signature for processing a received message.
type Handler func(ctx context.Context, msg Message) error

// Publisher defines the contract for sending messages to the Pub/Sub system.
type Publisher interface {
	Publish(ctx context.Context, msg Message) error
	Close() error
}

// Subscriber defines the contract for receiving messages from the Pub/Sub system.
type Subscriber interface {
	// Subscribe starts delivering messages on topic to handler in the
	// background. Delivery stops when ctx is canceled or the subscriber is
	// closed.
	Subscribe(ctx context.Context, topic string, handler Handler) error
	Close() error
}

// NopPublisher discards every message. It is used when a component is built
// without a bus, e.g. in unit tests.
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, msg Message) error { return nil }
func (NopPublisher) Close() error { return nil }
