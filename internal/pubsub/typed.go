package pubsub

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nfrund/botsamples/internal/topicmgr"
)

// Event binds a topic to the Go type of its payload so publishers and
// subscribers cannot disagree on the encoding.
type Event[T any] struct {
	topic topicmgr.Topic
}

// NewEvent creates a typed event for topic.
func NewEvent[T any](topic topicmgr.Topic) Event[T] {
	return Event[T]{topic: topic}
}

// Name returns the topic name.
func (e Event[T]) Name() string {
	return e.topic.Name()
}

// Topic returns the underlying topic definition.
func (e Event[T]) Topic() topicmgr.Topic {
	return e.topic
}

// Publish sends a typed event. The compiler ensures 'payload' matches 'T'.
func Publish[T any](ctx context.Context, p Publisher, event Event[T], conversationID string, payload T) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode %s payload: %w", event.Name(), err)
	}
	return p.Publish(ctx, Message{
		Topic:          event.Name(),
		ConversationID: conversationID,
		Payload:        data,
	})
}

// Subscribe decodes each message on the event's topic into T before calling
// handler.
func Subscribe[T any](ctx context.Context, s Subscriber, event Event[T], handler func(ctx context.Context, payload T) error) error {
	return s.Subscribe(ctx, event.Name(), func(ctx context.Context, msg Message) error {
		var payload T
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return fmt.Errorf("failed to decode %s payload: %w", event.Name(), err)
		}
		return handler(ctx, payload)
	})
}
