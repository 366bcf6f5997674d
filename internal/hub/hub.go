package hub

import (
	"context"
	"log/slog"
)

// Subscriber represents a single client that receives broadcast messages
// from the Hub, e.g. a transcript websocket.
type Subscriber struct {
	// Send is a buffered channel of outbound messages. The Hub sends messages
	// to this channel, and the client is responsible for reading from it.
	// The Hub closes it when the subscriber is dropped.
	Send chan []byte
}

// NewSubscriber creates a subscriber with a send buffer of the given size.
func NewSubscriber(buffer int) *Subscriber {
	return &Subscriber{Send: make(chan []byte, buffer)}
}

// Hub is a generic, concurrent fan-out. It maintains the set of active
// subscribers and broadcasts messages to them.
type Hub struct {
	// Registered subscribers.
	subscribers map[*Subscriber]bool

	// Broadcast is the channel for outbound messages. Any component can send a
	// message to this channel to have it delivered to all subscribers.
	Broadcast chan []byte

	// Register is a channel for new subscribers to register with the hub.
	Register chan *Subscriber

	// Unregister is a channel for subscribers to unregister from the hub.
	Unregister chan *Subscriber

	done chan struct{}
}

// NewHub creates and returns a new Hub instance.
func NewHub() *Hub {
	return &Hub{
		Broadcast:   make(chan []byte),
		Register:    make(chan *Subscriber),
		Unregister:  make(chan *Subscriber),
		subscribers: make(map[*Subscriber]bool),
		done:        make(chan struct{}),
	}
}

// Done is closed once Run has returned. Senders select on it so they never
// block on a stopped hub.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

// Run starts the Hub's message processing loop. It must be run in a separate
// goroutine and returns when ctx is canceled, closing every subscriber.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			for subscriber := range h.subscribers {
				close(subscriber.Send)
				delete(h.subscribers, subscriber)
			}
			slog.Debug("Hub stopped")
			return

		case subscriber := <-h.Register:
			h.subscribers[subscriber] = true
			slog.Info("New subscriber registered", "total_subscribers", len(h.subscribers))

		case subscriber := <-h.Unregister:
			if _, ok := h.subscribers[subscriber]; ok {
				delete(h.subscribers, subscriber)
				close(subscriber.Send)
				slog.Info("Subscriber unregistered", "total_subscribers", len(h.subscribers))
			}

		case message := <-h.Broadcast:
			slog.Debug("Broadcasting message", "recipient_count", len(h.subscribers))
			for subscriber := range h.subscribers {
				// Use a non-blocking send. If the subscriber's buffer is full,
				// it suggests the client is lagging or disconnected.
				select {
				case subscriber.Send <- message:
				default:
					close(subscriber.Send)
					delete(h.subscribers, subscriber)
					slog.Warn("Unregistering slow subscriber", "total_subscribers", len(h.subscribers))
				}
			}
		}
	}
}

// Publish hands message to the hub. It returns false when ctx is done or the
// hub has stopped.
func (h *Hub) Publish(ctx context.Context, message []byte) bool {
	select {
	case h.Broadcast <- message:
		return true
	case <-h.done:
		return false
	case <-ctx.Done():
		return false
	}
}

// Subscribe registers s. It returns false when ctx is done or the hub has
// stopped.
func (h *Hub) Subscribe(ctx context.Context, s *Subscriber) bool {
	select {
	case h.Register <- s:
		return true
	case <-h.done:
		return false
	case <-ctx.Done():
		return false
	}
}

// Unsubscribe removes s. It is safe to call after the hub has stopped.
func (h *Hub) Unsubscribe(s *Subscriber) {
	select {
	case h.Unregister <- s:
	case <-h.done:
	}
}
