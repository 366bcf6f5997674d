package adapter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/nfrund/botsamples/internal/activity"
	"github.com/nfrund/botsamples/internal/bot"
	"github.com/nfrund/botsamples/internal/events"
	"github.com/nfrund/botsamples/internal/middleware"
	"github.com/nfrund/botsamples/internal/pubsub"
	"github.com/nfrund/botsamples/internal/turn"
)

// TurnErrorHandler is called when a bot returns an error or panics during a
// turn. It may still reply through tc.
type TurnErrorHandler func(ctx context.Context, tc *turn.Context, err error)

// Adapter turns inbound activities into bot turns.
type Adapter struct {
	auth        Authenticator
	sender      turn.Sender
	publisher   pubsub.Publisher
	botName     string
	onTurnError TurnErrorHandler
	logger      *slog.Logger
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithAuthenticator sets the inbound authenticator. The default accepts all
// requests.
func WithAuthenticator(auth Authenticator) Option {
	return func(a *Adapter) {
		a.auth = auth
	}
}

// WithPublisher publishes turn events on the bus.
func WithPublisher(p pubsub.Publisher) Option {
	return func(a *Adapter) {
		a.publisher = p
	}
}

// WithBotName labels published events with the bot's name.
func WithBotName(name string) Option {
	return func(a *Adapter) {
		a.botName = name
	}
}

// WithTurnErrorHandler replaces DefaultTurnErrorHandler. A nil handler makes
// ProcessActivity return turn errors to the caller instead.
func WithTurnErrorHandler(h TurnErrorHandler) Option {
	return func(a *Adapter) {
		a.onTurnError = h
	}
}

// New creates an adapter that delivers replies through sender.
func New(sender turn.Sender, opts ...Option) *Adapter {
	a := &Adapter{
		auth:        NewAuthenticator(""),
		sender:      sender,
		publisher:   pubsub.NopPublisher{},
		onTurnError: DefaultTurnErrorHandler,
		logger:      slog.Default().With("component", "adapter"),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// ProcessActivity authenticates and validates an inbound activity and runs b
// for it. The returned InvokeResponse is non-nil when the channel expects a
// synchronous body: invoke activities and expectReplies turns.
func (ad *Adapter) ProcessActivity(ctx context.Context, a *activity.Activity, authHeader string, b bot.Bot) (*activity.InvokeResponse, error) {
	if err := ad.auth.Authenticate(ctx, authHeader, a); err != nil {
		if errors.Is(err, ErrUnauthorized) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	if err := activity.Validate(a); err != nil {
		return nil, err
	}

	ad.publishActivity(ctx, events.ActivityReceived, events.DirectionInbound, a)

	tc := turn.New(a, ad.sender, turn.WithLogger(middleware.FromContext(ctx)))
	tc.OnSend(func(ctx context.Context, _ *turn.Context, sent []*activity.Activity) {
		for _, out := range sent {
			ad.publishActivity(ctx, events.ActivitySent, events.DirectionOutbound, out)
		}
	})

	if err := runTurn(ctx, tc, b); err != nil {
		ad.publishTurnError(ctx, a, err)
		if ad.onTurnError == nil {
			return nil, err
		}
		ad.onTurnError(ctx, tc, err)
	}

	// Buffered replies win over an invoke response, otherwise they would be
	// lost: they were never sent to the connector.
	switch {
	case a.ExpectsReplies():
		return &activity.InvokeResponse{
			Status: http.StatusOK,
			Body:   activity.ExpectedReplies{Activities: tc.BufferedReplies()},
		}, nil
	case a.Type == activity.TypeInvoke:
		if ir := tc.InvokeResponse(); ir != nil {
			return ir, nil
		}
		return &activity.InvokeResponse{Status: http.StatusNotImplemented}, nil
	}
	return nil, nil
}

// runTurn runs the bot and converts a panic into a *PanicError.
func runTurn(ctx context.Context, tc *turn.Context, b bot.Bot) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	return b.OnTurn(ctx, tc)
}

func (ad *Adapter) publishActivity(ctx context.Context, ev pubsub.Event[events.ActivityEvent], dir events.Direction, a *activity.Activity) {
	payload := events.ActivityEvent{
		Bot:       ad.botName,
		Direction: dir,
		Activity:  a,
		At:        time.Now().UTC(),
	}
	if err := pubsub.Publish(ctx, ad.publisher, ev, conversationID(a), payload); err != nil {
		ad.logger.Warn("Failed to publish activity event", "topic", ev.Name(), "error", err)
	}
}

func (ad *Adapter) publishTurnError(ctx context.Context, a *activity.Activity, turnErr error) {
	payload := events.TurnErrorEvent{
		Bot:      ad.botName,
		Error:    turnErr.Error(),
		Activity: a,
		At:       time.Now().UTC(),
	}
	if err := pubsub.Publish(ctx, ad.publisher, events.TurnError, conversationID(a), payload); err != nil {
		ad.logger.Warn("Failed to publish turn error event", "error", err)
	}
}

func conversationID(a *activity.Activity) string {
	if a.Conversation == nil {
		return ""
	}
	return a.Conversation.ID
}
