package turn

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/nfrund/botsamples/internal/activity"
)

// ErrNoSender is returned when a turn must deliver an activity but was
// created without a Sender.
var ErrNoSender = errors.New("turn has no sender")

// Sender delivers outbound activities to the channel.
type Sender interface {
	Send(ctx context.Context, a *activity.Activity) (*activity.ResourceResponse, error)
}

// SenderFunc adapts a function to the Sender interface.
type SenderFunc func(ctx context.Context, a *activity.Activity) (*activity.ResourceResponse, error)

// Send calls f(ctx, a).
func (f SenderFunc) Send(ctx context.Context, a *activity.Activity) (*activity.ResourceResponse, error) {
	return f(ctx, a)
}

// SendHook observes activities after they were delivered.
type SendHook func(ctx context.Context, tc *Context, sent []*activity.Activity)

// Context is the state of a single turn: the incoming activity and the means
// to answer it. A Context is used by one turn and is safe for concurrent
// sends from that turn.
type Context struct {
	activity *activity.Activity
	sender   Sender
	logger   *slog.Logger

	mu             sync.Mutex
	responded      bool
	buffered       []*activity.Activity
	invokeResponse *activity.InvokeResponse
	hooks          []SendHook
	values         map[any]any
}

// Option configures a Context.
type Option func(*Context)

// WithLogger sets the logger the turn's attributes are added to, e.g. a
// request-scoped logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(tc *Context) {
		if logger != nil {
			tc.logger = logger
		}
	}
}

// New creates a turn context for an incoming activity.
func New(a *activity.Activity, sender Sender, opts ...Option) *Context {
	tc := &Context{
		activity: a,
		sender:   sender,
		logger:   slog.Default(),
		values:   make(map[any]any),
	}
	for _, opt := range opts {
		opt(tc)
	}
	tc.logger = tc.logger.With(
		"channel", a.ChannelID,
		"activity_type", a.Type,
		"activity_id", a.ID,
	)
	return tc
}

// Activity returns the incoming activity.
func (tc *Context) Activity() *activity.Activity {
	return tc.activity
}

// Logger returns a logger annotated with the turn's channel and activity.
func (tc *Context) Logger() *slog.Logger {
	return tc.logger
}

// Responded reports whether at least one non-trace activity was sent.
func (tc *Context) Responded() bool {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	return tc.responded
}

// OnSend registers a hook that runs after every successful send.
func (tc *Context) OnSend(hook SendHook) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.hooks = append(tc.hooks, hook)
}

// Set stores a turn-scoped value, e.g. loaded state.
func (tc *Context) Set(key, value any) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.values[key] = value
}

// Get returns a turn-scoped value.
func (tc *Context) Get(key any) (any, bool) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	v, ok := tc.values[key]
	return v, ok
}

// SendText sends a plain text message.
func (tc *Context) SendText(ctx context.Context, text string) (*activity.ResourceResponse, error) {
	return tc.SendActivity(ctx, activity.NewText(text))
}

// SendActivity addresses a as a reply to the incoming activity and delivers it.
func (tc *Context) SendActivity(ctx context.Context, a *activity.Activity) (*activity.ResourceResponse, error) {
	responses, err := tc.SendActivities(ctx, a)
	if err != nil {
		return nil, err
	}
	if len(responses) == 0 {
		return &activity.ResourceResponse{}, nil
	}
	return responses[0], nil
}

// SendActivities delivers activities in order. Trace activities are dropped
// unless the channel is the emulator. When the incoming activity expects
// replies, activities are buffered for the HTTP response instead.
func (tc *Context) SendActivities(ctx context.Context, acts ...*activity.Activity) ([]*activity.ResourceResponse, error) {
	ref := tc.activity.Reference()

	var (
		responses []*activity.ResourceResponse
		sent      []*activity.Activity
	)
	for _, a := range acts {
		if a == nil {
			continue
		}
		activity.ApplyReference(a, ref)
		if a.ID == "" {
			a.ID = uuid.NewString()
		}

		if a.Type == activity.TypeTrace && tc.activity.ChannelID != activity.ChannelEmulator {
			continue
		}

		if tc.activity.ExpectsReplies() {
			tc.mu.Lock()
			tc.buffered = append(tc.buffered, a)
			tc.mu.Unlock()
			responses = append(responses, &activity.ResourceResponse{ID: a.ID})
		} else {
			if tc.sender == nil {
				return responses, ErrNoSender
			}
			rr, err := tc.sender.Send(ctx, a)
			if err != nil {
				tc.fireHooks(ctx, sent)
				return responses, err
			}
			responses = append(responses, rr)
		}

		sent = append(sent, a)
		if a.Type != activity.TypeTrace {
			tc.mu.Lock()
			tc.responded = true
			tc.mu.Unlock()
		}
	}

	tc.fireHooks(ctx, sent)
	return responses, nil
}

func (tc *Context) fireHooks(ctx context.Context, sent []*activity.Activity) {
	if len(sent) == 0 {
		return
	}
	tc.mu.Lock()
	hooks := make([]SendHook, len(tc.hooks))
	copy(hooks, tc.hooks)
	tc.mu.Unlock()

	for _, hook := range hooks {
		hook(ctx, tc, sent)
	}
}

// SetInvokeResponse records the synchronous response for an invoke activity.
func (tc *Context) SetInvokeResponse(status int, body any) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.invokeResponse = &activity.InvokeResponse{Status: status, Body: body}
}

// InvokeResponse returns the recorded invoke response, if any.
func (tc *Context) InvokeResponse() *activity.InvokeResponse {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	return tc.invokeResponse
}

// BufferedReplies returns the activities collected for an expectReplies turn.
func (tc *Context) BufferedReplies() []*activity.Activity {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	out := make([]*activity.Activity, len(tc.buffered))
	copy(out, tc.buffered)
	return out
}
