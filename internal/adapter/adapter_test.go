package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"testing"

	"github.com/nfrund/botsamples/internal/activity"
	"github.com/nfrund/botsamples/internal/bot"
	"github.com/nfrund/botsamples/internal/events"
	"github.com/nfrund/botsamples/internal/middleware"
	"github.com/nfrund/botsamples/internal/pubsub"
	"github.com/nfrund/botsamples/internal/turn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	mu   sync.Mutex
	sent []*activity.Activity
}

func (s *recordingSender) Send(ctx context.Context, a *activity.Activity) (*activity.ResourceResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, a)
	return &activity.ResourceResponse{ID: a.ID}, nil
}

func (s *recordingSender) texts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for _, a := range s.sent {
		if a.Type == activity.TypeMessage {
			out = append(out, a.Text)
		}
	}
	return out
}

// recordingPublisher keeps published messages in memory.
type recordingPublisher struct {
	mu   sync.Mutex
	msgs []pubsub.Message
}

func (p *recordingPublisher) Publish(ctx context.Context, msg pubsub.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.msgs = append(p.msgs, msg)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) topics() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.msgs))
	for _, m := range p.msgs {
		out = append(out, m.Topic)
	}
	return out
}

func message(channel, text string) *activity.Activity {
	return &activity.Activity{
		Type:         activity.TypeMessage,
		ID:           "act-1",
		ChannelID:    channel,
		ServiceURL:   "http://localhost:3979",
		Text:         text,
		From:         activity.ChannelAccount{ID: "user-1", Name: "User"},
		Recipient:    activity.ChannelAccount{ID: "bot-1", Name: "Bot"},
		Conversation: &activity.ConversationAccount{ID: "conv-1"},
	}
}

var echoing = bot.Func(func(ctx context.Context, tc *turn.Context) error {
	_, err := tc.SendText(ctx, "Echo: "+tc.Activity().Text)
	return err
})

func TestProcessActivity_RunsBotAndPublishes(t *testing.T) {
	sender := &recordingSender{}
	pub := &recordingPublisher{}
	ad := New(sender, WithPublisher(pub), WithBotName("echo"))

	resp, err := ad.ProcessActivity(context.Background(), message("test", "hi"), "", echoing)

	require.NoError(t, err)
	assert.Nil(t, resp)
	assert.Equal(t, []string{"Echo: hi"}, sender.texts())
	assert.Equal(t, []string{events.TopicActivityReceived.Name(), events.TopicActivitySent.Name()}, pub.topics())

	var ev events.ActivityEvent
	require.NoError(t, json.Unmarshal(pub.msgs[1].Payload, &ev))
	assert.Equal(t, "echo", ev.Bot)
	assert.Equal(t, events.DirectionOutbound, ev.Direction)
	assert.Equal(t, "Echo: hi", ev.Activity.Text)
	assert.Equal(t, "conv-1", pub.msgs[1].ConversationID)
}

func TestProcessActivity_Unauthorized(t *testing.T) {
	sender := &recordingSender{}
	ad := New(sender, WithAuthenticator(NewAuthenticator("app-id")))

	_, err := ad.ProcessActivity(context.Background(), message("test", "hi"), "", echoing)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = ad.ProcessActivity(context.Background(), message("test", "hi"), "Basic abc", echoing)
	assert.ErrorIs(t, err, ErrUnauthorized)

	assert.Equal(t, "unauthorized", err.Error())

	_, err = ad.ProcessActivity(context.Background(), message("test", "hi"), "Bearer token", echoing)
	assert.NoError(t, err)
	assert.Equal(t, []string{"Echo: hi"}, sender.texts())
}

func TestProcessActivity_InvalidActivity(t *testing.T) {
	ad := New(&recordingSender{})
	a := message("", "hi")

	_, err := ad.ProcessActivity(context.Background(), a, "", echoing)

	assert.ErrorIs(t, err, activity.ErrInvalidActivity)
}

func TestProcessActivity_TurnErrorOnEmulator(t *testing.T) {
	sender := &recordingSender{}
	pub := &recordingPublisher{}
	ad := New(sender, WithPublisher(pub))

	failing := bot.Func(func(ctx context.Context, tc *turn.Context) error {
		return errors.New("boom")
	})

	resp, err := ad.ProcessActivity(context.Background(), message(activity.ChannelEmulator, "hi"), "", failing)

	require.NoError(t, err)
	assert.Nil(t, resp)
	assert.Equal(t, []string{ErrorReply, ErrorFollowUpReply}, sender.texts())

	require.Len(t, sender.sent, 3)
	trace := sender.sent[2]
	assert.Equal(t, activity.TypeTrace, trace.Type)
	assert.Equal(t, "TurnError", trace.Label)
	assert.Contains(t, pub.topics(), events.TopicTurnError.Name())
}

func TestProcessActivity_TurnErrorOffEmulatorHasNoTrace(t *testing.T) {
	sender := &recordingSender{}
	ad := New(sender)

	failing := bot.Func(func(ctx context.Context, tc *turn.Context) error {
		return errors.New("boom")
	})

	_, err := ad.ProcessActivity(context.Background(), message("test", "hi"), "", failing)

	require.NoError(t, err)
	require.Len(t, sender.sent, 2)
	assert.Equal(t, []string{ErrorReply, ErrorFollowUpReply}, sender.texts())
}

func TestProcessActivity_PanicIsRecovered(t *testing.T) {
	sender := &recordingSender{}
	var got error
	ad := New(sender, WithTurnErrorHandler(func(ctx context.Context, tc *turn.Context, err error) {
		got = err
	}))

	panicking := bot.Func(func(ctx context.Context, tc *turn.Context) error {
		panic("kaboom")
	})

	_, err := ad.ProcessActivity(context.Background(), message("test", "hi"), "", panicking)

	require.NoError(t, err)
	var pe *PanicError
	require.ErrorAs(t, got, &pe)
	assert.Equal(t, "kaboom", pe.Value)
	assert.NotEmpty(t, pe.Stack)
}

func TestProcessActivity_NilTurnErrorHandlerReturnsError(t *testing.T) {
	ad := New(&recordingSender{}, WithTurnErrorHandler(nil))
	boom := errors.New("boom")

	_, err := ad.ProcessActivity(context.Background(), message("test", "hi"), "", bot.Func(func(ctx context.Context, tc *turn.Context) error {
		return boom
	}))

	assert.ErrorIs(t, err, boom)
}

func TestProcessActivity_ExpectReplies(t *testing.T) {
	sender := &recordingSender{}
	ad := New(sender)
	a := message("test", "hi")
	a.DeliveryMode = activity.DeliveryModeExpectReplies

	resp, err := ad.ProcessActivity(context.Background(), a, "", echoing)

	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusOK, resp.Status)
	body, ok := resp.Body.(activity.ExpectedReplies)
	require.True(t, ok)
	require.Len(t, body.Activities, 1)
	assert.Equal(t, "Echo: hi", body.Activities[0].Text)
	assert.Empty(t, sender.sent, "buffered replies are not sent to the connector")
}

func TestProcessActivity_Invoke(t *testing.T) {
	ad := New(&recordingSender{})
	a := message("test", "")
	a.Type = activity.TypeInvoke
	a.Name = "test/ping"

	resp, err := ad.ProcessActivity(context.Background(), a, "", bot.Func(func(ctx context.Context, tc *turn.Context) error {
		return nil
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotImplemented, resp.Status)

	resp, err = ad.ProcessActivity(context.Background(), a, "", bot.Func(func(ctx context.Context, tc *turn.Context) error {
		tc.SetInvokeResponse(http.StatusOK, map[string]string{"pong": "ok"})
		return nil
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, map[string]string{"pong": "ok"}, resp.Body)
}

func TestProcessActivity_AuthenticatorErrorIsWrapped(t *testing.T) {
	ad := New(&recordingSender{}, WithAuthenticator(AuthenticatorFunc(
		func(context.Context, string, *activity.Activity) error {
			return errors.New("token expired")
		})))

	_, err := ad.ProcessActivity(context.Background(), message("test", "hi"), "Bearer token", echoing)

	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, "unauthorized: token expired", err.Error())
}

func TestProcessActivity_ExpectRepliesInvoke(t *testing.T) {
	sender := &recordingSender{}
	ad := New(sender)
	a := message("test", "")
	a.Type = activity.TypeInvoke
	a.Name = "test/ping"
	a.DeliveryMode = activity.DeliveryModeExpectReplies

	resp, err := ad.ProcessActivity(context.Background(), a, "", bot.Func(func(ctx context.Context, tc *turn.Context) error {
		if _, err := tc.SendText(ctx, "reply"); err != nil {
			return err
		}
		tc.SetInvokeResponse(http.StatusOK, map[string]string{"ok": "1"})
		return nil
	}))

	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusOK, resp.Status)
	body, ok := resp.Body.(activity.ExpectedReplies)
	require.True(t, ok, "expected buffered replies, got %T", resp.Body)
	require.Len(t, body.Activities, 1)
	assert.Equal(t, "reply", body.Activities[0].Text)
	assert.Empty(t, sender.sent)
}

func TestProcessActivity_TurnLoggerIsRequestScoped(t *testing.T) {
	var buf bytes.Buffer
	ctx := middleware.WithLogger(context.Background(),
		slog.New(slog.NewTextHandler(&buf, nil)).With("request_id", "req-9"))
	ad := New(&recordingSender{})

	_, err := ad.ProcessActivity(ctx, message("test", "hi"), "", bot.Func(func(ctx context.Context, tc *turn.Context) error {
		return errors.New("boom")
	}))

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "[on_turn_error] unhandled error")
	assert.Contains(t, buf.String(), "request_id=req-9")
}
