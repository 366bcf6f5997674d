package welcome

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/nfrund/botsamples/internal/activity"
	"github.com/nfrund/botsamples/internal/bot"
	"github.com/nfrund/botsamples/internal/config"
	"github.com/nfrund/botsamples/internal/pubsub"
	"github.com/nfrund/botsamples/internal/registry"
	"github.com/nfrund/botsamples/internal/state"
	"github.com/nfrund/botsamples/internal/topicmgr"
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

// harness runs turns against one bot and shared storage.
type harness struct {
	t       *testing.T
	storage *state.AferoStorage
	pub     *recordingPublisher
	bot     bot.Bot
}

func newHarness(t *testing.T) *harness {
	storage := state.NewMemoryStorage()
	pub := &recordingPublisher{}
	return &harness{
		t:       t,
		storage: storage,
		pub:     pub,
		bot:     bot.NewActivityHandler(NewBot(state.NewUserState(storage), pub)),
	}
}

func (h *harness) turn(a *activity.Activity) []*activity.Activity {
	h.t.Helper()
	sender := &recordingSender{}
	require.NoError(h.t, h.bot.OnTurn(context.Background(), turn.New(a, sender)))
	return sender.sent
}

func texts(acts []*activity.Activity) []string {
	out := make([]string, 0, len(acts))
	for _, a := range acts {
		out = append(out, a.Text)
	}
	return out
}

func newActivity(typ activity.Type, text string) *activity.Activity {
	return &activity.Activity{
		Type:         typ,
		ID:           "act-1",
		ChannelID:    activity.ChannelEmulator,
		ServiceURL:   "http://localhost:3979",
		Text:         text,
		From:         activity.ChannelAccount{ID: "user-1", Name: "Ada"},
		Recipient:    activity.ChannelAccount{ID: "bot-1", Name: "Bot"},
		Conversation: &activity.ConversationAccount{ID: "conv-1"},
	}
}

func TestWelcomeBot_MembersAdded(t *testing.T) {
	h := newHarness(t)
	a := newActivity(activity.TypeConversationUpdate, "")
	a.MembersAdded = []activity.ChannelAccount{
		{ID: "bot-1", Name: "Bot"},
		{ID: "user-1", Name: "Ada"},
	}

	got := texts(h.turn(a))

	assert.Equal(t, []string{
		"Hi there Ada. " + WelcomeMessage,
		InfoMessage,
		PatternMessage,
	}, got)
}

func TestWelcomeBot_FirstMessageThenKeywords(t *testing.T) {
	h := newHarness(t)

	first := texts(h.turn(newActivity(activity.TypeMessage, "anything")))
	assert.Equal(t, []string{
		FirstMessage,
		"It is a good practice to welcome the user and provide personal greeting. For example, welcome Ada.",
	}, first)

	require.Len(t, h.pub.msgs, 1)
	assert.Equal(t, TopicUserGreeted.Name(), h.pub.msgs[0].Topic)
	var ev UserGreetedEvent
	require.NoError(t, json.Unmarshal(h.pub.msgs[0].Payload, &ev))
	assert.Equal(t, UserGreetedEvent{ChannelID: "emulator", UserID: "user-1", UserName: "Ada"}, ev)

	assert.Equal(t, []string{"You said hello."}, texts(h.turn(newActivity(activity.TypeMessage, "Hello"))))
	assert.Equal(t, []string{"You said hi."}, texts(h.turn(newActivity(activity.TypeMessage, "HI"))))
	assert.Equal(t, []string{WelcomeMessage}, texts(h.turn(newActivity(activity.TypeMessage, "what?"))))
	assert.Len(t, h.pub.msgs, 1, "the greeting is published once")
}

func TestWelcomeBot_IntroCard(t *testing.T) {
	h := newHarness(t)
	h.turn(newActivity(activity.TypeMessage, "first"))

	for _, keyword := range []string{"intro", "Help"} {
		sent := h.turn(newActivity(activity.TypeMessage, keyword))

		require.Len(t, sent, 1, keyword)
		require.Len(t, sent[0].Attachments, 1)
		att := sent[0].Attachments[0]
		assert.Equal(t, activity.ContentTypeHeroCard, att.ContentType)
		card, ok := att.Content.(activity.HeroCard)
		require.True(t, ok)
		assert.Equal(t, "Welcome to Bot Framework!", card.Title)
		assert.Len(t, card.Buttons, 3)
	}
}

func TestWelcomeBot_StateIsPerUser(t *testing.T) {
	h := newHarness(t)
	h.turn(newActivity(activity.TypeMessage, "hi"))

	other := newActivity(activity.TypeMessage, "hi")
	other.From = activity.ChannelAccount{ID: "user-2", Name: "Grace"}

	got := texts(h.turn(other))
	require.Len(t, got, 2)
	assert.Equal(t, FirstMessage, got[0])
	assert.Contains(t, got[1], "welcome Grace.")
}

func TestWelcomeBot_StateIsSaved(t *testing.T) {
	h := newHarness(t)
	h.turn(newActivity(activity.TypeMessage, "hi"))

	items, err := h.storage.Read(context.Background(), "emulator/users/user-1")
	require.NoError(t, err)
	require.Contains(t, items, "emulator/users/user-1")
	assert.JSONEq(t, `{"WelcomeUserState":{"did_welcome_user":true}}`, string(items["emulator/users/user-1"]))
}

func TestWelcomeModule_Register(t *testing.T) {
	reg := registry.New(&config.Config{})
	mgr := topicmgr.NewManager()
	m := New(Dependencies{TopicMgr: mgr})

	require.NoError(t, m.Register(reg))

	_, ok := registry.Get(reg, registry.BotKey(Name))
	assert.True(t, ok)
	_, ok = mgr.Get(TopicUserGreeted.Name())
	assert.True(t, ok)
}
