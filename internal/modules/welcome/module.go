package welcome

import (
	"log/slog"

	"github.com/nfrund/botsamples/internal/bot"
	"github.com/nfrund/botsamples/internal/module"
	"github.com/nfrund/botsamples/internal/pubsub"
	"github.com/nfrund/botsamples/internal/registry"
	"github.com/nfrund/botsamples/internal/state"
	"github.com/nfrund/botsamples/internal/topicmgr"
)

// Name is the module and bot name selected with BOT_NAME=welcome.
const Name = "welcome"

// WelcomeModule registers the welcome-user bot.
type WelcomeModule struct {
	module.BaseModule
	bot      bot.Bot
	topicMgr *topicmgr.Manager
}

// Dependencies holds the services required by the WelcomeModule
type Dependencies struct {
	Storage   state.Storage
	Publisher pubsub.Publisher
	TopicMgr  *topicmgr.Manager
}

// New creates a new WelcomeModule instance
func New(deps Dependencies) *WelcomeModule {
	storage := deps.Storage
	if storage == nil {
		storage = state.NewMemoryStorage()
	}
	return &WelcomeModule{
		bot:      bot.NewActivityHandler(NewBot(state.NewUserState(storage), deps.Publisher)),
		topicMgr: deps.TopicMgr,
	}
}

// Name returns the module name
func (m *WelcomeModule) Name() string {
	return Name
}

// Register registers the module's topics and makes the bot available to the
// server.
func (m *WelcomeModule) Register(reg *registry.Registry) error {
	if m.topicMgr != nil {
		if err := RegisterTopics(m.topicMgr); err != nil {
			return err
		}
	}
	registry.Set(reg, registry.BotKey(Name), m.bot)
	slog.Info("WelcomeModule registered")
	return nil
}
