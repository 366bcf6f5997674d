package echo

import (
	"log/slog"

	"github.com/nfrund/botsamples/internal/bot"
	"github.com/nfrund/botsamples/internal/module"
	"github.com/nfrund/botsamples/internal/registry"
)

// Name is the module and bot name selected with BOT_NAME=echo.
const Name = "echo"

// EchoModule registers the echo bot.
type EchoModule struct {
	module.BaseModule
	bot bot.Bot
}

// New creates a new EchoModule instance.
func New() *EchoModule {
	return &EchoModule{
		bot: bot.NewActivityHandler(NewBot()),
	}
}

// Name returns the module name
func (m *EchoModule) Name() string {
	return Name
}

// Register makes the bot available to the server.
func (m *EchoModule) Register(reg *registry.Registry) error {
	registry.Set(reg, registry.BotKey(Name), m.bot)
	slog.Info("EchoModule registered")
	return nil
}
