package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/nfrund/botsamples/internal/adapter"
	"github.com/nfrund/botsamples/internal/bot"
	"github.com/nfrund/botsamples/internal/config"
	"github.com/nfrund/botsamples/internal/hub"
	"github.com/nfrund/botsamples/internal/middleware"
	"github.com/nfrund/botsamples/internal/module"
	"github.com/nfrund/botsamples/internal/pubsub"
	"github.com/nfrund/botsamples/internal/registry"
	"github.com/samber/do/v2"
)

// ErrUnknownBot is returned when BOT_NAME does not match a registered bot.
var ErrUnknownBot = errors.New("unknown bot")

// Server holds the dependencies for the HTTP server.
type Server struct {
	E   *echo.Echo
	Cfg config.Provider

	injector *do.RootScope
	reg      *registry.Registry
	modules  []module.Module
	adapter  *adapter.Adapter
	bot      bot.Bot
	bus      *pubsub.WatermillBridge
	hub      *hub.Hub

	cancel context.CancelFunc
}

// New builds the server: it wires services, registers and boots every module
// and mounts the routes. Background work stops when Shutdown is called.
func New(cfg config.Provider) (*Server, error) {
	injector := newContainer(cfg)

	s := &Server{
		E:        echo.New(),
		Cfg:      cfg,
		injector: injector,
	}
	s.E.HideBanner = true
	s.E.HidePort = true

	var err error
	if s.reg, err = do.Invoke[*registry.Registry](injector); err != nil {
		return nil, fmt.Errorf("failed to build registry: %w", err)
	}
	if s.modules, err = do.Invoke[[]module.Module](injector); err != nil {
		return nil, fmt.Errorf("failed to build modules: %w", err)
	}
	if s.adapter, err = do.Invoke[*adapter.Adapter](injector); err != nil {
		return nil, fmt.Errorf("failed to build adapter: %w", err)
	}
	s.bus = do.MustInvoke[*pubsub.WatermillBridge](injector)
	s.hub = do.MustInvoke[*hub.Hub](injector)

	setupErrorHandling(s.E)
	s.E.Use(echomw.RequestID())
	s.E.Use(middleware.Logger)
	s.E.Use(echomw.Recover())

	for _, m := range s.modules {
		if err := m.Register(s.reg); err != nil {
			return nil, fmt.Errorf("failed to register module %s: %w", m.Name(), err)
		}
	}

	b, ok := registry.Get(s.reg, registry.BotKey(cfg.GetBotName()))
	if !ok {
		return nil, fmt.Errorf("%w %q, available: %s", ErrUnknownBot, cfg.GetBotName(), strings.Join(s.reg.Bots(), ", "))
	}
	s.bot = b

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	go s.hub.Run(ctx)

	root := s.E.Group("")
	for _, m := range s.modules {
		if err := m.Boot(ctx, root, s.reg); err != nil {
			cancel()
			return nil, fmt.Errorf("failed to boot module %s: %w", m.Name(), err)
		}
	}

	s.RegisterRoutes()
	slog.Info("Server ready", "bot", cfg.GetBotName(), "modules", module.Names(s.modules))
	return s, nil
}
