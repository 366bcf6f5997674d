package server

import (
	"github.com/nfrund/botsamples/internal/handlers"
	"github.com/nfrund/botsamples/internal/middleware"
	"github.com/nfrund/botsamples/internal/registry"
	"github.com/nfrund/botsamples/internal/rendering"
	"github.com/nfrund/botsamples/internal/transcript"
	"github.com/samber/do/v2"
)

// MessagesPath is the Bot Framework messaging endpoint.
const MessagesPath = "/api/messages"

// RegisterRoutes sets up the framework routes. Module routes are mounted
// during boot.
func (s *Server) RegisterRoutes() {
	messages := handlers.NewMessagesHandler(s.adapter, s.bot)

	store, _ := registry.Get(s.reg, transcript.StoreKey)
	status := handlers.NewStatusHandler(
		s.Cfg.GetBotName(),
		s.reg.Bots(),
		"http://"+s.Cfg.GetAddr()+MessagesPath,
		store,
		do.MustInvoke[rendering.Renderer](s.injector),
	)

	s.E.POST(MessagesPath, messages.Post, middleware.RequireJSON, middleware.RateLimiter(s.Cfg.GetRateLimit()))
	s.E.GET("/", status.Get)
	s.E.GET("/health", handlers.Health)
}
