package module

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/botsamples/internal/registry"
)

// Module is a self-contained unit of the server: a bot, or a framework
// service such as the transcript.
//
// The server calls Register on every module, then Boot on every module, and
// Shutdown in reverse order when it stops.
type Module interface {
	// Name returns a unique identifier. For bots it is the BOT_NAME value.
	Name() string

	// Register publishes the module's bots and stores with the registry and
	// registers its event topics.
	Register(reg *registry.Registry) error

	// Boot mounts routes and starts subscriptions. ctx is cancelled when the
	// server stops.
	Boot(ctx context.Context, router *echo.Group, reg *registry.Registry) error

	// Shutdown releases anything Boot started.
	Shutdown(ctx context.Context) error
}

// BaseModule provides no-op Register, Boot and Shutdown. Bot modules embed it
// and only implement Name and Register.
type BaseModule struct{}

func (m *BaseModule) Register(reg *registry.Registry) error { return nil }

func (m *BaseModule) Boot(ctx context.Context, router *echo.Group, reg *registry.Registry) error {
	return nil
}

func (m *BaseModule) Shutdown(ctx context.Context) error { return nil }

// Names returns the names of mods in order.
func Names(mods []Module) []string {
	names := make([]string, 0, len(mods))
	for _, m := range mods {
		names = append(names, m.Name())
	}
	return names
}
