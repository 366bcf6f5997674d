package transcript

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/botsamples/internal/events"
	"github.com/nfrund/botsamples/internal/hub"
	"github.com/nfrund/botsamples/internal/module"
	"github.com/nfrund/botsamples/internal/pubsub"
	"github.com/nfrund/botsamples/internal/registry"
	"github.com/nfrund/botsamples/internal/rendering"
)

// Name is the module name.
const Name = "transcript"

// StoreKey exposes the transcript store to other components, e.g. the status
// page.
const StoreKey registry.Key[*Store] = "transcript.store"

// TranscriptModule records turn events from the bus and serves them over
// HTTP and websocket.
type TranscriptModule struct {
	module.BaseModule
	subscriber pubsub.Subscriber
	hub        *hub.Hub
	store      *Store
	renderer   rendering.Renderer
	cancel     context.CancelFunc
}

// Dependencies holds the services required by the TranscriptModule
type Dependencies struct {
	Subscriber pubsub.Subscriber
	Hub        *hub.Hub
	Store      *Store
	Renderer   rendering.Renderer
}

// New creates a new TranscriptModule instance
func New(deps Dependencies) *TranscriptModule {
	store := deps.Store
	if store == nil {
		store = NewStore(DefaultCapacity)
	}
	renderer := deps.Renderer
	if renderer == nil {
		renderer = rendering.NewNodeRenderer()
	}
	return &TranscriptModule{
		subscriber: deps.Subscriber,
		hub:        deps.Hub,
		store:      store,
		renderer:   renderer,
	}
}

// Name returns the module name
func (m *TranscriptModule) Name() string {
	return Name
}

// Store returns the module's transcript store.
func (m *TranscriptModule) Store() *Store {
	return m.store
}

// Register shares the store through the registry.
func (m *TranscriptModule) Register(reg *registry.Registry) error {
	registry.Set(reg, StoreKey, m.store)
	return nil
}

// Boot subscribes to turn events and mounts the transcript routes.
func (m *TranscriptModule) Boot(ctx context.Context, g *echo.Group, reg *registry.Registry) error {
	slog.Info("Booting TranscriptModule...")

	ctx, m.cancel = context.WithCancel(ctx)

	record := func(ctx context.Context, e Entry) error {
		m.record(ctx, e)
		return nil
	}
	if err := pubsub.Subscribe(ctx, m.subscriber, events.ActivityReceived, func(ctx context.Context, ev events.ActivityEvent) error {
		return record(ctx, FromActivityEvent(ev))
	}); err != nil {
		return err
	}
	if err := pubsub.Subscribe(ctx, m.subscriber, events.ActivitySent, func(ctx context.Context, ev events.ActivityEvent) error {
		return record(ctx, FromActivityEvent(ev))
	}); err != nil {
		return err
	}
	if err := pubsub.Subscribe(ctx, m.subscriber, events.TurnError, func(ctx context.Context, ev events.TurnErrorEvent) error {
		return record(ctx, FromTurnErrorEvent(ev))
	}); err != nil {
		return err
	}

	g.GET(RecentPath, m.recentHandler)
	if m.hub != nil {
		g.GET(StreamPath, StreamHandler(m.hub, m.store))
	}
	return nil
}

// Shutdown stops the event subscriptions.
func (m *TranscriptModule) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down TranscriptModule...")
	if m.cancel != nil {
		m.cancel()
	}
	return nil
}

func (m *TranscriptModule) record(ctx context.Context, e Entry) {
	e = m.store.Add(e)
	if m.hub == nil {
		return
	}
	data, err := json.Marshal(e)
	if err != nil {
		slog.Error("Failed to encode transcript entry", "error", err)
		return
	}
	m.hub.Publish(ctx, data)
}

func (m *TranscriptModule) recentHandler(c echo.Context) error {
	return m.renderer.RenderPage(c, http.StatusOK, List(m.store.Recent(0)))
}
