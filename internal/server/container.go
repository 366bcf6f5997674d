package server

import (
	"context"
	"log/slog"

	"github.com/nfrund/botsamples/internal/adapter"
	"github.com/nfrund/botsamples/internal/app"
	"github.com/nfrund/botsamples/internal/config"
	"github.com/nfrund/botsamples/internal/connector"
	"github.com/nfrund/botsamples/internal/events"
	"github.com/nfrund/botsamples/internal/hub"
	"github.com/nfrund/botsamples/internal/module"
	"github.com/nfrund/botsamples/internal/pubsub"
	"github.com/nfrund/botsamples/internal/registry"
	"github.com/nfrund/botsamples/internal/rendering"
	"github.com/nfrund/botsamples/internal/state"
	"github.com/nfrund/botsamples/internal/topicmgr"
	"github.com/nfrund/botsamples/internal/turn"
	"github.com/samber/do/v2"
	"go.opentelemetry.io/otel/trace"
)

// tracing holds the bus tracer. The injector calls Shutdown to flush spans.
type tracing struct {
	tracer   trace.Tracer
	shutdown func()
}

func (t *tracing) Shutdown() {
	t.shutdown()
}

// newContainer wires the application services. Services are built lazily on
// first invocation.
func newContainer(cfg config.Provider) *do.RootScope {
	i := do.New()

	do.ProvideValue(i, cfg)

	do.Provide(i, func(i do.Injector) (*topicmgr.Manager, error) {
		mgr := topicmgr.NewManager()
		if err := events.RegisterTopics(mgr); err != nil {
			return nil, err
		}
		return mgr, nil
	})

	do.Provide(i, func(i do.Injector) (*tracing, error) {
		tracer, shutdown, err := pubsub.SetupOTel(context.Background(), pubsub.LoadTracingConfigFromEnv())
		if err != nil {
			return nil, err
		}
		return &tracing{tracer: tracer, shutdown: shutdown}, nil
	})

	do.Provide(i, func(i do.Injector) (*pubsub.WatermillBridge, error) {
		tr := do.MustInvoke[*tracing](i)
		return pubsub.NewWatermillBridge(
			pubsub.WithTracer(tr.tracer),
			pubsub.WithLogger(pubsub.NewSlogAdapter(slog.Default())),
		), nil
	})

	do.Provide(i, func(i do.Injector) (*hub.Hub, error) {
		return hub.NewHub(), nil
	})

	do.Provide(i, func(i do.Injector) (rendering.Renderer, error) {
		return rendering.NewNodeRenderer(), nil
	})

	do.Provide(i, func(i do.Injector) (state.Storage, error) {
		return state.NewMemoryStorage(), nil
	})

	do.Provide(i, func(i do.Injector) (turn.Sender, error) {
		cfg := do.MustInvoke[config.Provider](i)
		return connector.NewWithCredentials(context.Background(), connector.Credentials{
			AppID:       cfg.GetAppID(),
			AppPassword: cfg.GetAppPassword(),
			TenantID:    cfg.GetAppTenantID(),
		}), nil
	})

	do.Provide(i, func(i do.Injector) (*adapter.Adapter, error) {
		cfg := do.MustInvoke[config.Provider](i)
		return adapter.New(
			do.MustInvoke[turn.Sender](i),
			adapter.WithAuthenticator(adapter.NewAuthenticator(cfg.GetAppID())),
			adapter.WithPublisher(do.MustInvoke[*pubsub.WatermillBridge](i)),
			adapter.WithBotName(cfg.GetBotName()),
		), nil
	})

	do.Provide(i, func(i do.Injector) (*registry.Registry, error) {
		reg := registry.New(do.MustInvoke[config.Provider](i))
		registry.Set(reg, registry.TopicManagerKey, do.MustInvoke[*topicmgr.Manager](i))
		return reg, nil
	})

	do.Provide(i, func(i do.Injector) ([]module.Module, error) {
		bus := do.MustInvoke[*pubsub.WatermillBridge](i)
		return app.NewModules(app.Dependencies{
			Publisher:  bus,
			Subscriber: bus,
			Renderer:   do.MustInvoke[rendering.Renderer](i),
			TopicMgr:   do.MustInvoke[*topicmgr.Manager](i),
			Hub:        do.MustInvoke[*hub.Hub](i),
			Storage:    do.MustInvoke[state.Storage](i),
		}), nil
	})

	return i
}
