package topics

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/nfrund/botsamples/internal/app"
	"github.com/nfrund/botsamples/internal/config"
	"github.com/nfrund/botsamples/internal/events"
	"github.com/nfrund/botsamples/internal/registry"
	"github.com/nfrund/botsamples/internal/topicmgr"
)

// Initialize registers every framework and module topic with manager
// without starting a server. Module logging is discarded to keep the CLI
// output clean.
func Initialize(manager *topicmgr.Manager) error {
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	defer slog.SetDefault(previous)

	if err := events.RegisterTopics(manager); err != nil {
		return fmt.Errorf("failed to register framework topics: %w", err)
	}

	reg := registry.New(config.FromEnv())
	for _, mod := range app.NewModules(app.Dependencies{TopicMgr: manager}) {
		if err := mod.Register(reg); err != nil {
			return fmt.Errorf("failed to register module %s: %w", mod.Name(), err)
		}
	}
	return nil
}
