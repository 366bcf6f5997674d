package app

import (
	"testing"

	"github.com/nfrund/botsamples/internal/config"
	"github.com/nfrund/botsamples/internal/pubsub"
	"github.com/nfrund/botsamples/internal/registry"
	"github.com/nfrund/botsamples/internal/topicmgr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewModules_RegistersBots(t *testing.T) {
	bus := pubsub.NewWatermillBridge()
	defer bus.Close()
	mgr := topicmgr.NewManager()

	mods := NewModules(Dependencies{
		Publisher:  bus,
		Subscriber: bus,
		TopicMgr:   mgr,
	})

	reg := registry.New(&config.Config{})
	names := make([]string, 0, len(mods))
	for _, m := range mods {
		require.NoError(t, m.Register(reg))
		names = append(names, m.Name())
	}

	assert.Equal(t, []string{"transcript", "echo", "welcome"}, names)
	assert.Equal(t, []string{"echo", "welcome"}, reg.Bots())
	assert.Len(t, mgr.ListByModule("welcome"), 1)
}
