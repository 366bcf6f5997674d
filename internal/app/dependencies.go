package app

import (
	"github.com/nfrund/botsamples/internal/hub"
	"github.com/nfrund/botsamples/internal/modules/welcome"
	"github.com/nfrund/botsamples/internal/pubsub"
	"github.com/nfrund/botsamples/internal/rendering"
	"github.com/nfrund/botsamples/internal/state"
	"github.com/nfrund/botsamples/internal/topicmgr"
	"github.com/nfrund/botsamples/internal/transcript"
)

// Dependencies holds the core services that are required by the application's modules.
// This struct is passed from the server wiring to build the modules.
type Dependencies struct {
	Publisher  pubsub.Publisher
	Subscriber pubsub.Subscriber
	Renderer   rendering.Renderer
	TopicMgr   *topicmgr.Manager
	Hub        *hub.Hub
	Storage    state.Storage
}

// welcomeDeps creates the dependency struct for the welcome module.
func welcomeDeps(deps Dependencies) welcome.Dependencies {
	return welcome.Dependencies{
		Storage:   deps.Storage,
		Publisher: deps.Publisher,
		TopicMgr:  deps.TopicMgr,
	}
}

// transcriptDeps creates the dependency struct for the transcript module.
func transcriptDeps(deps Dependencies) transcript.Dependencies {
	return transcript.Dependencies{
		Subscriber: deps.Subscriber,
		Hub:        deps.Hub,
		Renderer:   deps.Renderer,
	}
}
