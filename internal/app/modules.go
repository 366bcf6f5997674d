package app

import (
	"github.com/nfrund/botsamples/internal/module"
	"github.com/nfrund/botsamples/internal/modules/echo"
	"github.com/nfrund/botsamples/internal/modules/welcome"
	"github.com/nfrund/botsamples/internal/transcript"
)

// NewModules creates and returns the list of all active modules for the application.
// This is the single source of truth for which bots and services are enabled.
func NewModules(deps Dependencies) []module.Module {
	return []module.Module{
		// Framework services.
		transcript.New(transcriptDeps(deps)),

		// Bots, selected at runtime with BOT_NAME.
		echo.New(),
		welcome.New(welcomeDeps(deps)),
	}
}
