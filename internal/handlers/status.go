package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/botsamples/internal/rendering"
	"github.com/nfrund/botsamples/internal/transcript"
	"maragu.dev/gomponents"
	"maragu.dev/gomponents/components"
	"maragu.dev/gomponents/html"
)

const htmxScript = "https://unpkg.com/htmx.org@2.0.4"

// StatusHandler renders the status page.
type StatusHandler struct {
	botName  string
	bots     []string
	endpoint string
	store    *transcript.Store
	renderer rendering.Renderer
}

// NewStatusHandler creates the status page handler. store may be nil when
// the transcript module is disabled.
func NewStatusHandler(botName string, bots []string, endpoint string, store *transcript.Store, renderer rendering.Renderer) *StatusHandler {
	return &StatusHandler{
		botName:  botName,
		bots:     bots,
		endpoint: endpoint,
		store:    store,
		renderer: renderer,
	}
}

// Get handles GET /.
func (h *StatusHandler) Get(c echo.Context) error {
	return h.renderer.RenderPage(c, http.StatusOK, h.page())
}

func (h *StatusHandler) page() gomponents.Node {
	var recent []transcript.Entry
	if h.store != nil {
		recent = h.store.Recent(0)
	}

	return components.HTML5(components.HTML5Props{
		Title:    "Bot sample: " + h.botName,
		Language: "en",
		Head: []gomponents.Node{
			html.Script(html.Src(htmxScript)),
		},
		Body: []gomponents.Node{
			html.Main(
				html.H1(gomponents.Text("Bot sample: "+h.botName)),
				html.Dl(
					html.Dt(gomponents.Text("Messaging endpoint")),
					html.Dd(html.Code(gomponents.Text(h.endpoint))),
					html.Dt(gomponents.Text("Available bots")),
					html.Dd(gomponents.Text(strings.Join(h.bots, ", "))),
				),
				html.P(gomponents.Text("Connect the Bot Framework Emulator to the endpoint above to start a conversation.")),
				html.H2(gomponents.Text("Recent activity")),
				gomponents.If(h.store != nil, transcript.Panel(recent)),
				gomponents.If(h.store == nil, html.P(gomponents.Text("Transcript disabled."))),
			),
		},
	})
}
