package transcript

import (
	"fmt"

	"maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	"maragu.dev/gomponents/html"
)

// RecentPath serves the transcript fragment polled by the status page.
const RecentPath = "/transcript/recent"

// Panel is the self-refreshing transcript container embedded in the status
// page. It polls RecentPath every two seconds.
func Panel(entries []Entry) gomponents.Node {
	return html.Section(
		html.ID("transcript"),
		hx.Get(RecentPath),
		hx.Trigger("every 2s"),
		hx.Swap("innerHTML"),
		List(entries),
	)
}

// List renders entries as a list, newest last.
func List(entries []Entry) gomponents.Node {
	if len(entries) == 0 {
		return html.P(html.Class("empty"), gomponents.Text("No activity yet."))
	}
	return html.Ol(
		html.Class("transcript"),
		gomponents.Map(entries, entryItem),
	)
}

func entryItem(e Entry) gomponents.Node {
	return html.Li(
		html.Class(fmt.Sprintf("entry %s %s", e.Kind, e.Direction)),
		html.Data("seq", fmt.Sprint(e.Seq)),
		html.Span(html.Class("at"), gomponents.Text(e.At.Format("15:04:05"))),
		html.Span(html.Class("who"), gomponents.Text(label(e))),
		html.Span(html.Class("what"), gomponents.Text(summary(e))),
	)
}

func label(e Entry) string {
	switch {
	case e.Kind == KindError:
		return e.Bot + " error"
	case e.Direction == "outbound":
		return e.Bot
	default:
		return e.From
	}
}

func summary(e Entry) string {
	switch {
	case e.Kind == KindError:
		return e.Error
	case e.Text != "":
		return e.Text
	case e.Attachments > 0:
		return fmt.Sprintf("[%d attachment(s)]", e.Attachments)
	default:
		return "[" + string(e.Type) + "]"
	}
}
