package topics

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/nfrund/botsamples/internal/topicmgr"
)

// TopicDisplay represents a topic for display purposes
type TopicDisplay struct {
	Name        string   `json:"name"`
	Scope       string   `json:"scope"`
	Module      string   `json:"module"`
	Description string   `json:"description"`
	Example     string   `json:"example"`
	Fields      []string `json:"fields,omitempty"`
}

func newDisplay(topic topicmgr.Topic) TopicDisplay {
	return TopicDisplay{
		Name:        topic.Name(),
		Scope:       string(topic.Scope()),
		Module:      topic.Module(),
		Description: topic.Description(),
		Example:     topic.Example(),
		Fields:      topic.Fields(),
	}
}

// WriteTable writes entries as an aligned table.
func WriteTable(w io.Writer, entries []topicmgr.Entry) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "NAME\tSCOPE\tMODULE\tDESCRIPTION\tEXAMPLE")
	fmt.Fprintln(tw, "----\t-----\t------\t-----------\t-------")

	for _, e := range entries {
		module := e.Module
		if module == "" {
			module = "-"
		}
		example := ""
		if e.Topic != nil {
			example = e.Topic.Example()
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			e.Name,
			e.Scope,
			module,
			truncateString(e.Description, 40),
			truncateString(example, 30))
	}
	return tw.Flush()
}

// WriteJSON writes entries as an indented JSON document with a count.
func WriteJSON(w io.Writer, entries []topicmgr.Entry) error {
	displays := make([]TopicDisplay, 0, len(entries))
	for _, e := range entries {
		displays = append(displays, newDisplay(e.Topic))
	}

	output := struct {
		Topics []TopicDisplay `json:"topics"`
		Count  int            `json:"count"`
	}{
		Topics: displays,
		Count:  len(displays),
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// WriteDetails writes everything known about one topic.
func WriteDetails(w io.Writer, topic topicmgr.Topic, format string) error {
	if format == "json" {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(newDisplay(topic))
	}

	module := topic.Module()
	if module == "" {
		module = "-"
	}
	fmt.Fprintf(w, "Name:        %s\n", topic.Name())
	fmt.Fprintf(w, "Scope:       %s\n", topic.Scope())
	fmt.Fprintf(w, "Module:      %s\n", module)
	fmt.Fprintf(w, "Description: %s\n", topic.Description())
	fmt.Fprintf(w, "Example:     %s\n", topic.Example())
	if fields := topic.Fields(); len(fields) > 0 {
		fmt.Fprintf(w, "Fields:      %s\n", strings.Join(fields, ", "))
	}
	return nil
}

// truncateString truncates a string to maxLen characters, adding "..." if truncated
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return "..."
	}
	return s[:maxLen-3] + "..."
}
