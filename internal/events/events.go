package events

import (
	"time"

	"github.com/nfrund/botsamples/internal/activity"
	"github.com/nfrund/botsamples/internal/pubsub"
	"github.com/nfrund/botsamples/internal/topicmgr"
)

// Direction says whether an activity entered or left the bot.
type Direction string

const (
	DirectionInbound  Direction = "inbound"
	DirectionOutbound Direction = "outbound"
)

// ActivityEvent is published for every activity the adapter receives or
// sends.
type ActivityEvent struct {
	Bot       string             `json:"bot"`
	Direction Direction          `json:"direction"`
	Activity  *activity.Activity `json:"activity"`
	At        time.Time          `json:"at"`
}

// TurnErrorEvent is published when a bot fails a turn.
type TurnErrorEvent struct {
	Bot      string             `json:"bot"`
	Error    string             `json:"error"`
	Activity *activity.Activity `json:"activity"`
	At       time.Time          `json:"at"`
}

var (
	TopicActivityReceived = topicmgr.DefineFramework(topicmgr.TopicConfig{
		Name:        "bot.activity.received",
		Description: "An inbound activity passed authentication and validation",
		Example:     `{"bot":"echo","direction":"inbound","activity":{"type":"message","text":"hi"}}`,
		Fields:      []string{"bot", "direction", "activity", "at"},
	})

	TopicActivitySent = topicmgr.DefineFramework(topicmgr.TopicConfig{
		Name:        "bot.activity.sent",
		Description: "The bot delivered an outbound activity",
		Example:     `{"bot":"echo","direction":"outbound","activity":{"type":"message","text":"Echo: hi"}}`,
		Fields:      []string{"bot", "direction", "activity", "at"},
	})

	TopicTurnError = topicmgr.DefineFramework(topicmgr.TopicConfig{
		Name:        "bot.turn.error",
		Description: "A turn ended with an unhandled error",
		Example:     `{"bot":"echo","error":"boom","activity":{"type":"message"}}`,
		Fields:      []string{"bot", "error", "activity", "at"},
	})

	ActivityReceived = pubsub.NewEvent[ActivityEvent](TopicActivityReceived)
	ActivitySent     = pubsub.NewEvent[ActivityEvent](TopicActivitySent)
	TurnError        = pubsub.NewEvent[TurnErrorEvent](TopicTurnError)
)

// RegisterTopics registers the turn event topics with manager.
func RegisterTopics(manager *topicmgr.Manager) error {
	return manager.EnsureRegistered(TopicActivityReceived, TopicActivitySent, TopicTurnError)
}
