package welcome

import (
	"github.com/nfrund/botsamples/internal/pubsub"
	"github.com/nfrund/botsamples/internal/topicmgr"
)

// UserGreetedEvent is published the first time a user is welcomed.
type UserGreetedEvent struct {
	ChannelID string `json:"channel_id"`
	UserID    string `json:"user_id"`
	UserName  string `json:"user_name"`
}

var (
	TopicUserGreeted = topicmgr.DefineModule(topicmgr.TopicConfig{
		Name:        "welcome.user.greeted",
		Module:      Name,
		Description: "A user received the personal welcome on their first message",
		Example:     `{"channel_id":"emulator","user_id":"u-1","user_name":"User"}`,
		Fields:      []string{"channel_id", "user_id", "user_name"},
	})

	UserGreeted = pubsub.NewEvent[UserGreetedEvent](TopicUserGreeted)
)

// RegisterTopics registers the welcome module's topics with manager.
func RegisterTopics(manager *topicmgr.Manager) error {
	return manager.EnsureRegistered(TopicUserGreeted)
}
