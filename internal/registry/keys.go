package registry

import (
	"github.com/nfrund/botsamples/internal/bot"
	"github.com/nfrund/botsamples/internal/topicmgr"
)

// Service keys shared between modules. Using typed constants prevents typos
// and type mismatches.
const (
	TopicManagerKey Key[*topicmgr.Manager] = "framework.topics"
)

// BotKey returns the key under which a bot module registers its bot.
func BotKey(name string) Key[bot.Bot] {
	return Key[bot.Bot]("bot." + name)
}
