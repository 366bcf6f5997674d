// Package topicmgr keeps the catalogue of pub/sub topics the bot publishes
// turn events on, so that topic names are defined once and can be listed
// and validated.
//
// Framework topics are owned by the adapter and the transcript service:
//
//	var ActivityReceived = topicmgr.DefineFramework(topicmgr.TopicConfig{
//		Name:        "bot.activity.received",
//		Description: "An inbound activity passed authentication and validation",
//		Example:     `{"activity":{"type":"message","text":"hi"}}`,
//	})
//
// Module topics are owned by a bot module:
//
//	var UserWelcomed = topicmgr.DefineModule(topicmgr.TopicConfig{
//		Name:        "welcome.user.greeted",
//		Module:      "welcome",
//		Description: "A user received the first-message greeting",
//	})
//
// Topics are registered with a Manager, usually the process-wide Default():
//
//	if err := topicmgr.Default().Register(ActivityReceived); err != nil {
//		return err
//	}
package topicmgr
