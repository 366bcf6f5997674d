package welcome

import "github.com/nfrund/botsamples/internal/activity"

const (
	WelcomeMessage = "This is a simple Welcome Bot sample. This bot will introduce you " +
		"to welcoming and greeting users. You can say 'intro' to see the " +
		"introduction card. If you are running this bot in the Bot Framework " +
		"Emulator, press the 'Restart Conversation' button to simulate user joining " +
		"a bot or a channel"

	InfoMessage = "You are seeing this message because the bot received at least one " +
		"'ConversationUpdate' event, indicating you (and possibly others) " +
		"joined the conversation. If you are using the emulator, pressing " +
		"the 'Start Over' button to trigger this event again. The specifics " +
		"of the 'ConversationUpdate' event depends on the channel. You can " +
		"read more information at: " +
		"https://aka.ms/about-botframework-welcome-user"

	PatternMessage = "It is a good pattern to use this event to send general greeting " +
		"to user, explaining what your bot can do. In this example, the bot " +
		"handles 'hello', 'hi', 'help' and 'intro'. Try it now, type 'hi'"

	FirstMessage = "You are seeing this message because this was your first message ever to this bot."
)

// personalGreeting is sent together with FirstMessage.
func personalGreeting(name string) string {
	return "It is a good practice to welcome the user and provide personal greeting. For example, welcome " + name + "."
}

// IntroCard is the hero card shown for "intro" and "help".
func IntroCard() activity.HeroCard {
	return activity.HeroCard{
		Title: "Welcome to Bot Framework!",
		Text: "Welcome to Welcome Users bot sample! This Introduction card " +
			"is a great way to introduce your Bot to the user and suggest " +
			"some things to get them started. We use this opportunity to " +
			"recommend a few next steps for learning more creating and deploying bots.",
		Images: []activity.CardImage{{URL: "https://aka.ms/bf-welcome-card-image"}},
		Buttons: []activity.CardAction{
			{
				Type:  activity.ActionOpenURL,
				Title: "Get an overview",
				Value: "https://docs.microsoft.com/en-us/azure/bot-service/?view=azure-bot-service-4.0",
			},
			{
				Type:  activity.ActionOpenURL,
				Title: "Ask a question",
				Value: "https://stackoverflow.com/questions/tagged/botframework",
			},
			{
				Type:  activity.ActionOpenURL,
				Title: "Learn how to deploy",
				Value: "https://docs.microsoft.com/en-us/azure/bot-service/bot-builder-howto-deploy-azure?view=azure-bot-service-4.0",
			},
		},
	}
}
