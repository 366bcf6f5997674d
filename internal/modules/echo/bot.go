package echo

import (
	"context"

	"github.com/nfrund/botsamples/internal/activity"
	"github.com/nfrund/botsamples/internal/turn"
)

// Greeting is sent to every member that joins the conversation.
const Greeting = "Hello and welcome!"

// Bot greets new members and echoes back whatever the user says.
type Bot struct{}

// NewBot creates an echo bot.
func NewBot() *Bot {
	return &Bot{}
}

// OnMembersAdded greets each added member individually.
func (b *Bot) OnMembersAdded(ctx context.Context, members []activity.ChannelAccount, tc *turn.Context) error {
	tc.Logger().Info("on_members_added_activity", "members", len(members))
	for range members {
		if _, err := tc.SendText(ctx, Greeting); err != nil {
			return err
		}
	}
	return nil
}

// OnMessage replies with "Echo: " followed by the user's text.
func (b *Bot) OnMessage(ctx context.Context, tc *turn.Context) error {
	tc.Logger().Info("on_message_activity")
	_, err := tc.SendText(ctx, "Echo: "+tc.Activity().Text)
	return err
}
