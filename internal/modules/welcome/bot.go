package welcome

import (
	"context"
	"fmt"

	"github.com/nfrund/botsamples/internal/activity"
	"github.com/nfrund/botsamples/internal/pubsub"
	"github.com/nfrund/botsamples/internal/state"
	"github.com/nfrund/botsamples/internal/turn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// UserProfile is persisted per user across turns.
type UserProfile struct {
	DidWelcomeUser bool `json:"did_welcome_user"`
}

// Bot welcomes users the first time they write and answers a few keywords
// afterwards.
type Bot struct {
	userState *state.UserState
	profile   *state.Property[*UserProfile]
	publisher pubsub.Publisher
	lower     cases.Caser
}

// NewBot creates a welcome bot storing its flag in userState. publisher may be
// nil.
func NewBot(userState *state.UserState, publisher pubsub.Publisher) *Bot {
	if publisher == nil {
		publisher = pubsub.NopPublisher{}
	}
	return &Bot{
		userState: userState,
		profile:   state.NewProperty[*UserProfile](userState, "WelcomeUserState"),
		publisher: publisher,
		lower:     cases.Lower(language.Und),
	}
}

// OnMembersAdded greets each new member by name.
func (b *Bot) OnMembersAdded(ctx context.Context, members []activity.ChannelAccount, tc *turn.Context) error {
	for _, member := range members {
		texts := []string{
			fmt.Sprintf("Hi there %s. %s", member.Name, WelcomeMessage),
			InfoMessage,
			PatternMessage,
		}
		for _, text := range texts {
			if _, err := tc.SendText(ctx, text); err != nil {
				return err
			}
		}
	}
	return nil
}

// OnMessage sends the personal welcome on a user's first message and
// handles keywords on later ones.
func (b *Bot) OnMessage(ctx context.Context, tc *turn.Context) error {
	profile, err := b.profile.Get(ctx, tc, func() *UserProfile { return &UserProfile{} })
	if err != nil {
		return err
	}

	if !profile.DidWelcomeUser {
		profile.DidWelcomeUser = true
		name := tc.Activity().From.Name
		if _, err := tc.SendText(ctx, FirstMessage); err != nil {
			return err
		}
		if _, err := tc.SendText(ctx, personalGreeting(name)); err != nil {
			return err
		}
		b.publishGreeted(ctx, tc)
		return nil
	}

	text := b.lower.String(tc.Activity().Text)
	switch text {
	case "hello", "hi":
		_, err = tc.SendText(ctx, fmt.Sprintf("You said %s.", text))
	case "intro", "help":
		_, err = tc.SendActivity(ctx, activity.NewAttachment(IntroCard().Attachment()))
	default:
		_, err = tc.SendText(ctx, WelcomeMessage)
	}
	return err
}

// AfterTurn persists the user's profile.
func (b *Bot) AfterTurn(ctx context.Context, tc *turn.Context) error {
	return b.userState.SaveChanges(ctx, tc)
}

func (b *Bot) publishGreeted(ctx context.Context, tc *turn.Context) {
	a := tc.Activity()
	payload := UserGreetedEvent{
		ChannelID: a.ChannelID,
		UserID:    a.From.ID,
		UserName:  a.From.Name,
	}
	conversationID := ""
	if a.Conversation != nil {
		conversationID = a.Conversation.ID
	}
	if err := pubsub.Publish(ctx, b.publisher, UserGreeted, conversationID, payload); err != nil {
		tc.Logger().Warn("Failed to publish user greeted event", "error", err)
	}
}
