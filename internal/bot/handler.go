package bot

import (
	"context"

	"github.com/nfrund/botsamples/internal/activity"
	"github.com/nfrund/botsamples/internal/turn"
)

// Bot is anything that can run a turn.
type Bot interface {
	OnTurn(ctx context.Context, tc *turn.Context) error
}

// Func adapts a function to the Bot interface.
type Func func(ctx context.Context, tc *turn.Context) error

// OnTurn calls f(ctx, tc).
func (f Func) OnTurn(ctx context.Context, tc *turn.Context) error {
	return f(ctx, tc)
}

// MessageHandler handles message activities.
type MessageHandler interface {
	OnMessage(ctx context.Context, tc *turn.Context) error
}

// MembersAddedHandler handles members joining the conversation. The bot
// itself is never part of members.
type MembersAddedHandler interface {
	OnMembersAdded(ctx context.Context, members []activity.ChannelAccount, tc *turn.Context) error
}

// MembersRemovedHandler handles members leaving the conversation.
type MembersRemovedHandler interface {
	OnMembersRemoved(ctx context.Context, members []activity.ChannelAccount, tc *turn.Context) error
}

// EventHandler handles event activities.
type EventHandler interface {
	OnEvent(ctx context.Context, tc *turn.Context) error
}

// InvokeHandler handles invoke activities. Implementations should call
// tc.SetInvokeResponse.
type InvokeHandler interface {
	OnInvoke(ctx context.Context, tc *turn.Context) error
}

// UnrecognizedHandler handles every activity type without a dedicated hook.
type UnrecognizedHandler interface {
	OnUnrecognized(ctx context.Context, tc *turn.Context) error
}

// AfterTurnHandler runs after a turn was dispatched without error, typically
// to save state.
type AfterTurnHandler interface {
	AfterTurn(ctx context.Context, tc *turn.Context) error
}

// ActivityHandler routes a turn to the hooks its handler implements. Hooks
// the handler does not implement are no-ops.
type ActivityHandler struct {
	handler any
}

// Compile-time interface compliance check
var _ Bot = (*ActivityHandler)(nil)

// NewActivityHandler wraps handler, which may implement any of the hook
// interfaces in this package.
func NewActivityHandler(handler any) *ActivityHandler {
	return &ActivityHandler{handler: handler}
}

// OnTurn dispatches by activity type.
func (h *ActivityHandler) OnTurn(ctx context.Context, tc *turn.Context) error {
	if err := h.dispatch(ctx, tc); err != nil {
		return err
	}
	if after, ok := h.handler.(AfterTurnHandler); ok {
		return after.AfterTurn(ctx, tc)
	}
	return nil
}

func (h *ActivityHandler) dispatch(ctx context.Context, tc *turn.Context) error {
	a := tc.Activity()

	switch a.Type {
	case activity.TypeMessage:
		if mh, ok := h.handler.(MessageHandler); ok {
			return mh.OnMessage(ctx, tc)
		}
		return nil

	case activity.TypeConversationUpdate:
		return h.onConversationUpdate(ctx, tc)

	case activity.TypeEvent:
		if eh, ok := h.handler.(EventHandler); ok {
			return eh.OnEvent(ctx, tc)
		}
		return nil

	case activity.TypeInvoke:
		if ih, ok := h.handler.(InvokeHandler); ok {
			return ih.OnInvoke(ctx, tc)
		}
		return nil
	}

	if uh, ok := h.handler.(UnrecognizedHandler); ok {
		return uh.OnUnrecognized(ctx, tc)
	}
	return nil
}

func (h *ActivityHandler) onConversationUpdate(ctx context.Context, tc *turn.Context) error {
	a := tc.Activity()
	botID := a.Recipient.ID

	if mh, ok := h.handler.(MembersAddedHandler); ok {
		if added := a.MembersAddedExcept(botID); len(added) > 0 {
			if err := mh.OnMembersAdded(ctx, added, tc); err != nil {
				return err
			}
		}
	}

	if mh, ok := h.handler.(MembersRemovedHandler); ok {
		if removed := a.MembersRemovedExcept(botID); len(removed) > 0 {
			if err := mh.OnMembersRemoved(ctx, removed, tc); err != nil {
				return err
			}
		}
	}
	return nil
}
