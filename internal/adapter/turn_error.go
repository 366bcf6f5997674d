package adapter

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/nfrund/botsamples/internal/activity"
	"github.com/nfrund/botsamples/internal/turn"
)

// Replies sent to the user when a turn fails.
const (
	ErrorReply         = "The bot encountered an error or bug."
	ErrorFollowUpReply = "To continue to run this bot, please fix the bot source code."
)

// PanicError wraps a value recovered from a panicking bot.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// DefaultTurnErrorHandler logs err with a stack trace, apologises to the user
// and, on the emulator, sends a TurnError trace activity.
func DefaultTurnErrorHandler(ctx context.Context, tc *turn.Context, err error) {
	stack := debug.Stack()
	var pe *PanicError
	if errors.As(err, &pe) {
		stack = pe.Stack
	}
	tc.Logger().Error("[on_turn_error] unhandled error", "error", err, "stack_trace", string(stack))

	for _, text := range []string{ErrorReply, ErrorFollowUpReply} {
		if _, sendErr := tc.SendText(ctx, text); sendErr != nil {
			tc.Logger().Error("Failed to send turn error reply", "error", sendErr)
			return
		}
	}

	if tc.Activity().ChannelID == activity.ChannelEmulator {
		if _, sendErr := tc.SendActivity(ctx, activity.NewErrorTrace(err)); sendErr != nil {
			tc.Logger().Error("Failed to send turn error trace", "error", sendErr)
		}
	}
}
