package activity

import (
	"encoding/json"
	"time"
)

// ErrorValueType is the valueType of trace activities carrying turn errors.
const ErrorValueType = "https://www.botframework.com/schemas/error"

// InputHint values.
const (
	InputHintAcceptingInput = "acceptingInput"
	InputHintIgnoringInput  = "ignoringInput"
	InputHintExpectingInput = "expectingInput"
)

// NewText builds a plain message activity.
func NewText(text string) *Activity {
	return &Activity{
		Type:      TypeMessage,
		Text:      text,
		InputHint: InputHintAcceptingInput,
	}
}

// NewAttachment builds a message activity carrying a single attachment.
func NewAttachment(att Attachment) *Activity {
	return &Activity{
		Type:        TypeMessage,
		Attachments: []Attachment{att},
		InputHint:   InputHintAcceptingInput,
	}
}

// NewTrace builds a trace activity stamped with the current UTC time.
// Channels other than the emulator never see trace activities.
func NewTrace(name, label, valueType string, value any) (*Activity, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &Activity{
		Type:      TypeTrace,
		Name:      name,
		Label:     label,
		ValueType: valueType,
		Value:     raw,
		Timestamp: &now,
	}, nil
}

// NewErrorTrace builds the trace activity sent to the emulator when a turn
// fails.
func NewErrorTrace(err error) *Activity {
	// Marshalling a string cannot fail.
	trace, _ := NewTrace("on_turn_error Trace", "TurnError", ErrorValueType, err.Error())
	return trace
}
