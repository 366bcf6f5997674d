package activity

import (
	"encoding/json"
	"time"
)

// Type identifies the kind of an activity.
type Type string

// Activity types understood by the adapter.
const (
	TypeMessage            Type = "message"
	TypeConversationUpdate Type = "conversationUpdate"
	TypeTrace              Type = "trace"
	TypeInvoke             Type = "invoke"
	TypeTyping             Type = "typing"
	TypeEndOfConversation  Type = "endOfConversation"
	TypeEvent              Type = "event"
)

// DeliveryMode controls how outbound activities for a turn are delivered.
type DeliveryMode string

const (
	DeliveryModeNormal        DeliveryMode = "normal"
	DeliveryModeExpectReplies DeliveryMode = "expectReplies"
)

// Well-known channel identifiers.
const (
	ChannelEmulator = "emulator"
	ChannelTest     = "test"
)

// ChannelAccount is a participant in a conversation.
type ChannelAccount struct {
	ID   string `json:"id" validate:"required"`
	Name string `json:"name,omitempty"`
	Role string `json:"role,omitempty"`
}

// ConversationAccount identifies the conversation an activity belongs to.
type ConversationAccount struct {
	ID               string `json:"id" validate:"required"`
	Name             string `json:"name,omitempty"`
	IsGroup          bool   `json:"isGroup,omitempty"`
	ConversationType string `json:"conversationType,omitempty"`
	TenantID         string `json:"tenantId,omitempty"`
}

// Activity is the JSON envelope exchanged between a channel and the bot.
// Only the fields the samples read or write are modelled; unknown fields in
// inbound payloads are ignored.
type Activity struct {
	Type           Type                 `json:"type" validate:"required"`
	ID             string               `json:"id,omitempty"`
	Timestamp      *time.Time           `json:"timestamp,omitempty"`
	LocalTime      *time.Time           `json:"localTimestamp,omitempty"`
	ServiceURL     string               `json:"serviceUrl,omitempty" validate:"omitempty,url"`
	ChannelID      string               `json:"channelId" validate:"required"`
	From           ChannelAccount       `json:"from"`
	Conversation   *ConversationAccount `json:"conversation" validate:"required"`
	Recipient      ChannelAccount       `json:"recipient"`
	TextFormat     string               `json:"textFormat,omitempty"`
	Locale         string               `json:"locale,omitempty"`
	Text           string               `json:"text,omitempty"`
	InputHint      string               `json:"inputHint,omitempty"`
	Attachments    []Attachment         `json:"attachments,omitempty"`
	MembersAdded   []ChannelAccount     `json:"membersAdded,omitempty"`
	MembersRemoved []ChannelAccount     `json:"membersRemoved,omitempty"`
	ReplyToID      string               `json:"replyToId,omitempty"`
	DeliveryMode   DeliveryMode         `json:"deliveryMode,omitempty"`
	Name           string               `json:"name,omitempty"`
	Label          string               `json:"label,omitempty"`
	ValueType      string               `json:"valueType,omitempty"`
	Value          json.RawMessage      `json:"value,omitempty"`
	ChannelData    json.RawMessage      `json:"channelData,omitempty"`
}

// ConversationReference carries what is needed to address a reply.
type ConversationReference struct {
	ActivityID   string               `json:"activityId,omitempty"`
	User         ChannelAccount       `json:"user"`
	Bot          ChannelAccount       `json:"bot"`
	Conversation *ConversationAccount `json:"conversation"`
	ChannelID    string               `json:"channelId"`
	ServiceURL   string               `json:"serviceUrl"`
	Locale       string               `json:"locale,omitempty"`
}

// ResourceResponse is returned by the connector when an activity is created.
type ResourceResponse struct {
	ID string `json:"id"`
}

// ExpectedReplies is the response body for turns with the expectReplies
// delivery mode.
type ExpectedReplies struct {
	Activities []*Activity `json:"activities"`
}

// InvokeResponse is the HTTP status and body returned to the channel for a
// turn that produces a synchronous response.
type InvokeResponse struct {
	Status int `json:"status"`
	Body   any `json:"body,omitempty"`
}

// Reference extracts the conversation reference of an incoming activity.
func (a *Activity) Reference() ConversationReference {
	return ConversationReference{
		ActivityID:   a.ID,
		User:         a.From,
		Bot:          a.Recipient,
		Conversation: a.Conversation,
		ChannelID:    a.ChannelID,
		ServiceURL:   a.ServiceURL,
		Locale:       a.Locale,
	}
}

// MembersAddedExcept returns the members that joined, skipping the account
// with the given id (normally the bot itself).
func (a *Activity) MembersAddedExcept(id string) []ChannelAccount {
	var members []ChannelAccount
	for _, m := range a.MembersAdded {
		if m.ID != id {
			members = append(members, m)
		}
	}
	return members
}

// MembersRemovedExcept returns the members that left, skipping the account
// with the given id.
func (a *Activity) MembersRemovedExcept(id string) []ChannelAccount {
	var members []ChannelAccount
	for _, m := range a.MembersRemoved {
		if m.ID != id {
			members = append(members, m)
		}
	}
	return members
}

// ExpectsReplies reports whether outbound activities for this turn must be
// returned in the HTTP response instead of sent through the connector.
func (a *Activity) ExpectsReplies() bool {
	return a.DeliveryMode == DeliveryModeExpectReplies
}

// ApplyReference addresses out as a reply within the referenced conversation.
// The bot becomes the sender and the user the recipient.
func ApplyReference(out *Activity, ref ConversationReference) {
	out.ChannelID = ref.ChannelID
	out.ServiceURL = ref.ServiceURL
	out.Conversation = ref.Conversation
	out.From = ref.Bot
	out.Recipient = ref.User
	if out.Locale == "" {
		out.Locale = ref.Locale
	}
	if ref.ActivityID != "" {
		out.ReplyToID = ref.ActivityID
	}
}
