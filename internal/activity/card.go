package activity

// Content types for attachments produced by the samples.
const (
	ContentTypeHeroCard = "application/vnd.microsoft.card.hero"
)

// Card action types.
const (
	ActionOpenURL = "openUrl"
	ActionImBack  = "imBack"
)

// Attachment is a rich content item attached to a message.
type Attachment struct {
	ContentType  string `json:"contentType"`
	ContentURL   string `json:"contentUrl,omitempty"`
	Content      any    `json:"content,omitempty"`
	Name         string `json:"name,omitempty"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
}

// CardImage is an image shown on a card.
type CardImage struct {
	URL string `json:"url"`
	Alt string `json:"alt,omitempty"`
}

// CardAction is a clickable action on a card.
type CardAction struct {
	Type  string `json:"type"`
	Title string `json:"title"`
	Value string `json:"value"`
}

// HeroCard is a card with a single large image, text and buttons.
type HeroCard struct {
	Title    string       `json:"title,omitempty"`
	Subtitle string       `json:"subtitle,omitempty"`
	Text     string       `json:"text,omitempty"`
	Images   []CardImage  `json:"images,omitempty"`
	Buttons  []CardAction `json:"buttons,omitempty"`
}

// Attachment wraps the card in an attachment ready to be sent.
func (c HeroCard) Attachment() Attachment {
	return Attachment{
		ContentType: ContentTypeHeroCard,
		Content:     c,
	}
}
