package transcript

import (
	"sync"
	"time"

	"github.com/nfrund/botsamples/internal/activity"
	"github.com/nfrund/botsamples/internal/events"
)

// DefaultCapacity is the number of entries kept when none is configured.
const DefaultCapacity = 50

// Kind distinguishes activity entries from turn failures.
type Kind string

const (
	KindActivity Kind = "activity"
	KindError    Kind = "error"
)

// Entry is one line of the transcript.
type Entry struct {
	Seq            uint64           `json:"seq"`
	Kind           Kind             `json:"kind"`
	Bot            string           `json:"bot"`
	Direction      events.Direction `json:"direction,omitempty"`
	Type           activity.Type    `json:"type,omitempty"`
	ChannelID      string           `json:"channel_id,omitempty"`
	ConversationID string           `json:"conversation_id,omitempty"`
	From           string           `json:"from,omitempty"`
	Text           string           `json:"text,omitempty"`
	Attachments    int              `json:"attachments,omitempty"`
	Error          string           `json:"error,omitempty"`
	At             time.Time        `json:"at"`
}

// FromActivityEvent converts a bus event into an entry.
func FromActivityEvent(ev events.ActivityEvent) Entry {
	e := Entry{
		Kind:      KindActivity,
		Bot:       ev.Bot,
		Direction: ev.Direction,
		At:        ev.At,
	}
	fillActivity(&e, ev.Activity)
	return e
}

// FromTurnErrorEvent converts a turn failure into an entry.
func FromTurnErrorEvent(ev events.TurnErrorEvent) Entry {
	e := Entry{
		Kind:  KindError,
		Bot:   ev.Bot,
		Error: ev.Error,
		At:    ev.At,
	}
	fillActivity(&e, ev.Activity)
	return e
}

func fillActivity(e *Entry, a *activity.Activity) {
	if a == nil {
		return
	}
	e.Type = a.Type
	e.ChannelID = a.ChannelID
	e.From = a.From.Name
	if e.From == "" {
		e.From = a.From.ID
	}
	e.Text = a.Text
	e.Attachments = len(a.Attachments)
	if a.Conversation != nil {
		e.ConversationID = a.Conversation.ID
	}
}

// Store is a fixed-size ring of the most recent entries.
type Store struct {
	mu      sync.RWMutex
	entries []Entry
	next    int
	full    bool
	seq     uint64
}

// NewStore creates a store holding up to capacity entries.
func NewStore(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store{entries: make([]Entry, capacity)}
}

// Add appends e, evicting the oldest entry when full, and returns it with its
// sequence number set.
func (s *Store) Add(e Entry) Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	e.Seq = s.seq
	s.entries[s.next] = e
	s.next = (s.next + 1) % len(s.entries)
	if s.next == 0 {
		s.full = true
	}
	return e
}

// Recent returns up to n entries, oldest first. n <= 0 returns all of them.
func (s *Store) Recent(n int) []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	size := s.next
	if s.full {
		size = len(s.entries)
	}
	if n <= 0 || n > size {
		n = size
	}

	out := make([]Entry, 0, n)
	start := s.next - n
	if start < 0 {
		start += len(s.entries)
	}
	for i := 0; i < n; i++ {
		out = append(out, s.entries[(start+i)%len(s.entries)])
	}
	return out
}

// Len returns the number of stored entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.full {
		return len(s.entries)
	}
	return s.next
}
