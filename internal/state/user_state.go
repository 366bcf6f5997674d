package state

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nfrund/botsamples/internal/turn"
)

// ErrMissingUser is returned when an activity has no channel or sender id to
// scope user state by.
var ErrMissingUser = errors.New("activity has no channel id or from id")

// bag is the per-turn cache of one state scope.
type bag struct {
	values   map[string]any
	original []byte
}

// stateKey keys the bag inside turn.Context values.
type stateKey struct{ name string }

// UserState scopes state to a user on a channel. Load reads it once per turn;
// SaveChanges writes it back only when it changed.
type UserState struct {
	storage Storage
	name    string
}

// NewUserState creates user-scoped state on top of storage.
func NewUserState(storage Storage) *UserState {
	return &UserState{storage: storage, name: "UserState"}
}

// Key returns the storage key for the turn's user.
func (u *UserState) Key(tc *turn.Context) (string, error) {
	a := tc.Activity()
	if a.ChannelID == "" || a.From.ID == "" {
		return "", ErrMissingUser
	}
	return a.ChannelID + "/users/" + a.From.ID, nil
}

// Load reads the user's state into the turn. Subsequent calls in the same turn
// reuse the cached copy.
func (u *UserState) Load(ctx context.Context, tc *turn.Context) error {
	_, err := u.load(ctx, tc)
	return err
}

func (u *UserState) load(ctx context.Context, tc *turn.Context) (*bag, error) {
	if cached, ok := tc.Get(stateKey{u.name}); ok {
		return cached.(*bag), nil
	}

	key, err := u.Key(tc)
	if err != nil {
		return nil, err
	}
	items, err := u.storage.Read(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", u.name, err)
	}

	b := &bag{values: make(map[string]any)}
	if raw, ok := items[key]; ok {
		var stored map[string]json.RawMessage
		if err := json.Unmarshal(raw, &stored); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", u.name, err)
		}
		for k, v := range stored {
			b.values[k] = v
		}
		b.original = raw
	}
	tc.Set(stateKey{u.name}, b)
	return b, nil
}

// SaveChanges writes the turn's state back to storage if it differs from what
// was loaded. It is a no-op when the state was never loaded.
func (u *UserState) SaveChanges(ctx context.Context, tc *turn.Context) error {
	cached, ok := tc.Get(stateKey{u.name})
	if !ok {
		return nil
	}
	b := cached.(*bag)

	data, err := json.Marshal(b.values)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", u.name, err)
	}
	if bytes.Equal(data, b.original) {
		return nil
	}
	if b.original == nil && len(b.values) == 0 {
		return nil
	}

	key, err := u.Key(tc)
	if err != nil {
		return err
	}
	if err := u.storage.Write(ctx, map[string][]byte{key: data}); err != nil {
		return fmt.Errorf("failed to write %s: %w", u.name, err)
	}
	b.original = data
	return nil
}

// Clear removes the user's state from the turn and from storage.
func (u *UserState) Clear(ctx context.Context, tc *turn.Context) error {
	key, err := u.Key(tc)
	if err != nil {
		return err
	}
	tc.Set(stateKey{u.name}, &bag{values: make(map[string]any)})
	return u.storage.Delete(ctx, key)
}

// Property is a typed accessor for one named value in user state. Use a
// pointer type for T when handlers mutate the value in place.
type Property[T any] struct {
	state *UserState
	name  string
}

// NewProperty creates an accessor for the named property.
func NewProperty[T any](state *UserState, name string) *Property[T] {
	return &Property[T]{state: state, name: name}
}

// Get returns the property value, storing and returning defaultValue() when
// it has not been set yet.
func (p *Property[T]) Get(ctx context.Context, tc *turn.Context, defaultValue func() T) (T, error) {
	var zero T

	b, err := p.state.load(ctx, tc)
	if err != nil {
		return zero, err
	}

	switch v := b.values[p.name].(type) {
	case nil:
		if defaultValue == nil {
			return zero, nil
		}
		def := defaultValue()
		b.values[p.name] = def
		return def, nil
	case json.RawMessage:
		var decoded T
		if err := json.Unmarshal(v, &decoded); err != nil {
			return zero, fmt.Errorf("failed to decode property %s: %w", p.name, err)
		}
		b.values[p.name] = decoded
		return decoded, nil
	case T:
		return v, nil
	default:
		return zero, fmt.Errorf("property %s holds %T", p.name, v)
	}
}

// Set replaces the property value for this turn.
func (p *Property[T]) Set(ctx context.Context, tc *turn.Context, value T) error {
	b, err := p.state.load(ctx, tc)
	if err != nil {
		return err
	}
	b.values[p.name] = value
	return nil
}
