package topicmgr

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// Manager is a concurrency-safe registry of topics.
type Manager struct {
	mu        sync.RWMutex
	entries   map[string]Entry
	validator *Validator
}

// NewManager creates an empty manager.
func NewManager() *Manager {
	return &Manager{
		entries:   make(map[string]Entry),
		validator: NewValidator(),
	}
}

// Register validates and adds a topic. Registering the same name twice is an
// error.
func (m *Manager) Register(topic Topic) error {
	if err := m.validator.ValidateDefinition(topic); err != nil {
		name, module := "", ""
		if topic != nil {
			name, module = topic.Name(), topic.Module()
		}
		return &TopicError{
			Type:    ErrorValidationFailed,
			Topic:   name,
			Module:  module,
			Message: "topic validation failed",
			Cause:   err,
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.entries[topic.Name()]; exists {
		return &TopicError{
			Type:    ErrorDuplicateRegistration,
			Topic:   topic.Name(),
			Module:  topic.Module(),
			Message: fmt.Sprintf("topic already registered: %s", topic.Name()),
		}
	}

	m.entries[topic.Name()] = Entry{
		Topic:        topic,
		Name:         topic.Name(),
		Module:       topic.Module(),
		Scope:        topic.Scope(),
		Description:  topic.Description(),
		RegisteredAt: time.Now(),
	}
	return nil
}

// MustRegister registers a topic and panics on error (for static initialization)
func (m *Manager) MustRegister(topic Topic) {
	if err := m.Register(topic); err != nil {
		panic(fmt.Sprintf("failed to register topic %s: %v", topic.Name(), err))
	}
}

// EnsureRegistered registers topics, ignoring ones already present. Modules
// call it from Register so that booting twice in tests is harmless.
func (m *Manager) EnsureRegistered(topics ...Topic) error {
	for _, t := range topics {
		err := m.Register(t)
		if err == nil {
			continue
		}
		if te, ok := err.(*TopicError); ok && te.Type == ErrorDuplicateRegistration {
			continue
		}
		return err
	}
	return nil
}

// Get retrieves a topic by name.
func (m *Manager) Get(name string) (Topic, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entries[name]
	if !ok {
		return nil, false
	}
	return e.Topic, true
}

// MustExist returns a TopicError when name is not registered.
func (m *Manager) MustExist(name string) error {
	if _, ok := m.Get(name); !ok {
		return &TopicError{
			Type:    ErrorTopicNotFound,
			Topic:   name,
			Message: fmt.Sprintf("topic not found: %s", name),
		}
	}
	return nil
}

// List returns all entries sorted by name.
func (m *Manager) List() []Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Entry, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ListByModule returns entries owned by module, sorted by name.
func (m *Manager) ListByModule(module string) []Entry {
	var out []Entry
	for _, e := range m.List() {
		if e.Module == module {
			out = append(out, e)
		}
	}
	return out
}

// ListByScope returns entries with the given scope, sorted by name.
func (m *Manager) ListByScope(scope Scope) []Entry {
	var out []Entry
	for _, e := range m.List() {
		if e.Scope == scope {
			out = append(out, e)
		}
	}
	return out
}

// Find returns entries whose name matches pattern. A trailing '*' matches any
// suffix and a lone '*' matches everything.
func (m *Manager) Find(pattern string) []Entry {
	var out []Entry
	for _, e := range m.List() {
		if matchesPattern(e.Name, pattern) {
			out = append(out, e)
		}
	}
	return out
}

// Count returns the number of registered topics.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Reset removes all registered topics (primarily for testing)
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]Entry)
}

func matchesPattern(name, pattern string) bool {
	if pattern == "*" {
		return true
	}
	if prefix, ok := strings.CutSuffix(pattern, "*"); ok {
		return strings.HasPrefix(name, prefix)
	}
	return name == pattern
}

var (
	defaultManager     *Manager
	defaultManagerOnce sync.Once
)

// Default returns the process-wide manager.
func Default() *Manager {
	defaultManagerOnce.Do(func() {
		defaultManager = NewManager()
	})
	return defaultManager
}
