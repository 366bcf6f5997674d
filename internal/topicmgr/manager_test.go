package topicmgr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testReceived = DefineFramework(TopicConfig{
		Name:        "bot.activity.received",
		Module:      "ignored",
		Description: "Inbound activity",
		Fields:      []string{"activity"},
	})
	testGreeted = DefineModule(TopicConfig{
		Name:        "welcome.user.greeted",
		Module:      "welcome",
		Description: "User greeted",
	})
)

func TestDefine(t *testing.T) {
	assert.Equal(t, ScopeFramework, testReceived.Scope())
	assert.Empty(t, testReceived.Module(), "framework topics have no module")
	assert.Equal(t, []string{"activity"}, testReceived.Fields())

	assert.Equal(t, ScopeModule, testGreeted.Scope())
	assert.Equal(t, "welcome", testGreeted.Module())
}

func TestManager_Register(t *testing.T) {
	m := NewManager()

	require.NoError(t, m.Register(testReceived))
	require.NoError(t, m.Register(testGreeted))
	assert.Equal(t, 2, m.Count())

	err := m.Register(testReceived)
	require.Error(t, err)
	assert.True(t, errors.Is(err, &TopicError{Type: ErrorDuplicateRegistration}))

	got, ok := m.Get("welcome.user.greeted")
	require.True(t, ok)
	assert.Equal(t, "User greeted", got.Description())

	assert.NoError(t, m.MustExist("bot.activity.received"))
	assert.True(t, errors.Is(m.MustExist("nope"), &TopicError{Type: ErrorTopicNotFound}))
}

func TestManager_EnsureRegistered(t *testing.T) {
	m := NewManager()

	require.NoError(t, m.EnsureRegistered(testReceived, testGreeted))
	require.NoError(t, m.EnsureRegistered(testReceived, testGreeted))
	assert.Equal(t, 2, m.Count())

	bad := DefineModule(TopicConfig{Name: "Bad Name", Module: "welcome", Description: "x"})
	assert.Error(t, m.EnsureRegistered(bad))
}

func TestManager_Listing(t *testing.T) {
	m := NewManager()
	m.MustRegister(testGreeted)
	m.MustRegister(testReceived)
	m.MustRegister(DefineFramework(TopicConfig{Name: "bot.activity.sent", Description: "Outbound"}))

	names := func(entries []Entry) []string {
		var out []string
		for _, e := range entries {
			out = append(out, e.Name)
		}
		return out
	}

	assert.Equal(t, []string{"bot.activity.received", "bot.activity.sent", "welcome.user.greeted"}, names(m.List()))
	assert.Equal(t, []string{"welcome.user.greeted"}, names(m.ListByModule("welcome")))
	assert.Equal(t, []string{"bot.activity.received", "bot.activity.sent"}, names(m.ListByScope(ScopeFramework)))
	assert.Equal(t, []string{"bot.activity.received", "bot.activity.sent"}, names(m.Find("bot.activity.*")))
	assert.Len(t, m.Find("*"), 3)
	assert.Equal(t, []string{"bot.activity.sent"}, names(m.Find("bot.activity.sent")))

	m.Reset()
	assert.Zero(t, m.Count())
}

func TestValidator(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name    string
		topic   Topic
		wantErr bool
	}{
		{"valid framework", testReceived, false},
		{"valid module", testGreeted, false},
		{"nil", nil, true},
		{"uppercase name", DefineModule(TopicConfig{Name: "Echo.Reply", Module: "echo", Description: "x"}), true},
		{"empty description", DefineModule(TopicConfig{Name: "echo.reply", Module: "echo"}), true},
		{"framework without reserved prefix", DefineFramework(TopicConfig{Name: "echo.reply", Description: "x"}), true},
		{"module using framework prefix", DefineModule(TopicConfig{Name: "bot.echo", Module: "echo", Description: "x"}), true},
		{"module without module name", DefineModule(TopicConfig{Name: "echo.reply", Description: "x"}), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateDefinition(tt.topic)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
