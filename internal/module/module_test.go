package module

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

type namedModule struct {
	BaseModule
	name string
}

func (m *namedModule) Name() string { return m.name }

func TestNames(t *testing.T) {
	mods := []Module{&namedModule{name: "transcript"}, &namedModule{name: "echo"}}

	assert.Equal(t, []string{"transcript", "echo"}, Names(mods))
	assert.Empty(t, Names(nil))
}

func TestBaseModule_NoOps(t *testing.T) {
	m := &namedModule{name: "echo"}

	assert.NoError(t, m.Register(nil))
	assert.NoError(t, m.Boot(context.Background(), nil, nil))
	assert.NoError(t, m.Shutdown(context.Background()))
}
