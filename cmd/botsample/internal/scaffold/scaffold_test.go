package scaffold

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const modulesSource = `package app

import (
	"github.com/nfrund/botsamples/internal/module"
	"github.com/nfrund/botsamples/internal/modules/echo"
)

// NewModules creates and returns the list of all active modules for the application.
func NewModules(deps Dependencies) []module.Module {
	return []module.Module{
		echo.New(),
	}
}
`

func newCheckout(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	appDir := filepath.Join(root, "internal", "app")
	require.NoError(t, os.MkdirAll(appDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(appDir, "modules.go"), []byte(modulesSource), 0o644))
	return root
}

func TestNewBot(t *testing.T) {
	root := newCheckout(t)

	require.NoError(t, Generator{Root: root}.NewBot("weather"))

	module, err := os.ReadFile(filepath.Join(root, "internal", "modules", "weather", "module.go"))
	require.NoError(t, err)
	assert.Contains(t, string(module), "type WeatherModule struct")
	assert.Contains(t, string(module), `"github.com/nfrund/botsamples/internal/registry"`)

	_, err = os.Stat(filepath.Join(root, "internal", "modules", "weather", "bot.go"))
	require.NoError(t, err)

	modules, err := os.ReadFile(filepath.Join(root, "internal", "app", "modules.go"))
	require.NoError(t, err)
	assert.Contains(t, string(modules), `"github.com/nfrund/botsamples/internal/modules/weather"`)
	assert.Contains(t, string(modules), "weather.New()")
	assert.Contains(t, string(modules), "echo.New()")
}

func TestNewBot_CustomModulePath(t *testing.T) {
	root := newCheckout(t)

	require.NoError(t, Generator{Root: root, ModulePath: "example.com/mybots"}.NewBot("faq"))

	bot, err := os.ReadFile(filepath.Join(root, "internal", "modules", "faq", "bot.go"))
	require.NoError(t, err)
	assert.Contains(t, string(bot), `"example.com/mybots/internal/turn"`)
}

func TestNewBot_Rejects(t *testing.T) {
	root := newCheckout(t)

	assert.ErrorIs(t, Generator{Root: root}.NewBot("Weather"), ErrInvalidName)
	assert.ErrorIs(t, Generator{Root: root}.NewBot("my-bot"), ErrInvalidName)

	require.NoError(t, Generator{Root: root}.NewBot("weather"))
	assert.ErrorIs(t, Generator{Root: root}.NewBot("weather"), ErrExists)
}

func TestNewBot_NoModulesList(t *testing.T) {
	root := t.TempDir()
	appDir := filepath.Join(root, "internal", "app")
	require.NoError(t, os.MkdirAll(appDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(appDir, "modules.go"), []byte("package app\n"), 0o644))

	assert.ErrorIs(t, Generator{Root: root}.NewBot("weather"), ErrNoModulesList)
}
