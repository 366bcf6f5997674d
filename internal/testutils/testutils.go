package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/joho/godotenv"
	"github.com/nfrund/botsamples/internal/config"
)

// credentialKeys are cleared for every test so a developer's .env never
// switches on bearer-token authentication or outbound OAuth.
var credentialKeys = []string{
	"MicrosoftAppId", "APP_ID",
	"MicrosoftAppPassword", "APP_PASSWORD",
	"MicrosoftAppTenantId", "APP_TENANT_ID",
}

// ConfigForTests loads .env.test from the module root when present, applies
// overrides and returns the resulting configuration. All variables are set
// with t.Setenv, so they are restored when the test ends.
func ConfigForTests(t *testing.T, overrides map[string]string) *config.Config {
	t.Helper()

	for _, key := range credentialKeys {
		t.Setenv(key, "")
	}

	if root, ok := moduleRoot(); ok {
		env, err := godotenv.Read(filepath.Join(root, ".env.test"))
		if err != nil && !os.IsNotExist(err) {
			t.Fatalf("failed to load .env.test file: %v", err)
		}
		for key, value := range env {
			t.Setenv(key, value)
		}
	}

	for key, value := range overrides {
		t.Setenv(key, value)
	}

	return config.FromEnv()
}

// moduleRoot walks up from the working directory to the directory holding
// go.mod.
func moduleRoot() (string, bool) {
	path, err := os.Getwd()
	if err != nil {
		return "", false
	}
	for {
		if _, err := os.Stat(filepath.Join(path, "go.mod")); err == nil {
			return path, true
		}
		if path == filepath.Dir(path) {
			return "", false
		}
		path = filepath.Dir(path)
	}
}
