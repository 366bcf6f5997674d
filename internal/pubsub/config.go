package pubsub

import (
	"log/slog"
	"os"
	"strconv"
)

// Environment variables read by LoadTracingConfigFromEnv.
const (
	EnvTracingEnabled        = "PUBSUB_TRACING_ENABLED"
	EnvTracingServiceName    = "PUBSUB_TRACING_SERVICE_NAME"
	EnvTracingServiceVersion = "PUBSUB_TRACING_SERVICE_VERSION"
	EnvTracingZipkinURL      = "PUBSUB_TRACING_ZIPKIN_URL"
)

// LoadTracingConfigFromEnv overlays the PUBSUB_TRACING_* variables on
// DefaultTracingConfig. Unparseable booleans are logged and ignored.
func LoadTracingConfigFromEnv() TracingConfig {
	config := DefaultTracingConfig()

	if v := os.Getenv(EnvTracingEnabled); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			slog.Warn("Ignoring invalid tracing flag", "variable", EnvTracingEnabled, "value", v)
		} else {
			config.Enabled = enabled
		}
	}

	for env, field := range map[string]*string{
		EnvTracingServiceName:    &config.ServiceName,
		EnvTracingServiceVersion: &config.ServiceVersion,
		EnvTracingZipkinURL:      &config.ZipkinURL,
	} {
		if v := os.Getenv(env); v != "" {
			*field = v
		}
	}

	return config
}
