package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	defaultHost    = "localhost"
	defaultPort    = 3978
	defaultBotName = "echo"

	// defaultRateLimit is the number of requests per second one client may
	// send to the messaging endpoint.
	defaultRateLimit = 10.0
)

// Provider exposes read-only access to application configuration.
type Provider interface {
	GetAppID() string
	GetAppPassword() string
	GetAppTenantID() string
	GetHost() string
	GetPort() int
	GetAddr() string
	GetBotName() string
	GetRateLimit() float64
}

// Config holds all configuration for the application.
type Config struct {
	AppID       string
	AppPassword string
	AppTenantID string
	Host        string
	Port        int
	BotName     string
	RateLimit   float64
}

// Compile-time check that Config satisfies Provider.
var _ Provider = (*Config)(nil)

// New loads configuration from environment variables.
// A .env file in the working directory is loaded first when present.
func New() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current process environment without
// touching any .env file.
func FromEnv() *Config {
	cfg := &Config{
		AppID:       firstEnv("MicrosoftAppId", "APP_ID"),
		AppPassword: firstEnv("MicrosoftAppPassword", "APP_PASSWORD"),
		AppTenantID: firstEnv("MicrosoftAppTenantId", "APP_TENANT_ID"),
		Host:        firstEnv("HOST"),
		Port:        defaultPort,
		BotName:     firstEnv("BOT_NAME"),
		RateLimit:   defaultRateLimit,
	}

	if cfg.Host == "" {
		cfg.Host = defaultHost
	}
	if cfg.BotName == "" {
		cfg.BotName = defaultBotName
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil || port <= 0 || port > 65535 {
			log.Printf("Ignoring invalid PORT %q, using %d", portStr, defaultPort)
		} else {
			cfg.Port = port
		}
	}

	if limitStr := os.Getenv("RATE_LIMIT"); limitStr != "" {
		limit, err := strconv.ParseFloat(limitStr, 64)
		if err != nil || limit <= 0 {
			log.Printf("Ignoring invalid RATE_LIMIT %q, using %v", limitStr, defaultRateLimit)
		} else {
			cfg.RateLimit = limit
		}
	}

	return cfg
}

// firstEnv returns the value of the first non-empty environment variable.
func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

func (c *Config) GetAppID() string { return c.AppID }
func (c *Config) GetAppPassword() string { return c.AppPassword }
func (c *Config) GetAppTenantID() string { return c.AppTenantID }
func (c *Config) GetHost() string { return c.Host }
func (c *Config) GetPort() int { return c.Port }
func (c *Config) GetBotName() string { return c.BotName }

// GetRateLimit returns the per-client request rate for /api/messages. Zero
// means the default.
func (c *Config) GetRateLimit() float64 {
	if c.RateLimit <= 0 {
		return defaultRateLimit
	}
	return c.RateLimit
}

// GetAddr returns the host:port pair the HTTP server binds to.
func (c *Config) GetAddr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}
