// Package config provides application configuration management.
// Configuration is loaded from environment variables following 12-factor principles.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all application configuration.
// All fields are populated from environment variables.
type Config struct {
	// Application settings
	AppEnv  string `env:"APP_ENV" envDefault:"development"`
	AppPort int    `env:"APP_PORT" envDefault:"8080"`

	// Session tokens
	JWTSecret string        `env:"JWT_SECRET,required"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"168h"` // 1 week

	// Moderation
	KickDuration     time.Duration `env:"KICK_DURATION" envDefault:"10m"`
	BanSweepInterval time.Duration `env:"BAN_SWEEP_INTERVAL" envDefault:"1m"`

	// Quick join packs users into public rooms below this occupancy.
	QuickJoinThreshold int `env:"QUICK_JOIN_THRESHOLD" envDefault:"5"`

	// Frontend origin allowed for CORS (e.g. https://app.pairdojo.dev)
	FrontendURL string `env:"FRONTEND_URL" envDefault:"http://localhost:5173"`

	// Collaborative-document provider (Liveblocks-compatible API)
	CollabAPIURL    string `env:"COLLAB_API_URL" envDefault:"https://api.liveblocks.io"`
	CollabSecretKey string `env:"COLLAB_SECRET_KEY,required"`

	// Voice provider (Daily-compatible API)
	VoiceAPIURL string `env:"VOICE_API_URL" envDefault:"https://api.daily.co"`
	VoiceAPIKey string `env:"VOICE_API_KEY,required"`
	VoiceDomain string `env:"VOICE_DOMAIN,required"`

	// Analytics stream transport; analytics degrade to log-only when unset.
	RedisURL string `env:"REDIS_URL" envDefault:""`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Server timeouts
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// Request body size limit in bytes (default 1MB)
	MaxRequestBodySize int64 `env:"MAX_REQUEST_BODY_SIZE" envDefault:"1048576"`
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// AnalyticsEnabled reports whether a stream transport is configured.
func (c *Config) AnalyticsEnabled() bool {
	return c.RedisURL != ""
}

// Load parses environment variables and returns a Config.
// Returns an error if required variables are missing.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
