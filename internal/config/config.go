package config

import (
	"time"

	"github.com/shelfside/boardgame-tracker/internal/logger"
)

// Config aggregates every tunable of the process.
type Config struct {
	Server   ServerConfig        `mapstructure:"server"`
	Upstream UpstreamConfig      `mapstructure:"upstream"`
	Auth     AuthConfig          `mapstructure:"auth"`
	Logger   logger.LoggerConfig `mapstructure:"logger"`
}

// ServerConfig describes the local HTTP listener.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// UpstreamConfig points at the backend API this process proxies.
// Token may be empty: requests then go out unauthenticated.
type UpstreamConfig struct {
	BaseURL        string `mapstructure:"base_url" validate:"required,url"`
	Token          string `mapstructure:"token"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"gte=0"`
}

// Timeout returns the request timeout, defaulting to a generous 30s.
func (u UpstreamConfig) Timeout() time.Duration {
	if u.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(u.TimeoutSeconds) * time.Second
}

// AuthConfig controls the optional session-cookie gate. When Password is
// empty the gate is disabled and all routes are open.
type AuthConfig struct {
	Password      string `mapstructure:"password"`
	SessionSecret string `mapstructure:"session_secret"`
}
