package config

import (
	"context"
	"log/slog"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=3000"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Upstream UpstreamConfig
	Session  SessionConfig
	Redis    RedisConfig
}

// UpstreamConfig locates the external fraud-detection API.
type UpstreamConfig struct {
	BaseURL string        `env:"API_BASE_URL, default=http://localhost:8080/api"`
	Timeout time.Duration `env:"API_TIMEOUT,  default=15s"`
}

// SessionConfig controls where and how long browser sessions are kept.
// Backend is "cookie" (encrypted cookie) or "redis" (server-side payload
// keyed by a cookie-held session ID).
type SessionConfig struct {
	Secret  string        `env:"SESSION_SECRET"`
	Backend string        `env:"SESSION_BACKEND, default=cookie"`
	TTL     time.Duration `env:"SESSION_TTL,     default=24h"`
	Secure  bool          `env:"SESSION_SECURE,  default=false"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(logger *slog.Logger) *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		logger.Error("Failed to load configuration", "error", err)
		panic(err)
	}
	return &cfg
}
