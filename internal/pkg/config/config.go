package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	// BaseURL is the root of the ScoreTalk API, including the version prefix.
	BaseURL     string `env:"SCORETALK_BASE_URL, default=http://localhost:8000/api/v1"`
	LogLevel    string `env:"LOG_LEVEL,          default=info"`
	LogPretty   bool   `env:"LOG_PRETTY,         default=true"`
	MetricsAddr string `env:"METRICS_ADDR"`

	Token TokenConfig
	Redis RedisConfig
}

type TokenConfig struct {
	// Backend selects where the session token is persisted: file or redis.
	Backend string `env:"SCORETALK_TOKEN_BACKEND, default=file"`
	// File is the token file path; empty resolves to the user config dir.
	File string `env:"SCORETALK_TOKEN_FILE"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}

// TokenFilePath returns the configured token file path, defaulting to
// scoretalk/token.json under the user's config directory.
func (c *Config) TokenFilePath() (string, error) {
	if c.Token.File != "" {
		return c.Token.File, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config: resolve user config dir: %w", err)
	}
	return filepath.Join(dir, "scoretalk", "token.json"), nil
}
