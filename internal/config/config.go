package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	log "github.com/sirupsen/logrus"
)

// StoreKind selects the save repository implementation
type StoreKind string

const (
	StoreMemory StoreKind = "memory"
	StoreRedis  StoreKind = "redis"
	StoreSQLite StoreKind = "sqlite"
)

// Config holds all configuration for the application
type Config struct {
	Store    StoreConfig
	Redis    RedisConfig
	SQLite   SQLiteConfig
	Game     GameConfig
	Session  SessionConfig
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// StoreConfig selects where saves live
type StoreConfig struct {
	Kind StoreKind `env:"SAVE_STORE" envDefault:"memory"`
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	URL string        `env:"REDIS_URL"`
	TTL time.Duration `env:"REDIS_SAVE_TTL"` // Optional, zero keeps saves forever
}

// SQLiteConfig holds SQLite-specific configuration
type SQLiteConfig struct {
	Path string `env:"SQLITE_PATH" envDefault:"dungeon-saves.db"`
}

// GameConfig holds gameplay tuning
type GameConfig struct {
	MaxMessages int `env:"MAX_MESSAGES" envDefault:"10"`
}

// SessionConfig holds sign-in configuration
type SessionConfig struct {
	TTL         time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	IDToken     string        `env:"DUNGEON_ID_TOKEN"`
	AccessToken string        `env:"DUNGEON_ACCESS_TOKEN"`
}

// Offline reports whether no sign-in tokens were provided
func (c SessionConfig) Offline() bool {
	return c.IDToken == "" && c.AccessToken == ""
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	switch cfg.Store.Kind {
	case StoreMemory, StoreSQLite:
	case StoreRedis:
		if cfg.Redis.URL == "" {
			return nil, fmt.Errorf("REDIS_URL is required when SAVE_STORE is %q", StoreRedis)
		}
	default:
		return nil, fmt.Errorf("unknown SAVE_STORE %q", cfg.Store.Kind)
	}

	if cfg.Game.MaxMessages <= 0 {
		return nil, fmt.Errorf("MAX_MESSAGES must be positive, got %d", cfg.Game.MaxMessages)
	}
	if cfg.Session.TTL <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be positive, got %s", cfg.Session.TTL)
	}
	if _, err := log.ParseLevel(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	return cfg, nil
}

// Level returns the parsed log level, falling back to info
func (c *Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}
