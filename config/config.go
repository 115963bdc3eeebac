package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/pelletier/go-toml/v2"
)

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err = toml.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type Config struct {
	Log  LogConfig  `toml:"log"`
	Web  WebConfig  `toml:"web"`
	DB   DBConfig   `toml:"db"`
	Auth AuthConfig `toml:"auth"`
}

type LogConfig struct {
	Level     slog.Level `toml:"level"`
	Format    string     `toml:"format"`
	AddSource bool       `toml:"add_source"`
}

type WebConfig struct {
	Host         string   `toml:"host"`
	Port         int      `toml:"port"`
	Debug        bool     `toml:"debug"`
	AllowOrigins []string `toml:"allow_origins"`
}

type DBConfig struct {
	// Driver selects the storage backend: "postgres" (default) or
	// "memory" for local development without a database.
	Driver       string `toml:"driver"`
	Host         string `toml:"host"`
	Port         int    `toml:"port"`
	User         string `toml:"user"`
	Password     string `toml:"password"`
	Database     string `toml:"database"`
	PoolSize     int    `toml:"pool_size"`
	MaxIdleConns int    `toml:"max_idle_conns"`
	MaxLifetime  int    `toml:"max_lifetime"`
}

type AuthConfig struct {
	// SessionKey signs session tokens handed out by the auth provider.
	// Both sides must share it.
	SessionKey    string `toml:"session_key"`
	SessionTTL    int    `toml:"session_ttl_hours"`
	TokenCacheLen int    `toml:"token_cache_len"`
}
