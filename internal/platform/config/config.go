package config

import (
	"os"
	"strings"
)

type HTTPConfig struct {
	Addr string
}

// StorageConfig selects the document store backend. The first configured
// backend wins: Redis, then Postgres, then the embedded SQLite file.
type StorageConfig struct {
	RedisDSN    string
	DatabaseURL string
	SQLitePath  string
}

type AppConfig struct {
	ServiceName string
	AppEnv      string
	LogLevel    string
	NATSURL     string
	HTTP        HTTPConfig
	Storage     StorageConfig
}

func (c AppConfig) IsProd() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

func Load() (AppConfig, error) {
	cfg := AppConfig{
		ServiceName: strings.TrimSpace(os.Getenv("SERVICE_NAME")),
		AppEnv:      strings.TrimSpace(os.Getenv("APP_ENV")),
		LogLevel:    strings.TrimSpace(os.Getenv("LOG_LEVEL")),
		NATSURL:     strings.TrimSpace(os.Getenv("NATS_URL")),
		HTTP: HTTPConfig{
			Addr: strings.TrimSpace(os.Getenv("HTTP_ADDR")),
		},
		Storage: StorageConfig{
			RedisDSN:    strings.TrimSpace(os.Getenv("REDIS_DSN")),
			DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),
			SQLitePath:  strings.TrimSpace(os.Getenv("SQLITE_PATH")),
		},
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "pin-gallery"
	}
	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = ":8080"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.Storage.RedisDSN == "" && cfg.Storage.DatabaseURL == "" && cfg.Storage.SQLitePath == "" {
		cfg.Storage.SQLitePath = "pin-gallery.db"
	}
	return cfg, nil
}
