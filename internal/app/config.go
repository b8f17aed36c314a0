package app

import (
	"time"

	"github.com/projeto-v3l0z/v3l0z-academy-front-end/internal/data/db"
	"github.com/projeto-v3l0z/v3l0z-academy-front-end/internal/platform/envutil"
	"github.com/projeto-v3l0z/v3l0z-academy-front-end/internal/platform/logger"
)

type Config struct {
	Port        string
	LogMode     string
	Environment string
	Version     string

	Database       db.Config
	RedisAddr      string
	RenderCacheTTL time.Duration
	CORSOrigins    []string
}

// LoadConfig reads .env (when present) and the process environment.
func LoadConfig(log *logger.Logger) Config {
	if err := envutil.Load(); err != nil && log != nil {
		log.Warn("could not load .env", "error", err)
	}
	cfg := Config{
		Port:        envutil.String("PORT", "8080"),
		LogMode:     envutil.String("LOG_MODE", "development"),
		Environment: envutil.String("APP_ENV", "development"),
		Version:     envutil.String("APP_VERSION", "dev"),
		Database: db.Config{
			Driver: envutil.String("DATABASE_DRIVER", db.DriverPostgres),
			DSN:    envutil.String("DATABASE_DSN", ""),
		},
		RedisAddr:      envutil.String("REDIS_ADDR", ""),
		RenderCacheTTL: envutil.Duration("RENDER_CACHE_TTL", 10*time.Minute),
		CORSOrigins:    envutil.Strings("CORS_ALLOW_ORIGINS", nil),
	}
	if cfg.Database.Driver == db.DriverSQLite && cfg.Database.DSN == "" {
		cfg.Database.DSN = "file:academy.db?_foreign_keys=on"
	}
	return cfg
}
