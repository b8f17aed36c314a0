package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/projeto-v3l0z/v3l0z-academy-front-end/internal/data/db"
	"github.com/projeto-v3l0z/v3l0z-academy-front-end/internal/observability"
	"github.com/projeto-v3l0z/v3l0z-academy-front-end/internal/platform/envutil"
	"github.com/projeto-v3l0z/v3l0z-academy-front-end/internal/platform/logger"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Router   *gin.Engine
	Cfg      Config
	Repos    Repos
	Services Services

	dbService    *db.Service
	otelShutdown func(context.Context) error
}

func New(ctx context.Context) (*App, error) {
	_ = envutil.Load()
	log, err := logger.New(envutil.String("LOG_MODE", "development"))
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)

	shutdown := observability.InitOTel(ctx, log, observability.OtelConfigFromEnv(cfg.Environment, cfg.Version))

	dbs, err := db.Open(cfg.Database, log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init database: %w", err)
	}
	if err := db.AutoMigrateAll(dbs.DB()); err != nil {
		_ = dbs.Close()
		log.Sync()
		return nil, fmt.Errorf("automigrate: %w", err)
	}
	theDB := dbs.DB()

	reposet := wireRepos(theDB, log)
	serviceset := wireServices(theDB, log, cfg, reposet)
	handlerset := wireHandlers(theDB, log, serviceset)

	return &App{
		Log:          log,
		DB:           theDB,
		Router:       wireRouter(log, cfg, handlerset),
		Cfg:          cfg,
		Repos:        reposet,
		Services:     serviceset,
		dbService:    dbs,
		otelShutdown: shutdown,
	}, nil
}

// Close releases the cache, database and tracer in that order.
func (a *App) Close(ctx context.Context) {
	if a == nil {
		return
	}
	if a.Services.RenderCache != nil {
		if err := a.Services.RenderCache.Close(); err != nil {
			a.Log.Warn("render cache close failed", "error", err)
		}
	}
	if a.dbService != nil {
		if err := a.dbService.Close(); err != nil {
			a.Log.Warn("database close failed", "error", err)
		}
	}
	if a.otelShutdown != nil {
		if err := a.otelShutdown(ctx); err != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
	}
	a.Log.Sync()
}
