package app

import (
	"gorm.io/gorm"

	"github.com/projeto-v3l0z/v3l0z-academy-front-end/internal/platform/logger"
	"github.com/projeto-v3l0z/v3l0z-academy-front-end/internal/services"
)

type Services struct {
	RenderCache services.RenderCache
	Steps       services.StepService
}

// wireServices falls back to an in-process render cache when Redis is not
// configured or unreachable.
func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos) Services {
	log.Info("Wiring services...")

	var cache services.RenderCache
	if cfg.RedisAddr != "" {
		rc, err := services.NewRedisRenderCache(log, cfg.RedisAddr, cfg.RenderCacheTTL)
		if err != nil {
			log.Warn("redis render cache unavailable, using memory cache", "addr", cfg.RedisAddr, "error", err)
		} else {
			cache = rc
		}
	}
	if cache == nil {
		cache = services.NewMemoryRenderCache(cfg.RenderCacheTTL)
	}

	return Services{
		RenderCache: cache,
		Steps:       services.NewStepService(db, log, reposet.CourseStep, cache),
	}
}
