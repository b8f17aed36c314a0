package app

import (
	"github.com/gin-gonic/gin"

	apphttp "github.com/projeto-v3l0z/v3l0z-academy-front-end/internal/http"
	"github.com/projeto-v3l0z/v3l0z-academy-front-end/internal/observability"
	"github.com/projeto-v3l0z/v3l0z-academy-front-end/internal/platform/logger"
)

func routerConfig(log *logger.Logger, cfg Config, handlerset Handlers) apphttp.RouterConfig {
	return apphttp.RouterConfig{
		StepHandler:   handlerset.Steps,
		HealthHandler: handlerset.Health,
		Log:           log,
		CORSOrigins:   cfg.CORSOrigins,
		ServiceName:   observability.DefaultServiceName,
	}
}

func wireRouter(log *logger.Logger, cfg Config, handlerset Handlers) *gin.Engine {
	return apphttp.NewRouter(routerConfig(log, cfg, handlerset))
}
