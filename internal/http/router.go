package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/projeto-v3l0z/v3l0z-academy-front-end/internal/http/handlers"
	httpMW "github.com/projeto-v3l0z/v3l0z-academy-front-end/internal/http/middleware"
	"github.com/projeto-v3l0z/v3l0z-academy-front-end/internal/platform/logger"
)

type RouterConfig struct {
	StepHandler   *httpH.CourseStepHandler
	HealthHandler *httpH.HealthHandler

	Log         *logger.Logger
	CORSOrigins []string
	ServiceName string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.AttachRole())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		if cfg.StepHandler != nil {
			api.GET("/courses/:id/steps", cfg.StepHandler.ListSteps)
			api.GET("/steps/:id/render", cfg.StepHandler.RenderStep)
			api.POST("/render", cfg.StepHandler.RenderContent)
		}
	}

	teacher := api.Group("/teacher")
	{
		teacher.Use(httpMW.RequireRole(httpMW.RoleTeacher))

		if cfg.StepHandler != nil {
			teacher.POST("/courses/:id/steps", cfg.StepHandler.CreateStep)
			teacher.PUT("/steps/:id", cfg.StepHandler.UpdateStep)
		}
	}

	return r
}
