package app

import (
	"context"

	"gorm.io/gorm"

	"github.com/projeto-v3l0z/v3l0z-academy-front-end/internal/http/handlers"
	"github.com/projeto-v3l0z/v3l0z-academy-front-end/internal/platform/logger"
)

type Handlers struct {
	Steps  *handlers.CourseStepHandler
	Health *handlers.HealthHandler
}

func wireHandlers(db *gorm.DB, log *logger.Logger, serviceset Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Steps: handlers.NewCourseStepHandler(serviceset.Steps),
		Health: handlers.NewHealthHandler(func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}),
	}
}
