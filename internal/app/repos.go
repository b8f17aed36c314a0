package app

import (
	"gorm.io/gorm"

	"github.com/projeto-v3l0z/v3l0z-academy-front-end/internal/data/repos/lesson"
	"github.com/projeto-v3l0z/v3l0z-academy-front-end/internal/platform/logger"
)

type Repos struct {
	CourseStep lesson.CourseStepRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		CourseStep: lesson.NewCourseStepRepo(db, log),
	}
}
