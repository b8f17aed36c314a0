package db

import (
	"gorm.io/gorm"

	"github.com/projeto-v3l0z/v3l0z-academy-front-end/internal/domain/lesson"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&lesson.CourseStep{},
	)
}
