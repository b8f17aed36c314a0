package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	domain "github.com/projeto-v3l0z/v3l0z-academy-front-end/internal/domain/lesson"
)

// SeedCourseStep inserts a row directly, bypassing the service, so tests can
// plant content in shapes the service would never write.
func SeedCourseStep(tb testing.TB, ctx context.Context, tx *gorm.DB, courseID uuid.UUID, order int, title, rawContent string) *domain.CourseStep {
	tb.Helper()
	if rawContent == "" {
		rawContent = `{"blocks":[]}`
	}
	s := &domain.CourseStep{
		ID:       uuid.New(),
		CourseID: courseID,
		Title:    title,
		Order:    order,
		Content:  datatypes.JSON(rawContent),
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed course step: %v", err)
	}
	return s
}
