package lesson

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/projeto-v3l0z/v3l0z-academy-front-end/internal/domain/lesson"
	"github.com/projeto-v3l0z/v3l0z-academy-front-end/internal/platform/logger"
)

var ErrNotFound = errors.New("course step not found")

type CourseStepRepo interface {
	Create(ctx context.Context, tx *gorm.DB, steps []*domain.CourseStep) ([]*domain.CourseStep, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.CourseStep, error)
	GetByCourseID(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) ([]*domain.CourseStep, error)
	Update(ctx context.Context, tx *gorm.DB, step *domain.CourseStep) error
}

type courseStepRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCourseStepRepo(db *gorm.DB, baseLog *logger.Logger) CourseStepRepo {
	repoLog := baseLog.With("repo", "CourseStepRepo")
	return &courseStepRepo{db: db, log: repoLog}
}

func (r *courseStepRepo) Create(ctx context.Context, tx *gorm.DB, steps []*domain.CourseStep) ([]*domain.CourseStep, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(steps) == 0 {
		return []*domain.CourseStep{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&steps).Error; err != nil {
		return nil, err
	}
	return steps, nil
}

func (r *courseStepRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.CourseStep, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var step domain.CourseStep
	err := transaction.WithContext(ctx).Where("id = ?", id).First(&step).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &step, nil
}

func (r *courseStepRepo) GetByCourseID(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) ([]*domain.CourseStep, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*domain.CourseStep
	if err := transaction.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("step_order ASC, created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *courseStepRepo) Update(ctx context.Context, tx *gorm.DB, step *domain.CourseStep) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if step == nil || step.ID == uuid.Nil {
		return ErrNotFound
	}
	res := transaction.WithContext(ctx).
		Model(&domain.CourseStep{}).
		Where("id = ?", step.ID).
		Updates(map[string]interface{}{
			"title":             step.Title,
			"description":       step.Description,
			"step_order":        step.Order,
			"content":           step.Content,
			"content_hash":      step.ContentHash,
			"block_count":       step.BlockCount,
			"word_count":        step.WordCount,
			"estimated_minutes": step.EstimatedMinutes,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
