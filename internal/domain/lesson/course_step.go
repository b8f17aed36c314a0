package lesson

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CourseStep is one persisted step of a course. Content holds the canonical
// {"blocks":[...]} document; the derived columns are refreshed on every write.
type CourseStep struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CourseID    uuid.UUID      `gorm:"type:uuid;not null;index:idx_course_step_course_order,priority:1" json:"course_id"`
	Title       string         `gorm:"column:title;not null" json:"title"`
	Description string         `gorm:"column:description;type:text" json:"description"`
	Order       int            `gorm:"column:step_order;not null;index:idx_course_step_course_order,priority:2" json:"order"`
	Content     datatypes.JSON `gorm:"column:content;type:jsonb" json:"content"`

	ContentHash      string `gorm:"column:content_hash" json:"content_hash"`
	BlockCount       int    `gorm:"column:block_count" json:"block_count"`
	WordCount        int    `gorm:"column:word_count" json:"word_count"`
	EstimatedMinutes int    `gorm:"column:estimated_minutes" json:"estimated_minutes"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (CourseStep) TableName() string { return "course_step" }

func (s *CourseStep) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
