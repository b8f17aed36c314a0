package steps

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/projeto-v3l0z/v3l0z-academy-front-end/internal/modules/lesson/content"
)

type Step struct {
	ID          *uuid.UUID       `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Order       int              `json:"order"`
	Content     content.Document `json:"content"`
}

// Payload is the body sent when creating or updating a step.
type Payload struct {
	Title       string           `json:"title" validate:"max=255"`
	Description string           `json:"description" validate:"max=4000"`
	Order       int              `json:"order" validate:"min=1"`
	Content     content.Document `json:"content"`
}

func (s Step) Payload() Payload {
	return Payload{Title: s.Title, Description: s.Description, Order: s.Order, Content: s.Content}
}

func (s Step) Persisted() bool { return s.ID != nil && *s.ID != uuid.Nil }

func (s Step) Clone() Step {
	out := s
	if s.ID != nil {
		id := *s.ID
		out.ID = &id
	}
	out.Content = s.Content.Clone()
	return out
}

// Gateway is the remote store for a course's steps.
type Gateway interface {
	ListSteps(ctx context.Context, courseID uuid.UUID) ([]Step, error)
	CreateStep(ctx context.Context, courseID uuid.UUID, p Payload) (Step, error)
	UpdateStep(ctx context.Context, stepID uuid.UUID, p Payload) (Step, error)
}

const (
	OpCreate = "create"
	OpUpdate = "update"
	OpList   = "list"
)

var ErrUnknownField = errors.New("unknown step field")

// PersistenceError wraps a gateway failure with the position of the step
// that triggered it.
type PersistenceError struct {
	Index  int
	StepID *uuid.UUID
	Op     string
	Err    error
}

func (e *PersistenceError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s steps: %v", e.Op, e.Err)
	}
	if e.StepID != nil {
		return fmt.Sprintf("%s step %d (%s): %v", e.Op, e.Index+1, e.StepID, e.Err)
	}
	return fmt.Sprintf("%s step %d: %v", e.Op, e.Index+1, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
