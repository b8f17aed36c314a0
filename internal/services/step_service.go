package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	repos "github.com/projeto-v3l0z/v3l0z-academy-front-end/internal/data/repos/lesson"
	domain "github.com/projeto-v3l0z/v3l0z-academy-front-end/internal/domain/lesson"
	"github.com/projeto-v3l0z/v3l0z-academy-front-end/internal/modules/lesson/content"
	"github.com/projeto-v3l0z/v3l0z-academy-front-end/internal/modules/lesson/render"
	"github.com/projeto-v3l0z/v3l0z-academy-front-end/internal/modules/lesson/steps"
	"github.com/projeto-v3l0z/v3l0z-academy-front-end/internal/platform/apierr"
	"github.com/projeto-v3l0z/v3l0z-academy-front-end/internal/platform/logger"
)

var tracer = otel.Tracer("github.com/projeto-v3l0z/v3l0z-academy-front-end/internal/services")

// RenderedStep is the render endpoint body. Nodes is kept as encoded JSON so
// cached and fresh renders are served the same way.
type RenderedStep struct {
	Nodes       json.RawMessage `json:"nodes"`
	Stats       content.Stats   `json:"stats"`
	ContentHash string          `json:"content_hash"`
}

// StepService is the server side of steps.Gateway plus read and render
// operations.
type StepService interface {
	steps.Gateway
	GetStep(ctx context.Context, stepID uuid.UUID) (steps.Step, error)
	RenderStep(ctx context.Context, stepID uuid.UUID, opts render.Options) (*RenderedStep, error)
	RenderDocument(ctx context.Context, doc content.Document, opts render.Options) (*RenderedStep, error)
}

type stepService struct {
	db    *gorm.DB
	log   *logger.Logger
	repo  repos.CourseStepRepo
	cache RenderCache
}

func NewStepService(db *gorm.DB, baseLog *logger.Logger, repo repos.CourseStepRepo, cache RenderCache) StepService {
	serviceLog := baseLog.With("service", "StepService")
	if cache == nil {
		cache = NewMemoryRenderCache(0)
	}
	return &stepService{db: db, log: serviceLog, repo: repo, cache: cache}
}

func (s *stepService) ListSteps(ctx context.Context, courseID uuid.UUID) ([]steps.Step, error) {
	ctx, span := tracer.Start(ctx, "StepService.ListSteps", trace.WithAttributes(attribute.String("course_id", courseID.String())))
	defer span.End()

	if courseID == uuid.Nil {
		return nil, apierr.BadRequest("invalid_course_id", fmt.Errorf("course id required"))
	}
	rows, err := s.repo.GetByCourseID(ctx, s.db, courseID)
	if err != nil {
		fail(span, err)
		return nil, fmt.Errorf("list course steps: %w", err)
	}
	out := make([]steps.Step, 0, len(rows))
	for _, row := range rows {
		out = append(out, toStep(row))
	}
	return out, nil
}

func (s *stepService) GetStep(ctx context.Context, stepID uuid.UUID) (steps.Step, error) {
	row, err := s.repo.GetByID(ctx, s.db, stepID)
	if err != nil {
		return steps.Step{}, mapRepoErr(err)
	}
	return toStep(row), nil
}

func (s *stepService) CreateStep(ctx context.Context, courseID uuid.UUID, p steps.Payload) (steps.Step, error) {
	ctx, span := tracer.Start(ctx, "StepService.CreateStep", trace.WithAttributes(attribute.String("course_id", courseID.String())))
	defer span.End()

	if courseID == uuid.Nil {
		return steps.Step{}, apierr.BadRequest("invalid_course_id", fmt.Errorf("course id required"))
	}
	if err := validate.Struct(p); err != nil {
		return steps.Step{}, apierr.Unprocessable("invalid_step", validationMessage(err))
	}

	row := &domain.CourseStep{CourseID: courseID}
	applyPayload(row, p)
	if _, err := s.repo.Create(ctx, s.db, []*domain.CourseStep{row}); err != nil {
		fail(span, err)
		return steps.Step{}, mapRepoErr(fmt.Errorf("create course step: %w", err))
	}
	s.log.Info("course step created", "step_id", row.ID, "course_id", courseID, "blocks", row.BlockCount)
	return toStep(row), nil
}

func (s *stepService) UpdateStep(ctx context.Context, stepID uuid.UUID, p steps.Payload) (steps.Step, error) {
	ctx, span := tracer.Start(ctx, "StepService.UpdateStep", trace.WithAttributes(attribute.String("step_id", stepID.String())))
	defer span.End()

	if err := validate.Struct(p); err != nil {
		return steps.Step{}, apierr.Unprocessable("invalid_step", validationMessage(err))
	}

	var saved *domain.CourseStep
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, err := s.repo.GetByID(ctx, tx, stepID)
		if err != nil {
			return err
		}
		applyPayload(row, p)
		if err := s.repo.Update(ctx, tx, row); err != nil {
			return err
		}
		saved = row
		return nil
	})
	if err != nil {
		fail(span, err)
		return steps.Step{}, mapRepoErr(err)
	}
	s.log.Debug("course step updated", "step_id", stepID, "content_hash", saved.ContentHash)
	return toStep(saved), nil
}

func (s *stepService) RenderStep(ctx context.Context, stepID uuid.UUID, opts render.Options) (*RenderedStep, error) {
	ctx, span := tracer.Start(ctx, "StepService.RenderStep", trace.WithAttributes(
		attribute.String("step_id", stepID.String()),
		attribute.Bool("reveal_answers", opts.RevealAnswers),
	))
	defer span.End()

	row, err := s.repo.GetByID(ctx, s.db, stepID)
	if err != nil {
		fail(span, err)
		return nil, mapRepoErr(err)
	}
	return s.RenderDocument(ctx, content.Normalize(row.Content), opts)
}

func (s *stepService) RenderDocument(ctx context.Context, doc content.Document, opts render.Options) (*RenderedStep, error) {
	hash := content.Hash(doc)
	out := &RenderedStep{Stats: content.DocumentStats(doc), ContentHash: hash}

	key := cacheKey(hash, opts)
	if raw, ok, err := s.cache.Get(ctx, key); err != nil {
		s.log.Warn("render cache get failed", "key", key, "error", err)
	} else if ok {
		out.Nodes = raw
		return out, nil
	}

	raw, err := json.Marshal(render.RenderWith(doc, opts))
	if err != nil {
		return nil, fmt.Errorf("encode nodes: %w", err)
	}
	if err := s.cache.Set(ctx, key, raw); err != nil {
		s.log.Warn("render cache set failed", "key", key, "error", err)
	}
	out.Nodes = raw
	return out, nil
}

func cacheKey(hash string, opts render.Options) string {
	if opts.RevealAnswers {
		return hash + ":teacher"
	}
	return hash + ":student"
}

// applyPayload copies p onto row, assigning block ids and refreshing the
// derived columns.
func applyPayload(row *domain.CourseStep, p steps.Payload) {
	doc, _ := content.EnsureBlockIDs(p.Content)
	st := content.DocumentStats(doc)

	row.Title = p.Title
	row.Description = p.Description
	row.Order = p.Order
	row.Content = datatypes.JSON(content.CanonicalJSON(doc))
	row.ContentHash = content.Hash(doc)
	row.BlockCount = st.Blocks
	row.WordCount = st.WordCount
	row.EstimatedMinutes = st.EstimatedMinutes
}

func toStep(row *domain.CourseStep) steps.Step {
	id := row.ID
	return steps.Step{
		ID:          &id,
		Title:       row.Title,
		Description: row.Description,
		Order:       row.Order,
		Content:     content.Normalize(row.Content),
	}
}

// mapRepoErr turns storage failures into API errors. Anything unrecognised
// passes through and is reported as internal.
func mapRepoErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repos.ErrNotFound):
		return apierr.NotFound("step_not_found", err)
	case errors.Is(err, context.DeadlineExceeded):
		return apierr.New(http.StatusServiceUnavailable, "retryable", err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch strings.TrimSpace(pgErr.Code) {
		case "23505": // unique_violation
			return apierr.New(http.StatusConflict, "conflict", err)
		case "40001", "40P01", "55P03": // serialization / deadlock / lock_not_available
			return apierr.New(http.StatusServiceUnavailable, "retryable", err)
		}
	}
	return err
}

func fail(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
