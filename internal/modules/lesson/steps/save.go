package steps

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/projeto-v3l0z/v3l0z-academy-front-end/internal/modules/lesson/content"
	"github.com/projeto-v3l0z/v3l0z-academy-front-end/internal/platform/logger"
)

var tracer = otel.Tracer("github.com/projeto-v3l0z/v3l0z-academy-front-end/internal/modules/lesson/steps")

// Save upserts every step in collection order, one call at a time: update
// when the step has an id, create otherwise. The first failure stops the
// loop and is returned as a *PersistenceError; steps written before it stay
// written and keep the ids the gateway assigned, so calling Save again
// resumes from there.
//
// Cancelling ctx stops further steps from being issued but does not abort
// the call already in flight.
func (c *Collection) Save(ctx context.Context, gw Gateway, courseID uuid.UUID, log *logger.Logger) error {
	ctx, span := tracer.Start(ctx, "steps.save", trace.WithAttributes(
		attribute.String("course_id", courseID.String()),
		attribute.Int("steps", len(c.steps)),
	))
	defer span.End()

	for i := range c.steps {
		if err := ctx.Err(); err != nil {
			perr := &PersistenceError{Index: i, StepID: c.steps[i].ID, Op: opFor(c.steps[i]), Err: err}
			span.RecordError(perr)
			span.SetStatus(codes.Error, "cancelled")
			return perr
		}
		saved, op, err := upsert(context.WithoutCancel(ctx), gw, courseID, c.steps[i])
		if err != nil {
			perr := &PersistenceError{Index: i, StepID: c.steps[i].ID, Op: op, Err: err}
			if log != nil {
				log.Warn("step save aborted", "step_index", i, "op", op, "course_id", courseID, "error", err)
			}
			span.RecordError(perr)
			span.SetStatus(codes.Error, perr.Error())
			return perr
		}
		c.adopt(i, saved)
		if log != nil {
			log.Debug("step saved", "step_index", i, "step_id", c.steps[i].ID, "op", op)
		}
	}
	return nil
}

func opFor(s Step) string {
	if s.Persisted() {
		return OpUpdate
	}
	return OpCreate
}

func upsert(ctx context.Context, gw Gateway, courseID uuid.UUID, s Step) (Step, string, error) {
	op := opFor(s)
	ctx, span := tracer.Start(ctx, "steps.upsert", trace.WithAttributes(
		attribute.String("op", op),
		attribute.Int("order", s.Order),
	))
	defer span.End()

	var (
		saved Step
		err   error
	)
	if op == OpUpdate {
		saved, err = gw.UpdateStep(ctx, *s.ID, s.Payload())
	} else {
		saved, err = gw.CreateStep(ctx, courseID, s.Payload())
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return saved, op, err
}

// adopt records what the gateway assigned: the step id and, when the block
// layout still matches, block ids.
func (c *Collection) adopt(i int, saved Step) {
	if saved.ID != nil && *saved.ID != uuid.Nil {
		id := *saved.ID
		c.steps[i].ID = &id
	}
	local := c.steps[i].Content.Blocks
	remote := saved.Content.Blocks
	if len(local) != len(remote) {
		return
	}
	blocks := make([]content.Block, len(local))
	copy(blocks, local)
	for j := range blocks {
		if blocks[j].ID == nil && remote[j].ID != nil && remote[j].Type == blocks[j].Type {
			id := *remote[j].ID
			blocks[j].ID = &id
		}
	}
	c.steps[i].Content = content.Document{Blocks: blocks}
}

// Load fetches a course's steps and builds a collection from them. Content
// arrives normalized because content.Document accepts legacy shapes when
// decoded.
func Load(ctx context.Context, gw Gateway, courseID uuid.UUID) (*Collection, error) {
	ctx, span := tracer.Start(ctx, "steps.load", trace.WithAttributes(attribute.String("course_id", courseID.String())))
	defer span.End()

	list, err := gw.ListSteps(ctx, courseID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, &PersistenceError{Index: -1, Op: OpList, Err: err}
	}
	return NewCollection(list), nil
}
