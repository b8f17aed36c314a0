package lesson

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/projeto-v3l0z/v3l0z-academy-front-end/internal/data/repos/testutil"
	domain "github.com/projeto-v3l0z/v3l0z-academy-front-end/internal/domain/lesson"
)

func TestCourseStepRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewCourseStepRepo(db, testutil.Logger(t))

	course := uuid.New()
	other := uuid.New()
	s2 := &domain.CourseStep{CourseID: course, Title: "two", Order: 2, Content: datatypes.JSON(`{"blocks":[]}`)}
	s1 := &domain.CourseStep{CourseID: course, Title: "one", Order: 1, Content: datatypes.JSON(`{"blocks":[]}`)}
	s3 := &domain.CourseStep{CourseID: other, Title: "elsewhere", Order: 1, Content: datatypes.JSON(`{"blocks":[]}`)}
	if _, err := repo.Create(ctx, tx, []*domain.CourseStep{s2, s1, s3}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if s1.ID == uuid.Nil || s2.ID == uuid.Nil {
		t.Fatalf("Create did not assign ids")
	}

	rows, err := repo.GetByCourseID(ctx, tx, course)
	if err != nil || len(rows) != 2 {
		t.Fatalf("GetByCourseID: err=%v len=%d", err, len(rows))
	}
	if rows[0].Title != "one" || rows[1].Title != "two" {
		t.Fatalf("GetByCourseID order: got %q,%q", rows[0].Title, rows[1].Title)
	}

	s1.Title = "one b"
	s1.Content = datatypes.JSON(`{"blocks":[{"id":"text_1","type":"text","data":{"text":"hi"}}]}`)
	s1.BlockCount = 1
	if err := repo.Update(ctx, tx, s1); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, err := repo.GetByID(ctx, tx, s1.ID)
	if err != nil || got == nil {
		t.Fatalf("GetByID: got=%v err=%v", got, err)
	}
	if got.Title != "one b" || got.BlockCount != 1 {
		t.Fatalf("GetByID after update: %+v", got)
	}

	if err := repo.Update(ctx, tx, &domain.CourseStep{ID: uuid.New(), Title: "ghost"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Update missing: want ErrNotFound, got %v", err)
	}
	if _, err := repo.GetByID(ctx, tx, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetByID missing: want ErrNotFound, got %v", err)
	}
}
