package repos

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/brightpath/brightpath-backend/internal/repos/testutil"
)

func TestEnrollmentRepo_CountByCourseSince(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewEnrollmentRepo(db, testutil.Logger(t))
	ctx := context.Background()

	orgID := uuid.New()
	hot := testutil.SeedCourse(t, ctx, tx, orgID, "hot")
	cold := testutil.SeedCourse(t, ctx, tx, orgID, "cold")

	u1 := testutil.SeedUser(t, ctx, tx, orgID, "c1@example.com")
	u2 := testutil.SeedUser(t, ctx, tx, orgID, "c2@example.com")
	u3 := testutil.SeedUser(t, ctx, tx, orgID, "c3@example.com")

	testutil.SeedEnrollment(t, ctx, tx, u1.ID, hot.ID, 0.2)
	testutil.SeedEnrollment(t, ctx, tx, u2.ID, hot.ID, 0.1)
	testutil.SeedEnrollment(t, ctx, tx, u3.ID, cold.ID, 0.0)

	since := time.Now().Add(-7 * 24 * time.Hour)
	counts, err := repo.CountByCourseSince(ctx, tx, orgID, since, 0)
	if err != nil {
		t.Fatalf("CountByCourseSince: %v", err)
	}
	if len(counts) != 2 {
		t.Fatalf("expected 2 courses, got %d", len(counts))
	}
	if counts[0].CourseID != hot.ID || counts[0].Count != 2 {
		t.Fatalf("hottest course should come first with count 2, got %+v", counts[0])
	}
}

func TestEnrollmentRepo_ProgressMatrix(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewEnrollmentRepo(db, testutil.Logger(t))
	ctx := context.Background()

	orgID := uuid.New()
	course := testutil.SeedCourse(t, ctx, tx, orgID, "course")
	user := testutil.SeedUser(t, ctx, tx, orgID, "matrix@example.com")
	zero := testutil.SeedUser(t, ctx, tx, orgID, "zero@example.com")

	testutil.SeedEnrollment(t, ctx, tx, user.ID, course.ID, 0.8)
	// zero progress rows carry no signal for factorization
	testutil.SeedEnrollment(t, ctx, tx, zero.ID, course.ID, 0)

	cells, err := repo.ProgressMatrix(ctx, tx, orgID)
	if err != nil {
		t.Fatalf("ProgressMatrix: %v", err)
	}
	if len(cells) != 1 {
		t.Fatalf("expected 1 cell, got %d", len(cells))
	}
	if cells[0].UserID != user.ID || cells[0].Progress != 0.8 {
		t.Fatalf("unexpected cell: %+v", cells[0])
	}
}
