package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brightpath/brightpath-backend/internal/types"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, orgID uuid.UUID, email string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:             uuid.New(),
		OrganizationID: orgID,
		Email:          email,
		Password:       "pw",
		FirstName:      "A",
		LastName:       "B",
		Role:           types.RoleMember,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedCourse(tb testing.TB, ctx context.Context, tx *gorm.DB, orgID uuid.UUID, title string) *types.Course {
	tb.Helper()
	c := &types.Course{
		ID:              uuid.New(),
		OrganizationID:  orgID,
		Title:           title,
		Category:        "engineering",
		Tags:            types.MustJSON([]string{"go"}),
		DifficultyLevel: types.DifficultyIntermediate,
		ContentType:     "video",
		Published:       true,
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed course: %v", err)
	}
	return c
}

func SeedEnrollment(tb testing.TB, ctx context.Context, tx *gorm.DB, userID, courseID uuid.UUID, progress float64) *types.Enrollment {
	tb.Helper()
	e := &types.Enrollment{
		ID:         uuid.New(),
		UserID:     userID,
		CourseID:   courseID,
		Status:     types.EnrollmentActive,
		Progress:   progress,
		EnrolledAt: time.Now(),
	}
	if err := tx.WithContext(ctx).Create(e).Error; err != nil {
		tb.Fatalf("seed enrollment: %v", err)
	}
	return e
}

func SeedRecommendation(tb testing.TB, ctx context.Context, tx *gorm.DB, userID, orgID, courseID uuid.UUID, status string, expiresAt time.Time) *types.UserRecommendation {
	tb.Helper()
	r := &types.UserRecommendation{
		ID:              uuid.New(),
		UserID:          userID,
		OrganizationID:  orgID,
		CourseID:        courseID,
		ModelID:         "ensemble",
		Sources:         types.MustJSON([]string{"content_based"}),
		ConfidenceScore: 0.8,
		RelevanceScore:  0.7,
		Reasoning:       types.MustJSON(types.Reasoning{}),
		Status:          status,
		ExpiresAt:       expiresAt,
	}
	if err := tx.WithContext(ctx).Create(r).Error; err != nil {
		tb.Fatalf("seed recommendation: %v", err)
	}
	return r
}
