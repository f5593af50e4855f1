package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brightpath/brightpath-backend/internal/logger"
	"github.com/brightpath/brightpath-backend/internal/types"
)

// CourseCount is one row of an enrollment-count aggregate.
type CourseCount struct {
	CourseID uuid.UUID `gorm:"column:course_id"`
	Count    int64     `gorm:"column:count"`
}

// ProgressRow is one cell of the user x course completion matrix.
type ProgressRow struct {
	UserID   uuid.UUID `gorm:"column:user_id"`
	CourseID uuid.UUID `gorm:"column:course_id"`
	Progress float64   `gorm:"column:progress"`
}

type EnrollmentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, enrollments []*types.Enrollment) ([]*types.Enrollment, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Enrollment, error)
	CountByCourseSince(ctx context.Context, tx *gorm.DB, orgID uuid.UUID, since time.Time, limit int) ([]CourseCount, error)
	ProgressMatrix(ctx context.Context, tx *gorm.DB, orgID uuid.UUID) ([]ProgressRow, error)
}

type enrollmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEnrollmentRepo(db *gorm.DB, baseLog *logger.Logger) EnrollmentRepo {
	repoLog := baseLog.With("repo", "EnrollmentRepo")
	return &enrollmentRepo{db: db, log: repoLog}
}

func (r *enrollmentRepo) Create(ctx context.Context, tx *gorm.DB, enrollments []*types.Enrollment) ([]*types.Enrollment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(enrollments) == 0 {
		return []*types.Enrollment{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&enrollments).Error; err != nil {
		return nil, err
	}
	return enrollments, nil
}

func (r *enrollmentRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Enrollment, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Enrollment
	if userID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("enrolled_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *enrollmentRepo) CountByCourseSince(ctx context.Context, tx *gorm.DB, orgID uuid.UUID, since time.Time, limit int) ([]CourseCount, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []CourseCount
	q := transaction.WithContext(ctx).
		Model(&types.Enrollment{}).
		Select("enrollment.course_id AS course_id, COUNT(*) AS count").
		Joins("JOIN course ON course.id = enrollment.course_id").
		Where("course.organization_id = ? AND enrollment.enrolled_at >= ?", orgID, since).
		Group("enrollment.course_id").
		Order("count DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Scan(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *enrollmentRepo) ProgressMatrix(ctx context.Context, tx *gorm.DB, orgID uuid.UUID) ([]ProgressRow, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []ProgressRow
	if err := transaction.WithContext(ctx).
		Model(&types.Enrollment{}).
		Select("enrollment.user_id AS user_id, enrollment.course_id AS course_id, enrollment.progress AS progress").
		Joins("JOIN course ON course.id = enrollment.course_id").
		Where("course.organization_id = ? AND enrollment.progress > 0", orgID).
		Scan(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
