package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/brightpath/brightpath-backend/internal/logger"
	"github.com/brightpath/brightpath-backend/internal/types"
)

type ContentFeaturesRepo interface {
	GetByCourseID(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) (*types.ContentFeatures, error)
	GetByCourseIDs(ctx context.Context, tx *gorm.DB, courseIDs []uuid.UUID) ([]*types.ContentFeatures, error)
	ListByOrganization(ctx context.Context, tx *gorm.DB, orgID uuid.UUID, limit int) ([]*types.ContentFeatures, error)
	Upsert(ctx context.Context, tx *gorm.DB, features *types.ContentFeatures) error
}

type contentFeaturesRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewContentFeaturesRepo(db *gorm.DB, baseLog *logger.Logger) ContentFeaturesRepo {
	repoLog := baseLog.With("repo", "ContentFeaturesRepo")
	return &contentFeaturesRepo{db: db, log: repoLog}
}

func (r *contentFeaturesRepo) GetByCourseID(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) (*types.ContentFeatures, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.ContentFeatures
	err := transaction.WithContext(ctx).
		Where("course_id = ?", courseID).
		First(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (r *contentFeaturesRepo) GetByCourseIDs(ctx context.Context, tx *gorm.DB, courseIDs []uuid.UUID) ([]*types.ContentFeatures, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.ContentFeatures
	if len(courseIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("course_id IN ?", courseIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *contentFeaturesRepo) ListByOrganization(ctx context.Context, tx *gorm.DB, orgID uuid.UUID, limit int) ([]*types.ContentFeatures, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.ContentFeatures
	q := transaction.WithContext(ctx).
		Joins("JOIN course ON course.id = content_features.course_id").
		Where("course.organization_id = ? AND course.published = ?", orgID, true)
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *contentFeaturesRepo) Upsert(ctx context.Context, tx *gorm.DB, features *types.ContentFeatures) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "course_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"topics", "skills", "categories", "difficulty_level",
				"prerequisites", "characteristics", "engagement_metrics",
				"last_analyzed_at", "updated_at",
			}),
		}).
		Create(features).Error
}
