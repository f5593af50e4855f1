package repos

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brightpath/brightpath-backend/internal/logger"
	"github.com/brightpath/brightpath-backend/internal/types"
)

// StatusCount is one row of a status breakdown aggregate.
type StatusCount struct {
	Status string `gorm:"column:status"`
	Count  int64  `gorm:"column:count"`
}

type RecommendationRepo interface {
	CreateBatch(ctx context.Context, tx *gorm.DB, recs []*types.UserRecommendation) ([]*types.UserRecommendation, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.UserRecommendation, error)
	GetActiveByUser(ctx context.Context, tx *gorm.DB, userID, orgID uuid.UUID, limit int) ([]*types.UserRecommendation, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status string) error
	// ExpireDue flips active recommendations whose expiry has passed to expired
	// and returns the number of rows affected.
	ExpireDue(ctx context.Context, tx *gorm.DB, now time.Time) (int64, error)
	CountByStatus(ctx context.Context, tx *gorm.DB, orgID uuid.UUID, since time.Time) ([]StatusCount, error)
}

type recommendationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRecommendationRepo(db *gorm.DB, baseLog *logger.Logger) RecommendationRepo {
	repoLog := baseLog.With("repo", "RecommendationRepo")
	return &recommendationRepo{db: db, log: repoLog}
}

func (r *recommendationRepo) CreateBatch(ctx context.Context, tx *gorm.DB, recs []*types.UserRecommendation) ([]*types.UserRecommendation, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(recs) == 0 {
		return []*types.UserRecommendation{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

func (r *recommendationRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.UserRecommendation, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.UserRecommendation
	err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (r *recommendationRepo) GetActiveByUser(ctx context.Context, tx *gorm.DB, userID, orgID uuid.UUID, limit int) ([]*types.UserRecommendation, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.UserRecommendation
	q := transaction.WithContext(ctx).
		Where("user_id = ? AND organization_id = ? AND status = ?", userID, orgID, types.RecommendationActive).
		Order("relevance_score DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *recommendationRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status string) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Model(&types.UserRecommendation{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *recommendationRepo) ExpireDue(ctx context.Context, tx *gorm.DB, now time.Time) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	res := transaction.WithContext(ctx).
		Model(&types.UserRecommendation{}).
		Where("status = ? AND expires_at < ?", types.RecommendationActive, now).
		Update("status", types.RecommendationExpired)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *recommendationRepo) CountByStatus(ctx context.Context, tx *gorm.DB, orgID uuid.UUID, since time.Time) ([]StatusCount, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []StatusCount
	if err := transaction.WithContext(ctx).
		Model(&types.UserRecommendation{}).
		Select("status, COUNT(*) AS count").
		Where("organization_id = ? AND created_at >= ?", orgID, since).
		Group("status").
		Scan(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
