package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brightpath/brightpath-backend/internal/logger"
	"github.com/brightpath/brightpath-backend/internal/types"
)

// TypeCount is one row of an interaction-type breakdown aggregate.
type TypeCount struct {
	Type  string `gorm:"column:type"`
	Count int64  `gorm:"column:count"`
}

// InteractionRepo is append-only: no update or delete methods on purpose.
type InteractionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, interaction *types.RecommendationInteraction) (*types.RecommendationInteraction, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.RecommendationInteraction, error)
	CountByType(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID, since time.Time) ([]TypeCount, error)
}

type interactionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewInteractionRepo(db *gorm.DB, baseLog *logger.Logger) InteractionRepo {
	repoLog := baseLog.With("repo", "InteractionRepo")
	return &interactionRepo{db: db, log: repoLog}
}

func (r *interactionRepo) Create(ctx context.Context, tx *gorm.DB, interaction *types.RecommendationInteraction) (*types.RecommendationInteraction, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Create(interaction).Error; err != nil {
		return nil, err
	}
	return interaction, nil
}

func (r *interactionRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.RecommendationInteraction, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.RecommendationInteraction
	if userID == uuid.Nil {
		return results, nil
	}

	q := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *interactionRepo) CountByType(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID, since time.Time) ([]TypeCount, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []TypeCount
	q := transaction.WithContext(ctx).
		Model(&types.RecommendationInteraction{}).
		Select("type, COUNT(*) AS count").
		Where("created_at >= ?", since).
		Group("type")
	if len(userIDs) > 0 {
		q = q.Where("user_id IN ?", userIDs)
	}
	if err := q.Scan(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
