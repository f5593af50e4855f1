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

type ModelRepo interface {
	Create(ctx context.Context, tx *gorm.DB, model *types.RecommendationModel) (*types.RecommendationModel, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.RecommendationModel, error)
	ListByOrganization(ctx context.Context, tx *gorm.DB, orgID uuid.UUID) ([]*types.RecommendationModel, error)
	ListActive(ctx context.Context, tx *gorm.DB, orgID uuid.UUID) ([]*types.RecommendationModel, error)
	SetActive(ctx context.Context, tx *gorm.DB, id uuid.UUID, active bool) error
	MarkTrained(ctx context.Context, tx *gorm.DB, id uuid.UUID, trainingDataCount int, trainedAt time.Time) error
}

type modelRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewModelRepo(db *gorm.DB, baseLog *logger.Logger) ModelRepo {
	repoLog := baseLog.With("repo", "ModelRepo")
	return &modelRepo{db: db, log: repoLog}
}

func (r *modelRepo) Create(ctx context.Context, tx *gorm.DB, model *types.RecommendationModel) (*types.RecommendationModel, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Create(model).Error; err != nil {
		return nil, err
	}
	return model, nil
}

func (r *modelRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.RecommendationModel, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.RecommendationModel
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

func (r *modelRepo) ListByOrganization(ctx context.Context, tx *gorm.DB, orgID uuid.UUID) ([]*types.RecommendationModel, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.RecommendationModel
	if err := transaction.WithContext(ctx).
		Where("organization_id = ?", orgID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *modelRepo) ListActive(ctx context.Context, tx *gorm.DB, orgID uuid.UUID) ([]*types.RecommendationModel, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.RecommendationModel
	q := transaction.WithContext(ctx).Where("is_active = ?", true)
	if orgID != uuid.Nil {
		q = q.Where("organization_id = ?", orgID)
	}
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *modelRepo) SetActive(ctx context.Context, tx *gorm.DB, id uuid.UUID, active bool) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Model(&types.RecommendationModel{}).
		Where("id = ?", id).
		Update("is_active", active).Error
}

func (r *modelRepo) MarkTrained(ctx context.Context, tx *gorm.DB, id uuid.UUID, trainingDataCount int, trainedAt time.Time) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Model(&types.RecommendationModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"training_data_count": trainingDataCount,
			"last_trained_at":     trainedAt,
		}).Error
}
