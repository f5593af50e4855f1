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

type ProfileRepo interface {
	GetByUserOrg(ctx context.Context, tx *gorm.DB, userID, orgID uuid.UUID) (*types.UserLearningProfile, error)
	Create(ctx context.Context, tx *gorm.DB, profile *types.UserLearningProfile) (*types.UserLearningProfile, error)
	Save(ctx context.Context, tx *gorm.DB, profile *types.UserLearningProfile) error
	// ListUserIDsNeedingRefresh returns users whose profile is missing or whose
	// last_profiled_at is older than the cutoff.
	ListUserIDsNeedingRefresh(ctx context.Context, tx *gorm.DB, orgID uuid.UUID, staleBefore time.Time, limit int) ([]uuid.UUID, error)
}

type profileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProfileRepo(db *gorm.DB, baseLog *logger.Logger) ProfileRepo {
	repoLog := baseLog.With("repo", "ProfileRepo")
	return &profileRepo{db: db, log: repoLog}
}

func (r *profileRepo) GetByUserOrg(ctx context.Context, tx *gorm.DB, userID, orgID uuid.UUID) (*types.UserLearningProfile, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.UserLearningProfile
	err := transaction.WithContext(ctx).
		Where("user_id = ? AND organization_id = ?", userID, orgID).
		First(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (r *profileRepo) Create(ctx context.Context, tx *gorm.DB, profile *types.UserLearningProfile) (*types.UserLearningProfile, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Create(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

func (r *profileRepo) Save(ctx context.Context, tx *gorm.DB, profile *types.UserLearningProfile) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).Save(profile).Error
}

func (r *profileRepo) ListUserIDsNeedingRefresh(ctx context.Context, tx *gorm.DB, orgID uuid.UUID, staleBefore time.Time, limit int) ([]uuid.UUID, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var ids []uuid.UUID
	q := transaction.WithContext(ctx).
		Model(&types.User{}).
		Select(`"user".id`).
		Joins(`LEFT JOIN user_learning_profile p ON p.user_id = "user".id AND p.deleted_at IS NULL`).
		Where(`"user".organization_id = ? AND (p.id IS NULL OR p.last_profiled_at < ?)`, orgID, staleBefore).
		Order(`"user".created_at ASC`)
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Scan(&ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
