package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/brightpath/brightpath-backend/internal/logger"
	"github.com/brightpath/brightpath-backend/internal/types"
)

// Neighbor is one side of a similarity pair, seen from the queried id.
type Neighbor struct {
	ID    uuid.UUID
	Score float64
}

type SimilarityRepo interface {
	UpsertContentPair(ctx context.Context, tx *gorm.DB, a, b uuid.UUID, score float64, factors []string) error
	UpsertUserPair(ctx context.Context, tx *gorm.DB, a, b uuid.UUID, score float64, factors []string) error
	ContentNeighbors(ctx context.Context, tx *gorm.DB, courseID uuid.UUID, limit int) ([]Neighbor, error)
	UserNeighbors(ctx context.Context, tx *gorm.DB, userID uuid.UUID, minScore float64, limit int) ([]Neighbor, error)
}

type similarityRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSimilarityRepo(db *gorm.DB, baseLog *logger.Logger) SimilarityRepo {
	repoLog := baseLog.With("repo", "SimilarityRepo")
	return &similarityRepo{db: db, log: repoLog}
}

func (r *similarityRepo) UpsertContentPair(ctx context.Context, tx *gorm.DB, a, b uuid.UUID, score float64, factors []string) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	id1, id2 := types.CanonicalPair(a, b)
	row := &types.ContentSimilarity{
		ID1:     id1,
		ID2:     id2,
		Score:   score,
		Factors: types.MustJSON(factors),
	}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id1"}, {Name: "id2"}},
			DoUpdates: clause.AssignmentColumns([]string{"score", "factors", "updated_at"}),
		}).
		Create(row).Error
}

func (r *similarityRepo) UpsertUserPair(ctx context.Context, tx *gorm.DB, a, b uuid.UUID, score float64, factors []string) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	id1, id2 := types.CanonicalPair(a, b)
	row := &types.UserSimilarity{
		ID1:     id1,
		ID2:     id2,
		Score:   score,
		Factors: types.MustJSON(factors),
	}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id1"}, {Name: "id2"}},
			DoUpdates: clause.AssignmentColumns([]string{"score", "factors", "updated_at"}),
		}).
		Create(row).Error
}

func (r *similarityRepo) ContentNeighbors(ctx context.Context, tx *gorm.DB, courseID uuid.UUID, limit int) ([]Neighbor, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var rows []types.ContentSimilarity
	q := transaction.WithContext(ctx).
		Where("id1 = ? OR id2 = ?", courseID, courseID).
		Order("score DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]Neighbor, 0, len(rows))
	for _, row := range rows {
		other := row.ID1
		if other == courseID {
			other = row.ID2
		}
		out = append(out, Neighbor{ID: other, Score: row.Score})
	}
	return out, nil
}

func (r *similarityRepo) UserNeighbors(ctx context.Context, tx *gorm.DB, userID uuid.UUID, minScore float64, limit int) ([]Neighbor, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var rows []types.UserSimilarity
	q := transaction.WithContext(ctx).
		Where("(id1 = ? OR id2 = ?) AND score >= ?", userID, userID, minScore).
		Order("score DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]Neighbor, 0, len(rows))
	for _, row := range rows {
		other := row.ID1
		if other == userID {
			other = row.ID2
		}
		out = append(out, Neighbor{ID: other, Score: row.Score})
	}
	return out, nil
}
