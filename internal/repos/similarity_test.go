package repos

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/brightpath/brightpath-backend/internal/repos/testutil"
)

func TestSimilarityRepo_CanonicalPairUpsert(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewSimilarityRepo(db, testutil.Logger(t))
	ctx := context.Background()

	a := uuid.New()
	b := uuid.New()

	if err := repo.UpsertContentPair(ctx, tx, a, b, 0.4, []string{"topics"}); err != nil {
		t.Fatalf("UpsertContentPair: %v", err)
	}
	// same pair in the opposite order must update, not insert
	if err := repo.UpsertContentPair(ctx, tx, b, a, 0.9, []string{"topics", "skills"}); err != nil {
		t.Fatalf("UpsertContentPair (reversed): %v", err)
	}

	neighborsOfA, err := repo.ContentNeighbors(ctx, tx, a, 0)
	if err != nil {
		t.Fatalf("ContentNeighbors: %v", err)
	}
	if len(neighborsOfA) != 1 {
		t.Fatalf("expected 1 neighbor row after reversed upsert, got %d", len(neighborsOfA))
	}
	if neighborsOfA[0].ID != b {
		t.Fatalf("neighbor should be the other id, got %s", neighborsOfA[0].ID)
	}
	if neighborsOfA[0].Score != 0.9 {
		t.Fatalf("score should have been updated to 0.9, got %v", neighborsOfA[0].Score)
	}

	neighborsOfB, err := repo.ContentNeighbors(ctx, tx, b, 0)
	if err != nil {
		t.Fatalf("ContentNeighbors (b): %v", err)
	}
	if len(neighborsOfB) != 1 || neighborsOfB[0].ID != a {
		t.Fatalf("lookup must be symmetric, got %+v", neighborsOfB)
	}
}

func TestSimilarityRepo_UserNeighborsMinScore(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewSimilarityRepo(db, testutil.Logger(t))
	ctx := context.Background()

	target := uuid.New()
	strong := uuid.New()
	weak := uuid.New()

	if err := repo.UpsertUserPair(ctx, tx, target, strong, 0.8, nil); err != nil {
		t.Fatalf("UpsertUserPair: %v", err)
	}
	if err := repo.UpsertUserPair(ctx, tx, target, weak, 0.1, nil); err != nil {
		t.Fatalf("UpsertUserPair: %v", err)
	}

	neighbors, err := repo.UserNeighbors(ctx, tx, target, 0.3, 0)
	if err != nil {
		t.Fatalf("UserNeighbors: %v", err)
	}
	if len(neighbors) != 1 || neighbors[0].ID != strong {
		t.Fatalf("expected only the strong neighbor, got %+v", neighbors)
	}
}
