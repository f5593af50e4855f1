package repos

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/brightpath/brightpath-backend/internal/repos/testutil"
	"github.com/brightpath/brightpath-backend/internal/types"
)

func TestProfileRepo_GetByUserOrg(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewProfileRepo(db, testutil.Logger(t))
	ctx := context.Background()

	orgID := uuid.New()
	user := testutil.SeedUser(t, ctx, tx, orgID, "profile@example.com")

	missing, err := repo.GetByUserOrg(ctx, tx, user.ID, orgID)
	if err != nil {
		t.Fatalf("GetByUserOrg (missing): %v", err)
	}
	if missing != nil {
		t.Fatalf("missing profile should be nil, nil; got %+v", missing)
	}

	created, err := repo.Create(ctx, tx, &types.UserLearningProfile{
		UserID:         user.ID,
		OrganizationID: orgID,
		Interests:      types.MustJSON(types.Interests{Topics: []string{"go"}}),
		LearningStyle:  types.LearningStyleVisual,
		LastProfiledAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByUserOrg(ctx, tx, user.ID, orgID)
	if err != nil {
		t.Fatalf("GetByUserOrg: %v", err)
	}
	if got == nil || got.ID != created.ID {
		t.Fatalf("unexpected profile: %+v", got)
	}
}

func TestProfileRepo_ListUserIDsNeedingRefresh(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewProfileRepo(db, testutil.Logger(t))
	ctx := context.Background()

	orgID := uuid.New()
	noProfile := testutil.SeedUser(t, ctx, tx, orgID, "noprofile@example.com")
	stale := testutil.SeedUser(t, ctx, tx, orgID, "stale@example.com")
	fresh := testutil.SeedUser(t, ctx, tx, orgID, "fresh@example.com")

	now := time.Now()
	if _, err := repo.Create(ctx, tx, &types.UserLearningProfile{
		UserID:         stale.ID,
		OrganizationID: orgID,
		LearningStyle:  types.LearningStyleUnspecified,
		LastProfiledAt: now.Add(-48 * time.Hour),
	}); err != nil {
		t.Fatalf("Create (stale): %v", err)
	}
	if _, err := repo.Create(ctx, tx, &types.UserLearningProfile{
		UserID:         fresh.ID,
		OrganizationID: orgID,
		LearningStyle:  types.LearningStyleUnspecified,
		LastProfiledAt: now,
	}); err != nil {
		t.Fatalf("Create (fresh): %v", err)
	}

	ids, err := repo.ListUserIDsNeedingRefresh(ctx, tx, orgID, now.Add(-24*time.Hour), 100)
	if err != nil {
		t.Fatalf("ListUserIDsNeedingRefresh: %v", err)
	}

	want := map[uuid.UUID]bool{noProfile.ID: true, stale.ID: true}
	if len(ids) != 2 {
		t.Fatalf("expected 2 users needing refresh, got %d: %v", len(ids), ids)
	}
	for _, id := range ids {
		if !want[id] {
			t.Fatalf("unexpected user in refresh list: %s", id)
		}
		if id == fresh.ID {
			t.Fatalf("fresh profile should not need a refresh")
		}
	}
}
