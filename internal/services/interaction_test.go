package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brightpath/brightpath-backend/internal/logger"
	"github.com/brightpath/brightpath-backend/internal/repos"
	"github.com/brightpath/brightpath-backend/internal/types"
)

type fakeInteractionRepo struct {
	created []*types.RecommendationInteraction
}

func (f *fakeInteractionRepo) Create(_ context.Context, _ *gorm.DB, interaction *types.RecommendationInteraction) (*types.RecommendationInteraction, error) {
	interaction.ID = uuid.New()
	f.created = append(f.created, interaction)
	return interaction, nil
}

func (f *fakeInteractionRepo) GetByUserID(context.Context, *gorm.DB, uuid.UUID, int) ([]*types.RecommendationInteraction, error) {
	return nil, nil
}

func (f *fakeInteractionRepo) CountByType(context.Context, *gorm.DB, []uuid.UUID, time.Time) ([]repos.TypeCount, error) {
	return nil, nil
}

type fakeRecommendationRepo struct {
	rows     map[uuid.UUID]*types.UserRecommendation
	statuses map[uuid.UUID]string
}

func newFakeRecommendationRepo() *fakeRecommendationRepo {
	return &fakeRecommendationRepo{
		rows:     make(map[uuid.UUID]*types.UserRecommendation),
		statuses: make(map[uuid.UUID]string),
	}
}

func (f *fakeRecommendationRepo) CreateBatch(_ context.Context, _ *gorm.DB, recs []*types.UserRecommendation) ([]*types.UserRecommendation, error) {
	for _, rec := range recs {
		rec.ID = uuid.New()
		f.rows[rec.ID] = rec
	}
	return recs, nil
}

func (f *fakeRecommendationRepo) GetByID(_ context.Context, _ *gorm.DB, id uuid.UUID) (*types.UserRecommendation, error) {
	return f.rows[id], nil
}

func (f *fakeRecommendationRepo) GetActiveByUser(context.Context, *gorm.DB, uuid.UUID, uuid.UUID, int) ([]*types.UserRecommendation, error) {
	return nil, nil
}

func (f *fakeRecommendationRepo) UpdateStatus(_ context.Context, _ *gorm.DB, id uuid.UUID, status string) error {
	f.statuses[id] = status
	return nil
}

func (f *fakeRecommendationRepo) ExpireDue(context.Context, *gorm.DB, time.Time) (int64, error) {
	return 0, nil
}

func (f *fakeRecommendationRepo) CountByStatus(context.Context, *gorm.DB, uuid.UUID, time.Time) ([]repos.StatusCount, error) {
	return nil, nil
}

func newTestInteractionService(t *testing.T, recs *fakeRecommendationRepo, interactions *fakeInteractionRepo) InteractionService {
	t.Helper()
	log, err := logger.New("dev")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return NewInteractionService(interactions, recs, log)
}

func seedRecommendation(recs *fakeRecommendationRepo) *types.UserRecommendation {
	rec := &types.UserRecommendation{
		ID:     uuid.New(),
		UserID: uuid.New(),
		Status: types.RecommendationActive,
	}
	recs.rows[rec.ID] = rec
	return rec
}

func TestRecord_DismissFlipsStatus(t *testing.T) {
	recs := newFakeRecommendationRepo()
	interactions := &fakeInteractionRepo{}
	svc := newTestInteractionService(t, recs, interactions)
	rec := seedRecommendation(recs)

	_, err := svc.Record(context.Background(), rec.UserID, rec.ID, types.InteractionDismiss, types.InteractionPayload{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := recs.statuses[rec.ID]; got != types.RecommendationDismissed {
		t.Fatalf("status = %q, want dismissed", got)
	}
	if len(interactions.created) != 1 {
		t.Fatalf("expected 1 interaction row, got %d", len(interactions.created))
	}
}

func TestRecord_RateLeavesStatusUntouched(t *testing.T) {
	recs := newFakeRecommendationRepo()
	interactions := &fakeInteractionRepo{}
	svc := newTestInteractionService(t, recs, interactions)
	rec := seedRecommendation(recs)

	_, err := svc.Record(context.Background(), rec.UserID, rec.ID, types.InteractionRate, types.InteractionPayload{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, flipped := recs.statuses[rec.ID]; flipped {
		t.Fatalf("rate interaction must not change recommendation status")
	}
	if len(interactions.created) != 1 {
		t.Fatalf("interaction row should still be recorded")
	}
}

func TestRecord_EnrollFlipsStatus(t *testing.T) {
	recs := newFakeRecommendationRepo()
	svc := newTestInteractionService(t, recs, &fakeInteractionRepo{})
	rec := seedRecommendation(recs)

	_, err := svc.Record(context.Background(), rec.UserID, rec.ID, types.InteractionEnroll, types.InteractionPayload{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := recs.statuses[rec.ID]; got != types.RecommendationEnrolled {
		t.Fatalf("status = %q, want enrolled", got)
	}
}

func TestRecord_UnknownRecommendation(t *testing.T) {
	recs := newFakeRecommendationRepo()
	svc := newTestInteractionService(t, recs, &fakeInteractionRepo{})

	_, err := svc.Record(context.Background(), uuid.New(), uuid.New(), types.InteractionView, types.InteractionPayload{})
	if !errors.Is(err, ErrRecommendationNotFound) {
		t.Fatalf("expected ErrRecommendationNotFound, got %v", err)
	}
}

func TestRecord_InvalidType(t *testing.T) {
	recs := newFakeRecommendationRepo()
	svc := newTestInteractionService(t, recs, &fakeInteractionRepo{})
	rec := seedRecommendation(recs)

	_, err := svc.Record(context.Background(), rec.UserID, rec.ID, "upvote", types.InteractionPayload{})
	if !errors.Is(err, ErrInvalidInteractionType) {
		t.Fatalf("expected ErrInvalidInteractionType, got %v", err)
	}
}

func TestFeedback_RecordsRating(t *testing.T) {
	recs := newFakeRecommendationRepo()
	interactions := &fakeInteractionRepo{}
	svc := newTestInteractionService(t, recs, interactions)
	rec := seedRecommendation(recs)

	_, err := svc.Feedback(context.Background(), rec.UserID, rec.ID, 4.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	row := interactions.created[0]
	if row.Type != types.InteractionRate {
		t.Fatalf("feedback should record a rate interaction, got %q", row.Type)
	}
	var payload types.InteractionPayload
	types.DecodeJSON(row.Payload, &payload)
	if payload.Rating == nil || *payload.Rating != 4.5 {
		t.Fatalf("rating not carried in payload: %+v", payload)
	}
}
