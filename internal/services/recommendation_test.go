package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brightpath/brightpath-backend/internal/logger"
	"github.com/brightpath/brightpath-backend/internal/recommend"
	"github.com/brightpath/brightpath-backend/internal/repos"
	"github.com/brightpath/brightpath-backend/internal/types"
)

type fakeModelRepo struct {
	models       map[uuid.UUID]*types.RecommendationModel
	trainedCount int
}

func newFakeModelRepo(models ...*types.RecommendationModel) *fakeModelRepo {
	f := &fakeModelRepo{models: make(map[uuid.UUID]*types.RecommendationModel)}
	for _, m := range models {
		f.models[m.ID] = m
	}
	return f
}

func (f *fakeModelRepo) Create(_ context.Context, _ *gorm.DB, model *types.RecommendationModel) (*types.RecommendationModel, error) {
	f.models[model.ID] = model
	return model, nil
}

func (f *fakeModelRepo) GetByID(_ context.Context, _ *gorm.DB, id uuid.UUID) (*types.RecommendationModel, error) {
	return f.models[id], nil
}

func (f *fakeModelRepo) ListByOrganization(context.Context, *gorm.DB, uuid.UUID) ([]*types.RecommendationModel, error) {
	return nil, nil
}

func (f *fakeModelRepo) ListActive(context.Context, *gorm.DB, uuid.UUID) ([]*types.RecommendationModel, error) {
	return nil, nil
}

func (f *fakeModelRepo) SetActive(context.Context, *gorm.DB, uuid.UUID, bool) error {
	return nil
}

func (f *fakeModelRepo) MarkTrained(_ context.Context, _ *gorm.DB, _ uuid.UUID, trainingDataCount int, _ time.Time) error {
	f.trainedCount = trainingDataCount
	return nil
}

func newTestRecommendationService(t *testing.T, recs repos.RecommendationRepo, enrollments repos.EnrollmentRepo, models repos.ModelRepo) RecommendationService {
	t.Helper()
	log, err := logger.New("dev")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return NewRecommendationService(nil, recs, nil, enrollments, models, nil, nil, nil, nil, log)
}

func TestTrainMatrixFactorization_PersistsPredictions(t *testing.T) {
	orgID := uuid.New()
	userA := uuid.New()
	userB := uuid.New()
	course1 := uuid.New()
	course2 := uuid.New()

	model := &types.RecommendationModel{
		ID:             uuid.New(),
		OrganizationID: orgID,
		Type:           "matrix_factorization",
	}
	models := newFakeModelRepo(model)
	recs := newFakeRecommendationRepo()
	enrollments := &fakeEnrollmentRepo{matrix: []repos.ProgressRow{
		{UserID: userA, CourseID: course1, Progress: 0.9},
		{UserID: userB, CourseID: course2, Progress: 0.8},
	}}

	svc := newTestRecommendationService(t, recs, enrollments, models)

	cells, err := svc.TrainMatrixFactorization(context.Background(), orgID, model.ID)
	if err != nil {
		t.Fatalf("TrainMatrixFactorization: %v", err)
	}
	if cells != 2 {
		t.Fatalf("trained cell count = %d, want 2", cells)
	}
	if models.trainedCount != 2 {
		t.Fatalf("model row should be stamped with the cell count, got %d", models.trainedCount)
	}

	if len(recs.rows) == 0 {
		t.Fatal("training must persist predicted recommendations")
	}
	for _, row := range recs.rows {
		if row.ModelID != model.ID.String() {
			t.Fatalf("row model id = %q, want %q", row.ModelID, model.ID.String())
		}
		if row.Status != types.RecommendationActive {
			t.Fatalf("persisted prediction should be active, got %q", row.Status)
		}

		var sources []string
		types.DecodeJSON(row.Sources, &sources)
		if len(sources) != 1 || sources[0] != recommend.StrategyMatrixFactor {
			t.Fatalf("sources = %v, want [matrix_factorization]", sources)
		}

		// predictions only cover courses the user has no progress on
		if row.UserID == userA && row.CourseID == course1 {
			t.Fatal("must not recommend a course the user already worked through")
		}
		if row.UserID == userB && row.CourseID == course2 {
			t.Fatal("must not recommend a course the user already worked through")
		}
	}
}

func TestTrainMatrixFactorization_UnknownModel(t *testing.T) {
	svc := newTestRecommendationService(t, newFakeRecommendationRepo(), &fakeEnrollmentRepo{}, newFakeModelRepo())

	if _, err := svc.TrainMatrixFactorization(context.Background(), uuid.New(), uuid.New()); !errors.Is(err, ErrModelNotFound) {
		t.Fatalf("expected ErrModelNotFound, got %v", err)
	}
}
