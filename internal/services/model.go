package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/brightpath/brightpath-backend/internal/logger"
	"github.com/brightpath/brightpath-backend/internal/repos"
	"github.com/brightpath/brightpath-backend/internal/types"
)

var ErrInvalidModelType = errors.New("invalid model type")

var validModelTypes = map[string]bool{
	types.ModelTypeContentBased:  true,
	types.ModelTypeCollaborative: true,
	types.ModelTypeHybrid:        true,
	types.ModelTypeTrending:      true,
	types.ModelTypeCareerPath:    true,
	types.ModelTypeSkillGap:      true,
	types.ModelTypeContextual:    true,
}

// ModelCreate carries the writable fields of a model registration.
type ModelCreate struct {
	Name           string         `json:"name"`
	Type           string         `json:"type"`
	Parameters     map[string]any `json:"parameters,omitempty"`
	FeatureWeights map[string]any `json:"feature_weights,omitempty"`
	Thresholds     map[string]any `json:"thresholds,omitempty"`
}

type ModelService interface {
	Create(ctx context.Context, orgID uuid.UUID, input ModelCreate) (*types.RecommendationModel, error)
	List(ctx context.Context, orgID uuid.UUID) ([]*types.RecommendationModel, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) (*types.RecommendationModel, error)
	// Train stamps the model's training counters. The matrix-factorization
	// path does real work through RecommendationService; other types are
	// bookkeeping only.
	Train(ctx context.Context, id uuid.UUID, trainingDataCount int) (*types.RecommendationModel, error)
}

type modelService struct {
	models repos.ModelRepo
	log    *logger.Logger
}

func NewModelService(models repos.ModelRepo, baseLog *logger.Logger) ModelService {
	return &modelService{
		models: models,
		log:    baseLog.With("service", "ModelService"),
	}
}

func (s *modelService) Create(ctx context.Context, orgID uuid.UUID, input ModelCreate) (*types.RecommendationModel, error) {
	if !validModelTypes[input.Type] {
		return nil, ErrInvalidModelType
	}
	model := &types.RecommendationModel{
		OrganizationID: orgID,
		Name:           input.Name,
		Type:           input.Type,
		Parameters:     types.MustJSON(input.Parameters),
		FeatureWeights: types.MustJSON(input.FeatureWeights),
		Thresholds:     types.MustJSON(input.Thresholds),
	}
	created, err := s.models.Create(ctx, nil, model)
	if err != nil {
		return nil, err
	}
	s.log.Info("registered model", "model_id", created.ID, "type", created.Type)
	return created, nil
}

func (s *modelService) List(ctx context.Context, orgID uuid.UUID) ([]*types.RecommendationModel, error) {
	return s.models.ListByOrganization(ctx, nil, orgID)
}

func (s *modelService) SetActive(ctx context.Context, id uuid.UUID, active bool) (*types.RecommendationModel, error) {
	model, err := s.models.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if model == nil {
		return nil, ErrModelNotFound
	}
	if err := s.models.SetActive(ctx, nil, id, active); err != nil {
		return nil, err
	}
	model.IsActive = active
	return model, nil
}

func (s *modelService) Train(ctx context.Context, id uuid.UUID, trainingDataCount int) (*types.RecommendationModel, error) {
	model, err := s.models.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if model == nil {
		return nil, ErrModelNotFound
	}
	now := time.Now()
	if err := s.models.MarkTrained(ctx, nil, id, trainingDataCount, now); err != nil {
		return nil, err
	}
	model.TrainingDataCount = trainingDataCount
	model.LastTrainedAt = &now
	return model, nil
}
