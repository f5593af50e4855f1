package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/brightpath/brightpath-backend/internal/logger"
	"github.com/brightpath/brightpath-backend/internal/recommend"
	"github.com/brightpath/brightpath-backend/internal/repos"
	"github.com/brightpath/brightpath-backend/internal/types"
)

const (
	recommendationTTL = 7 * 24 * time.Hour
	ensembleModelID   = "ensemble"
	analyticsWindow   = 30 * 24 * time.Hour
	mfTopK            = 5
)

var ErrModelNotFound = errors.New("recommendation model not found")

// AnalyticsSummary aggregates recommendation outcomes for an organization.
type AnalyticsSummary struct {
	StatusCounts      map[string]int64 `json:"status_counts"`
	InteractionCounts map[string]int64 `json:"interaction_counts"`
	ClickThroughRate  float64          `json:"click_through_rate"`
	ConversionRate    float64          `json:"conversion_rate"`
}

type RecommendationService interface {
	Personalized(ctx context.Context, userID, orgID uuid.UUID, req recommend.Request) ([]*types.UserRecommendation, error)
	ByStrategy(ctx context.Context, userID, orgID uuid.UUID, strategy string, req recommend.Request) ([]recommend.ScoredCandidate, error)
	SimilarContent(ctx context.Context, courseID uuid.UUID, limit int) ([]recommend.ScoredCandidate, error)
	TrainMatrixFactorization(ctx context.Context, orgID uuid.UUID, modelID uuid.UUID) (int, error)
	Analytics(ctx context.Context, orgID uuid.UUID) (*AnalyticsSummary, error)
}

type recommendationService struct {
	profiles        ProfileService
	recommendations repos.RecommendationRepo
	interactions    repos.InteractionRepo
	enrollments     repos.EnrollmentRepo
	models          repos.ModelRepo

	contents     recommend.ContentStore
	similarities recommend.SimilarityStore
	engagement   recommend.InteractionStore
	trending     recommend.TrendingStore

	log *logger.Logger
}

func NewRecommendationService(
	profiles ProfileService,
	recommendations repos.RecommendationRepo,
	interactions repos.InteractionRepo,
	enrollments repos.EnrollmentRepo,
	models repos.ModelRepo,
	contents recommend.ContentStore,
	similarities recommend.SimilarityStore,
	engagement recommend.InteractionStore,
	trending recommend.TrendingStore,
	baseLog *logger.Logger,
) RecommendationService {
	return &recommendationService{
		profiles:        profiles,
		recommendations: recommendations,
		interactions:    interactions,
		enrollments:     enrollments,
		models:          models,
		contents:        contents,
		similarities:    similarities,
		engagement:      engagement,
		trending:        trending,
		log:             baseLog.With("service", "RecommendationService"),
	}
}

func (s *recommendationService) strategies() []recommend.Strategy {
	contentBased := &recommend.ContentBased{Contents: s.contents}
	collaborative := &recommend.Collaborative{Similarities: s.similarities, Interactions: s.engagement}
	return []recommend.Strategy{
		contentBased,
		collaborative,
		&recommend.Hybrid{ContentBased: contentBased, Collaborative: collaborative},
		&recommend.Trending{Counts: s.trending},
		&recommend.SkillGap{Contents: s.contents},
		&recommend.SkillGap{Contents: s.contents, CareerPath: true},
		&recommend.Contextual{Similarities: s.similarities, Contents: s.contents},
	}
}

func (s *recommendationService) strategyByName(name string) recommend.Strategy {
	for _, strategy := range s.strategies() {
		if strategy.Name() == name {
			return strategy
		}
	}
	return nil
}

func (s *recommendationService) Personalized(ctx context.Context, userID, orgID uuid.UUID, req recommend.Request) ([]*types.UserRecommendation, error) {
	profile, err := s.profiles.ScoringProfile(ctx, userID, orgID)
	if err != nil {
		return nil, err
	}

	runner := &recommend.Runner{
		Strategies:    s.strategies(),
		Log:           s.log,
		MaxConcurrent: 4,
	}
	lists := runner.Run(ctx, profile, req)

	combined := recommend.Combine(lists, recommend.EnsembleConfig{
		DiversityLevel:     req.DiversityLevel,
		MaxRecommendations: req.Limit,
	})
	if len(combined) == 0 {
		return []*types.UserRecommendation{}, nil
	}

	now := time.Now()
	rows := make([]*types.UserRecommendation, 0, len(combined))
	for _, cand := range combined {
		rows = append(rows, &types.UserRecommendation{
			UserID:          userID,
			OrganizationID:  orgID,
			CourseID:        cand.CourseID,
			ModelID:         ensembleModelID,
			Sources:         types.MustJSON(cand.Sources),
			ConfidenceScore: cand.ConfidenceScore,
			RelevanceScore:  cand.RelevanceScore,
			Reasoning: types.MustJSON(types.Reasoning{
				Factors: cand.Reasoning.Factors,
				Text:    cand.Reasoning.Text,
			}),
			Status:    types.RecommendationActive,
			ExpiresAt: now.Add(recommendationTTL),
		})
	}

	persisted, err := s.recommendations.CreateBatch(ctx, nil, rows)
	if err != nil {
		return nil, err
	}
	s.log.Info("generated recommendations",
		"user_id", userID, "count", len(persisted), "strategies", len(lists))
	return persisted, nil
}

func (s *recommendationService) ByStrategy(ctx context.Context, userID, orgID uuid.UUID, name string, req recommend.Request) ([]recommend.ScoredCandidate, error) {
	strategy := s.strategyByName(name)
	if strategy == nil {
		return nil, errors.New("unknown strategy: " + name)
	}
	profile, err := s.profiles.ScoringProfile(ctx, userID, orgID)
	if err != nil {
		return nil, err
	}
	cands, err := strategy.Recommend(ctx, profile, req)
	if err != nil {
		return nil, err
	}
	return recommend.Combine([][]recommend.ScoredCandidate{cands}, recommend.EnsembleConfig{
		DiversityLevel:     req.DiversityLevel,
		MaxRecommendations: req.Limit,
	}), nil
}

func (s *recommendationService) SimilarContent(ctx context.Context, courseID uuid.UUID, limit int) ([]recommend.ScoredCandidate, error) {
	strategy := &recommend.Contextual{Similarities: s.similarities, Contents: s.contents, Limit: limit}
	return strategy.Recommend(ctx, &recommend.Profile{}, recommend.Request{CurrentCourseID: courseID})
}

// TrainMatrixFactorization fits latent factors over the organization's
// completion matrix, persists each trained user's top predicted courses under
// the model's id, and stamps the model row. It returns the observed cell count
// used for training.
func (s *recommendationService) TrainMatrixFactorization(ctx context.Context, orgID, modelID uuid.UUID) (int, error) {
	model, err := s.models.GetByID(ctx, nil, modelID)
	if err != nil {
		return 0, err
	}
	if model == nil {
		return 0, ErrModelNotFound
	}

	rows, err := s.enrollments.ProgressMatrix(ctx, nil, orgID)
	if err != nil {
		return 0, err
	}
	cells := make([]recommend.ProgressCell, 0, len(rows))
	for _, row := range rows {
		cells = append(cells, recommend.ProgressCell{
			UserID:   row.UserID,
			CourseID: row.CourseID,
			Value:    row.Progress,
		})
	}

	trainer := &recommend.MFTrainer{}
	fitted := trainer.Fit(cells)

	seen := make(map[uuid.UUID]map[uuid.UUID]bool)
	for _, cell := range cells {
		if seen[cell.UserID] == nil {
			seen[cell.UserID] = make(map[uuid.UUID]bool)
		}
		seen[cell.UserID][cell.CourseID] = true
	}

	now := time.Now()
	recRows := make([]*types.UserRecommendation, 0, len(fitted.UserVectors)*mfTopK)
	for trainedUserID := range fitted.UserVectors {
		for _, cand := range fitted.Recommend(trainedUserID, seen[trainedUserID], mfTopK) {
			recRows = append(recRows, &types.UserRecommendation{
				UserID:          trainedUserID,
				OrganizationID:  orgID,
				CourseID:        cand.CourseID,
				ModelID:         model.ID.String(),
				Sources:         types.MustJSON([]string{recommend.StrategyMatrixFactor}),
				ConfidenceScore: cand.ConfidenceScore,
				RelevanceScore:  cand.RelevanceScore,
				Reasoning: types.MustJSON(types.Reasoning{
					Factors: cand.Reasoning.Factors,
					Text:    cand.Reasoning.Text,
				}),
				Status:    types.RecommendationActive,
				ExpiresAt: now.Add(recommendationTTL),
			})
		}
	}
	if len(recRows) > 0 {
		if _, err := s.recommendations.CreateBatch(ctx, nil, recRows); err != nil {
			return 0, err
		}
	}

	if err := s.models.MarkTrained(ctx, nil, modelID, len(cells), now); err != nil {
		return 0, err
	}
	s.log.Info("trained matrix factorization model",
		"model_id", modelID, "cells", len(cells), "recommendations", len(recRows))
	return len(cells), nil
}

func (s *recommendationService) Analytics(ctx context.Context, orgID uuid.UUID) (*AnalyticsSummary, error) {
	since := time.Now().Add(-analyticsWindow)

	statusRows, err := s.recommendations.CountByStatus(ctx, nil, orgID, since)
	if err != nil {
		return nil, err
	}
	typeRows, err := s.interactions.CountByType(ctx, nil, nil, since)
	if err != nil {
		return nil, err
	}

	summary := &AnalyticsSummary{
		StatusCounts:      make(map[string]int64, len(statusRows)),
		InteractionCounts: make(map[string]int64, len(typeRows)),
	}
	var total int64
	for _, row := range statusRows {
		summary.StatusCounts[row.Status] = row.Count
		total += row.Count
	}
	for _, row := range typeRows {
		summary.InteractionCounts[row.Type] = row.Count
	}
	if total > 0 {
		clicked := summary.StatusCounts[types.RecommendationClicked] + summary.StatusCounts[types.RecommendationEnrolled]
		summary.ClickThroughRate = float64(clicked) / float64(total)
		summary.ConversionRate = float64(summary.StatusCounts[types.RecommendationEnrolled]) / float64(total)
	}
	return summary, nil
}
