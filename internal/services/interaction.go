package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/brightpath/brightpath-backend/internal/logger"
	"github.com/brightpath/brightpath-backend/internal/repos"
	"github.com/brightpath/brightpath-backend/internal/types"
)

var (
	ErrRecommendationNotFound = errors.New("recommendation not found")
	ErrInvalidInteractionType = errors.New("invalid interaction type")
)

// statusByInteraction maps an interaction type to the recommendation status it
// moves the row into. Absent entries leave the status untouched.
var statusByInteraction = map[string]string{
	types.InteractionView:    types.RecommendationActive,
	types.InteractionClick:   types.RecommendationClicked,
	types.InteractionEnroll:  types.RecommendationEnrolled,
	types.InteractionDismiss: types.RecommendationDismissed,
}

var validInteractionTypes = map[string]bool{
	types.InteractionView:    true,
	types.InteractionClick:   true,
	types.InteractionEnroll:  true,
	types.InteractionDismiss: true,
	types.InteractionRate:    true,
	types.InteractionShare:   true,
}

type InteractionService interface {
	Record(ctx context.Context, userID, recommendationID uuid.UUID, interactionType string, payload types.InteractionPayload) (*types.RecommendationInteraction, error)
	Feedback(ctx context.Context, userID, recommendationID uuid.UUID, rating float64) (*types.RecommendationInteraction, error)
}

type interactionService struct {
	interactions    repos.InteractionRepo
	recommendations repos.RecommendationRepo
	log             *logger.Logger
}

func NewInteractionService(
	interactions repos.InteractionRepo,
	recommendations repos.RecommendationRepo,
	baseLog *logger.Logger,
) InteractionService {
	return &interactionService{
		interactions:    interactions,
		recommendations: recommendations,
		log:             baseLog.With("service", "InteractionService"),
	}
}

func (s *interactionService) Record(ctx context.Context, userID, recommendationID uuid.UUID, interactionType string, payload types.InteractionPayload) (*types.RecommendationInteraction, error) {
	if !validInteractionTypes[interactionType] {
		return nil, ErrInvalidInteractionType
	}

	rec, err := s.recommendations.GetByID(ctx, nil, recommendationID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrRecommendationNotFound
	}

	interaction, err := s.interactions.Create(ctx, nil, &types.RecommendationInteraction{
		UserID:           userID,
		RecommendationID: recommendationID,
		Type:             interactionType,
		Payload:          types.MustJSON(payload),
	})
	if err != nil {
		return nil, err
	}

	if status, ok := statusByInteraction[interactionType]; ok && rec.Status != status {
		if err := s.recommendations.UpdateStatus(ctx, nil, recommendationID, status); err != nil {
			// The interaction row is already durable; a failed status flip is
			// logged and retried implicitly on the next interaction.
			s.log.Error("status update failed", "recommendation_id", recommendationID, "status", status, "error", err)
		}
	}
	return interaction, nil
}

func (s *interactionService) Feedback(ctx context.Context, userID, recommendationID uuid.UUID, rating float64) (*types.RecommendationInteraction, error) {
	return s.Record(ctx, userID, recommendationID, types.InteractionRate, types.InteractionPayload{
		Rating: &rating,
	})
}
