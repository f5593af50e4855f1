package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/brightpath/brightpath-backend/internal/logger"
	"github.com/brightpath/brightpath-backend/internal/requestctx"
	"github.com/brightpath/brightpath-backend/internal/response"
	"github.com/brightpath/brightpath-backend/internal/services"
	"github.com/brightpath/brightpath-backend/internal/types"
)

type InteractionHandler struct {
	interactions services.InteractionService
	log          *logger.Logger
}

func NewInteractionHandler(interactions services.InteractionService, baseLog *logger.Logger) *InteractionHandler {
	return &InteractionHandler{
		interactions: interactions,
		log:          baseLog.With("handler", "InteractionHandler"),
	}
}

type recordInteractionRequest struct {
	RecommendationID uuid.UUID                `json:"recommendation_id" binding:"required"`
	Type             string                   `json:"type" binding:"required"`
	Payload          types.InteractionPayload `json:"payload"`
}

func (h *InteractionHandler) Record(c *gin.Context) {
	rd := requestctx.GetRequestData(c.Request.Context())

	var req recordInteractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.AbortError(c, http.StatusBadRequest, "malformed interaction payload")
		return
	}

	interaction, err := h.interactions.Record(c.Request.Context(), rd.UserID, req.RecommendationID, req.Type, req.Payload)
	if err != nil {
		h.respondRecordError(c, err)
		return
	}
	response.RespondCreated(c, interaction)
}

type feedbackRequest struct {
	RecommendationID uuid.UUID `json:"recommendation_id" binding:"required"`
	Rating           *float64  `json:"rating" binding:"required"`
}

func (h *InteractionHandler) Feedback(c *gin.Context) {
	rd := requestctx.GetRequestData(c.Request.Context())

	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.AbortError(c, http.StatusBadRequest, "malformed feedback payload")
		return
	}

	interaction, err := h.interactions.Feedback(c.Request.Context(), rd.UserID, req.RecommendationID, *req.Rating)
	if err != nil {
		h.respondRecordError(c, err)
		return
	}
	response.RespondCreated(c, interaction)
}

func (h *InteractionHandler) respondRecordError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrRecommendationNotFound):
		response.AbortError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrInvalidInteractionType):
		response.AbortError(c, http.StatusBadRequest, err.Error())
	default:
		h.log.Error("interaction record failed", "error", err)
		response.RespondError(c, http.StatusInternalServerError, err)
	}
}
