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
)

type ModelHandler struct {
	models          services.ModelService
	recommendations services.RecommendationService
	log             *logger.Logger
}

func NewModelHandler(models services.ModelService, recommendations services.RecommendationService, baseLog *logger.Logger) *ModelHandler {
	return &ModelHandler{
		models:          models,
		recommendations: recommendations,
		log:             baseLog.With("handler", "ModelHandler"),
	}
}

func (h *ModelHandler) Create(c *gin.Context) {
	rd := requestctx.GetRequestData(c.Request.Context())

	var input services.ModelCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		response.AbortError(c, http.StatusBadRequest, "malformed model payload")
		return
	}

	model, err := h.models.Create(c.Request.Context(), rd.OrganizationID, input)
	if err != nil {
		if errors.Is(err, services.ErrInvalidModelType) {
			response.AbortError(c, http.StatusBadRequest, err.Error())
			return
		}
		h.log.Error("model create failed", "error", err)
		response.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	response.RespondCreated(c, model)
}

func (h *ModelHandler) List(c *gin.Context) {
	rd := requestctx.GetRequestData(c.Request.Context())

	models, err := h.models.List(c.Request.Context(), rd.OrganizationID)
	if err != nil {
		h.log.Error("model list failed", "error", err)
		response.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	response.RespondOK(c, models)
}

func (h *ModelHandler) Activate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.AbortError(c, http.StatusBadRequest, "invalid model id")
		return
	}

	model, err := h.models.SetActive(c.Request.Context(), id, true)
	if err != nil {
		if errors.Is(err, services.ErrModelNotFound) {
			response.AbortError(c, http.StatusNotFound, err.Error())
			return
		}
		h.log.Error("model activate failed", "model_id", id, "error", err)
		response.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	response.RespondOK(c, model)
}

type trainRequest struct {
	ModelID uuid.UUID `json:"model_id" binding:"required"`
	Type    string    `json:"type"`
}

// Train runs the matrix-factorization entry point for MF-typed requests and a
// counter-stamping stub for everything else.
func (h *ModelHandler) Train(c *gin.Context) {
	rd := requestctx.GetRequestData(c.Request.Context())

	var req trainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.AbortError(c, http.StatusBadRequest, "malformed train payload")
		return
	}

	if req.Type == "matrix_factorization" {
		cells, err := h.recommendations.TrainMatrixFactorization(c.Request.Context(), rd.OrganizationID, req.ModelID)
		if err != nil {
			if errors.Is(err, services.ErrModelNotFound) {
				response.AbortError(c, http.StatusNotFound, err.Error())
				return
			}
			h.log.Error("matrix factorization training failed", "model_id", req.ModelID, "error", err)
			response.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		response.RespondOK(c, gin.H{"model_id": req.ModelID, "training_data_count": cells})
		return
	}

	model, err := h.models.Train(c.Request.Context(), req.ModelID, 0)
	if err != nil {
		if errors.Is(err, services.ErrModelNotFound) {
			response.AbortError(c, http.StatusNotFound, err.Error())
			return
		}
		h.log.Error("model training failed", "model_id", req.ModelID, "error", err)
		response.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	response.RespondOK(c, model)
}
