package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/brightpath/brightpath-backend/internal/logger"
	"github.com/brightpath/brightpath-backend/internal/recommend"
	"github.com/brightpath/brightpath-backend/internal/requestctx"
	"github.com/brightpath/brightpath-backend/internal/response"
	"github.com/brightpath/brightpath-backend/internal/services"
)

type RecommendationHandler struct {
	recommendations services.RecommendationService
	log             *logger.Logger
}

func NewRecommendationHandler(recommendations services.RecommendationService, baseLog *logger.Logger) *RecommendationHandler {
	return &RecommendationHandler{
		recommendations: recommendations,
		log:             baseLog.With("handler", "RecommendationHandler"),
	}
}

// browsingContext is the optional `context` query parameter payload.
type browsingContext struct {
	CurrentCourseID uuid.UUID `json:"current_course_id"`
}

// parseRequest reads the shared recommendation query knobs. A malformed
// context payload is a client error, not a server one.
func parseRequest(c *gin.Context) (recommend.Request, bool) {
	req := recommend.Request{}

	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			req.Limit = n
		}
	}
	if raw := c.Query("diversityLevel"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			req.DiversityLevel = n
		}
	}
	if raw := c.Query("contentTypes"); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				req.ContentTypes = append(req.ContentTypes, t)
			}
		}
	}
	req.ExcludeCompleted = c.Query("excludeCompleted") == "true"

	if raw := c.Query("context"); raw != "" {
		var bc browsingContext
		if err := json.Unmarshal([]byte(raw), &bc); err != nil {
			response.AbortError(c, http.StatusBadRequest, "malformed context parameter")
			return req, false
		}
		req.CurrentCourseID = bc.CurrentCourseID
	}
	return req, true
}

func (h *RecommendationHandler) Health(c *gin.Context) {
	response.RespondOK(c, gin.H{"status": "ok"})
}

func (h *RecommendationHandler) Personalized(c *gin.Context) {
	rd := requestctx.GetRequestData(c.Request.Context())
	req, ok := parseRequest(c)
	if !ok {
		return
	}

	recs, err := h.recommendations.Personalized(c.Request.Context(), rd.UserID, rd.OrganizationID, req)
	if err != nil {
		h.log.Error("personalized recommendations failed", "user_id", rd.UserID, "error", err)
		response.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	response.RespondOK(c, recs)
}

func (h *RecommendationHandler) ByStrategy(strategy string) gin.HandlerFunc {
	return func(c *gin.Context) {
		rd := requestctx.GetRequestData(c.Request.Context())
		req, ok := parseRequest(c)
		if !ok {
			return
		}

		cands, err := h.recommendations.ByStrategy(c.Request.Context(), rd.UserID, rd.OrganizationID, strategy, req)
		if err != nil {
			h.log.Error("strategy recommendations failed", "strategy", strategy, "error", err)
			response.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		response.RespondOK(c, cands)
	}
}

func (h *RecommendationHandler) SimilarContent(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.AbortError(c, http.StatusBadRequest, "invalid course id")
		return
	}
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		if n, convErr := strconv.Atoi(raw); convErr == nil && n > 0 {
			limit = n
		}
	}

	cands, err := h.recommendations.SimilarContent(c.Request.Context(), courseID, limit)
	if err != nil {
		h.log.Error("similar content lookup failed", "course_id", courseID, "error", err)
		response.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	response.RespondOK(c, cands)
}

func (h *RecommendationHandler) Analytics(c *gin.Context) {
	rd := requestctx.GetRequestData(c.Request.Context())

	summary, err := h.recommendations.Analytics(c.Request.Context(), rd.OrganizationID)
	if err != nil {
		h.log.Error("analytics summary failed", "organization_id", rd.OrganizationID, "error", err)
		response.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	response.RespondOK(c, summary)
}
