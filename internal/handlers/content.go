package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/brightpath/brightpath-backend/internal/logger"
	"github.com/brightpath/brightpath-backend/internal/response"
	"github.com/brightpath/brightpath-backend/internal/services"
)

type ContentHandler struct {
	analysis services.ContentAnalysisService
	log      *logger.Logger
}

func NewContentHandler(analysis services.ContentAnalysisService, baseLog *logger.Logger) *ContentHandler {
	return &ContentHandler{
		analysis: analysis,
		log:      baseLog.With("handler", "ContentHandler"),
	}
}

func (h *ContentHandler) Analyze(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.AbortError(c, http.StatusBadRequest, "invalid course id")
		return
	}

	features, err := h.analysis.Analyze(c.Request.Context(), courseID)
	if err != nil {
		if errors.Is(err, services.ErrCourseNotFound) {
			response.AbortError(c, http.StatusNotFound, err.Error())
			return
		}
		h.log.Error("content analysis failed", "course_id", courseID, "error", err)
		response.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	response.RespondOK(c, features)
}
