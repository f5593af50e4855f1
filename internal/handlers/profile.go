package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brightpath/brightpath-backend/internal/logger"
	"github.com/brightpath/brightpath-backend/internal/requestctx"
	"github.com/brightpath/brightpath-backend/internal/response"
	"github.com/brightpath/brightpath-backend/internal/services"
	"github.com/brightpath/brightpath-backend/internal/types"
)

type ProfileHandler struct {
	profiles services.ProfileService
	log      *logger.Logger
}

func NewProfileHandler(profiles services.ProfileService, baseLog *logger.Logger) *ProfileHandler {
	return &ProfileHandler{
		profiles: profiles,
		log:      baseLog.With("handler", "ProfileHandler"),
	}
}

func (h *ProfileHandler) Get(c *gin.Context) {
	rd := requestctx.GetRequestData(c.Request.Context())

	profile, err := h.profiles.Get(c.Request.Context(), rd.UserID, rd.OrganizationID)
	if err != nil {
		h.log.Error("profile get failed", "user_id", rd.UserID, "error", err)
		response.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	response.RespondOK(c, profile)
}

func (h *ProfileHandler) Update(c *gin.Context) {
	rd := requestctx.GetRequestData(c.Request.Context())

	var update services.ProfileUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		response.AbortError(c, http.StatusBadRequest, "malformed profile payload")
		return
	}

	profile, err := h.profiles.Update(c.Request.Context(), rd.UserID, rd.OrganizationID, update)
	if err != nil {
		h.log.Error("profile update failed", "user_id", rd.UserID, "error", err)
		response.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	response.RespondOK(c, profile)
}

func (h *ProfileHandler) AddInterests(c *gin.Context) {
	rd := requestctx.GetRequestData(c.Request.Context())

	var interests types.Interests
	if err := c.ShouldBindJSON(&interests); err != nil {
		response.AbortError(c, http.StatusBadRequest, "malformed interests payload")
		return
	}

	profile, err := h.profiles.AddInterests(c.Request.Context(), rd.UserID, rd.OrganizationID, interests)
	if err != nil {
		h.log.Error("add interests failed", "user_id", rd.UserID, "error", err)
		response.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	response.RespondOK(c, profile)
}

func (h *ProfileHandler) SetCareerPath(c *gin.Context) {
	rd := requestctx.GetRequestData(c.Request.Context())

	var path types.CareerPath
	if err := c.ShouldBindJSON(&path); err != nil {
		response.AbortError(c, http.StatusBadRequest, "malformed career path payload")
		return
	}

	profile, err := h.profiles.SetCareerPath(c.Request.Context(), rd.UserID, rd.OrganizationID, path)
	if err != nil {
		h.log.Error("set career path failed", "user_id", rd.UserID, "error", err)
		response.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	response.RespondOK(c, profile)
}
