package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brightpath/brightpath-backend/internal/logger"
	"github.com/brightpath/brightpath-backend/internal/requestctx"
	"github.com/brightpath/brightpath-backend/internal/response"
	"github.com/brightpath/brightpath-backend/internal/services"
)

type RoleHandler struct {
	roles services.RoleService
	log   *logger.Logger
}

func NewRoleHandler(roles services.RoleService, baseLog *logger.Logger) *RoleHandler {
	return &RoleHandler{
		roles: roles,
		log:   baseLog.With("handler", "RoleHandler"),
	}
}

func (h *RoleHandler) Me(c *gin.Context) {
	rd := requestctx.GetRequestData(c.Request.Context())
	response.RespondOK(c, h.roles.Describe(rd.Role))
}

func (h *RoleHandler) Permissions(c *gin.Context) {
	rd := requestctx.GetRequestData(c.Request.Context())
	response.RespondOK(c, h.roles.Describe(rd.Role).Permissions)
}

type validateRequest struct {
	Permission string `json:"permission" binding:"required"`
}

func (h *RoleHandler) Validate(c *gin.Context) {
	rd := requestctx.GetRequestData(c.Request.Context())

	var req validateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.AbortError(c, http.StatusBadRequest, "malformed validation payload")
		return
	}
	response.RespondOK(c, gin.H{
		"permission": req.Permission,
		"allowed":    h.roles.HasPermission(rd.Role, req.Permission),
	})
}

// List is admin-gated: the full role matrix plus organization membership.
func (h *RoleHandler) List(c *gin.Context) {
	rd := requestctx.GetRequestData(c.Request.Context())

	members, err := h.roles.OrganizationMembers(c.Request.Context(), rd.OrganizationID)
	if err != nil {
		h.log.Error("organization members lookup failed", "error", err)
		response.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	response.RespondOK(c, gin.H{
		"roles":   h.roles.ListRoles(),
		"members": members,
	})
}
