package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brightpath/brightpath-backend/internal/logger"
	"github.com/brightpath/brightpath-backend/internal/response"
	"github.com/brightpath/brightpath-backend/internal/services"
)

type AuthHandler struct {
	auth services.AuthService
	log  *logger.Logger
}

func NewAuthHandler(auth services.AuthService, baseLog *logger.Logger) *AuthHandler {
	return &AuthHandler{
		auth: auth,
		log:  baseLog.With("handler", "AuthHandler"),
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var input services.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.AbortError(c, http.StatusBadRequest, "malformed registration payload")
		return
	}

	tokens, err := h.auth.Register(c.Request.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmailTaken):
			response.AbortError(c, http.StatusConflict, err.Error())
		case errors.Is(err, services.ErrInvalidCredentials):
			response.AbortError(c, http.StatusBadRequest, "email and password are required")
		default:
			h.log.Error("registration failed", "error", err)
			response.RespondError(c, http.StatusInternalServerError, err)
		}
		return
	}
	response.RespondCreated(c, tokens)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.AbortError(c, http.StatusBadRequest, "malformed login payload")
		return
	}

	tokens, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			response.AbortError(c, http.StatusUnauthorized, err.Error())
			return
		}
		h.log.Error("login failed", "error", err)
		response.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	response.RespondOK(c, tokens)
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.AbortError(c, http.StatusBadRequest, "malformed refresh payload")
		return
	}

	tokens, err := h.auth.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, services.ErrInvalidToken) {
			response.AbortError(c, http.StatusUnauthorized, err.Error())
			return
		}
		h.log.Error("token refresh failed", "error", err)
		response.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	response.RespondOK(c, tokens)
}
