package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/brightpath/brightpath-backend/internal/requestctx"
	"github.com/brightpath/brightpath-backend/internal/response"
	"github.com/brightpath/brightpath-backend/internal/services"
)

// Auth validates the bearer token and stashes the caller's identity in the
// request context for handlers and services downstream.
func Auth(auth services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			response.AbortError(c, http.StatusUnauthorized, "missing bearer token")
			return
		}
		tokenString := strings.TrimPrefix(header, "Bearer ")

		claims, err := auth.ParseToken(tokenString)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		rd := &requestctx.RequestData{
			TokenString:    tokenString,
			UserID:         claims.UserID,
			OrganizationID: claims.OrganizationID,
			Role:           claims.Role,
		}
		c.Request = c.Request.WithContext(requestctx.WithRequestData(c.Request.Context(), rd))
		c.Next()
	}
}

// RequireAdmin gates privileged routes. It assumes Auth ran first.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		rd := requestctx.GetRequestData(c.Request.Context())
		if !rd.IsAdmin() {
			response.AbortError(c, http.StatusForbidden, "admin role required")
			return
		}
		c.Next()
	}
}
