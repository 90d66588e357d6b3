package middleware

import (
	"net/http"
	"strings"

	"trustrate/internal/pkg/response"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// InternalTokenAuth protects service-to-service endpoints with a static bearer
// token. Requests are rejected before any handler runs, so failed calls leave
// no trace outside the operational log.
func InternalTokenAuth(expected string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if expected == "" {
			logInternalAuthFailure(c, http.StatusInternalServerError, "token_not_configured")
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal token is not configured")
			c.Abort()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logInternalAuthFailure(c, http.StatusUnauthorized, "missing_auth")
			response.Error(c, http.StatusUnauthorized, "AUTH_MISSING", "Authorization header is required")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			logInternalAuthFailure(c, http.StatusUnauthorized, "invalid_auth_format")
			response.Error(c, http.StatusUnauthorized, "AUTH_INVALID", "Authorization header must be 'Bearer <token>'")
			c.Abort()
			return
		}

		if parts[1] != expected {
			logInternalAuthFailure(c, http.StatusForbidden, "invalid_token")
			response.Error(c, http.StatusForbidden, "AUTH_INVALID", "Invalid internal token")
			c.Abort()
			return
		}

		c.Next()
	}
}

func logInternalAuthFailure(c *gin.Context, status int, reason string) {
	log.WithFields(log.Fields{
		"status":     status,
		"reason":     reason,
		"client_ip":  c.ClientIP(),
		"request_id": c.GetString(RequestIDKey),
	}).Warn("internal auth failure")
}
