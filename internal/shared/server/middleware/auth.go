package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/KarimovMurodilla/lead-management-system/internal/shared/auth"
	"github.com/KarimovMurodilla/lead-management-system/internal/shared/server/respond"
)

const (
	userIDKey   = "userId"
	usernameKey = "username"
	isStaffKey  = "isStaff"
)

// Auth validates bearer access tokens and stores identity in context.
// Requests without a valid token are rejected before any handler runs.
func Auth(issuer *auth.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))
		if token == "" {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}

		claims, err := issuer.VerifyType(token, auth.TypeAccess)
		if err != nil {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}

		c.Set(userIDKey, claims.Sub)
		c.Set(usernameKey, claims.Username)
		c.Set(isStaffKey, claims.Staff)
		c.Next()
	}
}

// UserIDFromContext fetches the user ID set by the auth middleware.
func UserIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}

// UsernameFromContext fetches the username set by the auth middleware.
func UsernameFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(usernameKey)
	if name, ok := val.(string); ok {
		return name
	}
	return ""
}

// IsStaffFromContext reports whether the caller is flagged staff.
func IsStaffFromContext(c *gin.Context) bool {
	if c == nil {
		return false
	}
	val, _ := c.Get(isStaffKey)
	if staff, ok := val.(bool); ok {
		return staff
	}
	return false
}
