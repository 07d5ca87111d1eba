package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/wanderlink/admin-gateway/internal/session"
)

const (
	ContextSessionID   = "session_id"
	ContextUserID      = "user_id"
	ContextRole        = "role"
	ContextAccessToken = "access_token"
)

type AuthMiddleware struct {
	sessions *session.Service
}

func NewAuthMiddleware(sessions *session.Service) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions}
}

// Authenticate validates the gateway session token and stores the claims,
// including the upstream access token, in the request context.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header"})
			return
		}

		claims, err := m.sessions.Validate(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(ContextSessionID, claims.SessionID)
		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, claims.Role)
		c.Set(ContextAccessToken, claims.AccessToken)
		c.Next()
	}
}

// Helper functions to get context values
func GetSessionID(c *gin.Context) (string, bool) {
	return getString(c, ContextSessionID)
}

func GetUserID(c *gin.Context) (string, bool) {
	return getString(c, ContextUserID)
}

// GetAccessToken returns the upstream bearer attached to the session.
func GetAccessToken(c *gin.Context) (string, bool) {
	return getString(c, ContextAccessToken)
}

func GetRole(c *gin.Context) string {
	role, _ := getString(c, ContextRole)
	return role
}

func getString(c *gin.Context, key string) (string, bool) {
	val, exists := c.Get(key)
	if !exists {
		return "", false
	}
	s, ok := val.(string)
	return s, ok
}
