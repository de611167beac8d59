package middleware

import (
	"net/http"
	"strings"

	"eventhub/internal/pkg"

	"github.com/gin-gonic/gin"
)

const ContextUserIDKey = "user_id"

// TokenStore is the session lookup the verifier needs; the redis session
// repository implements it, tests use an in-memory fake.
type TokenStore interface {
	GetUserToken(userID uint64) (string, error)
	ExtendUserToken(userID uint64) error
}

// Auth verifies the bearer token and injects the resolved principal id into
// the request context. Any failure is terminal for the request.
func Auth(sessions TokenStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing authorization header"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization format"})
			return
		}

		tokenStr := parts[1]
		claims, err := pkg.ParseAccess(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		// The session store holds the single active token per user; a
		// mismatch means a newer login replaced this session.
		current, err := sessions.GetUserToken(claims.UserID)
		if err != nil || current != tokenStr {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session expired, please log in again"})
			return
		}

		if err := sessions.ExtendUserToken(claims.UserID); err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Session store unavailable"})
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Next()
	}
}

// UserID returns the principal resolved by Auth. ok is false when the
// middleware did not run, which handlers treat as a server fault.
func UserID(c *gin.Context) (uint64, bool) {
	v, exists := c.Get(ContextUserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := v.(uint64)
	return id, ok
}
