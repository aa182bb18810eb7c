package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"shop-api/apperrors"
)

// UserIDKey is the gin context key holding the authenticated user's id.
const UserIDKey = "user_id"

// TokenValidator validates a bearer token and returns the user id it carries.
type TokenValidator interface {
	Validate(token string) (uint, error)
}

// RequireAuth extracts and validates the Authorization bearer token, putting
// the resolved user id on the context for downstream handlers.
func RequireAuth(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Header("WWW-Authenticate", "Bearer")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			c.Abort()
			return
		}

		// Scheme matching is case-insensitive per RFC 7235.
		scheme, tokenStr, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || tokenStr == "" {
			c.Header("WWW-Authenticate", "Bearer")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			c.Abort()
			return
		}

		userID, err := tokens.Validate(tokenStr)
		if err != nil {
			c.Header("WWW-Authenticate", "Bearer")
			apperrors.Respond(c, err)
			c.Abort()
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// CurrentUserID reads the authenticated user id set by RequireAuth.
func CurrentUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get(UserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
