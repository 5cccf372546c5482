package middleware

import (
	"errors"
	"net/http"
	"strings"

	"studiobook/models"
	"studiobook/services/session"

	"github.com/gin-gonic/gin"
)

const sessionContextKey = "session"

// SessionAuthMiddleware verifies the Bearer ID token on every request and
// stores the resolved session on the context.
func SessionAuthMiddleware(sessions session.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or malformed Authorization header"})
			return
		}
		idToken := strings.TrimPrefix(header, "Bearer ")

		sess, err := sessions.Resolve(c.Request.Context(), idToken)
		if err != nil {
			if errors.Is(err, session.ErrUnauthenticated) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Please log in again."})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve session"})
			return
		}

		c.Set(sessionContextKey, sess)
		c.Next()
	}
}

// RequireOnboarded blocks users who have not completed their profile.
func RequireOnboarded() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := GetSession(c)
		if !ok || !sess.Onboarded {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Complete onboarding first"})
			return
		}
		c.Next()
	}
}

// GetSession returns the session stored by SessionAuthMiddleware.
func GetSession(c *gin.Context) (models.Session, bool) {
	v, ok := c.Get(sessionContextKey)
	if !ok {
		return models.Session{}, false
	}
	sess, ok := v.(models.Session)
	return sess, ok
}
