package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-rewards-api/internal/constants"
	apierrors "github.com/yukikurage/task-rewards-api/internal/errors"
)

// RequireAuth checks if the user is authenticated via session. A session
// counts as authenticated once login has bound a username to it.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		username, _ := session.Get(constants.SessionKeyUsername).(string)
		userID := session.Get(constants.SessionKeyUserID)

		if username == "" || userID == nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		// Store user in context for easy access in handlers
		c.Set(constants.ContextKeyUserID, userID)
		c.Set(constants.ContextKeyUsername, username)
		c.Next()
	}
}

// BindSession marks the session as belonging to the user.
func BindSession(c *gin.Context, userID uint64, username string) error {
	session := sessions.Default(c)
	session.Set(constants.SessionKeyUserID, userID)
	session.Set(constants.SessionKeyUsername, username)
	return session.Save()
}

// ClearSession removes every value from the session.
func ClearSession(c *gin.Context) error {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	return session.Save()
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	switch v := userID.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	case int64:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}
