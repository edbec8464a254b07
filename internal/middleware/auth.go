package middleware

import (
	"errors"
	"net/http"

	"helpdesk/internal/models"
	"helpdesk/internal/storage"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	// SessionUserKey is the session entry holding the authenticated
	// user's id.
	SessionUserKey = "user_id"

	principalKey = "principal"
)

// RequireAuth resolves the session cookie to a user record and threads it
// into the request context. The principal is re-loaded from the store on
// every request, so role changes take effect immediately.
func RequireAuth(store *storage.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)
		uid, ok := sess.Get(SessionUserKey).(uint)
		if !ok || uid == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		user, err := store.UserByID(c.Request.Context(), uid)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				// Stale cookie for a user that no longer resolves.
				sess.Clear()
				_ = sess.Save()
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		c.Set(principalKey, user)
		c.Next()
	}
}

// RequireRole rejects requests whose principal has none of the given
// roles. Must run after RequireAuth.
func RequireRole(roles ...models.UserRole) gin.HandlerFunc {
	roleSet := map[models.UserRole]struct{}{}
	for _, r := range roles {
		roleSet[r] = struct{}{}
	}

	return func(c *gin.Context) {
		p := Principal(c)
		if p == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		if _, ok := roleSet[p.Role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			return
		}
		c.Next()
	}
}

// Principal returns the authenticated user set by RequireAuth, or nil.
func Principal(c *gin.Context) *models.User {
	v, exists := c.Get(principalKey)
	if !exists {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}
