package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"booknook/internal/session"
)

// IdentityKey is the gin context key holding the resolved *session.Identity.
const IdentityKey = "identity"

// Resolver validates a session cookie value and returns the bound identity.
type Resolver interface {
	Resolve(ctx context.Context, token string) (*session.Identity, error)
}

// Session resolves the session cookie (if any) into an identity for
// downstream handlers. Anonymous requests pass through untouched.
func Session(resolver Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(session.CookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		identity, err := resolver.Resolve(c.Request.Context(), token)
		if err != nil {
			// Stale or tampered cookie: treat as anonymous
			c.Next()
			return
		}

		c.Set(IdentityKey, identity)
		c.Next()
	}
}

// RequireAuth gates mutating routes: anonymous callers are redirected to the
// login page instead of getting an error payload.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentIdentity(c) == nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentIdentity returns the authenticated identity for the request, or nil
// for anonymous callers.
func CurrentIdentity(c *gin.Context) *session.Identity {
	value, exists := c.Get(IdentityKey)
	if !exists {
		return nil
	}
	identity, ok := value.(*session.Identity)
	if !ok {
		return nil
	}
	return identity
}
