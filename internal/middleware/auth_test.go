package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"booknook/internal/session"
)

// stubResolver resolves every token to a fixed identity or error.
type stubResolver struct {
	identity *session.Identity
	err      error
}

func (s *stubResolver) Resolve(ctx context.Context, token string) (*session.Identity, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.identity, nil
}

func setupRouter(resolver Resolver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Session(resolver))
	r.GET("/probe", func(c *gin.Context) {
		if identity := CurrentIdentity(c); identity != nil {
			c.String(http.StatusOK, identity.Username)
			return
		}
		c.String(http.StatusOK, "anonymous")
	})
	r.GET("/protected", RequireAuth(), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return r
}

func TestSession_ValidCookie(t *testing.T) {
	router := setupRouter(&stubResolver{identity: &session.Identity{Username: "alice", SessionID: "sid-1"}})

	req, _ := http.NewRequest("GET", "/probe", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "some-token"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alice", w.Body.String())
}

func TestSession_NoCookieIsAnonymous(t *testing.T) {
	router := setupRouter(&stubResolver{identity: &session.Identity{Username: "alice"}})

	req, _ := http.NewRequest("GET", "/probe", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "anonymous", w.Body.String())
}

func TestSession_StaleCookieIsAnonymous(t *testing.T) {
	router := setupRouter(&stubResolver{err: errors.New("session not found")})

	req, _ := http.NewRequest("GET", "/probe", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "stale-token"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "anonymous", w.Body.String())
}

func TestRequireAuth_RedirectsAnonymousToLogin(t *testing.T) {
	router := setupRouter(&stubResolver{err: errors.New("no session")})

	req, _ := http.NewRequest("GET", "/protected", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestRequireAuth_PassesAuthenticated(t *testing.T) {
	router := setupRouter(&stubResolver{identity: &session.Identity{Username: "alice", SessionID: "sid-1"}})

	req, _ := http.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "some-token"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}
