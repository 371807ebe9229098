package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"booknook/internal/middleware"
	"booknook/internal/session"
)

// fakeSessionStore is an in-memory session.Store so handler tests don't need
// Redis. It records what the handlers did to it.
type fakeSessionStore struct {
	created   []string
	destroyed []string
	flashes   []session.Flash
	createErr error
}

func (f *fakeSessionStore) Create(ctx context.Context, username string) (string, *session.Identity, error) {
	if f.createErr != nil {
		return "", nil, f.createErr
	}
	f.created = append(f.created, username)
	return "token-" + username, &session.Identity{Username: username, SessionID: "sid-" + username}, nil
}

func (f *fakeSessionStore) Resolve(ctx context.Context, token string) (*session.Identity, error) {
	return nil, session.ErrNoSession
}

func (f *fakeSessionStore) Destroy(ctx context.Context, sessionID string) error {
	f.destroyed = append(f.destroyed, sessionID)
	return nil
}

func (f *fakeSessionStore) Flash(ctx context.Context, sessionID, level, message string) {
	f.flashes = append(f.flashes, session.Flash{Level: level, Message: message})
}

func (f *fakeSessionStore) PopFlashes(ctx context.Context, sessionID string) []session.Flash {
	flashes := f.flashes
	f.flashes = nil
	return flashes
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.LoadHTMLGlob("../../web/templates/*.html")
	return r
}

// asIdentity simulates the session middleware having resolved a cookie.
func asIdentity(username string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.IdentityKey, &session.Identity{Username: username, SessionID: "sid-" + username})
		c.Next()
	}
}

func postForm(router *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("GET", path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
