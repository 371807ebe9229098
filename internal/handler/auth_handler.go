package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"booknook/internal/dto"
	"booknook/internal/middleware"
	"booknook/internal/service"
	"booknook/internal/session"
)

type AuthHandler struct {
	auth         service.AuthService
	sessions     session.Store
	cookieMaxAge int
}

func NewAuthHandler(auth service.AuthService, sessions session.Store, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		auth:         auth,
		sessions:     sessions,
		cookieMaxAge: int(sessionTTL.Seconds()),
	}
}

// RegisterForm renders the registration page.
func (h *AuthHandler) RegisterForm(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", gin.H{
		"Identity": middleware.CurrentIdentity(c),
	})
}

// Register creates the account and logs the new user straight in.
func (h *AuthHandler) Register(c *gin.Context) {
	var form dto.RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusOK, "register.html", gin.H{
			"Error":    strings.Join(dto.ValidationMessages(err), "; "),
			"Username": c.PostForm("username"),
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, err := h.auth.Register(ctx, form.Username, form.Password)
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			c.HTML(http.StatusOK, "register.html", gin.H{
				"Error":    "Username already exists. Please choose another username.",
				"Username": form.Username,
			})
			return
		}
		c.HTML(http.StatusOK, "register.html", gin.H{
			"Error":    "Error when inserting user",
			"Username": form.Username,
		})
		return
	}

	token, identity, err := h.sessions.Create(ctx, user.Username)
	if err != nil {
		c.String(http.StatusInternalServerError, "Internal Server Error")
		return
	}

	h.sessions.Flash(ctx, identity.SessionID, "success", "User registered successfully")
	h.setSessionCookie(c, token, h.cookieMaxAge)
	c.Redirect(http.StatusFound, "/")
}

// LoginForm renders the login page; authenticated users go straight home.
func (h *AuthHandler) LoginForm(c *gin.Context) {
	if middleware.CurrentIdentity(c) != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}
	c.HTML(http.StatusOK, "login.html", gin.H{})
}

// Login authenticates the submitted credentials. Wrong password and unknown
// username produce the same message.
func (h *AuthHandler) Login(c *gin.Context) {
	if middleware.CurrentIdentity(c) != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	var form dto.LoginForm
	_ = c.ShouldBind(&form)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, err := h.auth.Authenticate(ctx, form.Username, form.Password)
	if err != nil {
		c.HTML(http.StatusOK, "login.html", gin.H{
			"Error":    "Login unsuccessful. Please check your username and password.",
			"Username": form.Username,
		})
		return
	}

	token, identity, err := h.sessions.Create(ctx, user.Username)
	if err != nil {
		c.String(http.StatusInternalServerError, "Internal Server Error")
		return
	}

	h.sessions.Flash(ctx, identity.SessionID, "success", "User login successfully")
	h.setSessionCookie(c, token, h.cookieMaxAge)
	c.Redirect(http.StatusFound, "/")
}

// Logout destroys the server-side session and clears the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	identity := middleware.CurrentIdentity(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.sessions.Destroy(ctx, identity.SessionID); err != nil {
		c.String(http.StatusInternalServerError, "Internal Server Error")
		return
	}

	h.setSessionCookie(c, "", -1)
	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetCookie(session.CookieName, token, maxAge, "/", "", false, true)
}
