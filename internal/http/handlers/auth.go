package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chamseddine-glitch/sha/internal/auth"
	"github.com/chamseddine-glitch/sha/internal/http/middleware"
	"github.com/chamseddine-glitch/sha/internal/http/signedcookie"
	"github.com/chamseddine-glitch/sha/internal/http/validation"
	"github.com/chamseddine-glitch/sha/internal/shared/apperr"
)

type AuthHandler struct {
	Auth     auth.Authenticator
	Sessions *auth.SessionStore
	Codec    *signedcookie.Codec
}

func NewAuthHandler(a auth.Authenticator, sessions *auth.SessionStore, codec *signedcookie.Codec) *AuthHandler {
	return &AuthHandler{Auth: a, Sessions: sessions, Codec: codec}
}

type loginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /api/admin/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var in loginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Invalid request data.", validation.FromBindError(err, &in)))
		return
	}

	if err := h.Auth.Authenticate(in.Username, in.Password); err != nil {
		middleware.Fail(c, err)
		return
	}

	sess, err := h.Sessions.Create(c.Request.Context(), in.Username)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	h.Codec.Set(c, sess.ID)

	c.JSON(http.StatusOK, gin.H{"username": sess.Username, "expiresAt": sess.ExpiresAt})
}

// Logout handles POST /api/admin/logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	if sess, ok := middleware.CurrentSession(c); ok {
		if err := h.Sessions.Delete(c.Request.Context(), sess.ID); err != nil {
			middleware.Fail(c, apperr.Wrap(err))
			return
		}
	}
	h.Codec.Clear(c)
	c.Status(http.StatusNoContent)
}

// Me handles GET /api/admin/me.
func (h *AuthHandler) Me(c *gin.Context) {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		middleware.Fail(c, apperr.UnauthorizedErr("Not logged in."))
		return
	}
	c.JSON(http.StatusOK, gin.H{"username": sess.Username, "expiresAt": sess.ExpiresAt})
}
