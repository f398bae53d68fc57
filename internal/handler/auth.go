package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shelfside/boardgame-tracker/internal/auth"
)

// AuthHandler issues and clears the session cookie.
type AuthHandler struct {
	sessions *auth.Sessions
	password string
}

func NewAuthHandler(sessions *auth.Sessions, password string) *AuthHandler {
	return &AuthHandler{sessions: sessions, password: password}
}

func (h *AuthHandler) Register(r *gin.Engine) {
	r.POST("/login", h.login)
	r.POST("/logout", h.logout)
}

type loginRequest struct {
	Password string `json:"password"`
}

func (h *AuthHandler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if !passwordsEqual(req.Password, h.password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "wrong password"})
		return
	}
	token, err := h.sessions.Issue()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue session"})
		return
	}
	c.SetCookie(auth.CookieName, token, int(auth.SessionDuration.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *AuthHandler) logout(c *gin.Context) {
	c.SetCookie(auth.CookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
