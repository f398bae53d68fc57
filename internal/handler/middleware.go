package handler

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shelfside/boardgame-tracker/internal/auth"
)

// CORS answers preflight requests and stamps the usual headers. The
// frontend is served from a different origin in development, so this
// stays permissive; the session cookie is the actual gate.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin == "" {
			origin = "*"
		}
		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Header("Access-Control-Allow-Credentials", "true")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// RequireSession gates routes behind a valid session cookie. With no
// password configured the gate is disabled entirely; requests then pass
// through unauthenticated rather than being rejected.
func RequireSession(sessions *auth.Sessions, enabled bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !enabled {
			c.Next()
			return
		}
		cookie, err := c.Cookie(auth.CookieName)
		if err != nil || sessions.Validate(cookie) != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}
		c.Next()
	}
}

// passwordsEqual compares in constant time.
func passwordsEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
