package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionKeyContextKey is the gin context key holding the session key.
const SessionKeyContextKey = "session_key"

// SessionCookieName is the cookie carrying the session key for browser
// clients. API clients send the X-Session-Key header instead.
const SessionCookieName = "zaylo_session"

// sessionCookieMaxAge matches the cart ID retention window (30 days).
const sessionCookieMaxAge = 30 * 24 * 60 * 60

// SessionKey resolves the caller's session key: the X-Session-Key header
// wins, then the session cookie; a missing key is minted and set as a
// cookie so the same anonymous visitor keeps one cart across requests.
func SessionKey() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("X-Session-Key")
		if key == "" {
			if cookie, err := c.Cookie(SessionCookieName); err == nil {
				key = cookie
			}
		}
		if key == "" {
			key = uuid.NewString()
			c.SetCookie(SessionCookieName, key, sessionCookieMaxAge, "/", "", false, true)
		}
		c.Set(SessionKeyContextKey, key)
		c.Next()
	}
}

// GetSessionKey returns the session key resolved by SessionKey, "" when the
// middleware did not run.
func GetSessionKey(c *gin.Context) string {
	return c.GetString(SessionKeyContextKey)
}
