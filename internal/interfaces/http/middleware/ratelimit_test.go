package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_Allow(t *testing.T) {
	limiter := NewRateLimiter(2, time.Minute)

	assert.True(t, limiter.Allow("client-1"))
	assert.True(t, limiter.Allow("client-1"))
	assert.False(t, limiter.Allow("client-1"))

	// Other keys have their own bucket.
	assert.True(t, limiter.Allow("client-2"))
}

func TestRateLimiter_WindowReset(t *testing.T) {
	limiter := NewRateLimiter(1, 10*time.Millisecond)

	assert.True(t, limiter.Allow("client-1"))
	assert.False(t, limiter.Allow("client-1"))

	time.Sleep(15 * time.Millisecond)
	assert.True(t, limiter.Allow("client-1"))
}

func TestRateLimit_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(SessionKey())
	engine.Use(RateLimit(NewRateLimiter(1, time.Minute)))
	engine.GET("/probe", func(c *gin.Context) { c.Status(http.StatusOK) })

	probe := func(sessionKey string) int {
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set("X-Session-Key", sessionKey)
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, probe("sess-a"))
	assert.Equal(t, http.StatusTooManyRequests, probe("sess-a"))
	// Separate sessions do not share a bucket.
	assert.Equal(t, http.StatusOK, probe("sess-b"))
}
