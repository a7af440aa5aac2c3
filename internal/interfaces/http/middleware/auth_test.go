package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newBearerTestRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.POST("/guarded", BearerSecret(secret), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return engine
}

func probeBearer(engine *gin.Engine, authorization string) int {
	req := httptest.NewRequest(http.MethodPost, "/guarded", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec.Code
}

func TestBearerSecret(t *testing.T) {
	engine := newBearerTestRouter("s3cret")

	assert.Equal(t, http.StatusOK, probeBearer(engine, "Bearer s3cret"))
	assert.Equal(t, http.StatusUnauthorized, probeBearer(engine, ""))
	assert.Equal(t, http.StatusUnauthorized, probeBearer(engine, "Bearer wrong"))
	assert.Equal(t, http.StatusUnauthorized, probeBearer(engine, "s3cret"))
	assert.Equal(t, http.StatusUnauthorized, probeBearer(engine, "Basic s3cret"))
}

func TestBearerSecret_Unconfigured(t *testing.T) {
	engine := newBearerTestRouter("")

	// An empty secret never authorizes anything.
	assert.Equal(t, http.StatusServiceUnavailable, probeBearer(engine, "Bearer "))
}
