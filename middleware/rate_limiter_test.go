package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestTokenBucket(t *testing.T) {
	bucket := NewTokenBucket(1, 3)

	for i := 0; i < 3; i++ {
		assert.True(t, bucket.Allow(), "burst request %d should pass", i)
	}
	assert.False(t, bucket.Allow(), "request beyond burst should be rejected")
}

func TestPathRateLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.POST("/api/alerts/broadcast", PathRateLimiter(0.001, 2), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "success"})
	})

	send := func() int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/alerts/broadcast", nil)
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, send())
	assert.Equal(t, http.StatusOK, send())
	assert.Equal(t, http.StatusTooManyRequests, send())
}
