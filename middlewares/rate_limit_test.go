package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiterBucketPerUser(t *testing.T) {
	limiter := NewRateLimiter(60) // one token per second, burst 10
	now := time.Now()

	for i := 0; i < 10; i++ {
		assert.True(t, limiter.allow(1, now), "request %d", i)
	}
	assert.False(t, limiter.allow(1, now))
	assert.True(t, limiter.allow(2, now), "other users keep their own bucket")

	assert.True(t, limiter.allow(1, now.Add(time.Second)))
}

func TestRateLimiterDropsIdleUsers(t *testing.T) {
	limiter := NewRateLimiter(60)
	now := time.Now()

	limiter.allow(1, now)
	limiter.allow(2, now.Add(limiterIdleTTL))
	limiter.allow(2, now.Add(2*limiterIdleTTL))

	assert.NotContains(t, limiter.users, uint(1))
	assert.Contains(t, limiter.users, uint(2))
}

func TestRateLimiterMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiter := NewRateLimiter(6) // burst 1

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(ContextUserID, uint(3))
		c.Next()
	})
	r.POST("/like", limiter.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	first := httptest.NewRecorder()
	r.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/like", nil))
	assert.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	r.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/like", nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "10", second.Header().Get("Retry-After"))
}
