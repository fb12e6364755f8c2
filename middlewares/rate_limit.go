package middlewares

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// limiterIdleTTL is how long an unused per-user bucket is kept.
const limiterIdleTTL = 10 * time.Minute

type userLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter hands out one token bucket per authenticated user.
type RateLimiter struct {
	mu       sync.Mutex
	users    map[uint]*userLimiter
	limit    rate.Limit
	burst    int
	lastScan time.Time
}

func NewRateLimiter(perMinute int) *RateLimiter {
	if perMinute <= 0 {
		perMinute = 30
	}
	burst := perMinute / 6
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		users: make(map[uint]*userLimiter),
		limit: rate.Limit(float64(perMinute) / 60),
		burst: burst,
	}
}

func (l *RateLimiter) allow(userID uint, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastScan) > limiterIdleTTL {
		for id, u := range l.users {
			if now.Sub(u.lastSeen) > limiterIdleTTL {
				delete(l.users, id)
			}
		}
		l.lastScan = now
	}

	u, ok := l.users[userID]
	if !ok {
		u = &userLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.users[userID] = u
	}
	u.lastSeen = now
	return u.limiter.AllowN(now, 1)
}

// Middleware rejects requests over the user's budget with 429.
func (l *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := CurrentUserID(c)
		if !ok {
			c.Next()
			return
		}

		if !l.allow(userID, time.Now()) {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(1/float64(l.limit)))))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
