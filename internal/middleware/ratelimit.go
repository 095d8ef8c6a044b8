package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/karahanbuhan/besinveri/internal/apierr"
)

// RateLimiter admits requests through per-client token buckets. It sits
// upstream of the cache and handlers; a rejected request costs no store or
// cache work.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	limit   rate.Limit
	burst   int
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewRateLimiter(perSecond float64, burst int) *RateLimiter {
	return &RateLimiter{
		buckets: make(map[string]*bucket),
		limit:   rate.Limit(perSecond),
		burst:   burst,
	}
}

const bucketIdleEviction = 10 * time.Minute

func (rl *RateLimiter) allow(clientIP string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	b, ok := rl.buckets[clientIP]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.buckets[clientIP] = b

		// Prune buckets idle long enough to be full again anyway.
		for ip, old := range rl.buckets {
			if now.Sub(old.lastSeen) > bucketIdleEviction {
				delete(rl.buckets, ip)
			}
		}
	}
	b.lastSeen = now

	return b.limiter.Allow()
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP()) {
			apierr.New(http.StatusTooManyRequests, "çok fazla istek gönderildi, lütfen bekleyin").Write(c)
			return
		}
		c.Next()
	}
}
