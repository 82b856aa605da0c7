package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// bucket tracks one caller's remaining allowance.
type bucket struct {
	tokens   float64
	lastSeen time.Time
}

// RateLimiter is a token-bucket limiter keyed by client IP, guarding the
// OTP-sending auth endpoints. Buckets refill continuously, so a caller who
// spreads requests out never hits the limit.
type RateLimiter struct {
	mu         sync.Mutex
	buckets    map[string]*bucket
	burst      float64
	refillRate float64       // tokens per second
	idleTTL    time.Duration // buckets unseen this long are dropped
}

// NewRateLimiter allows maxRequests per perDuration from each client IP,
// bursting up to maxRequests. Buckets idle for ten windows (at least ten
// minutes) are evicted in the background.
func NewRateLimiter(maxRequests int, perDuration time.Duration) *RateLimiter {
	idle := 10 * perDuration
	if idle < 10*time.Minute {
		idle = 10 * time.Minute
	}

	rl := &RateLimiter{
		buckets:    make(map[string]*bucket),
		burst:      float64(maxRequests),
		refillRate: float64(maxRequests) / perDuration.Seconds(),
		idleTTL:    idle,
	}

	go rl.cleanupLoop(perDuration)

	return rl
}

func (rl *RateLimiter) cleanupLoop(every time.Duration) {
	if every < time.Minute {
		every = time.Minute
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for range ticker.C {
		rl.evictIdle(time.Now())
	}
}

func (rl *RateLimiter) evictIdle(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for ip, b := range rl.buckets {
		if now.Sub(b.lastSeen) > rl.idleTTL {
			delete(rl.buckets, ip)
		}
	}
}

func (rl *RateLimiter) allow(clientIP string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	b, ok := rl.buckets[clientIP]
	if !ok {
		rl.buckets[clientIP] = &bucket{tokens: rl.burst - 1, lastSeen: now}
		return true
	}

	b.tokens += now.Sub(b.lastSeen).Seconds() * rl.refillRate
	if b.tokens > rl.burst {
		b.tokens = rl.burst
	}
	b.lastSeen = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// Middleware rejects callers that exhausted their allowance with 429.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP()) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests. Please try again later."})
			c.Abort()
			return
		}
		c.Next()
	}
}
