package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/asume21/Codedswitchmonatize-sub012/internal/logger"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	limiterIdleTTL       = 10 * time.Minute
	limiterSweepEvery    = 256 // Sweep stale limiters every N new clients
	defaultRetryAfterSec = 1
)

// RateLimiter hands out one token bucket per client IP
type RateLimiter struct {
	limit rate.Limit
	burst int
	now   func() time.Time

	mu       sync.Mutex
	clients  map[string]*clientLimiter
	newSince int
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter allows rps sustained requests per client with the given burst.
// rps <= 0 disables limiting.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		limit:   rate.Limit(rps),
		burst:   burst,
		now:     time.Now,
		clients: make(map[string]*clientLimiter),
	}
}

// Middleware rejects requests over the limit with 429 and a Retry-After header
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.limit <= 0 {
			c.Next()
			return
		}

		clientIP := c.ClientIP()
		reservation := rl.limiterFor(clientIP).ReserveN(rl.now(), 1)
		if !reservation.OK() {
			rl.reject(c, clientIP, defaultRetryAfterSec)
			return
		}
		if delay := reservation.DelayFrom(rl.now()); delay > 0 {
			reservation.CancelAt(rl.now())
			rl.reject(c, clientIP, int(math.Ceil(delay.Seconds())))
			return
		}
		c.Next()
	}
}

func (rl *RateLimiter) reject(c *gin.Context, clientIP string, retryAfter int) {
	if retryAfter < defaultRetryAfterSec {
		retryAfter = defaultRetryAfterSec
	}
	logger.Warn("Rate limit exceeded", logger.Fields{
		"request_id": c.GetString(RequestIDKey),
		"client_ip":  clientIP,
		"path":       c.Request.URL.Path,
	})
	c.Header("Retry-After", strconv.Itoa(retryAfter))
	c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
		"error":       "Rate limit exceeded",
		"retry_after": retryAfter,
	})
}

func (rl *RateLimiter) limiterFor(clientIP string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if cl, ok := rl.clients[clientIP]; ok {
		cl.lastSeen = now
		return cl.limiter
	}

	rl.newSince++
	if rl.newSince >= limiterSweepEvery {
		rl.sweepLocked(now)
		rl.newSince = 0
	}

	cl := &clientLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst), lastSeen: now}
	rl.clients[clientIP] = cl
	return cl.limiter
}

// sweepLocked drops limiters idle for longer than limiterIdleTTL
func (rl *RateLimiter) sweepLocked(now time.Time) {
	for ip, cl := range rl.clients {
		if now.Sub(cl.lastSeen) > limiterIdleTTL {
			delete(rl.clients, ip)
		}
	}
}

// Clients returns the number of tracked clients
func (rl *RateLimiter) Clients() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.clients)
}
