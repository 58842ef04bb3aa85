package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	rateLimiterVisitorTTL  = 5 * time.Minute
	minimumCleanupInterval = 30 * time.Second
)

// RateLimitConfig configures the per-client token bucket.
type RateLimitConfig struct {
	PerMinute float64
	Burst     int
}

// Enabled reports whether rate limiting should be enforced.
func (c RateLimitConfig) Enabled() bool {
	return c.PerMinute > 0 && c.Burst > 0
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter hands out one token bucket per client IP. Idle clients are
// forgotten after five minutes.
type RateLimiter struct {
	cfg    RateLimitConfig
	logger *zap.Logger
	now    func() time.Time

	mu          sync.Mutex
	visitors    map[string]*clientLimiter
	lastCleanup time.Time
}

// NewRateLimiter creates a limiter; a disabled config lets everything through.
func NewRateLimiter(cfg RateLimitConfig, logger *zap.Logger) *RateLimiter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RateLimiter{
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
		visitors: make(map[string]*clientLimiter),
	}
}

// Allow takes one token for key at the current time.
func (l *RateLimiter) Allow(key string) bool {
	if !l.cfg.Enabled() {
		return true
	}
	now := l.now()

	l.mu.Lock()
	v, ok := l.visitors[key]
	if !ok {
		v = &clientLimiter{limiter: rate.NewLimiter(rate.Limit(l.cfg.PerMinute/60.0), l.cfg.Burst)}
		l.visitors[key] = v
	}
	v.lastSeen = now

	if l.lastCleanup.IsZero() || now.Sub(l.lastCleanup) > minimumCleanupInterval {
		for k, visitor := range l.visitors {
			if now.Sub(visitor.lastSeen) > rateLimiterVisitorTTL {
				delete(l.visitors, k)
			}
		}
		l.lastCleanup = now
	}
	l.mu.Unlock()

	return v.limiter.AllowN(now, 1)
}

// Handler rejects clients over their budget with 429.
func (l *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if l.Allow(c.ClientIP()) {
			c.Next()
			return
		}

		retry := 1
		if l.cfg.PerMinute > 0 {
			retry = int(60/l.cfg.PerMinute) + 1
		}
		l.logger.Warn("rate limit exceeded",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("client", c.ClientIP()),
			zap.String("request_id", RequestIDFrom(c)))
		c.Header("Retry-After", strconv.Itoa(retry))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
	}
}
