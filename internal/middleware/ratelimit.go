package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/ArowuTest/conomy-backend/internal/config"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const defaultLimiterIdle = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// clientLimiters holds one token bucket per client IP. Buckets idle for
// longer than idle are dropped, at most once per idle period.
type clientLimiters struct {
	mu        sync.Mutex
	clients   map[string]*clientLimiter
	limit     rate.Limit
	burst     int
	idle      time.Duration
	now       func() time.Time
	lastSweep time.Time
}

func newClientLimiters(cfg config.RateLimitConfig, now func() time.Time) *clientLimiters {
	idle := cfg.IdleTimeout
	if idle <= 0 {
		idle = defaultLimiterIdle
	}
	return &clientLimiters{
		clients:   make(map[string]*clientLimiter),
		limit:     rate.Limit(cfg.RequestsPerSecond),
		burst:     cfg.Burst,
		idle:      idle,
		now:       now,
		lastSweep: now(),
	}
}

// allow takes a token from ip's bucket
func (l *clientLimiters) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= l.idle {
		l.sweep(now)
	}
	c, ok := l.clients[ip]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[ip] = c
	}
	c.lastSeen = now
	return c.limiter.AllowN(now, 1)
}

// sweep removes idle buckets. Must hold l.mu.
func (l *clientLimiters) sweep(now time.Time) {
	for ip, c := range l.clients {
		if now.Sub(c.lastSeen) >= l.idle {
			delete(l.clients, ip)
		}
	}
	l.lastSweep = now
}

func (l *clientLimiters) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// RateLimitMiddleware applies a token bucket per client IP. The IP comes from
// gin's ClientIP, so forwarded headers count only when the engine trusts the
// proxy that set them.
func RateLimitMiddleware(cfg config.RateLimitConfig) gin.HandlerFunc {
	return rateLimit(cfg, newClientLimiters(cfg, time.Now))
}

func rateLimit(cfg config.RateLimitConfig, limiters *clientLimiters) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.RequestsPerSecond <= 0 {
			c.Next()
			return
		}
		if !limiters.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests, please slow down"})
			return
		}
		c.Next()
	}
}
