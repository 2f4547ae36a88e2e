package api

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	apierrors "github.com/Apurer/choufli-storefront/internal/shared/errors"
)

// RateLimit is a per-client token bucket.
type RateLimit struct {
	RequestsPerMinute float64
	Burst             int
}

type rateEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one limiter per client IP. Idle clients are forgotten
// after idleTTL.
type RateLimiter struct {
	logger    *slog.Logger
	limit     RateLimit
	idleTTL   time.Duration
	mu        sync.Mutex
	visitors  map[string]*rateEntry
	lastSweep time.Time
	clockNow  func() time.Time
}

func NewRateLimiter(limit RateLimit, logger *slog.Logger) *RateLimiter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &RateLimiter{
		logger:   logger,
		limit:    limit,
		idleTTL:  5 * time.Minute,
		visitors: make(map[string]*rateEntry),
		clockNow: time.Now,
	}
}

// Middleware rejects requests over budget with a 429 problem document.
func (r *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		identifier := c.ClientIP()
		if !r.allow(identifier) {
			r.logger.Warn("rate limit exceeded", slog.String("client", identifier), slog.String("path", c.Request.URL.Path))
			apierrors.Respond(c, apierrors.ErrTooManyRequests.WithDetail("Too many orders, slow down"))
			c.Abort()
			return
		}
		c.Next()
	}
}

func (r *RateLimiter) allow(id string) bool {
	now := r.clockNow()
	r.mu.Lock()
	defer r.mu.Unlock()
	if now.Sub(r.lastSweep) >= r.idleTTL {
		for key, entry := range r.visitors {
			if now.Sub(entry.lastSeen) >= r.idleTTL {
				delete(r.visitors, key)
			}
		}
		r.lastSweep = now
	}
	entry, ok := r.visitors[id]
	if !ok {
		entry = &rateEntry{limiter: r.newLimiter()}
		r.visitors[id] = entry
	}
	entry.lastSeen = now
	return entry.limiter.AllowN(now, 1)
}

func (r *RateLimiter) newLimiter() *rate.Limiter {
	perSecond := r.limit.RequestsPerMinute / 60.0
	if perSecond <= 0 {
		perSecond = 1
	}
	burst := r.limit.Burst
	if burst <= 0 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(perSecond), burst)
}

func (r *RateLimiter) visitorCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.visitors)
}
