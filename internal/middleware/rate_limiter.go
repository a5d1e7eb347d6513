package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/BruksfildServices01/booking-crm/internal/httperr"
)

const (
	// A bucket refills completely within a minute, so a client idle longer
	// than this would get a fresh limiter anyway.
	limiterIdleTTL    = 3 * time.Minute
	limiterSweepEvery = time.Minute
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type limiterStore struct {
	mu        sync.Mutex
	limiters  map[string]*clientLimiter
	perMin    int
	lastSweep time.Time
	now       func() time.Time
}

func newLimiterStore(perMin int) *limiterStore {
	return &limiterStore{
		limiters:  map[string]*clientLimiter{},
		perMin:    perMin,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

func (s *limiterStore) get(ip string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if now.Sub(s.lastSweep) >= limiterSweepEvery {
		s.sweepLocked(now)
	}

	cl, ok := s.limiters[ip]
	if !ok {
		cl = &clientLimiter{
			limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(s.perMin)), s.perMin),
		}
		s.limiters[ip] = cl
	}
	cl.lastSeen = now
	return cl.limiter
}

// sweepLocked drops limiters of clients not seen for limiterIdleTTL.
func (s *limiterStore) sweepLocked(now time.Time) {
	for ip, cl := range s.limiters {
		if now.Sub(cl.lastSeen) > limiterIdleTTL {
			delete(s.limiters, ip)
		}
	}
	s.lastSweep = now
}

func (s *limiterStore) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.limiters)
}

// RateLimit allows perMin requests per client IP per minute, bursting up to
// perMin. A non-positive perMin disables the limit.
func RateLimit(perMin int, log *zap.Logger) gin.HandlerFunc {
	if perMin <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	store := newLimiterStore(perMin)

	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !store.get(ip).Allow() {
			log.Warn("rate limit exceeded", zap.String("ip", ip), zap.String("path", c.FullPath()))
			httperr.Write(c, http.StatusTooManyRequests, "rate_limited", "Too many requests, try again later.")
			c.Abort()
			return
		}
		c.Next()
	}
}
