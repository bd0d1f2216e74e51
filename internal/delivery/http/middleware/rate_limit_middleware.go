package middleware

import (
	"sync"

	"storefront/config"
	"storefront/internal/delivery/http/response"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

const (
	defaultLoginRPS   = 1
	defaultLoginBurst = 5
)

// RateLimitMiddleware bounds request rates on credential endpoints per client IP.
type RateLimitMiddleware struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      rate.Limit
	burst    int
}

// NewRateLimitMiddleware creates a per-IP rate limiter from configuration.
func NewRateLimitMiddleware(cfg *config.Config) *RateLimitMiddleware {
	rps := rate.Limit(defaultLoginRPS)
	burst := defaultLoginBurst

	if cfg.RateLimit != nil {
		if cfg.RateLimit.LoginRPS > 0 {
			rps = rate.Limit(cfg.RateLimit.LoginRPS)
		}
		if cfg.RateLimit.LoginBurst > 0 {
			burst = cfg.RateLimit.LoginBurst
		}
	}

	return &RateLimitMiddleware{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
		burst:    burst,
	}
}

// Limit rejects requests once the caller's token bucket is drained.
func (m *RateLimitMiddleware) Limit(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !m.limiterFor(c.RealIP()).Allow() {
			return response.TooManyRequests(c, "RATE_LIMITED", "Too many attempts, slow down")
		}

		return next(c)
	}
}

func (m *RateLimitMiddleware) limiterFor(ip string) *rate.Limiter {
	m.mu.Lock()
	defer m.mu.Unlock()

	limiter, ok := m.limiters[ip]
	if !ok {
		limiter = rate.NewLimiter(m.rps, m.burst)
		m.limiters[ip] = limiter
	}

	return limiter
}
