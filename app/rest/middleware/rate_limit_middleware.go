package middleware

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// RateLimiter applies per-IP rate limits, tuned per endpoint class
type RateLimiter struct {
	visitors map[string]*visitor
	mutex    sync.Mutex
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a rate limiter with a background visitor sweep
func NewRateLimiter() *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
	}
	go rl.cleanupVisitors()
	return rl
}

// RateLimit returns the echo middleware
func (rl *RateLimiter) RateLimit() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()

			var limit rate.Limit
			var burst int

			path := c.Request().URL.Path
			switch {
			case strings.HasSuffix(path, "/passcode"):
				// Passcode issuance triggers an outbound email; keep it slow.
				limit = rate.Every(1 * time.Minute)
				burst = 5
			case strings.HasSuffix(path, "/passcode/verify"):
				limit = rate.Every(5 * time.Second)
				burst = 10
			default:
				limit = rate.Every(1 * time.Second)
				burst = 20
			}

			if !rl.allow(ip, path, limit, burst) {
				return c.JSON(http.StatusTooManyRequests, map[string]interface{}{
					"error": "Rate limit exceeded",
					"code":  "RATE_LIMIT_EXCEEDED",
				})
			}

			return next(c)
		}
	}
}

func (rl *RateLimiter) allow(ip, path string, limit rate.Limit, burst int) bool {
	// Separate buckets per endpoint class so verifying codes does not
	// consume the issuance budget.
	key := ip + "|" + path

	rl.mutex.Lock()
	v, exists := rl.visitors[key]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(limit, burst)}
		rl.visitors[key] = v
	}
	v.lastSeen = time.Now()
	rl.mutex.Unlock()

	return v.limiter.Allow()
}

func (rl *RateLimiter) cleanupVisitors() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mutex.Lock()
		for key, v := range rl.visitors {
			if time.Since(v.lastSeen) > 10*time.Minute {
				delete(rl.visitors, key)
			}
		}
		rl.mutex.Unlock()
	}
}
