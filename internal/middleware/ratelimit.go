package middleware

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"
)

// PurchaseLimiter throttles purchase submissions per user so a misbehaving
// client cannot hammer the billing provider. Retries are always a manual
// user action, so a low steady rate is plenty.
type PurchaseLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.Mutex
}

// NewPurchaseLimiter creates the limiter registry.
func NewPurchaseLimiter() *PurchaseLimiter {
	return &PurchaseLimiter{
		limiters: make(map[string]*rate.Limiter),
	}
}

func (pl *PurchaseLimiter) limiter(key string) *rate.Limiter {
	pl.mu.Lock()
	defer pl.mu.Unlock()

	if limiter, exists := pl.limiters[key]; exists {
		return limiter
	}

	// One submission per second sustained, short bursts allowed.
	limiter := rate.NewLimiter(1, 3)
	pl.limiters[key] = limiter

	// Drop idle entries after a while so the map does not grow unbounded.
	go func() {
		time.Sleep(10 * time.Minute)
		pl.mu.Lock()
		delete(pl.limiters, key)
		pl.mu.Unlock()
	}()

	return limiter
}

// Handler enforces the per-user limit; unauthenticated requests fall back to
// limiting by client IP.
func (pl *PurchaseLimiter) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.IP()
		if userID, ok := GetCurrentUserID(c); ok {
			key = userID.String()
		}

		if !pl.limiter(key).Allow() {
			return fiber.NewError(fiber.StatusTooManyRequests, "too many requests, slow down")
		}

		return c.Next()
	}
}
