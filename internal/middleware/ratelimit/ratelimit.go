// Package ratelimit provides per-endpoint rate limiting for the
// authentication surface. The original deployment throttled auth
// requests at the edge; here it is a first-class fiber middleware.
package ratelimit

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/redsocial/api/internal/pkg/log"
	platformconfig "github.com/redsocial/api/internal/platform/config"
)

// Config holds the configuration for the rate limiting middleware
type Config struct {
	// Endpoint name used in logs and error messages
	Endpoint string

	// Limit carries max requests and window duration
	Limit platformconfig.RateLimitConfig

	// KeyGenerator overrides the default IP+path key (optional)
	KeyGenerator func(c *fiber.Ctx) string
}

// New creates a fixed-window rate limiter for one endpoint.
// Disabled limits produce a pass-through handler.
func New(cfg Config) fiber.Handler {
	if !cfg.Limit.Enabled {
		return func(c *fiber.Ctx) error {
			return c.Next()
		}
	}

	keyGenerator := cfg.KeyGenerator
	if keyGenerator == nil {
		keyGenerator = func(c *fiber.Ctx) string {
			return c.IP() + ":" + c.Path()
		}
	}

	return limiter.New(limiter.Config{
		Max:        cfg.Limit.Max,
		Expiration: cfg.Limit.Duration,
		KeyGenerator: keyGenerator,
		LimitReached: func(c *fiber.Ctx) error {
			log.Warn("[RateLimit] limit exceeded for %s from IP: %s", cfg.Endpoint, c.IP())
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"code":       "RATE_LIMIT_EXCEEDED",
				"message":    fmt.Sprintf("Too many %s attempts. Please try again later.", cfg.Endpoint),
				"retryAfter": int(cfg.Limit.Duration.Seconds()),
			})
		},
	})
}
