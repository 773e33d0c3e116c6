// Package gin exposes the rate limit gate as Gin middleware.
package gin

import (
	"github.com/gin-gonic/gin"

	"github.com/jassus213/go-unsplash/ratelimiter"
)

// Name is the name the proxy server registers this middleware under.
const Name = "unsplash.rate_limit"

// RateLimiter creates a new Gin middleware handler.
//
// It consults the gate before the rest of the chain runs and aborts with the
// gate's ErrorHandler when the cached remaining quota is at or below the
// threshold. After the chain returns, whatever its outcome, the gate refreshes
// the cached telemetry from the client's last response.
//
// Example:
//
//	gate := ratelimiter.NewGate(store.NewRedis(redisClient, ""), client)
//	router := gin.Default()
//	api := router.Group("/api", ginMiddleware.RateLimiter(gate))
func RateLimiter(gate *ratelimiter.Gate) gin.HandlerFunc {
	cfg := gate.Config()

	return func(c *gin.Context) {
		ctx := c.Request.Context()

		result, err := gate.Check(ctx)
		if err != nil {
			cfg.Logger.Errorf("Rate limit check failed, allowing request: %v", err)
		}

		if !result.Allowed {
			cfg.Logger.Debugf(
				"Request denied for '%s'. Remaining: %d, Threshold: %d",
				c.Request.URL.Path, result.Remaining, result.Threshold,
			)
			cfg.ErrorHandler(c.Writer, c.Request, ratelimiter.ErrRateLimitReached, result)
			c.Abort()
			return
		}

		c.Next()

		if err := gate.Refresh(ctx); err != nil {
			cfg.Logger.Errorf("Rate limit refresh failed for '%s': %v", c.Request.URL.Path, err)
		}
	}
}
