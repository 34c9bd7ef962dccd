package router

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hebed-ai/accelerator-landing/pkg/ratelimit"
)

const tooManySubmissionsText = "Too many attempts. Please wait a minute and try again."

// limiterFor resolves the limiter for the matched route. Handler overrides beat controller
// overrides, which beat the global limiter. ok is false when no controller owns the route.
func (routerService *RouterService) limiterFor(c *gin.Context) (ratelimit.RateLimiter, bool) {
	handlerKey := routeKey(c.Request.Method, c.FullPath())

	controller, found := routerService.handlerToControllerMap[handlerKey]
	if !found || controller == nil {
		return nil, false
	}

	if limiter, ok := routerService.rateLimitOverrides[handlerKey]; ok {
		return limiter, true
	}
	if limiter, ok := routerService.rateLimitOverrides[controller.mountPoint]; ok {
		return limiter, true
	}
	return routerService.rateLimiter, true
}

func (routerService *RouterService) rateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		limiter, ok := routerService.limiterFor(c)
		if !ok {
			// Unknown routes fall through to NoRoute/NoMethod.
			c.Next()
			return
		}
		if limiter == nil {
			c.Next()
			return
		}

		clientIP := c.ClientIP()
		limit, window := limiter.GetLimitDetails()
		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Window", window.String())

		limited, err := limiter.IsLimited(fmt.Sprintf("ratelimit:%s", clientIP))
		if err != nil {
			// A broken limiter backend must not take the landing page down with it.
			routerService.logger.Error("Rate limiter error", "error", err, "client_ip", clientIP)
			c.Next()
			return
		}
		if !limited {
			c.Next()
			return
		}

		retryAfter := strconv.Itoa(max(1, int(math.Ceil(window.Seconds()))))
		c.Header("Retry-After", retryAfter)
		routerService.logger.Warn("Rate limit exceeded", "client_ip", clientIP, "path", c.FullPath())

		if acceptsHTML(c) {
			c.Abort()
			c.Data(http.StatusTooManyRequests, htmlContentType, []byte(tooManySubmissionsText))
			return
		}

		c.AbortWithStatusJSON(http.StatusTooManyRequests, TooManyRequestsResult(RateLimitResponse{
			Limit:      limit,
			Window:     window.String(),
			RetryAfter: retryAfter,
		}).ToJSON())
	}
}
