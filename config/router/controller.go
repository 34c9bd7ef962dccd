package router

import (
	"bytes"
	"fmt"
	"net/http"
	"path"

	"github.com/hebed-ai/accelerator-landing/pkg/ratelimit"
)

const htmlContentType = "text/html; charset=utf-8"

// cleanRoute joins segments into an absolute gin route without a trailing slash.
func cleanRoute(segments ...string) string {
	return path.Join(append([]string{"/"}, segments...)...)
}

func routeKey(method, route string) string {
	return method + " " + route
}

func NewRESTController(name, mountPoint string, prepare func(*RouterService, *RESTController)) *RESTController {
	return &RESTController{
		name:       name,
		mountPoint: cleanRoute(mountPoint),
		prepare:    prepare,
	}
}

// NewVersionedRESTController mounts under /<version>/<mountPoint>.
func NewVersionedRESTController(name, version, mountPoint string, prepare func(*RouterService, *RESTController)) *RESTController {
	return &RESTController{
		name:       name,
		mountPoint: cleanRoute(version, mountPoint),
		version:    version,
		prepare:    prepare,
	}
}

// RateLimitWith applies limiter to every route of the controller that has no handler override.
func (controller *RESTController) RateLimitWith(routerService *RouterService, limiter ratelimit.RateLimiter) *RESTController {
	routerService.bindRateLimiter(controller.mountPoint, limiter)
	return controller
}

func (routerService *RouterService) bindRateLimiter(key string, limiter ratelimit.RateLimiter) {
	if limiter == nil {
		return
	}
	if _, taken := routerService.rateLimitOverrides[key]; taken {
		panic(fmt.Sprintf("rate limiter already registered for %q", key))
	}
	routerService.rateLimitOverrides[key] = limiter
}

func (routerService *RouterService) AddGetHandler(controller *RESTController, limiter ratelimit.RateLimiter, relativePath string, handler HandlerFunction, middlewares ...MiddlewareFunc) {
	routerService.addHandler(controller, limiter, http.MethodGet, relativePath, createHandler(handler), middlewares)
}

func (routerService *RouterService) AddPostHandler(controller *RESTController, limiter ratelimit.RateLimiter, relativePath string, handler HandlerFunction, middlewares ...MiddlewareFunc) {
	routerService.addHandler(controller, limiter, http.MethodPost, relativePath, createHandler(handler), middlewares)
}

// AddPageGetHandler registers a handler that answers with HTML instead of the JSON envelope.
func (routerService *RouterService) AddPageGetHandler(controller *RESTController, limiter ratelimit.RateLimiter, relativePath string, handler PageHandlerFunction, middlewares ...MiddlewareFunc) {
	routerService.addHandler(controller, limiter, http.MethodGet, relativePath, createPageHandler(handler), middlewares)
}

func (routerService *RouterService) AddPagePostHandler(controller *RESTController, limiter ratelimit.RateLimiter, relativePath string, handler PageHandlerFunction, middlewares ...MiddlewareFunc) {
	routerService.addHandler(controller, limiter, http.MethodPost, relativePath, createPageHandler(handler), middlewares)
}

func (routerService *RouterService) addHandler(
	controller *RESTController,
	limiter ratelimit.RateLimiter,
	method string,
	relativePath string,
	handler MiddlewareFunc,
	middlewares []MiddlewareFunc,
) {
	route := cleanRoute(controller.mountPoint, relativePath)
	key := routeKey(method, route)

	if owner, taken := routerService.handlerToControllerMap[key]; taken {
		panic(fmt.Sprintf("%s %s is already handled by %s", method, route, owner.name))
	}
	routerService.handlerToControllerMap[key] = controller
	routerService.bindRateLimiter(key, limiter)
	controller.handlerCount++

	routerService.engine.Handle(method, route, append(middlewares, handler)...)
	routerService.logger.Debug("Handler registered", "method", method, "path", route)
}

func createHandler(handler HandlerFunction) MiddlewareFunc {
	return func(c *RequestContext) {
		result := handler(c)
		if result == nil {
			GetLogger(c).Error("Handler returned no result", "path", c.FullPath())
			result = InternalServerErrorResult("An unexpected error occurred")
		}
		c.JSON(result.StatusCode, result.ToJSON())
	}
}

func createPageHandler(handler PageHandlerFunction) MiddlewareFunc {
	return func(c *RequestContext) {
		result := handler(c)
		if result == nil || result.Node == nil {
			GetLogger(c).Error("Page handler returned no result", "path", c.FullPath())
			c.Data(http.StatusInternalServerError, htmlContentType, []byte("Internal Server Error"))
			return
		}

		// Rendering into a buffer keeps a failed render from leaving a half written 200.
		var buf bytes.Buffer
		if err := result.Node.Render(&buf); err != nil {
			GetLogger(c).Error("Failed to render page", "error", err)
			c.Data(http.StatusInternalServerError, htmlContentType, []byte("Internal Server Error"))
			return
		}

		c.Data(result.StatusCode, htmlContentType, buf.Bytes())
	}
}
