package router

import (
	"net/http"

	"github.com/hebed-ai/accelerator-landing/internal/log"
	g "maragu.dev/gomponents"
)

// GetLogger returns the request scoped logger installed by the logger injection middleware.
func GetLogger(ctx *RequestContext) *log.Logger {
	return log.GetLoggerInstanceFromContext(ctx.Request.Context(), nil)
}

// IsHTMXRequest reports whether the request was issued by htmx and expects a fragment.
func IsHTMXRequest(ctx *RequestContext) bool {
	return ctx.GetHeader("HX-Request") == "true"
}

func ErrorResult(statusCode int, message string, data any) *ServiceResult {
	return &ServiceResult{StatusCode: statusCode, Data: data, Message: message}
}

func OKResult(data any, message string) *ServiceResult {
	return ErrorResult(http.StatusOK, message, data)
}

func CreatedResult(data any, resourceName string) *ServiceResult {
	return ErrorResult(http.StatusCreated, resourceName+" created successfully", data)
}

func BadRequestResult(message string, payload any) *ServiceResult {
	return ErrorResult(http.StatusBadRequest, message, payload)
}

func NotFoundResult(message string) *ServiceResult {
	return ErrorResult(http.StatusNotFound, message, nil)
}

func TooManyRequestsResult(data RateLimitResponse) *ServiceResult {
	return ErrorResult(http.StatusTooManyRequests, "Too Many Requests", data)
}

func InternalServerErrorResult(message string) *ServiceResult {
	return ErrorResult(http.StatusInternalServerError, message, nil)
}

func PageOK(node g.Node) *PageResult {
	return PageWithStatus(http.StatusOK, node)
}

func PageWithStatus(statusCode int, node g.Node) *PageResult {
	return &PageResult{StatusCode: statusCode, Node: node}
}
