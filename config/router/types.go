package router

import (
	"github.com/gin-gonic/gin"
	g "maragu.dev/gomponents"
)

type RequestContext = gin.Context

type MiddlewareFunc = gin.HandlerFunc

// ServiceResult is the JSON envelope every API handler answers with.
type ServiceResult struct {
	StatusCode int    `json:"code"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
}

func (result *ServiceResult) ToJSON() gin.H {
	return gin.H{
		"code":    result.StatusCode,
		"data":    result.Data,
		"message": result.Message,
	}
}

type RateLimitResponse struct {
	Limit      int    `json:"limit"`
	Window     string `json:"window"`
	RetryAfter string `json:"retry_after"`
}

type HandlerFunction func(*RequestContext) *ServiceResult

// PageResult is what HTML handlers return. Node is the whole response body, either a full
// document or an htmx fragment.
type PageResult struct {
	StatusCode int
	Node       g.Node
}

type PageHandlerFunction func(*RequestContext) *PageResult

// RESTController groups routes under one mount point. prepare runs once, at mount time.
type RESTController struct {
	name         string
	mountPoint   string
	version      string
	handlerCount int
	prepare      func(*RouterService, *RESTController)
}
