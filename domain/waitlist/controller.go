package waitlist

import (
	"time"

	"github.com/hebed-ai/accelerator-landing/config/router"
	"github.com/hebed-ai/accelerator-landing/pkg/constants"
	apperrors "github.com/hebed-ai/accelerator-landing/pkg/errors"
	"github.com/hebed-ai/accelerator-landing/pkg/ratelimit"
)

// NewWaitlistController exposes the capture flow as JSON for script clients.
// There is intentionally no read, update or delete route.
func NewWaitlistController(service WaitlistService, limiter ratelimit.RateLimiter) *router.RESTController {
	return router.NewVersionedRESTController(
		"WaitlistController",
		"v1",
		"/waitlist",
		func(rs *router.RouterService, c *router.RESTController) {
			if limiter == nil {
				limiter = createWaitlistCreationRateLimiter()
			}

			c.RateLimitWith(rs, limiter)
			rs.AddPostHandler(c, nil, "", createSubmissionHandler(service))
		},
	)
}

func createWaitlistCreationRateLimiter() ratelimit.RateLimiter {
	return ratelimit.NewRateLimiter(&ratelimit.RateLimitConfig{
		Requests: constants.WaitlistAPIRequestsPerMinute,
		Window:   time.Minute,
	})
}

func createSubmissionHandler(service WaitlistService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		logger := router.GetLogger(ctx)

		var req CreateSubmissionRequest

		if err := ctx.ShouldBindJSON(&req); err != nil {
			logger.Error("Failed to bind request", "error", err)

			validationErrors := apperrors.FormatValidationErrors(err, &req)
			if len(validationErrors) > 0 {
				return router.BadRequestResult("Invalid request payload", validationErrors)
			}

			return router.BadRequestResult("Invalid request body", nil)
		}

		response, err := service.Submit(ctx.Request.Context(), &SubmissionRequest{
			Email:     req.Email,
			Source:    req.Source,
			UserAgent: ctx.Request.UserAgent(),
			IPAddress: ctx.ClientIP(),
		})
		if err != nil {
			return router.ErrorResult(
				apperrors.HTTPStatusCode(err),
				apperrors.GetHumanReadableMessage(err),
				nil,
			)
		}

		return router.CreatedResult(response, "Waitlist submission")
	}
}
