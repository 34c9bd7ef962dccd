package landing

import (
	"errors"
	"net/http"
	"time"

	"github.com/hebed-ai/accelerator-landing/config/router"
	"github.com/hebed-ai/accelerator-landing/domain/capture"
	"github.com/hebed-ai/accelerator-landing/pkg/constants"
	"github.com/hebed-ai/accelerator-landing/pkg/ratelimit"
)

// NewLandingController serves the HTML pages and the form posts behind every placement.
func NewLandingController(submitter capture.Submitter, formLimiter ratelimit.RateLimiter) *router.RESTController {
	return router.NewRESTController(
		"LandingController",
		"/",
		func(rs *router.RouterService, c *router.RESTController) {
			if formLimiter == nil {
				formLimiter = createFormSubmissionRateLimiter()
			}

			rs.SetNotFoundPage(NotFoundPage())

			rs.AddPageGetHandler(c, nil, "", landingPageHandler())
			rs.AddPageGetHandler(c, nil, "waitlist", waitlistPageHandler())
			rs.AddPageGetHandler(c, nil, "apply", applyPageHandler())
			rs.AddPagePostHandler(c, formLimiter, "forms/:placement", submitFormHandler(submitter))
		},
	)
}

func createFormSubmissionRateLimiter() ratelimit.RateLimiter {
	return ratelimit.NewRateLimiter(&ratelimit.RateLimitConfig{
		Requests: constants.FormSubmissionsPerMinute,
		Window:   time.Minute,
	})
}

func landingPageHandler() router.PageHandlerFunction {
	return func(ctx *router.RequestContext) *router.PageResult {
		return router.PageOK(LandingPage(nil))
	}
}

func waitlistPageHandler() router.PageHandlerFunction {
	return func(ctx *router.RequestContext) *router.PageResult {
		return router.PageOK(WaitlistPage(capture.NewForm(capture.WaitlistPage, nil).View()))
	}
}

func applyPageHandler() router.PageHandlerFunction {
	return func(ctx *router.RequestContext) *router.PageResult {
		return router.PageOK(ApplyPage())
	}
}

// submitFormHandler runs one independent form instance per request. Failed submissions still
// answer 200 so htmx swaps the re-rendered form in.
func submitFormHandler(submitter capture.Submitter) router.PageHandlerFunction {
	return func(ctx *router.RequestContext) *router.PageResult {
		logger := router.GetLogger(ctx)

		placement, ok := capture.Lookup(ctx.Param("placement"))
		if !ok {
			logger.Warn("Form posted to unknown placement", "placement", ctx.Param("placement"))
			return router.PageWithStatus(http.StatusNotFound, NotFoundPage())
		}

		form := capture.NewForm(placement, submitter)
		form.SetEmail(ctx.PostForm("email"))

		err := form.Submit(ctx.Request.Context(), capture.Client{
			UserAgent: ctx.Request.UserAgent(),
			IP:        ctx.ClientIP(),
		})
		if errors.Is(err, capture.ErrNotSubmittable) {
			logger.Info("Form submission skipped, email not submittable", "placement", placement.ID)
		}

		view := form.View()

		if router.IsHTMXRequest(ctx) {
			return router.PageOK(capture.Render(view))
		}

		if placement.Variant == capture.VariantCompact {
			return router.PageOK(WaitlistPage(view))
		}
		return router.PageOK(LandingPage(map[string]capture.View{placement.ID: view}))
	}
}
