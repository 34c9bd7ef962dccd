package domain

import (
	"time"

	"github.com/hebed-ai/accelerator-landing/config"
	"github.com/hebed-ai/accelerator-landing/domain/landing"
	"github.com/hebed-ai/accelerator-landing/domain/monitoring"
	"github.com/hebed-ai/accelerator-landing/domain/waitlist"
	"github.com/hebed-ai/accelerator-landing/internal/log"
	"github.com/hebed-ai/accelerator-landing/pkg/circuitbreaker"
	"github.com/hebed-ai/accelerator-landing/pkg/constants"
	"github.com/hebed-ai/accelerator-landing/pkg/factory"
)

const insertTimeoutMargin = 2 * time.Second

func SetupCoreDomain(appConfig *config.ApplicationConfig) {
	logger := appConfig.Logger
	rs := appConfig.RouterService

	store, backend := newSubmissionStore(appConfig)

	limiters := factory.NewDefaultRateLimiterFactory(appConfig.Cache, logger)
	waitlistFactory := waitlist.NewWaitlistServiceFactory(store, logger, rs.MetricsRegisterer(),
		waitlist.WithInsertTimeout(insertTimeout(appConfig)))

	rs.MountController(monitoring.NewMonitoringControllerFactory(appConfig.DB, backend, appConfig.Cache, logger).CreateController())
	rs.MountController(waitlistFactory.CreateController(
		limiters.CreateRateLimiter("waitlist-api", constants.WaitlistAPIRequestsPerMinute, time.Minute),
	))
	rs.MountController(landing.NewLandingController(
		waitlistFactory.CreateService(),
		limiters.CreateRateLimiter("forms", constants.FormSubmissionsPerMinute, time.Minute),
	))

	logger.Info("Core domain mounted", "distributed_rate_limits", limiters.Distributed())
}

// newSubmissionStore prefers the hosted backend when one was configured. The returned pinger is
// nil in Postgres mode so the health check does not report a typed nil as configured.
func newSubmissionStore(appConfig *config.ApplicationConfig) (waitlist.SubmissionStore, monitoring.Pinger) {
	if appConfig.Backend != nil {
		breaker := circuitbreaker.NewCircuitBreaker(&circuitbreaker.Config{
			FailureThreshold: 5,
			RecoveryTimeout:  30 * time.Second,
			SuccessThreshold: 1,
			OnStateChange:    logBreakerTransitions(appConfig.Logger),
		})
		return waitlist.NewSupabaseStore(appConfig.Backend, breaker), appConfig.Backend
	}

	return waitlist.NewWaitlistRepository(appConfig.DB), nil
}

// insertTimeout leaves the backend client room to hit its own timeout first, so a hanging
// backend surfaces as a transport failure and counts towards the breaker.
func insertTimeout(appConfig *config.ApplicationConfig) time.Duration {
	if appConfig.Backend == nil {
		return waitlist.DefaultInsertTimeout
	}
	return appConfig.Backend.Timeout() + insertTimeoutMargin
}

func logBreakerTransitions(logger *log.Logger) func(from, to circuitbreaker.CircuitState) {
	return func(from, to circuitbreaker.CircuitState) {
		if to == circuitbreaker.Open {
			logger.Warn("Submission backend circuit opened", "from", from.String())
			return
		}
		logger.Info("Submission backend circuit state changed", "from", from.String(), "to", to.String())
	}
}
