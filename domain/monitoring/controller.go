package monitoring

import (
	"context"
	"net/http"
	"time"

	"github.com/hebed-ai/accelerator-landing/config/router"
	"github.com/hebed-ai/accelerator-landing/internal/log"
	"github.com/hebed-ai/accelerator-landing/pkg/constants"
	"github.com/hebed-ai/accelerator-landing/pkg/ratelimit"
	"gorm.io/gorm"
)

const healthCheckTimeout = 3 * time.Second

// Pinger is anything that can prove it is reachable: the cache and the hosted backend client.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthStatus struct {
	Store    string `json:"store"`    // where submissions are written
	Database int    `json:"database"` // 1 = healthy, 0 = unhealthy/not configured
	Backend  int    `json:"backend"`  // 1 = healthy, 0 = unhealthy/not configured
	Cache    int    `json:"cache"`    // 1 = healthy, 0 = unhealthy/not configured
	Uptime   int    `json:"uptime"`   // uptime in seconds
}

type MonitoringController struct {
	db        *gorm.DB
	backend   Pinger
	cache     Pinger
	logger    *log.Logger
	startTime time.Time
}

// NewMonitoringController reports on whichever submission store is configured. db or backend may be nil.
func NewMonitoringController(db *gorm.DB, backend Pinger, cache Pinger, logger *log.Logger) *router.RESTController {
	ctrl := &MonitoringController{
		db:        db,
		backend:   backend,
		cache:     cache,
		logger:    logger,
		startTime: time.Now(),
	}

	return router.NewRESTController(
		"MonitoringController",
		"/health",
		func(routerService *router.RouterService, controller *router.RESTController) {

			monitoringRateLimiter := createMonitoringRateLimiter()

			routerService.AddGetHandler(controller, monitoringRateLimiter, "", func(c *router.RequestContext) *router.ServiceResult {
				return ctrl.healthCheck(c)
			})

			routerService.AddGetHandler(controller, nil, "live", func(c *router.RequestContext) *router.ServiceResult {
				return router.OKResult(map[string]int{"uptime": ctrl.uptime()}, "Service is alive")
			})
		},
	)
}

func createMonitoringRateLimiter() ratelimit.RateLimiter {
	return ratelimit.NewRateLimiter(&ratelimit.RateLimitConfig{
		Requests: constants.HealthChecksPerMinute,
		Window:   time.Minute,
	})
}

// healthCheck answers 503 when the active submission store cannot be reached. The cache is optional.
func (ctrl *MonitoringController) healthCheck(c *router.RequestContext) *router.ServiceResult {
	logger := router.GetLogger(c)
	logger.Info("Health check endpoint called")

	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	status := ctrl.performHealthChecks(ctx, logger)

	if !storeHealthy(status) {
		return router.ErrorResult(http.StatusServiceUnavailable, "Submission store is unreachable", status)
	}

	return router.OKResult(status, "Health check completed")
}

func storeHealthy(status HealthStatus) bool {
	switch status.Store {
	case "supabase":
		return status.Backend == 1
	case "postgres":
		return status.Database == 1
	default:
		return false
	}
}

func (ctrl *MonitoringController) uptime() int {
	return int(time.Since(ctrl.startTime).Seconds())
}

func (ctrl *MonitoringController) performHealthChecks(ctx context.Context, logger *log.Logger) HealthStatus {
	status := HealthStatus{
		Store:  ctrl.store(),
		Uptime: ctrl.uptime(),
	}

	if ctrl.db != nil {
		status.Database = check(ctx, logger, "Database", databasePinger{ctrl.db})
	}
	if ctrl.backend != nil {
		status.Backend = check(ctx, logger, "Backend", ctrl.backend)
	}
	if ctrl.cache != nil {
		status.Cache = check(ctx, logger, "Cache", ctrl.cache)
	} else {
		logger.Info("Cache not configured, cache health check skipped")
	}

	return status
}

func (ctrl *MonitoringController) store() string {
	switch {
	case ctrl.backend != nil:
		return "supabase"
	case ctrl.db != nil:
		return "postgres"
	default:
		return "none"
	}
}

func check(ctx context.Context, logger *log.Logger, name string, p Pinger) int {
	if err := p.Ping(ctx); err != nil {
		logger.Error(name+" health check failed", "error", err)
		return 0
	}
	logger.Info(name + " health check passed")
	return 1
}

type databasePinger struct {
	db *gorm.DB
}

func (d databasePinger) Ping(ctx context.Context) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
