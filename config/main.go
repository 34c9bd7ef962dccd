package config

import (
	"context"
	"time"

	"github.com/hebed-ai/accelerator-landing/config/router"
	"github.com/hebed-ai/accelerator-landing/internal/log"
	"github.com/hebed-ai/accelerator-landing/internal/models"
	"github.com/hebed-ai/accelerator-landing/pkg/constants"
	"github.com/hebed-ai/accelerator-landing/pkg/supabase"
	"github.com/hebed-ai/accelerator-landing/pkg/utils"
	"gorm.io/gorm"
)

type ApplicationConfig struct {
	// DB is nil when submissions go to the hosted backend.
	DB *gorm.DB

	// Backend is nil when submissions go straight to Postgres.
	Backend *supabase.Client

	RouterService   *router.RouterService
	Logger          *log.Logger
	Cache           Cache
	Config          *AppConfig
	TracingShutdown func(context.Context) error
}

type AppConfig struct {
	RateLimitRequests int
	RateLimitWindow   time.Duration
	RequestTimeout    time.Duration
}

// NewAppConfig reads the global HTTP limits. Invalid or non-positive values keep the defaults.
func NewAppConfig() *AppConfig {
	return &AppConfig{
		RateLimitRequests: utils.GetEnvPositiveInt("RATE_LIMIT_REQUESTS", constants.DefaultRateLimitRequests),
		RateLimitWindow:   utils.GetEnvPositiveDuration("RATE_LIMIT_WINDOW", constants.DefaultRateLimitWindow()),
		RequestTimeout:    utils.GetEnvPositiveDuration("REQUEST_TIMEOUT", router.DefaultTimeoutDuration),
	}
}

func (ac *ApplicationConfig) Cleanup() {
	if ac.TracingShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := ac.TracingShutdown(ctx); err != nil {
			ac.Logger.Error("Failed to shutdown tracer provider", "error", err)
		}
	}

	if ac.DB != nil {
		CloseDatabase(ac.DB, ac.Logger)
	}

	if ac.RouterService != nil {
		ac.RouterService.Cleanup()
	}

	if ac.Cache != nil {
		CloseCache(ac.Cache, ac.Logger)
	}

	ac.Logger.Info("Application cleanup completed")
}

func LoadApplicationConfiguration(logger *log.Logger, autoMigrate bool) (*ApplicationConfig, error) {
	InitializeEnvFile(logger)

	if autoMigrate {
		appEnv := GetAppEnv()
		if err := ValidateAutoMigrateAllowed(appEnv); err != nil {
			return nil, err
		}
		if appEnv == "" {
			logger.Warn("APP_ENV not set; allowing --auto-migrate as development")
		}
	}

	tracingShutdown, err := SetupTracing(logger)
	if err != nil {
		return nil, err
	}

	backendCfg := NewBackendConfig()
	if err := backendCfg.Validate(); err != nil {
		logger.Error("Invalid submission store configuration", "error", err)
		return nil, err
	}

	var (
		db      *gorm.DB
		backend *supabase.Client
	)

	if backendCfg.UsesSupabase() {
		backend, err = NewBackendClient(logger, backendCfg)
		if err != nil {
			return nil, err
		}
		if autoMigrate {
			logger.Warn("--auto-migrate ignored; the hosted backend owns its schema", "store", backendCfg.Driver)
		}
	} else {
		db, err = NewDatabase(logger, NewDBConfig())
		if err != nil {
			return nil, err
		}

		if autoMigrate {
			if err := AutoMigrate(logger, db, models.ModelRegistry...); err != nil {
				return nil, err
			}
		}
	}

	appConfig := NewAppConfig()
	cache := NewCacheConfig().NewCacheOrNil(logger)

	routerService := router.CreateRouterService(logger, cache, &router.RouterConfig{
		RateLimitRequests: appConfig.RateLimitRequests,
		RateLimitWindow:   appConfig.RateLimitWindow,
		RequestTimeout:    appConfig.RequestTimeout,
	})

	logger.Info("Application configuration loaded successfully", "store", backendCfg.Driver)

	return &ApplicationConfig{
		DB:              db,
		Backend:         backend,
		RouterService:   routerService,
		Logger:          logger,
		Cache:           cache,
		Config:          appConfig,
		TracingShutdown: tracingShutdown,
	}, nil
}
