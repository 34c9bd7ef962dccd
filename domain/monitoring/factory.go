package monitoring

import (
	"github.com/hebed-ai/accelerator-landing/config/router"
	"github.com/hebed-ai/accelerator-landing/internal/log"
	"gorm.io/gorm"
)

type MonitoringControllerFactory interface {
	CreateController() *router.RESTController
}

type DefaultMonitoringControllerFactory struct {
	db      *gorm.DB
	backend Pinger
	cache   Pinger
	logger  *log.Logger
}

func NewMonitoringControllerFactory(db *gorm.DB, backend Pinger, cache Pinger, logger *log.Logger) MonitoringControllerFactory {
	return &DefaultMonitoringControllerFactory{
		db:      db,
		backend: backend,
		cache:   cache,
		logger:  logger,
	}
}

func (f *DefaultMonitoringControllerFactory) CreateController() *router.RESTController {
	return NewMonitoringController(f.db, f.backend, f.cache, f.logger)
}
