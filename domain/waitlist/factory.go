package waitlist

import (
	"sync"

	"github.com/hebed-ai/accelerator-landing/config/router"
	"github.com/hebed-ai/accelerator-landing/internal/log"
	"github.com/hebed-ai/accelerator-landing/pkg/ratelimit"
	"github.com/prometheus/client_golang/prometheus"
)

type WaitlistServiceFactory interface {
	// CreateService returns the same service on every call so all placements share one store.
	CreateService() WaitlistService
	CreateController(limiter ratelimit.RateLimiter) *router.RESTController
}

type DefaultWaitlistServiceFactory struct {
	store      SubmissionStore
	logger     *log.Logger
	registerer prometheus.Registerer
	options    []ServiceOption

	once    sync.Once
	service WaitlistService
}

func NewWaitlistServiceFactory(store SubmissionStore, logger *log.Logger, registerer prometheus.Registerer, opts ...ServiceOption) WaitlistServiceFactory {
	return &DefaultWaitlistServiceFactory{
		store:      store,
		logger:     logger,
		registerer: registerer,
		options:    opts,
	}
}

func (f *DefaultWaitlistServiceFactory) CreateService() WaitlistService {
	f.once.Do(func() {
		f.service = NewWaitlistService(f.logger, f.store, f.registerer, f.options...)
	})
	return f.service
}

func (f *DefaultWaitlistServiceFactory) CreateController(limiter ratelimit.RateLimiter) *router.RESTController {
	return NewWaitlistController(f.CreateService(), limiter)
}
