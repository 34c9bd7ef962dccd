package waitlist

import (
	"context"
	"time"

	"github.com/hebed-ai/accelerator-landing/internal/log"
	apperrors "github.com/hebed-ai/accelerator-landing/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const tracerName = "github.com/hebed-ai/accelerator-landing/domain/waitlist"

type WaitlistService interface {
	// Submit normalizes the email and inserts exactly one submission. It never retries.
	Submit(ctx context.Context, req *SubmissionRequest) (*SubmissionResponse, error)
}

// DefaultInsertTimeout bounds an insert once it no longer follows the caller's context.
const DefaultInsertTimeout = 15 * time.Second

type ServiceOption func(*waitlistService)

// WithInsertTimeout replaces DefaultInsertTimeout. Non-positive values are ignored.
func WithInsertTimeout(d time.Duration) ServiceOption {
	return func(s *waitlistService) {
		if d > 0 {
			s.insertTimeout = d
		}
	}
}

type waitlistService struct {
	logger        *log.Logger
	store         SubmissionStore
	metrics       *submissionMetrics
	insertTimeout time.Duration
}

// NewWaitlistService wires the store behind the service. reg may be nil when metrics are disabled.
func NewWaitlistService(logger *log.Logger, store SubmissionStore, reg prometheus.Registerer, opts ...ServiceOption) WaitlistService {
	s := &waitlistService{
		logger:        logger,
		store:         store,
		metrics:       newSubmissionMetrics(reg),
		insertTimeout: DefaultInsertTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *waitlistService) Submit(ctx context.Context, req *SubmissionRequest) (*SubmissionResponse, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	if req == nil {
		logger.Error("Submit received empty request")
		return nil, apperrors.NewInvalidRequestError("request cannot be nil", nil)
	}

	email := NormalizeEmail(req.Email)
	if err := ValidateEmail(email); err != nil {
		logger.Warn("Submit received invalid email", "source", req.Source)
		return nil, apperrors.NewInvalidRequestError("invalid email format", err)
	}

	if !IsKnownSource(req.Source) {
		logger.Warn("Submit received unknown source tag", "source", req.Source)
		return nil, apperrors.NewInvalidRequestError("unknown submission source", nil)
	}

	submission := ToSubmissionModel(email, req)

	// Once sent, an insert runs to completion even if the visitor goes away. Only
	// insertTimeout can stop it.
	insertCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.insertTimeout)
	defer cancel()

	insertCtx, span := otel.Tracer(tracerName).Start(insertCtx, "waitlist.InsertSubmission")
	defer span.End()
	span.SetAttributes(attribute.String("waitlist.source", req.Source))

	if err := s.store.InsertSubmission(insertCtx, submission); err != nil {
		kind := ClassifyError(err)
		s.metrics.observe(req.Source, kind)

		span.RecordError(err)
		span.SetStatus(codes.Error, kind.String())

		if kind == KindDuplicate {
			logger.Info("Waitlist submission already registered", "source", req.Source)
		} else {
			logger.Error("Failed to store waitlist submission", "source", req.Source, "outcome", kind.String(), "error", err)
		}
		return nil, err
	}

	s.metrics.observe(req.Source, KindNone)
	logger.Info("Waitlist submission stored", "source", req.Source)

	response := ToSubmissionResponse(submission)
	return &response, nil
}
