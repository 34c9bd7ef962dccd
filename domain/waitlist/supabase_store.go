package waitlist

import (
	"context"
	"errors"
	"net/http"

	"github.com/hebed-ai/accelerator-landing/internal/models"
	"github.com/hebed-ai/accelerator-landing/pkg/circuitbreaker"
	apperrors "github.com/hebed-ai/accelerator-landing/pkg/errors"
	"github.com/hebed-ai/accelerator-landing/pkg/supabase"
)

// RowInserter is the subset of *supabase.Client the store uses.
type RowInserter interface {
	Insert(ctx context.Context, table string, row any) error
}

// submissionRow is the public insert contract. id, created_at and ip_address are left to the
// backend, which may enrich rows server side.
type submissionRow struct {
	Email     string  `json:"email"`
	Source    *string `json:"source,omitempty"`
	UserAgent *string `json:"user_agent,omitempty"`
}

type supabaseStore struct {
	client  RowInserter
	breaker circuitbreaker.CircuitBreaker
}

// NewSupabaseStore inserts through the hosted REST API. A nil breaker gets the default configuration.
func NewSupabaseStore(client RowInserter, breaker circuitbreaker.CircuitBreaker) SubmissionStore {
	if breaker == nil {
		breaker = circuitbreaker.NewCircuitBreaker(nil)
	}
	return &supabaseStore{client: client, breaker: breaker}
}

func (s *supabaseStore) InsertSubmission(ctx context.Context, submission *models.WaitlistSubmission) error {
	if submission == nil {
		return apperrors.NewInvalidRequestError("submission cannot be nil", nil)
	}

	row := submissionRow{
		Email:     submission.Email,
		Source:    submission.Source,
		UserAgent: submission.UserAgent,
	}

	var insertErr error
	callErr := s.breaker.Call(func() error {
		insertErr = s.client.Insert(ctx, models.WaitlistSubmissionsTable, row)
		// Only outages trip the breaker. A duplicate email is a healthy answer.
		if isOutage(ctx, insertErr) {
			return insertErr
		}
		return nil
	})

	if errors.Is(callErr, circuitbreaker.ErrCircuitOpen) {
		return apperrors.NewBackendUnavailableError("waitlist backend is temporarily unavailable", callErr)
	}

	switch {
	case insertErr == nil:
		return nil
	case supabase.IsUniqueViolation(insertErr):
		return apperrors.NewConflictError("waitlist submission with this email already exists", insertErr)
	case supabase.IsTransportError(insertErr):
		return apperrors.NewBackendUnavailableError("waitlist backend is unreachable", insertErr)
	default:
		return apperrors.NewDatabaseError("waitlist backend rejected the submission", insertErr)
	}
}

// isOutage excludes failures caused by the caller's own context ending, which say nothing
// about the backend's health.
func isOutage(ctx context.Context, err error) bool {
	if err == nil {
		return false
	}
	if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
		return false
	}
	return supabase.IsTransportError(err) || isServerSideFailure(err)
}

func isServerSideFailure(err error) bool {
	var apiErr *supabase.APIError
	return errors.As(err, &apiErr) && apiErr.Status >= http.StatusInternalServerError
}
