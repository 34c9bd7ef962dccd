package waitlist

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"

	"github.com/hebed-ai/accelerator-landing/internal/models"
	apperrors "github.com/hebed-ai/accelerator-landing/pkg/errors"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// SubmissionStore is the only capability the capture flow needs from a backend.
//
// Implementations report a unique-email violation as a CONFLICT AppError and a backend
// that could not be reached as BACKEND_UNAVAILABLE; everything else is a rejection.
type SubmissionStore interface {
	// InsertSubmission persists one submission. It never upserts.
	InsertSubmission(ctx context.Context, submission *models.WaitlistSubmission) error
}

type SourceCount struct {
	Source string
	Total  int64
}

type WaitlistRepository interface {
	SubmissionStore
	// CountBySource returns the number of submissions per source tag, most first.
	CountBySource(ctx context.Context) ([]SourceCount, error)
}

type waitlistRepository struct {
	db *gorm.DB
}

func NewWaitlistRepository(db *gorm.DB) WaitlistRepository {
	return &waitlistRepository{db: db}
}

func (wr *waitlistRepository) InsertSubmission(ctx context.Context, submission *models.WaitlistSubmission) error {
	if submission == nil {
		return apperrors.NewInvalidRequestError("submission cannot be nil", nil)
	}

	if err := wr.db.WithContext(ctx).Create(submission).Error; err != nil {
		switch {
		case apperrors.IsDuplicateKeyError(err):
			return apperrors.NewConflictError("waitlist submission with this email already exists", err)
		case isConnectionFailure(err):
			return apperrors.NewBackendUnavailableError("database is unreachable", err)
		}
		return apperrors.NewDatabaseError("unable to create waitlist submission", err)
	}

	return nil
}

func (wr *waitlistRepository) CountBySource(ctx context.Context) ([]SourceCount, error) {
	var counts []SourceCount

	err := wr.db.WithContext(ctx).
		Model(&models.WaitlistSubmission{}).
		Select("COALESCE(source, '') AS source, COUNT(*) AS total").
		Group("source").
		Order("total DESC").
		Scan(&counts).Error
	if err != nil {
		if isConnectionFailure(err) {
			return nil, apperrors.NewBackendUnavailableError("database is unreachable", err)
		}
		return nil, apperrors.NewDatabaseError("unable to count waitlist submissions", err)
	}

	return counts, nil
}

func isConnectionFailure(err error) bool {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
