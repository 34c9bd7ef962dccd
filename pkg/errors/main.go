package errors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	ErrorTypeDatabaseError       = "DATABASE_ERROR"
	ErrorTypeNotFound            = "NOT_FOUND"
	ErrorTypeInvalidRequest      = "INVALID_REQUEST"
	ErrorTypeConflict            = "CONFLICT"
	ErrorTypeInternalServerError = "INTERNAL_SERVER_ERROR"
	ErrorTypeBackendUnavailable  = "BACKEND_UNAVAILABLE"
	ErrorTypeUnknown             = "UNKNOWN_ERROR"
)

// UniqueViolationCode is the SQLSTATE Postgres and PostgREST report for unique constraint violations.
const UniqueViolationCode = "23505"

// AppError carries a classification and a message that is safe to show to a visitor.
// Err keeps the underlying cause for logs only.
type AppError struct {
	Type    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Type + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(errType, message string, err error) *AppError {
	return &AppError{Type: errType, Message: message, Err: err}
}

func NewNotFoundError(message string, err error) *AppError {
	return NewAppError(ErrorTypeNotFound, message, err)
}

func NewInvalidRequestError(message string, err error) *AppError {
	return NewAppError(ErrorTypeInvalidRequest, message, err)
}

func NewConflictError(message string, err error) *AppError {
	return NewAppError(ErrorTypeConflict, message, err)
}

func NewDatabaseError(message string, err error) *AppError {
	return NewAppError(ErrorTypeDatabaseError, message, err)
}

// NewBackendUnavailableError marks failures where the store could not be reached at all.
func NewBackendUnavailableError(message string, err error) *AppError {
	return NewAppError(ErrorTypeBackendUnavailable, message, err)
}

// GetErrorType returns the type of the outermost AppError in err's chain.
func GetErrorType(err error) string {
	if err == nil {
		return ""
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeUnknown
}

func IsBackendUnavailable(err error) bool {
	return GetErrorType(err) == ErrorTypeBackendUnavailable
}

// IsDuplicateKeyError reports whether err is a unique constraint violation from any store:
// a pgx error with SQLSTATE 23505, gorm's translated ErrDuplicatedKey, or a driver message
// that names the constraint.
func IsDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == UniqueViolationCode
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, marker := range duplicateMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

var duplicateMarkers = []string{
	"duplicate key",
	"unique constraint",
	"sqlstate " + UniqueViolationCode,
}
