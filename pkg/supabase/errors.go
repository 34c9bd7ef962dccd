package supabase

import (
	"errors"
	"fmt"
)

// UniqueViolationCode is the SQLSTATE PostgREST forwards when a unique constraint rejects an insert.
const UniqueViolationCode = "23505"

var (
	ErrMissingURL     = errors.New("supabase: url is required")
	ErrMissingAnonKey = errors.New("supabase: anon key is required")
)

// APIError is the JSON error body returned by PostgREST.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("supabase: status %d: %s (code %s)", e.Status, e.Message, e.Code)
	}
	return fmt.Sprintf("supabase: status %d: %s", e.Status, e.Message)
}

func (e *APIError) IsUniqueViolation() bool {
	return e.Code == UniqueViolationCode
}

// TransportError means the request never produced an HTTP response.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("supabase: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func IsUniqueViolation(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.IsUniqueViolation()
}

func IsTransportError(err error) bool {
	var transportErr *TransportError
	return errors.As(err, &transportErr)
}
