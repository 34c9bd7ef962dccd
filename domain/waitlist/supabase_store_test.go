package waitlist

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hebed-ai/accelerator-landing/internal/log"
	"github.com/hebed-ai/accelerator-landing/internal/models"
	"github.com/hebed-ai/accelerator-landing/pkg/circuitbreaker"
	apperrors "github.com/hebed-ai/accelerator-landing/pkg/errors"
	"github.com/hebed-ai/accelerator-landing/pkg/supabase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInserter struct {
	calls int
	table string
	row   any
	err   error
}

func (f *fakeInserter) Insert(_ context.Context, table string, row any) error {
	f.calls++
	f.table = table
	f.row = row
	return f.err
}

func TestSupabaseStore_InsertSubmission(t *testing.T) {
	source := SourceProductBanner
	agent := "curl/8.0"
	ip := "203.0.113.7"
	input := &models.WaitlistSubmission{Email: "user@example.com", Source: &source, UserAgent: &agent, IPAddress: &ip}

	t.Run("success sends one row to the submissions table", func(t *testing.T) {
		inserter := &fakeInserter{}
		store := NewSupabaseStore(inserter, nil)

		require.NoError(t, store.InsertSubmission(context.Background(), input))
		assert.Equal(t, 1, inserter.calls)
		assert.Equal(t, models.WaitlistSubmissionsTable, inserter.table)

		row, ok := inserter.row.(submissionRow)
		require.True(t, ok)
		assert.Equal(t, "user@example.com", row.Email)
		assert.Equal(t, &source, row.Source)
		assert.Equal(t, &agent, row.UserAgent)

		body, err := json.Marshal(row)
		require.NoError(t, err)
		assert.NotContains(t, string(body), "ip_address")
		assert.NotContains(t, string(body), ip)
	})

	tests := []struct {
		name     string
		err      error
		wantType string
		wantKind FailureKind
	}{
		{
			name:     "unique violation",
			err:      &supabase.APIError{Status: 409, Code: supabase.UniqueViolationCode, Message: "duplicate key"},
			wantType: apperrors.ErrorTypeConflict,
			wantKind: KindDuplicate,
		},
		{
			name:     "policy rejection",
			err:      &supabase.APIError{Status: 401, Code: "42501", Message: "permission denied"},
			wantType: apperrors.ErrorTypeDatabaseError,
			wantKind: KindRejected,
		},
		{
			name:     "server failure",
			err:      &supabase.APIError{Status: 502, Message: "bad gateway"},
			wantType: apperrors.ErrorTypeDatabaseError,
			wantKind: KindRejected,
		},
		{
			name:     "transport failure",
			err:      &supabase.TransportError{Op: "insert", Err: errors.New("dial tcp: connection refused")},
			wantType: apperrors.ErrorTypeBackendUnavailable,
			wantKind: KindUnreachable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewSupabaseStore(&fakeInserter{err: tt.err}, nil)

			err := store.InsertSubmission(context.Background(), input)
			require.Error(t, err)
			assert.Equal(t, tt.wantType, apperrors.GetErrorType(err))
			assert.Equal(t, tt.wantKind, ClassifyError(err))
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestSupabaseStore_BreakerOpensOnOutagesOnly(t *testing.T) {
	breaker := circuitbreaker.NewCircuitBreaker(&circuitbreaker.Config{
		FailureThreshold: 2,
		RecoveryTimeout:  time.Hour,
		SuccessThreshold: 1,
	})

	duplicate := &fakeInserter{err: &supabase.APIError{Status: 409, Code: supabase.UniqueViolationCode}}
	store := NewSupabaseStore(duplicate, breaker)
	for i := 0; i < 3; i++ {
		_ = store.InsertSubmission(context.Background(), submission("a@example.com", SourceHeroCTA))
	}
	assert.Equal(t, circuitbreaker.Closed, breaker.State())

	offline := &fakeInserter{err: &supabase.TransportError{Op: "insert", Err: errors.New("timeout")}}
	store = NewSupabaseStore(offline, breaker)
	for i := 0; i < 2; i++ {
		_ = store.InsertSubmission(context.Background(), submission("a@example.com", SourceHeroCTA))
	}
	assert.Equal(t, circuitbreaker.Open, breaker.State())

	err := store.InsertSubmission(context.Background(), submission("a@example.com", SourceHeroCTA))
	assert.Equal(t, KindUnreachable, ClassifyError(err))
	assert.Equal(t, 2, offline.calls)
}

func TestSupabaseStore_InsertNil(t *testing.T) {
	inserter := &fakeInserter{}
	store := NewSupabaseStore(inserter, nil)

	err := store.InsertSubmission(context.Background(), nil)
	assert.Equal(t, apperrors.ErrorTypeInvalidRequest, apperrors.GetErrorType(err))
	assert.Zero(t, inserter.calls)
}

func TestSupabaseStore_CallerCancellationIsNotAnOutage(t *testing.T) {
	breaker := circuitbreaker.NewCircuitBreaker(&circuitbreaker.Config{
		FailureThreshold: 1,
		RecoveryTimeout:  time.Hour,
		SuccessThreshold: 1,
	})

	for _, end := range []error{context.Canceled, context.DeadlineExceeded} {
		ctx := contextWithErr{Context: context.Background(), err: end}

		aborted := &fakeInserter{err: &supabase.TransportError{Op: "insert", Err: end}}
		_ = NewSupabaseStore(aborted, breaker).InsertSubmission(ctx, submission("a@example.com", SourceHeroCTA))
		assert.Equal(t, circuitbreaker.Closed, breaker.State(), "caller ended with %v", end)
	}

	healthy := &fakeInserter{}
	require.NoError(t, NewSupabaseStore(healthy, breaker).InsertSubmission(context.Background(), submission("b@example.com", SourceHeroCTA)))
	assert.Equal(t, 1, healthy.calls)
}

// contextWithErr reports err from Err so both context endings can be exercised without waiting.
type contextWithErr struct {
	context.Context
	err error
}

func (c contextWithErr) Err() error { return c.err }

func newPostgRESTStore(t *testing.T, handler http.HandlerFunc) (SubmissionStore, circuitbreaker.CircuitBreaker) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := supabase.NewClient(supabase.Config{URL: srv.URL, AnonKey: "anon-key", Timeout: 5 * time.Second})
	require.NoError(t, err)

	breaker := circuitbreaker.NewCircuitBreaker(&circuitbreaker.Config{
		FailureThreshold: 2,
		RecoveryTimeout:  time.Hour,
		SuccessThreshold: 1,
	})
	return NewSupabaseStore(client, breaker), breaker
}

func TestWaitlistService_InsertOutlivesVisitorDisconnect(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var completed atomic.Bool

	store, breaker := newPostgRESTStore(t, func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-release
		completed.Store(true)
		w.WriteHeader(http.StatusCreated)
	})
	service := NewWaitlistService(log.NewLoggerWithJSONOutput(), store, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := service.Submit(ctx, &SubmissionRequest{Email: "reader@example.com", Source: SourceFinalCTA})
		done <- err
	}()

	<-started
	cancel()
	close(release)

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("submit did not return")
	}
	assert.True(t, completed.Load())
	assert.Equal(t, circuitbreaker.Closed, breaker.State())
}

func TestWaitlistService_ShortCallerDeadlinesDoNotOpenBreaker(t *testing.T) {
	var inserts atomic.Int32
	store, breaker := newPostgRESTStore(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(20 * time.Millisecond)
		inserts.Add(1)
		w.WriteHeader(http.StatusCreated)
	})
	service := NewWaitlistService(log.NewLoggerWithJSONOutput(), store, nil)

	for range 5 {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
		_, err := service.Submit(ctx, &SubmissionRequest{Email: "hurried@example.com", Source: SourceHeroCTA})
		cancel()
		assert.NoError(t, err)
	}

	_, err := service.Submit(context.Background(), &SubmissionRequest{Email: "patient@example.com", Source: SourceHeroCTA})
	require.NoError(t, err)
	assert.Equal(t, int32(6), inserts.Load())
	assert.Equal(t, circuitbreaker.Closed, breaker.State())
}

func TestWaitlistService_InsertTimeoutStillBoundsTheCall(t *testing.T) {
	inserter := &blockingInserter{}
	service := NewWaitlistService(log.NewLoggerWithJSONOutput(), NewSupabaseStore(inserter, nil), nil,
		WithInsertTimeout(20*time.Millisecond))

	_, err := service.Submit(context.Background(), &SubmissionRequest{Email: "slow@example.com", Source: SourceHeroCTA})
	assert.Equal(t, KindUnreachable, ClassifyError(err))
}

// blockingInserter waits for its context and reports the result as a transport failure.
type blockingInserter struct{}

func (blockingInserter) Insert(ctx context.Context, _ string, _ any) error {
	<-ctx.Done()
	return &supabase.TransportError{Op: "insert", Err: ctx.Err()}
}
