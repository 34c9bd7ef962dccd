package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hebed-ai/accelerator-landing/internal/log"
	"github.com/hebed-ai/accelerator-landing/pkg/retry"
	"github.com/hebed-ai/accelerator-landing/pkg/supabase"
	"github.com/hebed-ai/accelerator-landing/pkg/utils"
)

const (
	SubmissionStoreSupabase = "supabase"
	SubmissionStorePostgres = "postgres"
)

// BackendConfig selects where waitlist submissions are written.
type BackendConfig struct {
	Driver  string
	URL     string
	AnonKey string
	Timeout time.Duration
}

func NewBackendConfig() *BackendConfig {
	return &BackendConfig{
		Driver:  strings.ToLower(utils.GetEnvTrimmedOrDefault("SUBMISSION_STORE", SubmissionStoreSupabase)),
		URL:     sanitizeEnv(utils.GetEnvTrimmed("SUPABASE_URL")),
		AnonKey: sanitizeEnv(utils.GetEnvTrimmed("SUPABASE_ANON_KEY")),
		Timeout: utils.GetEnvPositiveDuration("BACKEND_TIMEOUT", supabase.DefaultTimeout),
	}
}

func (bc *BackendConfig) UsesSupabase() bool {
	return bc.Driver == SubmissionStoreSupabase
}

// Validate fails when the selected store cannot be built. Every missing variable is named.
func (bc *BackendConfig) Validate() error {
	switch bc.Driver {
	case SubmissionStorePostgres:
		return nil
	case SubmissionStoreSupabase:
	default:
		return fmt.Errorf("unsupported SUBMISSION_STORE %q (allowed: %s, %s)", bc.Driver, SubmissionStoreSupabase, SubmissionStorePostgres)
	}

	missing := []string{}
	if bc.URL == "" {
		missing = append(missing, "SUPABASE_URL")
	}
	if bc.AnonKey == "" {
		missing = append(missing, "SUPABASE_ANON_KEY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required backend env vars: %s", strings.Join(missing, ", "))
	}

	return nil
}

// NewBackendClient builds the single client used for every insert. A backend that does not answer
// at startup is logged, not fatal: submissions made meanwhile are reported as unreachable.
func NewBackendClient(logger *log.Logger, cfg *BackendConfig) (*supabase.Client, error) {
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid backend configuration", "error", err)
		return nil, err
	}

	client, err := supabase.NewClient(supabase.Config{
		URL:     cfg.URL,
		AnonKey: cfg.AnonKey,
		Timeout: cfg.Timeout,
	})
	if err != nil {
		logger.Error("Failed to create backend client", "error", err)
		return nil, fmt.Errorf("failed to create backend client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*cfg.Timeout)
	defer cancel()

	probe := retry.NewExponentialBackoff(&retry.Config{
		MaxAttempts: 3,
		BaseDelay:   250 * time.Millisecond,
		MaxDelay:    2 * time.Second,
		Multiplier:  2,
		Retryable:   supabase.IsTransportError,
	})
	if err := probe.ExecuteContext(ctx, client.Ping); err != nil {
		logger.Warn("Backend did not answer the startup probe", "url", client.BaseURL(), "error", err)
	} else {
		logger.Info("Backend reachable", "url", client.BaseURL())
	}

	return client, nil
}
