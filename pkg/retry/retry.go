package retry

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// transientMarkers are error texts of failures that usually clear up on their own, such as a
// database that is still booting or a proxy that briefly refused the connection.
var transientMarkers = []string{
	"connection refused",
	"connection reset",
	"timeout",
	"temporary failure",
	"service unavailable",
	"too many requests",
	"the database system is starting up",
}

type Config struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	Multiplier  float64
	// Retryable decides whether an error is worth another attempt. Nil uses IsTransient.
	Retryable func(error) bool
	// OnRetry runs before each wait with the attempt that just failed.
	OnRetry func(attempt int, err error, wait time.Duration)
}

func DefaultConfig() *Config {
	return &Config{
		MaxAttempts: 3,
		BaseDelay:   100 * time.Millisecond,
		MaxDelay:    30 * time.Second,
		Multiplier:  2,
	}
}

type ExponentialBackoff struct {
	config Config
}

// NewExponentialBackoff copies config, filling zero fields from DefaultConfig.
func NewExponentialBackoff(config *Config) *ExponentialBackoff {
	cfg := *DefaultConfig()
	if config != nil {
		cfg.Retryable = config.Retryable
		cfg.OnRetry = config.OnRetry
		if config.MaxAttempts > 0 {
			cfg.MaxAttempts = config.MaxAttempts
		}
		if config.BaseDelay > 0 {
			cfg.BaseDelay = config.BaseDelay
		}
		if config.MaxDelay > 0 {
			cfg.MaxDelay = config.MaxDelay
		}
		if config.Multiplier >= 1 {
			cfg.Multiplier = config.Multiplier
		}
	}
	if cfg.Retryable == nil {
		cfg.Retryable = IsTransient
	}
	return &ExponentialBackoff{config: cfg}
}

func (eb *ExponentialBackoff) Execute(fn func() error) error {
	return eb.ExecuteContext(context.Background(), func(context.Context) error { return fn() })
}

// ExecuteContext runs fn until it succeeds, fails permanently or runs out of attempts.
// Waiting between attempts stops as soon as ctx is done.
func (eb *ExponentialBackoff) ExecuteContext(ctx context.Context, fn func(context.Context) error) error {
	wait := eb.config.BaseDelay

	for attempt := 1; ; attempt++ {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		if attempt >= eb.config.MaxAttempts {
			return &MaxRetriesExceededError{LastError: err, MaxAttempts: eb.config.MaxAttempts}
		}
		if !eb.config.Retryable(err) {
			return err
		}

		if eb.config.OnRetry != nil {
			eb.config.OnRetry(attempt, err, wait)
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return errors.Join(ctx.Err(), err)
		case <-timer.C:
		}

		wait = eb.nextDelay(wait)
	}
}

func (eb *ExponentialBackoff) nextDelay(current time.Duration) time.Duration {
	next := time.Duration(float64(current) * eb.config.Multiplier)
	return min(next, eb.config.MaxDelay)
}

func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range transientMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// MaxRetriesExceededError wraps the last failure once every attempt is used up.
type MaxRetriesExceededError struct {
	LastError   error
	MaxAttempts int
}

func (e *MaxRetriesExceededError) Error() string {
	return fmt.Sprintf("gave up after %d attempts: %v", e.MaxAttempts, e.LastError)
}

func (e *MaxRetriesExceededError) Unwrap() error {
	return e.LastError
}

func IsMaxRetriesExceeded(err error) bool {
	var exhausted *MaxRetriesExceededError
	return errors.As(err, &exhausted)
}
