// Package supabase is a small PostgREST client for tables hosted on Supabase.
// It only covers what the landing service needs: inserting rows and probing reachability.
package supabase

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const restPath = "/rest/v1/"

const DefaultTimeout = 10 * time.Second

type Config struct {
	URL     string
	AnonKey string
	Timeout time.Duration

	// HTTPClient overrides the underlying transport; nil uses resty's default.
	HTTPClient *http.Client
}

// Client is safe for concurrent use and read-only once constructed.
type Client struct {
	rest    *resty.Client
	baseURL string
	timeout time.Duration
}

func NewClient(cfg Config) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.URL), "/")
	anonKey := strings.TrimSpace(cfg.AnonKey)

	if baseURL == "" {
		return nil, ErrMissingURL
	}
	if anonKey == "" {
		return nil, ErrMissingAnonKey
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("supabase: invalid url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("supabase: unsupported url scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("supabase: invalid url %q: missing host", baseURL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	var rc *resty.Client
	if cfg.HTTPClient != nil {
		rc = resty.NewWithClient(cfg.HTTPClient)
	} else {
		rc = resty.New()
	}

	rc.SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("apikey", anonKey).
		SetAuthToken(anonKey).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")

	return &Client{rest: rc, baseURL: baseURL, timeout: timeout}, nil
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// Timeout is the per-request limit applied to every call.
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// Insert writes a single row into table. The row is not echoed back.
func (c *Client) Insert(ctx context.Context, table string, row any) error {
	if strings.TrimSpace(table) == "" {
		return fmt.Errorf("supabase: table name is required")
	}

	resp, err := c.rest.R().
		SetContext(ctx).
		SetHeader("Prefer", "return=minimal").
		SetBody(row).
		SetError(&APIError{}).
		Post(restPath + table)
	if err != nil {
		return &TransportError{Op: "insert " + table, Err: err}
	}

	if resp.IsError() {
		return toAPIError(resp)
	}

	return nil
}

// Ping reports whether the REST endpoint answers at all. Any non-5xx status counts as reachable.
func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.rest.R().
		SetContext(ctx).
		Get(restPath)
	if err != nil {
		return &TransportError{Op: "ping", Err: err}
	}

	if resp.StatusCode() >= http.StatusInternalServerError {
		return toAPIError(resp)
	}

	return nil
}

func toAPIError(resp *resty.Response) *APIError {
	apiErr, ok := resp.Error().(*APIError)
	if !ok || apiErr == nil {
		apiErr = &APIError{}
	}

	apiErr.Status = resp.StatusCode()
	if apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(resp.String())
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(apiErr.Status)
	}

	return apiErr
}
