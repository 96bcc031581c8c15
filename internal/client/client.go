// Package client is a Go client for the advance API, used by the dashboard
// and the advancectl CLI.
//
// Calls are retried with a fixed delay so that a dashboard started alongside
// the backend keeps polling until the backend is accepting requests.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/paystream-demos/advance-app/internal/advance"
	"github.com/paystream-demos/advance-app/internal/config"
)

// APIError is returned when the server answers with a non-2xx status.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("advance API returned %d: %s", e.StatusCode, e.Detail)
}

// Client talks to the advance API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	attempts   uint
	delay      time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithRetry sets the number of attempts and the fixed delay between them.
func WithRetry(attempts uint, delay time.Duration) Option {
	return func(c *Client) {
		c.attempts = attempts
		c.delay = delay
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// New creates a client for the advance API at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: config.BackendRequestTimeout},
		attempts:   1,
		delay:      0,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CalculateAdvance submits an advance request and returns the calculation
// result.
func (c *Client) CalculateAdvance(ctx context.Context, req advance.AdvanceRequest) (advance.AdvanceResponse, error) {
	var resp advance.AdvanceResponse
	err := c.postJSON(ctx, "/calculate_advance", req, &resp)
	return resp, err
}

// ExportScheduleCSV submits an advance request with export_csv=true and
// returns the CSV payload.
func (c *Client) ExportScheduleCSV(ctx context.Context, req advance.AdvanceRequest) (advance.CSVExport, error) {
	var export advance.CSVExport
	err := c.postJSON(ctx, "/calculate_advance?export_csv=true", req, &export)
	return export, err
}

// GetLoan fetches a recorded loan by ID.
func (c *Client) GetLoan(ctx context.Context, loanID string) (advance.Loan, error) {
	var loan advance.Loan

	err := retry.Do(func() error {
		return c.doRequest(ctx, http.MethodGet, "/loan/"+loanID, nil, &loan)
	},
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.Delay(c.delay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(isRetryable),
	)

	return loan, err
}

func (c *Client) postJSON(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	return retry.Do(func() error {
		return c.doRequest(ctx, http.MethodPost, path, body, out)
	},
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.Delay(c.delay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(isRetryable),
	)
}

func (c *Client) doRequest(ctx context.Context, method, path string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var detail advance.ErrorDetail
		if err := json.NewDecoder(resp.Body).Decode(&detail); err != nil || detail.Detail == "" {
			detail.Detail = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Detail: detail.Detail}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// isRetryable reports whether a call should be retried: transport errors and
// 5xx responses are retryable, client errors (4xx) are not.
func isRetryable(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= 500
	}
	return true
}
