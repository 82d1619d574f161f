// Package remote is the backend API client. Calls never fail with a panic or
// a bare error return: every outcome is a Result.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Endpoints used by the core.
const (
	EndpointFocusSessions = "/focus-sessions"
)

// ProjectEndpoint returns the endpoint of one project record.
func ProjectEndpoint(projectID string) string {
	return "/projects/" + url.PathEscape(projectID)
}

// Result is the outcome of a backend call.
type Result struct {
	Body json.RawMessage
	Err  error
}

// OK reports whether the call succeeded.
func (r Result) OK() bool { return r.Err == nil }

// Decode unmarshals the body of a successful result into v.
func (r Result) Decode(v any) error {
	if r.Err != nil {
		return r.Err
	}
	if len(r.Body) == 0 {
		return fmt.Errorf("decoding response: empty body")
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// Client performs backend calls.
type Client interface {
	// Submit POSTs payload as JSON to endpoint.
	Submit(ctx context.Context, endpoint string, payload any) Result
	// Fetch GETs endpoint.
	Fetch(ctx context.Context, endpoint string) Result
}

// httpClient implements Client over HTTP.
type httpClient struct {
	cfg      Config
	http     *http.Client
	observer Observer
}

// NewHTTPClient creates a Client for the backend at cfg.BaseURL.
func NewHTTPClient(cfg Config, observer Observer) Client {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &httpClient{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 3 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
	}
}

func (c *httpClient) Submit(ctx context.Context, endpoint string, payload any) Result {
	data, err := json.Marshal(payload)
	if err != nil {
		return Result{Err: fmt.Errorf("marshaling request: %w", err)}
	}
	return c.call(ctx, http.MethodPost, endpoint, data)
}

func (c *httpClient) Fetch(ctx context.Context, endpoint string) Result {
	return c.call(ctx, http.MethodGet, endpoint, nil)
}

func (c *httpClient) call(ctx context.Context, method, endpoint string, body []byte) Result {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, c.cfg.timeout())
	defer cancel()

	var lastErr error
	attempts := 0
	maxAttempts := 1 + max(c.cfg.MaxRetries, 0)

	for attempts < maxAttempts {
		attempts++
		respBody, err := c.doRequest(ctx, method, endpoint, body)
		if err == nil {
			c.observer.OnCallComplete(ctx, CallEvent{
				Method:    method,
				Endpoint:  endpoint,
				Attempts:  attempts,
				LatencyMs: time.Since(start).Milliseconds(),
				Success:   true,
			})
			return Result{Body: respBody}
		}
		lastErr = err

		if ctx.Err() != nil || !retryable(err) || attempts == maxAttempts {
			break
		}
		if !sleepCtx(ctx, c.cfg.backoff(attempts)) {
			break
		}
	}

	final := classify(ctx, lastErr)
	c.observer.OnCallComplete(ctx, CallEvent{
		Method:    method,
		Endpoint:  endpoint,
		Attempts:  attempts,
		LatencyMs: time.Since(start).Milliseconds(),
		ErrorCode: errorCode(final),
	})
	return Result{Err: final}
}

// sleepCtx waits for d and reports false if ctx ended first.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func (c *httpClient) doRequest(ctx context.Context, method, endpoint string, body []byte) (json.RawMessage, error) {
	target := strings.TrimRight(c.cfg.BaseURL, "/") + endpoint

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(respBody))}
	}
	return json.RawMessage(respBody), nil
}

// retryable reports whether another attempt may succeed. Client errors (4xx)
// are final.
func retryable(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code >= 500 || se.Code == http.StatusTooManyRequests
	}
	return true
}

func classify(ctx context.Context, err error) error {
	switch {
	case err == nil:
		return nil
	case ctx.Err() != nil || errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	case isConnectionError(err):
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	case errors.Is(err, ErrStatus):
		return err
	default:
		return fmt.Errorf("%w: %v", ErrRetryExhausted, err)
	}
}

func isConnectionError(err error) bool {
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrStatus):
		return "STATUS"
	default:
		return "UNKNOWN"
	}
}
