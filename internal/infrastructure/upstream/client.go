// Package upstream implements the gateway client for the external Inventory
// Fraud Detection API. It is the only component in the repository that issues
// HTTP calls to the backend; the session's bearer token is attached centrally
// from the request context, mirroring how every page and action authenticates.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ifds/dashboard/internal/api/metrics"
	"github.com/ifds/dashboard/internal/core/domain"
	"github.com/ifds/dashboard/internal/core/ports"
)

const defaultTimeout = 15 * time.Second

// Client talks to the upstream API. One instance is shared by all handlers.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// New creates a Client for the given base URL. A default timeout is applied
// when none is provided.
func New(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// APIError carries a non-2xx upstream response. Message is the server's
// error payload when one was decodable, empty otherwise.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("upstream: %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("upstream: %d", e.StatusCode)
}

// Is maps 403 responses onto domain.ErrForbidden so callers can distinguish
// access denial from generic failures with errors.Is.
func (e *APIError) Is(target error) bool {
	return target == domain.ErrForbidden && e.StatusCode == http.StatusForbidden
}

// Message extracts a caller-facing message from err: the upstream error
// payload when present, fallback otherwise.
func Message(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// errorEnvelope is the canonical upstream error shape.
type errorEnvelope struct {
	Error string `json:"error"`
}

// do issues one request and returns the raw response body. Every request
// gets the bearer token from ctx when one is present; otherwise it proceeds
// unauthenticated and the upstream decides.
func (c *Client) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token := ports.TokenFromContext(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	group := pathGroup(path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.UpstreamErrorsTotal.WithLabelValues(group, "transport").Inc()
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	metrics.UpstreamRequestDuration.
		WithLabelValues(group, method).
		Observe(time.Since(start).Seconds())

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.UpstreamErrorsTotal.WithLabelValues(group, "read").Inc()
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.UpstreamErrorsTotal.WithLabelValues(group, fmt.Sprintf("%d", resp.StatusCode)).Inc()
		var env errorEnvelope
		_ = json.Unmarshal(data, &env)
		c.log.Warn().
			Str("method", method).
			Str("path", path).
			Int("status", resp.StatusCode).
			Msg("upstream request failed")
		return nil, &APIError{StatusCode: resp.StatusCode, Message: env.Error}
	}

	return data, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	data, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, body, out any) error {
	data, err := c.do(ctx, method, path, body)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// pathGroup reduces a request path to its first segment for metric labels,
// keeping cardinality flat regardless of IDs in the path.
func pathGroup(path string) string {
	trimmed := strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(trimmed, '/'); i > 0 {
		return trimmed[:i]
	}
	if trimmed == "" {
		return "root"
	}
	return trimmed
}
