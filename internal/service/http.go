package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zjrosen/relens/internal/log"
	"github.com/zjrosen/relens/internal/tracing"
)

const (
	// RunPath is the endpoint path relative to the base URL.
	RunPath = "/api/run"

	// RequestIDHeader carries the per-request id.
	RequestIDHeader = "X-Request-Id"

	DefaultBaseURL = "http://127.0.0.1:5000"
	DefaultTimeout = 10 * time.Second

	// maxBodyBytes caps how much of a response is read.
	maxBodyBytes = 8 << 20
)

// HTTPOptions configures HTTPClient.
type HTTPOptions struct {
	BaseURL string
	Timeout time.Duration
	// Do overrides the transport, mainly for tests.
	Do func(*http.Request) (*http.Response, error)
}

// HTTPClient posts snapshots to {base}/api/run.
type HTTPClient struct {
	url string
	do  func(*http.Request) (*http.Response, error)
}

// NewHTTPClient validates the base URL and builds a client.
func NewHTTPClient(opts HTTPOptions) (*HTTPClient, error) {
	base := opts.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parse service url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("service url must be http or https, got %q", base)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("service url has no host: %q", base)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	do := opts.Do
	if do == nil {
		do = (&http.Client{Timeout: timeout}).Do
	}

	return &HTTPClient{
		url: strings.TrimRight(base, "/") + RunPath,
		do:  do,
	}, nil
}

// URL returns the full endpoint URL.
func (c *HTTPClient) URL() string {
	return c.url
}

// Run implements Client.
// The body is decoded whatever the status code, since the service reports
// translation errors as JSON with an error field.
func (c *HTTPClient) Run(ctx context.Context, s Snapshot) Result {
	body, err := json.Marshal(s)
	if err != nil {
		return NetworkError(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return NetworkError(err)
	}
	requestID := tracing.RequestIDFromContext(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)

	start := time.Now()
	resp, err := c.do(req)
	if err != nil {
		log.Warn(log.CatClient, "request failed", "request_id", requestID, "error", err)
		if errors.Is(err, context.Canceled) {
			return NetworkErrorf("request cancelled")
		}
		return NetworkError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return NetworkError(fmt.Errorf("read response: %w", err))
	}

	var res Result
	if err := json.Unmarshal(raw, &res); err != nil {
		log.Warn(log.CatClient, "response is not JSON", "request_id", requestID, "status", resp.StatusCode)
		return NetworkErrorf("invalid response (HTTP %d): %v", resp.StatusCode, err)
	}
	if resp.StatusCode >= 400 && res.Error == "" {
		res.Error = fmt.Sprintf("%sHTTP %d", NetworkErrorPrefix, resp.StatusCode)
	}

	log.Debug(log.CatClient, "run complete",
		"request_id", requestID,
		"status", resp.StatusCode,
		"elapsed", time.Since(start).Round(time.Millisecond),
		"failed", res.Failed())
	return res
}
