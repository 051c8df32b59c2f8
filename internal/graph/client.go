// Package graph provides a Microsoft Graph REST client shared by the
// Teams action managers.
package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ekipalen/microsoft-teams-actions/internal/config"
	"golang.org/x/oauth2"
)

const defaultTimeout = 30 * time.Second

// maxBodyBytes caps how much of a Graph response body is read into memory.
const maxBodyBytes = 4 << 20

// HTTPClient is a concrete implementation of the Client interface that sends
// Graph REST requests using the standard library net/http package.
type HTTPClient struct {
	httpClient *http.Client
	baseURL    string
	tokens     oauth2.TokenSource
	limiter    *RateLimiter
}

// Compile-time interface check.
var _ Client = (*HTTPClient)(nil)

// NewHTTPClient constructs an HTTPClient from the provided GraphConfig and
// token source. It returns an error if cfg.BaseURL is empty or src is nil.
// When cfg.Timeout is zero or negative, a default timeout of 30 seconds is
// used. A zero RequestsPerSecond disables client-side throttling.
func NewHTTPClient(cfg config.GraphConfig, src oauth2.TokenSource) (*HTTPClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("graph: base URL is required")
	}
	if src == nil {
		return nil, fmt.Errorf("graph: token source is required")
	}

	timeout := time.Duration(cfg.Timeout) * time.Second
	if cfg.Timeout <= 0 {
		timeout = defaultTimeout
	}

	var limiter *RateLimiter
	if cfg.RateLimit.RequestsPerSecond > 0 {
		limiter = NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	return &HTTPClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    normalizeURL(cfg.BaseURL),
		tokens:     src,
		limiter:    limiter,
	}, nil
}

// normalizeURL trims any trailing slash from rawURL and appends /v1.0 if the
// path does not already name an API version.
func normalizeURL(rawURL string) string {
	u := strings.TrimRight(rawURL, "/")
	if !strings.HasSuffix(u, "/v1.0") && !strings.HasSuffix(u, "/beta") {
		u += "/v1.0"
	}
	return u
}

// buildHeaders returns the header set every Graph request carries.
func buildHeaders(accessToken string) http.Header {
	h := make(http.Header)
	h.Set("Authorization", "Bearer "+accessToken)
	h.Set("Content-Type", "application/json")
	h.Set("Accept", "application/json")
	return h
}

// Get issues a GET request against the given Graph path and returns the
// status code and raw body. Query strings embedded in path must already be
// percent-encoded.
func (c *HTTPClient) Get(ctx context.Context, path string) (*Response, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

// Post marshals body as JSON and issues a POST request against the given
// Graph path. A nil body sends an empty payload.
func (c *HTTPClient) Post(ctx context.Context, path string, body any) (*Response, error) {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("graph: marshal request: %w", err)
		}
		payload = bytes.NewReader(data)
	}
	return c.do(ctx, http.MethodPost, path, payload)
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body io.Reader) (*Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("graph: rate limiter: %w", err)
		}
	}

	tok, err := c.tokens.Token()
	if err != nil {
		return nil, fmt.Errorf("graph: fetch token: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("graph: create request: %w", err)
	}
	req.Header = buildHeaders(tok.AccessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("graph: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("graph: read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests && c.limiter != nil {
		c.limiter.RecordRetryAfter(parseRetryAfter(resp.Header.Get("Retry-After")))
	}

	return &Response{StatusCode: resp.StatusCode, Body: data}, nil
}

// parseRetryAfter interprets a Retry-After header value as a second count.
// Non-numeric values (including the HTTP-date form) yield zero, which lets
// the limiter apply its default backoff.
func parseRetryAfter(v string) int {
	secs, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || secs < 0 {
		return 0
	}
	return secs
}
