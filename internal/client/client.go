// Package client is a thin wrapper over the ScoreTalk REST API. It builds
// requests against a configurable base URL, attaches the session's bearer
// token when one is stored, and normalises error responses into *APIError.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/scoretalk/scoretalk-client/internal/core/domain"
	"github.com/scoretalk/scoretalk-client/internal/core/ports"
	"github.com/scoretalk/scoretalk-client/internal/metrics"
)

// DefaultBasePath is used when no base URL is configured. It matches the
// service's versioned API prefix.
const DefaultBasePath = "/api/v1"

// maxErrorBody caps how much of an error response is read for message extraction.
const maxErrorBody = 64 << 10

// Client talks to the ScoreTalk service. Safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     ports.TokenStore
	log        zerolog.Logger
}

var _ ports.AuthAPI = (*Client)(nil)

// New returns a Client rooted at baseURL. An empty baseURL falls back to
// DefaultBasePath. Trailing slashes are trimmed so paths concatenate cleanly.
func New(baseURL string, tokens ports.TokenStore, log zerolog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBasePath
	}
	for len(baseURL) > 1 && baseURL[len(baseURL)-1] == '/' {
		baseURL = baseURL[:len(baseURL)-1]
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
		tokens:     tokens,
		log:        log,
	}
}

// SetHTTPClient swaps the underlying http.Client. Intended for tests and
// callers that need custom transports.
func (c *Client) SetHTTPClient(hc *http.Client) {
	if hc != nil {
		c.httpClient = hc
	}
}

// do issues a single API request. A nil body sends no payload; otherwise body
// is serialised as JSON. When auth is set, the stored token (if any) is
// attached as a bearer credential — a missing token proceeds unauthenticated.
// Non-2xx responses become *APIError; 204 yields no decode. When out is
// non-nil the response body is decoded into it.
func (c *Client) do(ctx context.Context, method, path string, body any, auth bool, out any) error {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("client: encode request: %w", err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return fmt.Errorf("client: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.prepare(ctx, req, auth)

	return c.send(req, out)
}

// prepare sets the headers common to every request.
func (c *Client) prepare(ctx context.Context, req *http.Request, auth bool) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	if !auth {
		return
	}
	token, err := c.tokens.Load(ctx)
	if err != nil {
		c.log.Warn().Err(err).Msg("token store read failed, proceeding unauthenticated")
		return
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// send executes the prepared request and handles the shared response path.
func (c *Client) send(req *http.Request, out any) error {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.RequestDuration.WithLabelValues(req.Method).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.RequestsTotal.WithLabelValues(req.Method, "error").Inc()
		return fmt.Errorf("client: %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()
	metrics.RequestsTotal.WithLabelValues(req.Method, strconv.Itoa(resp.StatusCode)).Inc()

	c.log.Debug().
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Msg("api request")

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return newAPIError(resp)
	}
	if resp.StatusCode == http.StatusNoContent || out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("client: decode response: %w", err)
	}
	return nil
}

// pagePath appends page/per_page query parameters to path. Zero values are
// omitted; the service applies its own defaults.
func pagePath(path string, p domain.PageParams) string {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(p.PerPage))
	}
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}
