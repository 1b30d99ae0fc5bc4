package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// Client is the HTTP wrapper over the SwiftRide REST backend. It owns the
// base URL, the error taxonomy, and idempotency keys for mutating calls;
// everything above it works with domain values only.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithNewRelic instruments outbound calls as external segments.
func WithNewRelic(app *newrelic.Application) Option {
	return func(c *Client) {
		if app == nil {
			return
		}
		transport := c.httpClient.Transport
		if transport == nil {
			transport = http.DefaultTransport
		}
		c.httpClient.Transport = newrelic.NewRoundTripper(transport)
	}
}

// New creates a Client for the given base URL, e.g. "http://localhost:8081/api".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do issues one request and decodes the response into out (when non-nil).
// Transport failures become *RequestError, non-2xx statuses *ResponseError.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if method != http.MethodGet && method != http.MethodDelete {
		req.Header.Set("Idempotency-Key", uuid.New().String())
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &RequestError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &RequestError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &ResponseError{
			StatusCode: resp.StatusCode,
			Message:    extractServerMessage(data),
		}
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, out)
}

// extractServerMessage pulls the human-readable message from an error body.
// The backend responds with {"error": ...} or {"message": ...}; some legacy
// endpoints return a bare string.
func extractServerMessage(data []byte) string {
	if len(data) == 0 {
		return ""
	}

	var envelope struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil {
		if envelope.Message != "" {
			return envelope.Message
		}
		if envelope.Error != "" {
			return envelope.Error
		}
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err == nil {
		return raw
	}
	return ""
}
