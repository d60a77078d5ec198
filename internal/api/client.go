package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/duskfall/mstro/internal/notify"
	"github.com/duskfall/mstro/internal/shared"
)

const defaultBaseURL = "http://localhost:8000"

// Client issues JSON requests to the studio backend through the transport chain.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client

	mu        sync.RWMutex
	authority Authority
}

// NewClient creates a Client for the given base URL.
//
// A zero timeout disables the client-side deadline; base defaults to the
// local development backend. The notifier may be nil (failures are then only
// returned, not surfaced).
func NewClient(baseURL string, timeout time.Duration, notifier notify.Notifier) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	c := &Client{baseURL: baseURL, timeout: timeout}

	chain := http.RoundTripper(http.DefaultTransport)
	chain = &authTransport{next: chain, authority: c.currentAuthority}
	chain = &notifyTransport{next: chain, notifier: notifier}

	c.httpClient = &http.Client{Transport: chain}
	return c
}

// requestContext applies the client-wide timeout as a context deadline.
//
// A caller that already carries a deadline keeps it; long operations such as
// stem extraction set their own window and must not be cut short by the
// default request timeout.
func (c *Client) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return ctx, func() {}
	}
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.timeout)
}

// SetAuthority late-binds the session authority.
//
// The client and session manager depend on each other at runtime; the client
// is constructed first and works unauthenticated until this is called.
func (c *Client) SetAuthority(a Authority) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.authority = a
}

func (c *Client) currentAuthority() Authority {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.authority
}

// BaseURL returns the configured backend address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetJSON issues a GET request and decodes the JSON response into out.
func (c *Client) GetJSON(ctx context.Context, path string, out any) error {
	return c.doJSON(ctx, http.MethodGet, path, nil, out)
}

// PostJSON issues a POST request with a JSON body and decodes the response into out.
func (c *Client) PostJSON(ctx context.Context, path string, in, out any) error {
	return c.doJSON(ctx, http.MethodPost, path, in, out)
}

// PutJSON issues a PUT request with a JSON body and decodes the response into out.
func (c *Client) PutJSON(ctx context.Context, path string, in, out any) error {
	return c.doJSON(ctx, http.MethodPut, path, in, out)
}

// DeleteJSON issues a DELETE request, optionally with a JSON body.
func (c *Client) DeleteJSON(ctx context.Context, path string, in, out any) error {
	return c.doJSON(ctx, http.MethodDelete, path, in, out)
}

// doJSON performs one JSON round trip. Responses >=400 become an *[Error]
// carrying the extracted user-facing message.
func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	ctx, cancel := c.requestContext(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	// Correlates client requests with backend task logs.
	req.Header.Set("X-Request-ID", shared.GenerateID())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return &Error{Status: resp.StatusCode, Message: Extract(resp.StatusCode, respBody)}
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// RawResponse represents a raw API response with status and body.
type RawResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	IsJSON     bool
	JSONData   any
}

// Raw performs a request to the specified path and returns the raw response.
//
// Used by the diagnostic `api` commands; no error is returned for non-2xx
// statuses so callers can inspect the body.
func (c *Client) Raw(ctx context.Context, method, path string, data []byte) (*RawResponse, error) {
	var body io.Reader
	if data != nil {
		body = bytes.NewReader(data)
	}

	ctx, cancel := c.requestContext(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	raw := &RawResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       respBody,
	}

	var jsonData any
	if err := json.Unmarshal(respBody, &jsonData); err == nil {
		raw.IsJSON = true
		raw.JSONData = jsonData
	}

	return raw, nil
}
