package backend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/layer-3/tokenasset/core"
	"github.com/layer-3/tokenasset/ports"
)

const (
	DefaultTimeout = 30 * time.Second

	// DefaultMaxBodySize caps how much of a backend reply is buffered
	DefaultMaxBodySize = 8 << 20
)

// HTTPClient implements the Backend interface over HTTP
type HTTPClient struct {
	baseURL     string
	client      *http.Client
	maxBodySize int64
}

// ClientOption configures HTTPClient
type ClientOption func(*HTTPClient)

// WithTimeout sets the HTTP client timeout
func WithTimeout(d time.Duration) ClientOption {
	return func(c *HTTPClient) {
		c.client.Timeout = d
	}
}

// WithHTTPClient sets a custom http.Client
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *HTTPClient) {
		c.client = client
	}
}

// WithMaxBodySize overrides DefaultMaxBodySize
func WithMaxBodySize(n int64) ClientOption {
	return func(c *HTTPClient) {
		if n > 0 {
			c.maxBodySize = n
		}
	}
}

// NewHTTPClient creates a client for the backend rooted at baseURL
func NewHTTPClient(baseURL string, opts ...ClientOption) ports.Backend {
	c := &HTTPClient{
		baseURL:     strings.TrimRight(baseURL, "/"),
		client:      &http.Client{Timeout: DefaultTimeout},
		maxBodySize: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do sends one request. The bearer token is attached when non-empty.
func (c *HTTPClient) Do(ctx context.Context, method, path, bearer string, body []byte) (*ports.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request %s %s: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("read %s %s response: %w", method, path, err)
	}
	if int64(len(data)) > c.maxBodySize {
		return nil, fmt.Errorf("%s %s: %w (over %d bytes)", method, path, core.ErrResponseTooLarge, c.maxBodySize)
	}

	return &ports.Response{Status: resp.StatusCode, Body: data}, nil
}
