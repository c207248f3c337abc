package resource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrTransport marks a resource call that never produced an HTTP response
var ErrTransport = errors.New("resource transport failure")

// Getter calls a protected resource
type Getter interface {
	Get(ctx context.Context, URL string, accessToken string) (*Result, error)
}

// Result represents a completed resource round trip
type Result struct {
	IsSuccess  bool
	StatusCode int
	Body       string
}

// Client calls protected resources over a dedicated api http client
type Client struct {
	httpClient *http.Client
}

// Get performs an authenticated GET; any HTTP response, including 401, is a result.
// A transport failure is returned as an error wrapping ErrTransport.
func (c *Client) Get(ctx context.Context, URL string, accessToken string) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, URL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request %v: %w", ErrTransport, URL, err)
	}
	req.Header.Set("Accept", "application/json")
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %v response: %w", ErrTransport, URL, err)
	}
	return &Result{
		IsSuccess:  resp.StatusCode >= 200 && resp.StatusCode < 300,
		StatusCode: resp.StatusCode,
		Body:       string(data),
	}, nil
}

// New creates a resource client, a nil httpClient uses http.DefaultClient
func New(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{httpClient: httpClient}
}
