package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/agentx-labs/assetctl/internal/branding"
	"golang.org/x/time/rate"
)

var (
	// ErrUnauthorized is returned when a catalog rejects the credentials.
	ErrUnauthorized = errors.New("catalog rejected the request credentials")

	// ErrPackNotFound is returned when a pack id is unknown to the catalog.
	ErrPackNotFound = errors.New("pack not found")
)

// client holds what the public and private clients share.
type client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// Option configures a catalog client.
type Option func(*client)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(cl *client) {
		cl.httpClient = c
	}
}

// WithRateLimit caps outgoing requests to rps per second. Zero or a
// negative value means unlimited.
func WithRateLimit(rps float64) Option {
	return func(cl *client) {
		if rps <= 0 {
			cl.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		burst := int(rps)
		if burst < 1 {
			burst = 1
		}
		cl.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

func newClient(baseURL string, opts []Option) client {
	cl := client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
		limiter:    rate.NewLimiter(rate.Inf, 0),
	}
	for _, opt := range opts {
		opt(&cl)
	}
	return cl
}

// getJSON decodes the JSON document at path into v. It returns false
// without error when the catalog answers 404.
func (c *client) getJSON(ctx context.Context, path string, v any) (bool, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return false, fmt.Errorf("waiting for catalog rate limiter: %w", err)
	}

	url := c.baseURL
	if path != "" {
		url += "/" + strings.TrimLeft(path, "/")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", branding.CLIName())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return false, nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return false, fmt.Errorf("fetching %s: %w", url, ErrUnauthorized)
	case resp.StatusCode != http.StatusOK:
		return false, fmt.Errorf("catalog returned status %d for %s", resp.StatusCode, url)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, fmt.Errorf("reading response body: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("parsing %s: %w", url, err)
	}
	return true, nil
}
