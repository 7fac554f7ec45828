package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/agentx-labs/assetctl/internal/branding"
	"github.com/patrickmn/go-cache"
)

const (
	// DefaultCacheTTL is how long a registry listing is reused.
	DefaultCacheTTL = 10 * time.Minute

	listingKey = "extensions"
)

// ErrExtensionNotFound is returned when the registry has no such extension.
var ErrExtensionNotFound = errors.New("extension not found in registry")

// Client reads the extension registry over HTTP. Listings are kept in an
// in-memory cache for the configured TTL.
type Client struct {
	baseURL    string
	httpClient *http.Client
	ttl        time.Duration
	cache      *cache.Cache
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithCacheTTL sets how long a listing is reused. Zero disables caching.
func WithCacheTTL(ttl time.Duration) Option {
	return func(cl *Client) {
		cl.ttl = ttl
	}
}

// NewClient creates a registry client for baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
		ttl:        DefaultCacheTTL,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.cache = cache.New(c.ttl, 2*c.ttl)
	return c
}

// ListExtensions returns every extension published in the registry.
func (c *Client) ListExtensions(ctx context.Context) ([]Entry, error) {
	if c.ttl > 0 {
		if cached, ok := c.cache.Get(listingKey); ok {
			return cached.([]Entry), nil
		}
	}

	var listing struct {
		Extensions []Entry `json:"extensions"`
	}
	found, err := c.getJSON(ctx, c.baseURL, &listing)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("registry %s has no extension listing", c.baseURL)
	}

	if c.ttl > 0 {
		c.cache.Set(listingKey, listing.Extensions, cache.DefaultExpiration)
	}
	return listing.Extensions, nil
}

// FetchExtension returns the installable description of an extension.
func (c *Client) FetchExtension(ctx context.Context, name string) (*Extension, error) {
	var ext Extension
	found, err := c.getJSON(ctx, c.baseURL+"/"+url.PathEscape(name), &ext)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrExtensionNotFound, name)
	}
	if ext.Name == "" {
		ext.Name = name
	}
	return &ext, nil
}

// Invalidate drops the cached listing.
func (c *Client) Invalidate() {
	c.cache.Delete(listingKey)
}

func (c *Client) getJSON(ctx context.Context, url string, v any) (bool, error) {
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

	if resp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("registry returned status %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, fmt.Errorf("reading response body: %w", err)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return false, fmt.Errorf("parsing registry JSON: %w", err)
	}
	return true, nil
}
