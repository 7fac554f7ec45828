package catalog

import (
	"context"
	"fmt"
	"net/url"

	"github.com/agentx-labs/assetctl/internal/asset"
)

// PublicClient reads the public asset catalog.
type PublicClient struct {
	client
}

// NewPublicClient creates a client for the catalog rooted at baseURL.
func NewPublicClient(baseURL string, opts ...Option) *PublicClient {
	return &PublicClient{client: newClient(baseURL, opts)}
}

// Fetch returns the body of a public asset. A nil body with a nil error
// means the catalog does not know the asset.
func (c *PublicClient) Fetch(ctx context.Context, h asset.Header) (*asset.Body, error) {
	var body asset.Body
	found, err := c.getJSON(ctx, url.PathEscape(h.ID), &body)
	if err != nil || !found {
		return nil, err
	}
	return &body, nil
}

// ListHeaders returns every asset header listed by the catalog.
func (c *PublicClient) ListHeaders(ctx context.Context) ([]asset.Header, error) {
	var headers []asset.Header
	found, err := c.getJSON(ctx, "", &headers)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("catalog %s has no asset listing", c.baseURL)
	}
	return headers, nil
}

// ListPacks returns every pack listed by the catalog.
func (c *PublicClient) ListPacks(ctx context.Context) ([]asset.Pack, error) {
	var packs []asset.Pack
	if _, err := c.getJSON(ctx, "packs", &packs); err != nil {
		return nil, err
	}
	return packs, nil
}

// Pack returns a single pack by id.
func (c *PublicClient) Pack(ctx context.Context, id string) (*asset.Pack, error) {
	var pack asset.Pack
	found, err := c.getJSON(ctx, "packs/"+url.PathEscape(id), &pack)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrPackNotFound, id)
	}
	return &pack, nil
}

// Headers resolves asset ids to headers using the catalog listing. Ids
// unknown to the listing are returned in missing.
func (c *PublicClient) Headers(ctx context.Context, ids []string) (headers []asset.Header, missing []string, err error) {
	all, err := c.ListHeaders(ctx)
	if err != nil {
		return nil, nil, err
	}
	byID := make(map[string]asset.Header, len(all))
	for _, h := range all {
		byID[h.ID] = h
	}
	for _, id := range ids {
		h, ok := byID[id]
		if !ok {
			missing = append(missing, id)
			continue
		}
		headers = append(headers, h)
	}
	return headers, missing, nil
}
