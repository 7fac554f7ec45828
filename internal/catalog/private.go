package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/agentx-labs/assetctl/internal/asset"
	"golang.org/x/oauth2"
)

// ErrNoToken is returned by a private client configured without a token.
var ErrNoToken = errors.New("no catalog token configured")

// PrivateClient reads the private asset catalog on behalf of a user.
// Requests carry the user's token as a bearer credential.
type PrivateClient struct {
	client
	hasToken bool
}

// NewPrivateClient creates a client for the private catalog rooted at
// baseURL, authenticated with token.
func NewPrivateClient(baseURL, token string, opts ...Option) *PrivateClient {
	c := &PrivateClient{client: newClient(baseURL, opts), hasToken: token != ""}

	base := c.httpClient.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	c.httpClient = &http.Client{
		Timeout: c.httpClient.Timeout,
		Transport: &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
			Base:   base,
		},
	}
	return c
}

// HasToken reports whether the client was given a token.
func (c *PrivateClient) HasToken() bool { return c.hasToken }

// Fetch returns the body of a private asset. A nil body with a nil error
// means the catalog does not know the asset.
func (c *PrivateClient) Fetch(ctx context.Context, h asset.Header) (*asset.Body, error) {
	if !c.hasToken {
		return nil, ErrNoToken
	}
	var body asset.Body
	found, err := c.getJSON(ctx, url.PathEscape(h.ID), &body)
	if err != nil || !found {
		return nil, err
	}
	body.IsPrivate = true
	return &body, nil
}
