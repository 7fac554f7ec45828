package catalog

import (
	"context"
	"fmt"

	"github.com/agentx-labs/assetctl/internal/asset"
)

// Source retrieves full asset bodies. A nil body with a nil error means the
// asset is absent from the source.
type Source interface {
	Fetch(ctx context.Context, h asset.Header) (*asset.Body, error)
}

// Sources pairs the public and private channels.
type Sources struct {
	Public  Source
	Private Source
}

// For returns the source serving h.
func (s Sources) For(h asset.Header) (Source, error) {
	src := s.Public
	if h.IsPrivate {
		src = s.Private
	}
	if src == nil {
		return nil, fmt.Errorf("no %s catalog configured for asset %q", h.Kind(), h.ID)
	}
	return src, nil
}
