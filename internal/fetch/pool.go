package fetch

import (
	"context"
	"errors"
	"fmt"

	"github.com/agentx-labs/assetctl/internal/asset"
	"github.com/agentx-labs/assetctl/internal/catalog"
	"github.com/agentx-labs/assetctl/internal/logger"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// MaxConcurrency is the maximum number of retrievals in flight.
const MaxConcurrency = 6

// ErrAssetNotFetched is reported when a source answers without a body.
var ErrAssetNotFetched = errors.New("Unable to install the asset because it could not be fetched.")

// Pool fetches asset bodies from the public and private catalogs.
type Pool struct {
	sources     catalog.Sources
	concurrency int
	log         logrus.FieldLogger
}

// Option configures a Pool.
type Option func(*Pool)

// WithConcurrency sets the number of workers. Values above MaxConcurrency
// are clamped; values below 1 fall back to MaxConcurrency.
func WithConcurrency(n int) Option {
	return func(p *Pool) {
		p.concurrency = clamp(n)
	}
}

// WithLogger sets the logger used for per-asset debug output.
func WithLogger(l logrus.FieldLogger) Option {
	return func(p *Pool) {
		p.log = l
	}
}

// New creates a Pool over sources.
func New(sources catalog.Sources, opts ...Option) *Pool {
	p := &Pool{
		sources:     sources,
		concurrency: MaxConcurrency,
		log:         logger.Discard(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Concurrency returns the effective worker count.
func (p *Pool) Concurrency() int { return p.concurrency }

func clamp(n int) int {
	if n < 1 || n > MaxConcurrency {
		return MaxConcurrency
	}
	return n
}

// outcome is the tagged result of one retrieval.
type outcome struct {
	body *asset.Body
	err  error
}

// Fetch retrieves the body of every header. On success the bodies are in
// the same order as headers. On failure no bodies are returned and the
// error wraps the first failure in input order.
func (p *Pool) Fetch(ctx context.Context, headers []asset.Header) ([]*asset.Body, error) {
	outcomes := make([]outcome, len(headers))

	var g errgroup.Group
	g.SetLimit(p.concurrency)
	for i, h := range headers {
		i, h := i, h
		g.Go(func() error {
			outcomes[i] = p.fetchOne(ctx, h)
			// Failures are carried in the outcome so that every retrieval
			// runs to completion.
			return nil
		})
	}
	_ = g.Wait()

	return fold(outcomes)
}

func (p *Pool) fetchOne(ctx context.Context, h asset.Header) outcome {
	src, err := p.sources.For(h)
	if err != nil {
		return outcome{err: err}
	}

	body, err := src.Fetch(ctx, h)
	if err != nil {
		p.log.WithFields(logrus.Fields{"asset": h.ID, "kind": h.Kind()}).Debugf("fetch failed: %v", err)
		return outcome{err: fmt.Errorf("fetching asset %q: %w", h.ID, err)}
	}
	if body == nil {
		return outcome{err: ErrAssetNotFetched}
	}

	p.log.WithFields(logrus.Fields{"asset": h.ID, "kind": h.Kind()}).Debug("asset fetched")
	return outcome{body: body}
}

func fold(outcomes []outcome) ([]*asset.Body, error) {
	bodies := make([]*asset.Body, 0, len(outcomes))
	for _, o := range outcomes {
		if o.err != nil {
			return nil, &Error{First: o.err}
		}
		bodies = append(bodies, o.body)
	}
	return bodies, nil
}

// Error aggregates the failures of a fetch batch. Only the first failure in
// input order is kept.
type Error struct {
	First error
}

func (e *Error) Error() string {
	return "error(s) while installing assets. The first error is: " + e.First.Error()
}

func (e *Error) Unwrap() error { return e.First }
