package resources

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentx-labs/assetctl/internal/logger"
	"github.com/agentx-labs/assetctl/internal/project"
	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
)

// Fetcher downloads pending resources into a directory.
type Fetcher struct {
	dir        string
	httpClient *http.Client
	log        logrus.FieldLogger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.httpClient = c
	}
}

// WithLogger sets the logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(f *Fetcher) {
		f.log = l
	}
}

// NewFetcher creates a Fetcher storing files under dir.
func NewFetcher(dir string, opts ...Option) *Fetcher {
	f := &Fetcher{
		dir:        dir,
		httpClient: http.DefaultClient,
		log:        logger.Discard(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FetchNewResources downloads every pending resource of p and points it at
// the local copy. A failed download leaves its resource pending and does
// not stop the others; all failures are returned together.
func (f *Fetcher) FetchNewResources(ctx context.Context, p *project.Project) error {
	pending := p.PendingResources()
	if len(pending) == 0 {
		return nil
	}
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return fmt.Errorf("creating resources directory %s: %w", f.dir, err)
	}

	// Collect names first: ResolveResource mutates the slice the pointers
	// refer to.
	type job struct{ name, url string }
	jobs := make([]job, 0, len(pending))
	for _, r := range pending {
		jobs = append(jobs, job{name: r.Name, url: r.File})
	}

	var result *multierror.Error
	for _, j := range jobs {
		local, err := f.download(ctx, j.name, j.url)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("resource %q: %w", j.name, err))
			continue
		}
		if err := p.ResolveResource(j.name, local); err != nil {
			result = multierror.Append(result, err)
			continue
		}
		f.log.WithFields(logrus.Fields{"resource": j.name, "file": local}).Debug("resource fetched")
	}
	return result.ErrorOrNil()
}

func (f *Fetcher) download(ctx context.Context, name, url string) (string, error) {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return "", fmt.Errorf("unsupported resource location %q", url)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("downloading %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download of %s returned status %d", url, resp.StatusCode)
	}

	// Resource names are unique per project, base names are not. Keep the
	// relative path, rooted so it cannot leave dir.
	local := filepath.Join(f.dir, filepath.FromSlash(filepath.Clean("/"+name)))
	if err := os.MkdirAll(filepath.Dir(local), 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", filepath.Dir(local), err)
	}
	out, err := os.Create(local)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", local, err)
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(local)
		return "", fmt.Errorf("writing %s: %w", local, err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", local, err)
	}
	return local, nil
}
