package registry

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/agentx-labs/assetctl/internal/asset"
)

// ErrUnknownExtensions is returned when a required extension is not
// published in the registry.
var ErrUnknownExtensions = errors.New("required extensions are missing from the registry")

// Lister provides the registry snapshot.
type Lister interface {
	ListExtensions(ctx context.Context) ([]Entry, error)
}

// InstalledVersions reports the version of an extension installed in a
// project. *project.Project satisfies it.
type InstalledVersions interface {
	InstalledExtensionVersion(name string) (string, bool)
}

// Resolver computes dependency reports.
type Resolver struct {
	registry Lister
}

// NewResolver creates a Resolver over a registry snapshot provider.
func NewResolver(registry Lister) *Resolver {
	return &Resolver{registry: registry}
}

// ForAssets resolves the extensions required by every object asset of
// bodies.
func (r *Resolver) ForAssets(ctx context.Context, bodies []*asset.Body, installed InstalledVersions) (*Report, error) {
	return r.ForExtensions(ctx, asset.RequiredExtensionNames(bodies), installed)
}

// ForExtensions resolves the named extensions against the registry and the
// installed versions.
func (r *Resolver) ForExtensions(ctx context.Context, names []string, installed InstalledVersions) (*Report, error) {
	report := &Report{}
	if len(names) == 0 {
		return report, nil
	}

	entries, err := r.registry.ListExtensions(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading extension registry: %w", err)
	}

	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}

	for _, e := range entries {
		if !wanted[e.Name] {
			continue
		}
		delete(wanted, e.Name)

		h := ExtensionHeader{
			Identifier:       e.Name,
			FullName:         e.FullName,
			AvailableVersion: e.Version,
			URL:              e.URL,
		}
		if v, ok := installed.InstalledExtensionVersion(e.Name); ok {
			h.Installed = true
			h.InstalledVersion = v
		}
		report.Required = append(report.Required, h)

		if !h.Installed {
			continue
		}
		outOfDate, err := IsOutOfDate(h.InstalledVersion, h.AvailableVersion)
		if err != nil {
			return nil, fmt.Errorf("extension %s: %w", e.Name, err)
		}
		if outOfDate {
			report.OutOfDate = append(report.OutOfDate, h)
		}
	}

	if len(wanted) > 0 {
		var unknown []string
		for _, n := range names {
			if wanted[n] {
				unknown = append(unknown, n)
			}
		}
		return nil, fmt.Errorf("%w: %s", ErrUnknownExtensions, strings.Join(unknown, ", "))
	}
	return report, nil
}
