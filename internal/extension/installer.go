package extension

import (
	"context"
	"fmt"

	"github.com/agentx-labs/assetctl/internal/logger"
	"github.com/agentx-labs/assetctl/internal/project"
	"github.com/agentx-labs/assetctl/internal/registry"
	"github.com/sirupsen/logrus"
)

// Fetcher retrieves installable extension descriptions.
// *registry.Client satisfies it.
type Fetcher interface {
	FetchExtension(ctx context.Context, name string) (*registry.Extension, error)
}

// Store is the project side of an installation. *project.Project
// satisfies it.
type Store interface {
	HasExtension(name string) bool
	SetExtension(ext project.Extension) error
}

// Result lists what an installation changed.
type Result struct {
	Installed []string
	Updated   []string
}

// Installer brings a project's extensions in line with a dependency report.
type Installer struct {
	registry Fetcher
	log      logrus.FieldLogger
}

// NewInstaller creates an Installer. A nil logger discards output.
func NewInstaller(registry Fetcher, log logrus.FieldLogger) *Installer {
	if log == nil {
		log = logger.Discard()
	}
	return &Installer{registry: registry, log: log}
}

// Install installs every required extension missing from store, then, when
// shouldUpdate is set, reinstalls every out-of-date extension at its
// published version. The first failure stops the call; extensions already
// installed stay installed, so running it again is safe.
func (i *Installer) Install(ctx context.Context, report *registry.Report, shouldUpdate bool, store Store) (*Result, error) {
	result := &Result{}

	for _, h := range report.Required {
		if store.HasExtension(h.Identifier) {
			continue
		}
		if err := i.installOne(ctx, h, store); err != nil {
			return result, err
		}
		result.Installed = append(result.Installed, h.Identifier)
		i.log.WithFields(logrus.Fields{"extension": h.Identifier}).Info("extension installed")
	}

	if !shouldUpdate {
		return result, nil
	}

	for _, h := range report.OutOfDate {
		if err := i.installOne(ctx, h, store); err != nil {
			return result, err
		}
		result.Updated = append(result.Updated, h.Identifier)
		i.log.WithFields(logrus.Fields{
			"extension": h.Identifier,
			"from":      h.InstalledVersion,
			"to":        h.AvailableVersion,
		}).Info("extension updated")
	}

	return result, nil
}

func (i *Installer) installOne(ctx context.Context, h registry.ExtensionHeader, store Store) error {
	ext, err := i.registry.FetchExtension(ctx, h.Identifier)
	if err != nil {
		return fmt.Errorf("fetching extension %s: %w", h.Identifier, err)
	}

	fullName := ext.FullName
	if fullName == "" {
		fullName = h.FullName
	}
	version := ext.Version
	if version == "" {
		version = h.AvailableVersion
	}

	if err := store.SetExtension(project.Extension{
		Name:        h.Identifier,
		FullName:    fullName,
		Version:     version,
		ObjectTypes: ext.ObjectTypes,
	}); err != nil {
		return fmt.Errorf("recording extension %s: %w", h.Identifier, err)
	}
	return nil
}
