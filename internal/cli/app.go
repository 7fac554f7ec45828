package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentx-labs/assetctl/internal/catalog"
	"github.com/agentx-labs/assetctl/internal/config"
	"github.com/agentx-labs/assetctl/internal/extension"
	"github.com/agentx-labs/assetctl/internal/fetch"
	"github.com/agentx-labs/assetctl/internal/install"
	"github.com/agentx-labs/assetctl/internal/installer"
	"github.com/agentx-labs/assetctl/internal/logger"
	"github.com/agentx-labs/assetctl/internal/project"
	"github.com/agentx-labs/assetctl/internal/registry"
	"github.com/agentx-labs/assetctl/internal/resources"
	"github.com/agentx-labs/assetctl/internal/telemetry"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// app wires the pipeline from the loaded configuration.
type app struct {
	settings    config.Settings
	log         *logrus.Logger
	projectPath string
	telemetry   *telemetry.Recorder
	registry    *registry.Client
}

func newApp(cmd *cobra.Command) (*app, error) {
	settings := config.Current()

	level := settings.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	log, err := logger.New(level, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}

	path := settings.ProjectFile
	if projectFile != "" {
		path = projectFile
	}
	if path == "" {
		path = project.DefaultFile
	}

	return &app{
		settings:    settings,
		log:         log,
		projectPath: path,
		telemetry:   telemetry.NewRecorder(log),
		registry:    registry.NewClient(settings.RegistryURL, registry.WithCacheTTL(settings.RegistryCacheTTL)),
	}, nil
}

// loadProject reads the project file, or starts an empty project named
// after its directory when the file does not exist yet.
func (a *app) loadProject() (*project.Project, error) {
	p, err := project.Load(a.projectPath)
	if errors.Is(err, os.ErrNotExist) {
		abs, err := filepath.Abs(a.projectPath)
		if err != nil {
			return nil, fmt.Errorf("resolving project path %s: %w", a.projectPath, err)
		}
		return project.New(filepath.Base(filepath.Dir(abs))), nil
	}
	return p, err
}

// saveProject writes the project back if an installation changed it.
func (a *app) saveProject(p *project.Project) error {
	if !p.Dirty() {
		return nil
	}
	return project.Save(a.projectPath, p)
}

// resourcesDir is relative to the project file.
func (a *app) resourcesDir() string {
	if filepath.IsAbs(a.settings.ResourcesDir) {
		return a.settings.ResourcesDir
	}
	return filepath.Join(filepath.Dir(a.projectPath), a.settings.ResourcesDir)
}

func (a *app) publicCatalog() *catalog.PublicClient {
	return catalog.NewPublicClient(a.settings.CatalogPublicURL, catalog.WithRateLimit(a.settings.CatalogRateLimit))
}

func (a *app) sources() catalog.Sources {
	return catalog.Sources{
		Public: a.publicCatalog(),
		Private: catalog.NewPrivateClient(a.settings.CatalogPrivateURL, a.settings.CatalogToken,
			catalog.WithRateLimit(a.settings.CatalogRateLimit)),
	}
}

func (a *app) fetchPool() *fetch.Pool {
	return fetch.New(a.sources(),
		fetch.WithConcurrency(a.settings.FetchConcurrency),
		fetch.WithLogger(a.log))
}

// authorize allows private assets for cloud projects when a catalog token
// is configured.
func (a *app) authorize(_ context.Context, p *project.Project) (bool, error) {
	return p.IsCloudProject() && a.settings.CatalogToken != "", nil
}

func (a *app) orchestrator(confirm install.ConfirmFunc) (*install.Orchestrator, error) {
	fetcher := resources.NewFetcher(a.resourcesDir(), resources.WithLogger(a.log))
	return install.New(install.Config{
		Fetcher:        a.fetchPool(),
		Resolver:       registry.NewResolver(a.registry),
		Extensions:     extension.NewInstaller(a.registry, a.log),
		Assets:         installer.New(a.log),
		Confirm:        confirm,
		Authorize:      a.authorize,
		FetchResources: fetcher.FetchNewResources,
		Reporter:       a.telemetry,
		Logger:         a.log,
		OnStateChange: func(s install.State) {
			a.log.WithField("state", s.String()).Debug("installation state changed")
		},
	})
}

// finish saves the project and exports metrics, whatever the outcome of
// the installation.
func (a *app) finish(p *project.Project, installErr error) error {
	if err := a.saveProject(p); err != nil {
		return errors.Join(installErr, err)
	}
	if a.settings.TelemetryTextfile != "" {
		if err := a.telemetry.WriteTextfile(a.settings.TelemetryTextfile); err != nil {
			a.log.Warnf("could not export metrics: %v", err)
		}
	}
	return installErr
}

// printResult summarises an installation.
func printResult(w io.Writer, result *install.Result) {
	if result == nil {
		return
	}
	for _, name := range result.InstalledExtensions {
		fmt.Fprintf(w, "  ✓ extension: %s\n", name)
	}
	for _, name := range result.UpdatedExtensions {
		fmt.Fprintf(w, "  ✓ extension updated: %s\n", name)
	}
	if result.UpdateDeclined {
		fmt.Fprintln(w, "  ⚠️  out-of-date extensions were kept; some objects may not work as expected")
	}
	for _, obj := range result.CreatedObjects {
		fmt.Fprintf(w, "  ✓ object: %s (%s)\n", obj.Name, obj.Type)
	}
	fmt.Fprintf(w, "\n✓ Installed %d asset(s), created %d object(s).\n", len(result.InstalledAssets), len(result.CreatedObjects))
}

// printError shows the user-facing message of installation failures.
func printError(w io.Writer, err error) {
	var installErr *install.Error
	if errors.As(err, &installErr) {
		fmt.Fprintf(w, "Error: %s\n", strings.TrimSpace(installErr.UserMessage()))
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}
