package install

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/agentx-labs/assetctl/internal/asset"
	"github.com/agentx-labs/assetctl/internal/extension"
	"github.com/agentx-labs/assetctl/internal/installer"
	"github.com/agentx-labs/assetctl/internal/logger"
	"github.com/agentx-labs/assetctl/internal/project"
	"github.com/agentx-labs/assetctl/internal/registry"
	"github.com/agentx-labs/assetctl/internal/telemetry"
	"github.com/sirupsen/logrus"
)

// Fetcher retrieves asset bodies. *fetch.Pool satisfies it.
type Fetcher interface {
	Fetch(ctx context.Context, headers []asset.Header) ([]*asset.Body, error)
}

// Resolver computes the extensions required by bodies.
// *registry.Resolver satisfies it.
type Resolver interface {
	ForAssets(ctx context.Context, bodies []*asset.Body, installed registry.InstalledVersions) (*registry.Report, error)
	ForExtensions(ctx context.Context, names []string, installed registry.InstalledVersions) (*registry.Report, error)
}

// ExtensionInstaller installs the extensions of a report.
// *extension.Installer satisfies it.
type ExtensionInstaller interface {
	Install(ctx context.Context, report *registry.Report, shouldUpdate bool, store extension.Store) (*extension.Result, error)
}

// AssetInstaller instantiates bodies. *installer.Installer satisfies it.
type AssetInstaller interface {
	Install(ctx context.Context, bodies []*asset.Body, target installer.Target) (*installer.Result, error)
	CreateEmpty(target installer.Target, name, objectType string) (project.ObjectRef, error)
}

// ConfirmFunc asks whether out-of-date extensions should be upgraded.
// An error (dialog closed, interrupted) aborts the installation.
type ConfirmFunc func(ctx context.Context, outOfDate []registry.ExtensionHeader) (bool, error)

// AuthorizeFunc reports whether private assets may be installed into p.
type AuthorizeFunc func(ctx context.Context, p *project.Project) (bool, error)

// ResourceFetchFunc retrieves the resources queued on p.
type ResourceFetchFunc func(ctx context.Context, p *project.Project) error

// Reporter receives one event per installed asset.
// *telemetry.Recorder satisfies it.
type Reporter interface {
	Report(e telemetry.Event)
}

// Config holds the collaborators of an Orchestrator. Fetcher, Resolver,
// Extensions and Assets are required.
type Config struct {
	Fetcher    Fetcher
	Resolver   Resolver
	Extensions ExtensionInstaller
	Assets     AssetInstaller

	// Confirm defaults to declining every update.
	Confirm ConfirmFunc
	// Authorize defaults to allowing cloud projects only.
	Authorize AuthorizeFunc
	// FetchResources is skipped when nil.
	FetchResources ResourceFetchFunc
	// Reporter is skipped when nil.
	Reporter Reporter
	Logger   logrus.FieldLogger
	// OnStateChange is called on every state transition.
	OnStateChange func(State)
}

// Result describes a completed (or partially completed) installation.
type Result struct {
	CreatedObjects      []project.ObjectRef
	InstalledAssets     []string
	InstalledExtensions []string
	UpdatedExtensions   []string
	// UpdateDeclined is set when the user chose to keep out-of-date
	// extensions.
	UpdateDeclined bool
}

// Orchestrator runs installations one at a time.
type Orchestrator struct {
	cfg        Config
	log        logrus.FieldLogger
	installing atomic.Bool
	state      atomic.Int32
}

// New creates an Orchestrator.
func New(cfg Config) (*Orchestrator, error) {
	if cfg.Fetcher == nil {
		return nil, errors.New("fetcher is nil")
	}
	if cfg.Resolver == nil {
		return nil, errors.New("resolver is nil")
	}
	if cfg.Extensions == nil {
		return nil, errors.New("extension installer is nil")
	}
	if cfg.Assets == nil {
		return nil, errors.New("asset installer is nil")
	}
	if cfg.Confirm == nil {
		cfg.Confirm = func(context.Context, []registry.ExtensionHeader) (bool, error) { return false, nil }
	}
	if cfg.Authorize == nil {
		cfg.Authorize = func(_ context.Context, p *project.Project) (bool, error) { return p.IsCloudProject(), nil }
	}
	log := cfg.Logger
	if log == nil {
		log = logger.Discard()
	}
	return &Orchestrator{cfg: cfg, log: log}, nil
}

// IsInstalling reports whether an installation is running.
func (o *Orchestrator) IsInstalling() bool { return o.installing.Load() }

// State returns the current stage.
func (o *Orchestrator) State() State { return State(o.state.Load()) }

func (o *Orchestrator) setState(s State) {
	o.state.Store(int32(s))
	if o.cfg.OnStateChange != nil {
		o.cfg.OnStateChange(s)
	}
}

// begin claims the single installation slot.
func (o *Orchestrator) begin() error {
	if !o.installing.CompareAndSwap(false, true) {
		return ErrInstallationInProgress
	}
	return nil
}

// end releases the slot. It runs on every exit path.
func (o *Orchestrator) end(err error) {
	if err != nil {
		o.setState(Failed)
		o.log.WithFields(logrus.Fields{"kind": KindOf(err).String()}).Debugf("installation failed: %v", err)
	}
	o.setState(Idle)
	o.installing.Store(false)
}

// InstallAsset installs a single asset. pack may be nil.
func (o *Orchestrator) InstallAsset(ctx context.Context, target installer.Target, header asset.Header, pack *asset.Pack) (*Result, error) {
	return o.run(ctx, target, []asset.Header{header}, pack.Info())
}

// InstallPack installs the assets of a pack, in order. Assets installed
// before a failing one stay installed and are listed in the result.
func (o *Orchestrator) InstallPack(ctx context.Context, target installer.Target, pack *asset.Pack, headers []asset.Header) (*Result, error) {
	return o.run(ctx, target, headers, pack.Info())
}

func (o *Orchestrator) run(ctx context.Context, target installer.Target, headers []asset.Header, pack *asset.PackInfo) (result *Result, err error) {
	if err := o.begin(); err != nil {
		return nil, err
	}
	defer func() { o.end(err) }()

	if target.Project == nil {
		return nil, failure(KindAssetInstantiation, errors.New("no project to install into"))
	}
	if len(headers) == 0 {
		return &Result{}, nil
	}

	if hasPrivate(headers) {
		ok, err := o.cfg.Authorize(ctx, target.Project)
		if err != nil {
			return nil, failure(KindAuthorization, err)
		}
		if !ok {
			return nil, failure(KindAuthorization, ErrPrivateAssetDenied)
		}
	}

	o.setState(Fetching)
	bodies, err := o.cfg.Fetcher.Fetch(ctx, headers)
	if err != nil {
		return nil, failure(KindFetch, err)
	}

	o.setState(ResolvingDependencies)
	report, err := o.cfg.Resolver.ForAssets(ctx, bodies, target.Project)
	if err != nil {
		return nil, failure(KindDependencyResolution, err)
	}
	result = &Result{}
	if err := o.installExtensions(ctx, report, target.Project, result); err != nil {
		return nil, err
	}

	o.setState(InstallingAssets)
	installed, installErr := o.cfg.Assets.Install(ctx, bodies, target)
	if installed != nil {
		result.CreatedObjects = installed.CreatedObjects
		result.InstalledAssets = installed.InstalledAssets
	}

	var resourceErr error
	if installErr == nil && o.cfg.FetchResources != nil {
		resourceErr = o.cfg.FetchResources(ctx, target.Project)
	}

	o.setState(Reporting)
	o.report(headers, result.InstalledAssets, pack)

	if installErr != nil {
		return result, failure(KindAssetInstantiation, installErr)
	}
	if resourceErr != nil {
		return result, failure(KindResourceFetch, resourceErr)
	}
	return result, nil
}

// installExtensions asks before upgrading the out-of-date extensions of
// report and installs the rest.
func (o *Orchestrator) installExtensions(ctx context.Context, report *registry.Report, p *project.Project, result *Result) error {
	var err error
	shouldUpdate := false
	if len(report.OutOfDate) > 0 {
		o.setState(AwaitingConfirmation)
		shouldUpdate, err = o.cfg.Confirm(ctx, report.OutOfDate)
		if err != nil {
			return failure(KindDependencyResolution, err)
		}
		result.UpdateDeclined = !shouldUpdate
	}

	o.setState(InstallingExtensions)
	extResult, err := o.cfg.Extensions.Install(ctx, report, shouldUpdate, p)
	if err != nil {
		return failure(KindExtensionInstall, err)
	}
	result.InstalledExtensions = extResult.Installed
	result.UpdatedExtensions = extResult.Updated
	return nil
}

func (o *Orchestrator) report(headers []asset.Header, installed []string, pack *asset.PackInfo) {
	if o.cfg.Reporter == nil {
		return
	}
	byID := make(map[string]asset.Header, len(headers))
	for _, h := range headers {
		byID[h.ID] = h
	}
	for _, id := range installed {
		h := byID[id]
		o.cfg.Reporter.Report(telemetry.Event{
			AssetID:   id,
			AssetName: h.Name,
			Kind:      h.Kind(),
			Pack:      pack,
		})
	}
}

// CreateEmptyObject adds an empty object built from template to target.
// The extensions the template needs are resolved like those of an asset:
// missing ones are installed and out-of-date ones are upgraded once
// confirmed.
func (o *Orchestrator) CreateEmptyObject(ctx context.Context, target installer.Target, template asset.ObjectTemplate) (result *Result, err error) {
	if err := o.begin(); err != nil {
		return nil, err
	}
	defer func() { o.end(err) }()

	if target.Project == nil {
		return nil, failure(KindAssetInstantiation, errors.New("no project to install into"))
	}

	o.setState(ResolvingDependencies)
	report, err := o.cfg.Resolver.ForExtensions(ctx, templateExtensions(template), target.Project)
	if err != nil {
		return nil, failure(KindDependencyResolution, err)
	}
	result = &Result{}
	if err := o.installExtensions(ctx, report, target.Project, result); err != nil {
		return nil, err
	}

	o.setState(InstallingAssets)
	ref, err := o.cfg.Assets.CreateEmpty(target, template.Name, template.Type)
	if err != nil {
		return result, failure(KindAssetInstantiation, err)
	}
	result.CreatedObjects = []project.ObjectRef{ref}
	return result, nil
}

// templateExtensions lists the extension implied by the template type
// followed by its explicit requirements, without duplicates.
func templateExtensions(template asset.ObjectTemplate) []string {
	var names []string
	seen := make(map[string]bool)
	add := func(name string) {
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		names = append(names, name)
	}
	if ext, ok := project.RequiresExtension(template.Type); ok {
		add(ext)
	}
	for _, name := range template.RequiredExtensions {
		add(name)
	}
	return names
}

func hasPrivate(headers []asset.Header) bool {
	for _, h := range headers {
		if h.IsPrivate {
			return true
		}
	}
	return false
}
