package installer

import (
	"context"
	"errors"
	"fmt"
	"maps"

	"github.com/agentx-labs/assetctl/internal/asset"
	"github.com/agentx-labs/assetctl/internal/logger"
	"github.com/agentx-labs/assetctl/internal/manifest"
	"github.com/agentx-labs/assetctl/internal/project"
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
)

var (
	// ErrMissingExtension is returned when an object type belongs to an
	// extension the project does not have.
	ErrMissingExtension = errors.New("object type requires an extension that is not installed")

	// ErrInvalidAsset is returned when a body fails schema validation.
	ErrInvalidAsset = errors.New("asset description is invalid")
)

// Target is where an installation puts its objects.
type Target struct {
	Project *project.Project
	Layout  string // empty for the global objects
}

// Container returns the objects container the target points at.
func (t Target) Container() (*project.ObjectsContainer, error) {
	if t.Project == nil {
		return nil, errors.New("no project to install into")
	}
	return t.Project.Container(t.Layout)
}

// Result lists what an installation created.
type Result struct {
	CreatedObjects []project.ObjectRef
	// InstalledAssets holds the ids of fully installed assets, in order.
	InstalledAssets []string
}

// AssetError reports which asset of a batch failed.
type AssetError struct {
	AssetID string
	Err     error
}

func (e *AssetError) Error() string {
	return fmt.Sprintf("installing asset %q: %v", e.AssetID, e.Err)
}

func (e *AssetError) Unwrap() error { return e.Err }

// Installer instantiates asset bodies.
type Installer struct {
	log logrus.FieldLogger
}

// New creates an Installer. A nil logger discards output.
func New(log logrus.FieldLogger) *Installer {
	if log == nil {
		log = logger.Discard()
	}
	return &Installer{log: log}
}

// Install instantiates bodies, in order, into target. On failure the
// returned result describes the assets installed before the failing one.
func (i *Installer) Install(ctx context.Context, bodies []*asset.Body, target Target) (*Result, error) {
	container, err := target.Container()
	if err != nil {
		return nil, err
	}

	result := &Result{}
	for _, body := range bodies {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		created, err := i.installOne(body, target.Project, container)
		if err != nil {
			return result, &AssetError{AssetID: body.ID, Err: err}
		}

		result.CreatedObjects = append(result.CreatedObjects, created...)
		result.InstalledAssets = append(result.InstalledAssets, body.ID)
		target.Project.MarkDirty()
		i.log.WithFields(logrus.Fields{"asset": body.ID, "objects": len(created)}).Debug("asset instantiated")
	}
	return result, nil
}

// installOne adds every object and resource of body. On error everything
// it added is removed again.
func (i *Installer) installOne(body *asset.Body, p *project.Project, container *project.ObjectsContainer) (created []project.ObjectRef, err error) {
	validation, err := manifest.ValidateBody(body)
	if err != nil {
		return nil, err
	}
	if !validation.Valid {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAsset, validation.Summary())
	}

	var addedResources []string
	defer func() {
		if err != nil {
			err = rollback(err, p, container, created, addedResources)
			created = nil
		}
	}()

	for _, oa := range body.ObjectAssets {
		if ext, ok := project.RequiresExtension(oa.Object.Type); ok && !p.HasExtension(ext) {
			return created, fmt.Errorf("%w: %s needs %s", ErrMissingExtension, oa.Object.Type, ext)
		}

		obj := project.Object{
			ID:           uuid.NewString(),
			Name:         container.UniqueName(oa.Object.Name),
			Type:         oa.Object.Type,
			AssetStoreID: body.ID,
			Properties:   maps.Clone(oa.Object.Properties),
		}
		if err := container.Insert(obj); err != nil {
			return created, err
		}
		created = append(created, obj.Ref())

		for _, r := range oa.Resources {
			if p.FindResource(r.Name) != nil {
				continue
			}
			if err := p.AddResource(project.Resource{
				Name:    r.Name,
				Kind:    r.Kind,
				File:    r.File,
				Origin:  project.ResourceOrigin{Name: r.Origin.Name, Identifier: r.Origin.Identifier},
				Pending: true,
			}); err != nil {
				return created, err
			}
			addedResources = append(addedResources, r.Name)
		}
	}
	return created, nil
}

func rollback(cause error, p *project.Project, container *project.ObjectsContainer, created []project.ObjectRef, resources []string) error {
	var result *multierror.Error
	result = multierror.Append(result, cause)
	for _, obj := range created {
		if !container.Remove(obj.ID) {
			result = multierror.Append(result, fmt.Errorf("rolling back object %q: not found", obj.Name))
		}
	}
	for _, name := range resources {
		if !p.RemoveResource(name) {
			result = multierror.Append(result, fmt.Errorf("rolling back resource %q: not found", name))
		}
	}
	if len(result.Errors) == 1 {
		return cause
	}
	return result.ErrorOrNil()
}

// CreateEmpty adds an empty object of the given type to target, renaming
// it if the name is taken.
func (i *Installer) CreateEmpty(target Target, name, objectType string) (project.ObjectRef, error) {
	container, err := target.Container()
	if err != nil {
		return project.ObjectRef{}, err
	}
	if ext, ok := project.RequiresExtension(objectType); ok && !target.Project.HasExtension(ext) {
		return project.ObjectRef{}, fmt.Errorf("%w: %s needs %s", ErrMissingExtension, objectType, ext)
	}
	if name == "" {
		name = "NewObject"
	}

	obj := project.Object{
		ID:   uuid.NewString(),
		Name: container.UniqueName(name),
		Type: objectType,
	}
	if err := container.Insert(obj); err != nil {
		return project.ObjectRef{}, err
	}
	target.Project.MarkDirty()
	i.log.WithFields(logrus.Fields{"object": obj.Name, "type": objectType}).Debug("empty object created")
	return obj.Ref(), nil
}
