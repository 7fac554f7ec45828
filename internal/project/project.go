package project

import (
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"
)

const (
	// DefaultFile is the project filename used when none is configured.
	DefaultFile = "project.yaml"

	tmpSuffix = ".tmp"
)

// Project is the target store of every installation.
type Project struct {
	Name           string           `yaml:"name"`
	CloudProjectID string           `yaml:"cloud_project_id,omitempty"`
	Extensions     []Extension      `yaml:"extensions"`
	Objects        ObjectsContainer `yaml:"objects"`
	Layouts        []Layout         `yaml:"layouts,omitempty"`
	Resources      []Resource       `yaml:"resources"`

	dirty bool
}

// Extension is an extension record installed in the project.
type Extension struct {
	Name        string   `yaml:"name"`
	FullName    string   `yaml:"full_name,omitempty"`
	Version     string   `yaml:"version"`
	ObjectTypes []string `yaml:"object_types,omitempty"`
}

// Layout is a named scene with its own objects container.
type Layout struct {
	Name    string           `yaml:"name"`
	Objects ObjectsContainer `yaml:"objects"`
}

// builtinNamespaces are object type prefixes that ship with every project
// and never need an extension install.
var builtinNamespaces = map[string]bool{
	"BBText":            true,
	"BitmapText":        true,
	"Lighting":          true,
	"PanelSpriteObject": true,
	"ParticleSystem":    true,
	"PrimitiveDrawing":  true,
	"Scene3D":           true,
	"SpineObject":       true,
	"TextInput":         true,
	"TextObject":        true,
	"TileMap":           true,
	"TiledSpriteObject": true,
	"Video":             true,
}

// New returns an empty project with the given name.
func New(name string) *Project {
	return &Project{Name: name}
}

// Load reads and parses a project file.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading project %s: %w", path, err)
	}

	var p Project
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing project %s: %w", path, err)
	}

	return &p, nil
}

// Save writes the project back to path and clears the dirty flag.
func Save(path string, p *Project) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshaling project: %w", err)
	}

	// Write to a temp file first so a failed write never truncates the
	// existing project.
	tmp := path + tmpSuffix
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("writing project %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replacing project %s: %w", path, err)
	}

	p.dirty = false
	return nil
}

// Dirty reports whether the project changed since it was loaded or saved.
func (p *Project) Dirty() bool { return p.dirty }

// MarkDirty flags the project as modified. Container mutations go through
// the container itself and must call it.
func (p *Project) MarkDirty() { p.dirty = true }

// IsCloudProject reports whether the project is saved on the cloud backend.
// Private assets can only be installed into cloud projects.
func (p *Project) IsCloudProject() bool {
	return p.CloudProjectID != ""
}

// FindExtension returns the extension with the given name, or nil if not found.
func (p *Project) FindExtension(name string) *Extension {
	for i := range p.Extensions {
		if p.Extensions[i].Name == name {
			return &p.Extensions[i]
		}
	}
	return nil
}

// HasExtension reports whether an extension is installed.
func (p *Project) HasExtension(name string) bool {
	return p.FindExtension(name) != nil
}

// InstalledExtensionVersion returns the installed version of an extension.
func (p *Project) InstalledExtensionVersion(name string) (string, bool) {
	ext := p.FindExtension(name)
	if ext == nil {
		return "", false
	}
	return ext.Version, true
}

// SetExtension installs ext, replacing any record with the same name.
func (p *Project) SetExtension(ext Extension) error {
	if ext.Name == "" {
		return fmt.Errorf("extension name is empty")
	}
	p.MarkDirty()
	if existing := p.FindExtension(ext.Name); existing != nil {
		*existing = ext
		return nil
	}
	p.Extensions = append(p.Extensions, ext)
	return nil
}

// RequiresExtension returns the extension an object type belongs to.
// "Physics::Body" requires "Physics"; plain and builtin types require nothing.
func RequiresExtension(objectType string) (string, bool) {
	namespace, _, found := strings.Cut(objectType, "::")
	if !found || namespace == "" || builtinNamespaces[namespace] {
		return "", false
	}
	return namespace, true
}

// Container returns the objects container of a layout, or the global
// container when layout is empty.
func (p *Project) Container(layout string) (*ObjectsContainer, error) {
	if layout == "" {
		return &p.Objects, nil
	}
	for i := range p.Layouts {
		if p.Layouts[i].Name == layout {
			return &p.Layouts[i].Objects, nil
		}
	}
	return nil, fmt.Errorf("layout %q not found in project %q", layout, p.Name)
}

// AddLayout appends an empty layout. It fails if the name is taken.
func (p *Project) AddLayout(name string) error {
	for _, l := range p.Layouts {
		if l.Name == name {
			return fmt.Errorf("layout %q already exists", name)
		}
	}
	p.Layouts = append(p.Layouts, Layout{Name: name})
	p.MarkDirty()
	return nil
}
