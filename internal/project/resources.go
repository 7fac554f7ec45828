package project

import "fmt"

// Resource is a file referenced by objects. Pending resources still point at
// their remote origin and wait for the resource subsystem to retrieve them.
type Resource struct {
	Name    string         `yaml:"name"`
	Kind    string         `yaml:"kind"`
	File    string         `yaml:"file"`
	Origin  ResourceOrigin `yaml:"origin,omitempty"`
	Pending bool           `yaml:"pending,omitempty"`
}

// ResourceOrigin records where a resource came from.
type ResourceOrigin struct {
	Name       string `yaml:"name,omitempty"`
	Identifier string `yaml:"identifier,omitempty"`
}

// FindResource returns the resource with the given name, or nil.
func (p *Project) FindResource(name string) *Resource {
	for i := range p.Resources {
		if p.Resources[i].Name == name {
			return &p.Resources[i]
		}
	}
	return nil
}

// AddResource appends r. Resource names are unique per project.
func (p *Project) AddResource(r Resource) error {
	if r.Name == "" {
		return fmt.Errorf("resource name is empty")
	}
	if p.FindResource(r.Name) != nil {
		return fmt.Errorf("resource %q already exists", r.Name)
	}
	p.Resources = append(p.Resources, r)
	p.MarkDirty()
	return nil
}

// RemoveResource deletes a resource by name. It returns false if absent.
func (p *Project) RemoveResource(name string) bool {
	for i := range p.Resources {
		if p.Resources[i].Name == name {
			p.Resources = append(p.Resources[:i], p.Resources[i+1:]...)
			p.MarkDirty()
			return true
		}
	}
	return false
}

// PendingResources returns pointers to every resource awaiting retrieval.
func (p *Project) PendingResources() []*Resource {
	var pending []*Resource
	for i := range p.Resources {
		if p.Resources[i].Pending {
			pending = append(pending, &p.Resources[i])
		}
	}
	return pending
}

// ResolveResource records the local file of a retrieved resource.
func (p *Project) ResolveResource(name, localFile string) error {
	r := p.FindResource(name)
	if r == nil {
		return fmt.Errorf("resource %q not found", name)
	}
	r.File = localFile
	r.Pending = false
	p.MarkDirty()
	return nil
}
