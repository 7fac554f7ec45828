package project

import (
	"fmt"
	"strconv"
)

// Object is a concrete object instantiated in a container.
type Object struct {
	ID           string         `yaml:"id"`
	Name         string         `yaml:"name"`
	Type         string         `yaml:"type"`
	AssetStoreID string         `yaml:"asset_store_id,omitempty"`
	Properties   map[string]any `yaml:"properties,omitempty"`
}

// ObjectRef identifies an object created by an installation.
type ObjectRef struct {
	ID           string
	Name         string
	Type         string
	AssetStoreID string
}

// Ref returns a reference to o.
func (o Object) Ref() ObjectRef {
	return ObjectRef{ID: o.ID, Name: o.Name, Type: o.Type, AssetStoreID: o.AssetStoreID}
}

// ObjectsContainer is an ordered list of objects with unique names.
type ObjectsContainer []Object

// Len returns the number of objects.
func (c *ObjectsContainer) Len() int { return len(*c) }

// Find returns the object with the given name, or nil.
func (c *ObjectsContainer) Find(name string) *Object {
	for i := range *c {
		if (*c)[i].Name == name {
			return &(*c)[i]
		}
	}
	return nil
}

// Has reports whether an object with the given name exists.
func (c *ObjectsContainer) Has(name string) bool {
	return c.Find(name) != nil
}

// UniqueName returns base if free, otherwise base2, base3, ...
func (c *ObjectsContainer) UniqueName(base string) string {
	if !c.Has(base) {
		return base
	}
	for i := 2; ; i++ {
		candidate := base + strconv.Itoa(i)
		if !c.Has(candidate) {
			return candidate
		}
	}
}

// Insert appends obj. Names must be unique within the container.
func (c *ObjectsContainer) Insert(obj Object) error {
	if obj.Name == "" {
		return fmt.Errorf("object name is empty")
	}
	if obj.Type == "" {
		return fmt.Errorf("object %q has no type", obj.Name)
	}
	if c.Has(obj.Name) {
		return fmt.Errorf("object %q already exists", obj.Name)
	}
	*c = append(*c, obj)
	return nil
}

// Remove deletes the object with the given id. It returns false if absent.
func (c *ObjectsContainer) Remove(id string) bool {
	for i := range *c {
		if (*c)[i].ID == id {
			*c = append((*c)[:i], (*c)[i+1:]...)
			return true
		}
	}
	return false
}
