// Package asset defines the descriptors exchanged with the asset catalogs:
// short headers used for listing, full bodies fetched by id, and packs.
package asset

// Header is a lightweight, listable reference to a remote asset.
type Header struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	IsPrivate bool   `json:"isPrivate,omitempty"`
	Tag       string `json:"tag,omitempty"`
	Version   string `json:"version,omitempty"`
}

// Kind returns "private" or "public".
func (h Header) Kind() string {
	if h.IsPrivate {
		return KindPrivate
	}
	return KindPublic
}

// Asset kinds reported in telemetry.
const (
	KindPublic  = "public"
	KindPrivate = "private"
)

// Body is the full descriptor of an asset.
type Body struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Version      string        `json:"version,omitempty"`
	IsPrivate    bool          `json:"isPrivate,omitempty"`
	Authors      []string      `json:"authors,omitempty"`
	License      string        `json:"license,omitempty"`
	ObjectAssets []ObjectAsset `json:"objectAssets"`
}

// ObjectAsset is one object template of an asset, with the resources and
// extensions it needs.
type ObjectAsset struct {
	Object             ObjectTemplate `json:"object"`
	Resources          []Resource     `json:"resources"`
	RequiredExtensions []ExtensionRef `json:"requiredExtensions"`
}

// ObjectTemplate describes the object to instantiate.
type ObjectTemplate struct {
	Name       string         `json:"name"`
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties,omitempty"`
	// RequiredExtensions names extensions the object needs beyond the one
	// implied by its type.
	RequiredExtensions []string `json:"requiredExtensions,omitempty"`
}

// Resource is a file referenced by an object template.
type Resource struct {
	Name   string         `json:"name"`
	Kind   string         `json:"kind"`
	File   string         `json:"file"`
	Origin ResourceOrigin `json:"origin"`
}

// ResourceOrigin identifies where a resource is published.
type ResourceOrigin struct {
	Name       string `json:"name"`
	Identifier string `json:"identifier"`
}

// ExtensionRef names an extension required by an object template.
type ExtensionRef struct {
	ExtensionName    string `json:"extensionName"`
	ExtensionVersion string `json:"extensionVersion,omitempty"`
}

// RequiredExtensionNames returns the union of extension names required by
// every object asset, in first-seen order.
func (b *Body) RequiredExtensionNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, oa := range b.ObjectAssets {
		for _, ref := range oa.RequiredExtensions {
			if ref.ExtensionName == "" || seen[ref.ExtensionName] {
				continue
			}
			seen[ref.ExtensionName] = true
			names = append(names, ref.ExtensionName)
		}
	}
	return names
}

// RequiredExtensionNames returns the union over several bodies, in
// first-seen order.
func RequiredExtensionNames(bodies []*Body) []string {
	seen := make(map[string]bool)
	var names []string
	for _, b := range bodies {
		if b == nil {
			continue
		}
		for _, name := range b.RequiredExtensionNames() {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names
}

// Pack is a named, ordered collection of assets installed together.
type Pack struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Tag      string   `json:"tag,omitempty"`
	AssetIDs []string `json:"assetIds"`
}

// Info returns the pack metadata attached to telemetry.
func (p *Pack) Info() *PackInfo {
	if p == nil {
		return nil
	}
	return &PackInfo{ID: p.ID, Name: p.Name, Tag: p.Tag}
}

// PackInfo is the pack metadata carried along an installation.
type PackInfo struct {
	ID   string
	Name string
	Tag  string
}
