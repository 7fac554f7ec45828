package project

import "sort"

// AssetIndex is the set of asset store ids already present in a project.
type AssetIndex map[string]bool

// Has reports whether the asset id is present.
func (idx AssetIndex) Has(id string) bool { return idx[id] }

// IDs returns the ids in sorted order.
func (idx AssetIndex) IDs() []string {
	ids := make([]string, 0, len(idx))
	for id := range idx {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// EnumerateAssetStoreIDs collects the asset ids of objects in the global
// container, every layout, and the extra container when it is not one of
// those. The result is computed on each call; callers must not keep it
// across installs.
func EnumerateAssetStoreIDs(p *Project, extra *ObjectsContainer) AssetIndex {
	idx := make(AssetIndex)
	collect := func(c *ObjectsContainer) {
		if c == nil {
			return
		}
		for _, obj := range *c {
			if obj.AssetStoreID != "" {
				idx[obj.AssetStoreID] = true
			}
		}
	}

	collect(&p.Objects)
	for i := range p.Layouts {
		collect(&p.Layouts[i].Objects)
	}
	collect(extra)
	return idx
}
