package extension

import (
	"github.com/agentx-labs/assetctl/internal/project"
	"github.com/agentx-labs/assetctl/internal/registry"
)

// Status values reported by Statuses.
const (
	StatusOK       = "ok"
	StatusOutdated = "outdated"
	StatusUnknown  = "unknown"
)

// ExtensionStatus represents the status of a single installed extension.
type ExtensionStatus struct {
	Name      string
	FullName  string
	Installed string
	Available string
	Status    string // "ok", "outdated", "unknown"
}

// Statuses compares the extensions installed in p with the registry
// listing. Extensions the registry does not publish are "unknown".
func Statuses(p *project.Project, entries []registry.Entry) []ExtensionStatus {
	byName := make(map[string]registry.Entry, len(entries))
	for _, e := range entries {
		byName[e.Name] = e
	}

	var result []ExtensionStatus
	for _, ext := range p.Extensions {
		s := ExtensionStatus{
			Name:      ext.Name,
			FullName:  ext.FullName,
			Installed: ext.Version,
			Status:    StatusUnknown,
		}
		if e, ok := byName[ext.Name]; ok {
			s.Available = e.Version
			s.Status = StatusOK
			// An unparseable registry version cannot be compared; report
			// the extension as it is.
			if outdated, err := registry.IsOutOfDate(ext.Version, e.Version); err == nil && outdated {
				s.Status = StatusOutdated
			}
		}
		result = append(result, s)
	}
	return result
}
