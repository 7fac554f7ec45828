package registry

// Entry is one extension as listed by the registry.
type Entry struct {
	Name     string `json:"name"`
	FullName string `json:"fullName"`
	Version  string `json:"version"`
	URL      string `json:"url,omitempty"`
}

// Extension is the installable description of an extension.
type Extension struct {
	Name        string   `json:"name"`
	FullName    string   `json:"fullName"`
	Version     string   `json:"version"`
	ObjectTypes []string `json:"objectTypes,omitempty"`
}

// ExtensionHeader is an extension required by an installation, with the
// version installed in the project (if any) and the published one.
type ExtensionHeader struct {
	Identifier       string
	FullName         string
	Installed        bool
	InstalledVersion string
	AvailableVersion string
	URL              string
}

// DisplayName returns the full name, falling back to the identifier.
func (h ExtensionHeader) DisplayName() string {
	if h.FullName != "" {
		return h.FullName
	}
	return h.Identifier
}

// Report is the outcome of a dependency resolution. Both lists follow
// registry order; OutOfDate is a subset of Required.
type Report struct {
	Required  []ExtensionHeader
	OutOfDate []ExtensionHeader
}

// Missing returns the required extensions not installed in the project.
func (r *Report) Missing() []ExtensionHeader {
	var missing []ExtensionHeader
	for _, h := range r.Required {
		if !h.Installed {
			missing = append(missing, h)
		}
	}
	return missing
}

// Empty reports whether nothing needs to be installed or upgraded.
func (r *Report) Empty() bool {
	return len(r.Missing()) == 0 && len(r.OutOfDate) == 0
}
