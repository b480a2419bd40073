package plugin

import (
	"encoding/json"
	"os"
	"sort"

	"github.com/jubbon/isolde-sub000/internal/errors"
)

// RegistryEntry describes one installed plugin.
type RegistryEntry struct {
	// ID is the fully-qualified plugin identifier, name@marketplace.
	ID string `json:"id"`
	// Scope is where the plugin applies (user or project).
	Scope string `json:"scope,omitempty"`
	// InstallPath is the plugin's install location inside the container.
	InstallPath string `json:"installPath,omitempty"`
}

// Registry is the read-only set of installed plugins.
type Registry struct {
	entries []RegistryEntry
}

// registryDocument is the on-disk shape of the installed-plugins file.
type registryDocument struct {
	Plugins []RegistryEntry `json:"plugins"`
}

// NewRegistry builds a registry from entries. IDs are sorted
// lexicographically so resolution order is stable across runs.
func NewRegistry(entries []RegistryEntry) *Registry {
	sorted := make([]RegistryEntry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })
	return &Registry{entries: sorted}
}

// LoadRegistry reads an installed-plugins JSON document. A missing file
// yields an empty registry; a malformed one is an error.
func LoadRegistry(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewRegistry(nil), nil
		}
		return nil, errors.ConfigError("failed to read plugin registry", err)
	}

	var doc registryDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.ConfigError("failed to parse plugin registry", err)
	}
	return NewRegistry(doc.Plugins), nil
}

// IDs returns every registry ID in sorted order.
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.entries))
	for i, e := range r.entries {
		ids[i] = e.ID
	}
	return ids
}

// Len returns the number of installed plugins.
func (r *Registry) Len() int {
	return len(r.entries)
}
