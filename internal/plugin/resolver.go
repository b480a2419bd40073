package plugin

import (
	"strings"

	"github.com/jubbon/isolde-sub000/internal/logging"
)

// Plan maps fully-qualified plugin IDs to their activation state. A fresh
// plan is built per run; it is never read back from disk.
type Plan map[string]bool

// Warning records a plugin name that matched nothing in the registry.
type Warning struct {
	Name string
}

// Resolver maps short plugin names from the spec onto registry IDs and
// builds the activation plan.
type Resolver struct {
	registry *Registry
}

// NewResolver returns a resolver over the given registry.
func NewResolver(registry *Registry) *Resolver {
	return &Resolver{registry: registry}
}

// ResolveName maps one short name to a registry ID. Matching runs over the
// lexicographically sorted IDs: an exact match (the whole ID, or the part
// before @) wins; otherwise the first ID containing the name is taken. The
// empty string means no match.
func (r *Resolver) ResolveName(name string) string {
	for _, id := range r.registry.IDs() {
		if id == name || strings.HasPrefix(id, name+"@") {
			return id
		}
	}
	for _, id := range r.registry.IDs() {
		if strings.Contains(id, name) {
			return id
		}
	}
	return ""
}

// BuildPlan resolves the activation and deactivation name lists into a plan.
// Activations are applied first; a deactivation never overrides a name
// already planned active, so activation wins when both lists resolve to the
// same ID. Names that match nothing produce warnings and are dropped;
// resolution always continues.
func (r *Resolver) BuildPlan(activate, deactivate []string) (Plan, []Warning) {
	plan := make(Plan)
	var warnings []Warning

	for _, name := range activate {
		id := r.ResolveName(name)
		if id == "" {
			warnings = append(warnings, Warning{Name: name})
			logging.Warn("plugin not found in registry", "plugin", name)
			continue
		}
		plan[id] = true
	}

	for _, name := range deactivate {
		id := r.ResolveName(name)
		if id == "" {
			warnings = append(warnings, Warning{Name: name})
			logging.Warn("plugin not found in registry", "plugin", name)
			continue
		}
		if !plan[id] {
			plan[id] = false
		}
	}

	return plan, warnings
}
