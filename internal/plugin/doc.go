// Package plugin resolves short plugin names against the installed-plugin
// registry and builds activation plans.
//
// The registry is read-only and sorted by ID, so name resolution is
// deterministic. Unresolvable names are warnings, never fatal: generation
// proceeds with the plugins that did resolve.
package plugin
