// Package config parses, resolves, and validates isolde.yaml project
// specifications.
//
// A specification can come from two places: an existing document on disk
// (Parse, ParseFile) or a Resolver that layers a template's defaults, an
// optional preset, and user overrides into a fresh document. Both paths end
// with the same defaulting and validation rules, so downstream packages
// always see a complete Spec.
//
// The schema version field is checked before any other field is read;
// documents with an unrecognized version fail with exit code 3 and nothing
// is written. Validation collects every field violation into a single
// aggregate error rather than stopping at the first one.
//
// The Catalog type locates templates, feature bundles, and presets under a
// root directory, discovered from the ISOLDE_ROOT environment variable or by
// upward search from the working directory.
package config
