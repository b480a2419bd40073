// Package generator orchestrates the generation pipeline.
//
// A run resolves the spec into a token table, renders the devcontainer
// artifacts, provisions feature bundles, resolves plugin activation against
// the installed registry, merges the assistant settings, records the
// provider marker, and initializes git repositories. The Report lists every
// path as created, modified, or skipped (byte-identical).
//
// Generation is not transactional: a fatal mid-run error leaves the files
// already written. It is idempotent instead; rerunning over an unchanged
// target reports every file as skipped and rewrites nothing.
package generator
