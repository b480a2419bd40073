// Package workspace initializes git repositories in generated project
// trees.
//
// A generated project gets two repositories: one in the workspace directory
// and one in .devcontainer, so environment definition history stays separate
// from project history. Initialization is idempotent; existing repositories
// with commits are never touched.
package workspace
