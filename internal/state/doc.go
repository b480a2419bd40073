// Package state records which assistant provider a generated project was
// built for.
//
// The marker lives inside the target's .devcontainer tree with a write-once
// lifecycle: written at generation time, read at container start. Keeping it
// target-scoped means two projects generated for different providers can
// build containers concurrently without clobbering each other.
package state
