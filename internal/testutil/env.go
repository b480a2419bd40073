// Package testutil builds on-disk fixtures for generation tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// Env is a temporary catalog root with templates, feature bundles, and a
// target directory for generated output.
type Env struct {
	// Root is the catalog root holding templates/ and features/.
	Root string
	// Target is an empty directory to generate into.
	Target string
}

// NewEnv creates a catalog with one python template, the three core feature
// bundles, and one preset.
func NewEnv(t *testing.T) *Env {
	t.Helper()

	root := t.TempDir()
	env := &Env{Root: root, Target: t.TempDir()}

	env.AddTemplate(t, "python", `name: python
description: Python development environment
image: python-dev:latest
versions: ["3.12", "3.11", "3.10"]
default_version: "3.12"
`)

	for _, bundle := range []string{"claude-code", "proxy", "plugin-manager"} {
		env.AddFeatureBundle(t, bundle)
	}

	env.AddPreset(t, "py-data", `name: py-data
description: Python with data tooling
template: python
lang_version: "3.11"
tools: ["ruff"]
`)

	return env
}

// AddTemplate writes a template-info.yaml for a named template.
func (e *Env) AddTemplate(t *testing.T, name, info string) {
	t.Helper()
	dir := filepath.Join(e.Root, "templates", name)
	mkdir(t, dir)
	write(t, filepath.Join(dir, "template-info.yaml"), info, 0o644)
}

// AddFeatureBundle creates a minimal feature bundle with an executable
// install script.
func (e *Env) AddFeatureBundle(t *testing.T, name string) {
	t.Helper()
	dir := filepath.Join(e.Root, "features", name)
	mkdir(t, dir)
	write(t, filepath.Join(dir, "install.sh"), "#!/bin/sh\necho "+name+"\n", 0o755)
	write(t, filepath.Join(dir, "devcontainer-feature.json"), `{"id": "`+name+`"}`, 0o644)
}

// AddPreset writes a preset document.
func (e *Env) AddPreset(t *testing.T, name, doc string) {
	t.Helper()
	dir := filepath.Join(e.Root, "presets")
	mkdir(t, dir)
	write(t, filepath.Join(dir, name+".yaml"), doc, 0o644)
}

// AddRegistry writes an installed-plugin registry document into the target
// and returns its path.
func (e *Env) AddRegistry(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(e.Target, ".claude", "plugins", "installed.json")
	mkdir(t, filepath.Dir(path))
	write(t, path, doc, 0o644)
	return path
}

// FeaturesDir returns the catalog features directory.
func (e *Env) FeaturesDir() string {
	return filepath.Join(e.Root, "features")
}

// TemplateDir returns the directory of a named template.
func (e *Env) TemplateDir(name string) string {
	return filepath.Join(e.Root, "templates", name)
}

func mkdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
}

func write(t *testing.T, path, content string, mode os.FileMode) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), mode); err != nil {
		t.Fatal(err)
	}
}
