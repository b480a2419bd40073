package generator

import (
	"bytes"
	"context"
	"os"
	"path/filepath"

	"github.com/jubbon/isolde-sub000/internal/config"
	"github.com/jubbon/isolde-sub000/internal/errors"
	"github.com/jubbon/isolde-sub000/internal/feature"
	"github.com/jubbon/isolde-sub000/internal/logging"
	"github.com/jubbon/isolde-sub000/internal/plugin"
	"github.com/jubbon/isolde-sub000/internal/settings"
	"github.com/jubbon/isolde-sub000/internal/state"
	"github.com/jubbon/isolde-sub000/internal/system"
	"github.com/jubbon/isolde-sub000/internal/template"
	"github.com/jubbon/isolde-sub000/internal/workspace"
)

// Paths inside the generated target, relative to TargetDir.
const (
	devcontainerDir  = ".devcontainer"
	devcontainerFile = ".devcontainer/devcontainer.json"
	dockerfileFile   = ".devcontainer/Dockerfile"
	claudeConfigFile = ".devcontainer/claude/config.json"
	featuresDir      = ".devcontainer/features"
	settingsFile     = ".claude/settings.json"
	specFile         = "isolde.yaml"
	registryFile     = ".claude/plugins/installed.json"
)

// Generator runs the full generation pipeline for one target directory.
type Generator struct {
	Spec *config.Spec

	// TargetDir is the directory the project is generated into.
	TargetDir string

	// TemplateDir holds per-template artifact overrides; empty uses the
	// embedded defaults.
	TemplateDir string

	// FeaturesRoot is the catalog directory feature bundles are copied from.
	FeaturesRoot string

	// ExtraBundles are provisioned in addition to the core bundles, in
	// order, duplicates ignored.
	ExtraBundles []string

	// RegistryPath overrides the installed-plugin registry location. Empty
	// uses <target>/.claude/plugins/installed.json.
	RegistryPath string

	// DryRun computes the full report without writing files or running git.
	DryRun bool

	repos *workspace.RepositoryInitializer
	fs    system.FileSystem
}

// New returns a generator for a resolved spec.
func New(spec *config.Spec, targetDir string) *Generator {
	return &Generator{
		Spec:      spec,
		TargetDir: targetDir,
		repos:     workspace.NewRepositoryInitializer(),
		fs:        system.DefaultFS(),
	}
}

// WithRepositoryInitializer replaces the repository initializer, for tests.
func (g *Generator) WithRepositoryInitializer(r *workspace.RepositoryInitializer) *Generator {
	g.repos = r
	return g
}

// Run executes the pipeline: render artifacts, provision feature bundles,
// resolve plugin activation, merge settings, write the provider marker, and
// initialize repositories. Fatal errors abort the remaining steps and leave
// already-written files in place; validation and schema failures happen
// before anything is written.
func (g *Generator) Run(ctx context.Context) (*Report, error) {
	if err := g.Spec.Validate(); err != nil {
		return nil, err
	}

	table, err := template.BuildTable(g.Spec)
	if err != nil {
		return nil, err
	}

	report := &Report{}

	if err := g.renderArtifacts(table, report); err != nil {
		return report, err
	}

	if err := g.provisionFeatures(report); err != nil {
		return report, err
	}

	plan, warnings := g.resolvePlugins()
	for _, w := range warnings {
		report.Warnings = append(report.Warnings, "plugin not found: "+w.Name)
	}

	if err := g.mergeSettings(plan, report); err != nil {
		return report, err
	}

	if err := g.writeProviderMarker(report); err != nil {
		return report, err
	}

	if err := g.initRepositories(ctx); err != nil {
		return report, err
	}

	return report, nil
}

// renderArtifacts renders every templated file into the report.
func (g *Generator) renderArtifacts(table template.Table, report *Report) error {
	artifacts := []struct {
		artifact string
		relPath  string
	}{
		{template.ArtifactDevcontainer, devcontainerFile},
		{template.ArtifactDockerfile, dockerfileFile},
		{template.ArtifactClaudeConfig, claudeConfigFile},
		{template.ArtifactReadme, filepath.Join(g.Spec.Workspace.Dir, "README.md")},
	}

	for _, a := range artifacts {
		text, err := template.Source(g.TemplateDir, a.artifact)
		if err != nil {
			return err
		}
		rendered, err := template.Render(a.artifact, text, table)
		if err != nil {
			return err
		}
		if err := g.writeFile(a.relPath, rendered, report); err != nil {
			return err
		}
	}

	specDoc, err := g.Spec.Marshal()
	if err != nil {
		return err
	}
	if err := g.writeFile(specFile, specDoc, report); err != nil {
		return err
	}

	for name, content := range workspace.ApplyGeneratedPolicy(g.Spec.Git.Generated) {
		if err := g.writeFile(name, content, report); err != nil {
			return err
		}
	}

	return nil
}

// bundles returns the core bundles plus any template or preset extras,
// deduplicated in order.
func (g *Generator) bundles() []string {
	out := make([]string, 0, len(feature.CoreBundles)+len(g.ExtraBundles))
	seen := make(map[string]bool)
	for _, b := range append(append([]string{}, feature.CoreBundles...), g.ExtraBundles...) {
		if seen[b] {
			continue
		}
		seen[b] = true
		out = append(out, b)
	}
	return out
}

// provisionFeatures copies the bundles into the target.
func (g *Generator) provisionFeatures(report *Report) error {
	p := feature.NewProvisioner(g.FeaturesRoot)
	destRoot := filepath.Join(g.TargetDir, featuresDir)

	for _, bundle := range g.bundles() {
		relPath := filepath.Join(featuresDir, bundle) + string(filepath.Separator)

		// Bundles are replaced wholesale, so classification is per bundle
		// directory rather than per file.
		existing := g.fs.IsDir(filepath.Join(destRoot, bundle))

		if g.DryRun {
			if !g.fs.IsDir(filepath.Join(g.FeaturesRoot, bundle)) {
				return errors.FeatureBundleMissing(bundle)
			}
		} else {
			if err := p.Provision(bundle, destRoot); err != nil {
				return err
			}
		}

		if existing {
			report.Modified = append(report.Modified, relPath)
		} else {
			report.Created = append(report.Created, relPath)
		}
	}
	return nil
}

// resolvePlugins builds the activation plan from the installed registry.
func (g *Generator) resolvePlugins() (plugin.Plan, []plugin.Warning) {
	path := g.RegistryPath
	if path == "" {
		path = filepath.Join(g.TargetDir, registryFile)
	}

	registry, err := plugin.LoadRegistry(path)
	if err != nil {
		// A broken registry degrades to an empty one; every requested name
		// then surfaces as a warning.
		logging.Warn("plugin registry unreadable", "path", path, "error", err)
		registry = plugin.NewRegistry(nil)
	}

	resolver := plugin.NewResolver(registry)
	return resolver.BuildPlan(g.Spec.ActivatePlugins(), g.Spec.DeactivatePlugins())
}

// mergeSettings persists the activation plan into settings.json.
func (g *Generator) mergeSettings(plan plugin.Plan, report *Report) error {
	path := filepath.Join(g.TargetDir, settingsFile)
	merged, err := settings.Merge(path, plan)
	if err != nil {
		return err
	}
	return g.writeFile(settingsFile, merged, report)
}

// writeProviderMarker records the provider for the container start sequence.
// The write itself goes through state.WriteMarker so the marker lifecycle
// has a single owner; this only classifies the outcome for the report.
func (g *Generator) writeProviderMarker(report *Report) error {
	rel, err := filepath.Rel(g.TargetDir, state.MarkerPath(g.TargetDir))
	if err != nil {
		return errors.ConfigError("failed to resolve provider marker path", err)
	}

	write, err := g.classify(rel, state.MarkerContent(g.Spec.Claude.Provider), report)
	if err != nil || !write {
		return err
	}
	return state.WriteMarker(g.TargetDir, g.Spec.Claude.Provider)
}

// initRepositories sets up git in the workspace and .devcontainer trees.
func (g *Generator) initRepositories(ctx context.Context) error {
	if g.DryRun {
		return nil
	}

	workspaceDir := filepath.Join(g.TargetDir, g.Spec.Workspace.Dir)
	for _, dir := range []string{workspaceDir, filepath.Join(g.TargetDir, devcontainerDir)} {
		if err := g.repos.Init(ctx, dir); err != nil {
			return err
		}
	}
	return nil
}

// classify records relPath in the report by comparing content against what
// is on disk. Existing byte-identical content is skipped; anything else is
// created or modified. It reports whether the caller should go on to write
// (always false in dry-run).
func (g *Generator) classify(relPath string, content []byte, report *Report) (bool, error) {
	existing, err := g.fs.ReadFile(filepath.Join(g.TargetDir, relPath))
	switch {
	case err == nil && bytes.Equal(existing, content):
		report.Skipped = append(report.Skipped, relPath)
		return false, nil
	case err == nil:
		report.Modified = append(report.Modified, relPath)
	case os.IsNotExist(err):
		report.Created = append(report.Created, relPath)
	default:
		return false, errors.ConfigError("failed to read existing file "+relPath, err)
	}
	return !g.DryRun, nil
}

// writeFile writes content at relPath under the target, classifying the
// outcome first.
func (g *Generator) writeFile(relPath string, content []byte, report *Report) error {
	write, err := g.classify(relPath, content, report)
	if err != nil || !write {
		return err
	}

	path := filepath.Join(g.TargetDir, relPath)
	if err := g.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.ConfigError("failed to create directory for "+relPath, err)
	}
	if err := g.fs.WriteFile(path, content, 0o644); err != nil {
		return errors.ConfigError("failed to write "+relPath, err)
	}
	return nil
}
