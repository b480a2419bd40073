package config

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jubbon/isolde-sub000/internal/errors"
)

const (
	// SpecFileName is the specification document read from the project root.
	SpecFileName = "isolde.yaml"

	// DefaultWorkspaceDir is the workspace directory used when the document
	// does not set one.
	DefaultWorkspaceDir = "./project"

	// DefaultClaudeVersion is the assistant CLI version used when unset.
	DefaultClaudeVersion = "latest"

	// DefaultClaudeProvider is the assistant provider used when unset.
	DefaultClaudeProvider = "anthropic"

	// DefaultNoProxy is the proxy bypass list used when proxying is
	// configured without an explicit bypass list.
	DefaultNoProxy = "localhost,127.0.0.1,.local"
)

// ValidProviders is the fixed set of recognized assistant providers.
var ValidProviders = []string{"anthropic", "openai", "bedrock", "vertex", "azure"}

// projectNameRegex validates project names.
// Names must start with a lowercase letter or digit, followed by lowercase
// letters, digits, underscores, or hyphens. Maximum length is 63 characters
// (common container name limit).
var projectNameRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,62}$`)

// ValidateProjectName checks if a project name is valid.
func ValidateProjectName(name string) error {
	if name == "" {
		return fmt.Errorf("project name cannot be empty")
	}

	if !projectNameRegex.MatchString(name) {
		return fmt.Errorf("invalid project name %q: must start with a lowercase letter or digit, contain only lowercase letters, digits, underscores, or hyphens, and be at most 63 characters", name)
	}

	return nil
}

// Spec is a fully resolved project specification (isolde.yaml).
// A Spec returned by Resolve has every default applied; it is owned by a
// single generation run and never mutated afterwards.
type Spec struct {
	Version      string                     `yaml:"version"`
	Name         string                     `yaml:"name"`
	Workspace    WorkspaceSpec              `yaml:"workspace"`
	Docker       DockerSpec                 `yaml:"docker"`
	Claude       ClaudeSpec                 `yaml:"claude"`
	Runtime      *RuntimeSpec               `yaml:"runtime,omitempty"`
	Proxy        *ProxySpec                 `yaml:"proxy,omitempty"`
	Marketplaces map[string]MarketplaceSpec `yaml:"marketplaces,omitempty"`
	Plugins      []PluginSpec               `yaml:"plugins,omitempty"`
	Git          GitSpec                    `yaml:"git"`
}

// WorkspaceSpec configures the workspace directory.
type WorkspaceSpec struct {
	Dir string `yaml:"dir"`
}

// DockerSpec configures the container image.
type DockerSpec struct {
	Image     string   `yaml:"image"`
	BuildArgs []string `yaml:"build_args,omitempty"`
}

// ClaudeSpec configures the assistant CLI.
type ClaudeSpec struct {
	Version  string            `yaml:"version"`
	Provider string            `yaml:"provider"`
	Models   map[string]string `yaml:"models,omitempty"`
}

// RuntimeSpec configures the project language runtime.
type RuntimeSpec struct {
	Language       string   `yaml:"language"`
	Version        string   `yaml:"version"`
	PackageManager string   `yaml:"package_manager,omitempty"`
	Tools          []string `yaml:"tools,omitempty"`
}

// ProxySpec configures corporate proxy settings.
type ProxySpec struct {
	HTTP    string `yaml:"http,omitempty"`
	HTTPS   string `yaml:"https,omitempty"`
	NoProxy string `yaml:"no_proxy,omitempty"`
}

// MarketplaceSpec names a plugin source.
type MarketplaceSpec struct {
	URL string `yaml:"url"`
}

// PluginSpec declares a plugin and whether it should be activated.
type PluginSpec struct {
	Marketplace string `yaml:"marketplace,omitempty"`
	Name        string `yaml:"name"`
	Activate    bool   `yaml:"activate"`
}

// UnmarshalYAML applies the activate default (true) before decoding.
func (p *PluginSpec) UnmarshalYAML(value *yaml.Node) error {
	type rawPlugin PluginSpec
	raw := rawPlugin{Activate: true}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	*p = PluginSpec(raw)
	return nil
}

// GeneratedPolicy controls how generated files are handled in git.
type GeneratedPolicy string

const (
	// GeneratedIgnored adds generated files to .gitignore.
	GeneratedIgnored GeneratedPolicy = "ignored"
	// GeneratedCommitted commits generated files.
	GeneratedCommitted GeneratedPolicy = "committed"
	// GeneratedLinguist marks generated files linguist-generated in .gitattributes.
	GeneratedLinguist GeneratedPolicy = "linguist-generated"
)

// GitSpec configures version-control behavior for the generated tree.
type GitSpec struct {
	Generated GeneratedPolicy `yaml:"generated"`
}

// applyDefaults fills in every optional field, so downstream consumers never
// see an undefined value.
func (s *Spec) applyDefaults() {
	if s.Workspace.Dir == "" {
		s.Workspace.Dir = DefaultWorkspaceDir
	}
	if s.Claude.Version == "" {
		s.Claude.Version = DefaultClaudeVersion
	}
	if s.Claude.Provider == "" {
		s.Claude.Provider = DefaultClaudeProvider
	}
	if s.Proxy != nil && s.Proxy.NoProxy == "" {
		s.Proxy.NoProxy = DefaultNoProxy
	}
	if s.Git.Generated == "" {
		s.Git.Generated = GeneratedIgnored
	}
}

// Validate checks every field constraint and returns an aggregate error
// naming all violated fields, or nil. It never stops at the first violation.
func (s *Spec) Validate() error {
	var violations []errors.FieldViolation

	if err := ValidateProjectName(s.Name); err != nil {
		violations = append(violations, errors.FieldViolation{Field: "name", Message: err.Error()})
	}

	if s.Workspace.Dir == "" {
		violations = append(violations, errors.FieldViolation{Field: "workspace.dir", Message: "cannot be empty"})
	}

	if s.Docker.Image == "" {
		violations = append(violations, errors.FieldViolation{Field: "docker.image", Message: "cannot be empty"})
	}

	if !slices.Contains(ValidProviders, s.Claude.Provider) {
		violations = append(violations, errors.FieldViolation{
			Field:   "claude.provider",
			Message: fmt.Sprintf("invalid provider %q, must be one of: %s", s.Claude.Provider, strings.Join(ValidProviders, ", ")),
		})
	}

	switch s.Git.Generated {
	case GeneratedIgnored, GeneratedCommitted, GeneratedLinguist:
	default:
		violations = append(violations, errors.FieldViolation{
			Field:   "git.generated",
			Message: fmt.Sprintf("invalid policy %q, must be one of: ignored, committed, linguist-generated", s.Git.Generated),
		})
	}

	for i, plugin := range s.Plugins {
		if plugin.Name == "" {
			violations = append(violations, errors.FieldViolation{
				Field:   fmt.Sprintf("plugins[%d].name", i),
				Message: "cannot be empty",
			})
		}
		// Marketplace is optional for preset-sourced short names; when set
		// it must reference a declared marketplace.
		if plugin.Marketplace != "" {
			if _, ok := s.Marketplaces[plugin.Marketplace]; !ok {
				violations = append(violations, errors.FieldViolation{
					Field:   fmt.Sprintf("plugins[%d].marketplace", i),
					Message: fmt.Sprintf("plugin %q references unknown marketplace %q", plugin.Name, plugin.Marketplace),
				})
			}
		}
	}

	if len(violations) > 0 {
		return &errors.ValidationError{Violations: violations}
	}
	return nil
}

// ActivatePlugins returns the names of plugins declared with activate=true,
// in declaration order.
func (s *Spec) ActivatePlugins() []string {
	var names []string
	for _, p := range s.Plugins {
		if p.Activate {
			names = append(names, p.Name)
		}
	}
	return names
}

// DeactivatePlugins returns the names of plugins declared with
// activate=false, in declaration order.
func (s *Spec) DeactivatePlugins() []string {
	var names []string
	for _, p := range s.Plugins {
		if !p.Activate {
			names = append(names, p.Name)
		}
	}
	return names
}

// HasPlugin reports whether a plugin with the given name is declared.
func (s *Spec) HasPlugin(name string) bool {
	for _, p := range s.Plugins {
		if p.Name == name {
			return true
		}
	}
	return false
}

// Marshal serializes the spec back to YAML.
func (s *Spec) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return nil, errors.ConfigError("failed to serialize spec", err)
	}
	return data, nil
}
