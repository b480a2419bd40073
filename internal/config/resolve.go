package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jubbon/isolde-sub000/internal/errors"
	"github.com/jubbon/isolde-sub000/internal/logging"
)

// versionProbe reads only the version field. The schema version is checked
// before any other field is interpreted, so a document written for a future
// schema fails cleanly instead of half-parsing.
type versionProbe struct {
	Version string `yaml:"version"`
}

// Parse decodes an isolde.yaml document. The schema version is probed first;
// the remaining fields are decoded only when the version is recognized.
// Defaults are applied but the result is NOT validated; call Validate
// separately so callers can distinguish parse failures from field violations.
func Parse(data []byte) (*Spec, error) {
	var probe versionProbe
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return nil, errors.ConfigError("failed to parse spec document", err)
	}

	version, err := ParseSchemaVersion(probe.Version)
	if err != nil {
		return nil, err
	}

	switch version {
	case SchemaV01:
		return parseV01(data)
	default:
		return nil, errors.UnsupportedSchemaVersion(probe.Version, supportedSchemaVersions)
	}
}

func parseV01(data []byte) (*Spec, error) {
	var spec Spec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, errors.ConfigError("failed to parse spec document", err)
	}
	spec.applyDefaults()
	return &spec, nil
}

// ParseFile reads and parses a spec document from disk.
func ParseFile(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.ConfigError("failed to read spec document", err)
	}
	return Parse(data)
}

// Resolver builds a validated Spec from a template, an optional preset, and
// user overrides. Precedence, lowest to highest: template defaults, preset
// values, user overrides.
type Resolver struct {
	Template *TemplateDescriptor
	Preset   *PresetDescriptor

	// User overrides. Zero values mean "not set".
	Name        string
	LangVersion string
	Provider    string
	Proxy       *ProxySpec
	GitPolicy   string
}

// Resolve produces a complete, validated Spec. Every default is applied and
// every field constraint checked; the returned error is either a single
// fatal error or an aggregate ValidationError naming all violated fields.
func (r *Resolver) Resolve() (*Spec, error) {
	spec := &Spec{
		Version: string(SchemaV01),
		Name:    r.Name,
		Docker: DockerSpec{
			Image: r.Template.Image,
		},
	}

	langVersion := r.Template.DefaultVersion
	if r.Preset != nil && r.Preset.LangVersion != "" {
		langVersion = r.Preset.LangVersion
	}
	if r.LangVersion != "" {
		langVersion = r.LangVersion
	}

	if langVersion != "" {
		if !r.Template.SupportsVersion(langVersion) {
			return nil, errors.UnsupportedLangVersion(r.Template.Name, langVersion, r.Template.Versions)
		}
		spec.Runtime = &RuntimeSpec{
			Language: r.Template.Name,
			Version:  langVersion,
		}
	}

	if r.Preset != nil {
		r.applyPreset(spec)
	}

	if r.Provider != "" {
		spec.Claude.Provider = r.Provider
	}
	if r.Proxy != nil {
		spec.Proxy = r.Proxy
	}
	if r.GitPolicy != "" {
		spec.Git.Generated = GeneratedPolicy(r.GitPolicy)
	}

	spec.applyDefaults()

	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return spec, nil
}

// applyPreset folds preset values into the spec. Preset plugins are appended
// after explicit ones; an explicit declaration of the same name wins.
func (r *Resolver) applyPreset(spec *Spec) {
	p := r.Preset

	if p.PackageManager != "" && spec.Runtime != nil {
		spec.Runtime.PackageManager = p.PackageManager
	}
	if len(p.Tools) > 0 && spec.Runtime != nil {
		spec.Runtime.Tools = append(spec.Runtime.Tools, p.Tools...)
	}

	for name, m := range p.Marketplaces {
		if spec.Marketplaces == nil {
			spec.Marketplaces = make(map[string]MarketplaceSpec)
		}
		if _, exists := spec.Marketplaces[name]; !exists {
			spec.Marketplaces[name] = m
		}
	}

	for _, plugin := range p.Plugins {
		if spec.HasPlugin(plugin.Name) {
			logging.Debug("preset plugin shadowed by explicit declaration", "plugin", plugin.Name)
			continue
		}
		spec.Plugins = append(spec.Plugins, plugin)
	}
}
