package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jubbon/isolde-sub000/internal/errors"
)

const (
	// RootEnvVar overrides catalog root discovery.
	RootEnvVar = "ISOLDE_ROOT"

	templatesDir     = "templates"
	featuresDir      = "features"
	presetsDir       = "presets"
	templateInfoFile = "template-info.yaml"
	maxSearchDepth   = 10
)

// catalogNameRegex validates template and preset names before they are used
// as path components.
var catalogNameRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// TemplateDescriptor is the parsed template-info.yaml of a project template.
// The template name doubles as the runtime language it configures.
type TemplateDescriptor struct {
	Name           string   `yaml:"name"`
	Description    string   `yaml:"description"`
	Version        string   `yaml:"version,omitempty"`
	Image          string   `yaml:"image"`
	Versions       []string `yaml:"versions,omitempty"`
	DefaultVersion string   `yaml:"default_version,omitempty"`
	Features       []string `yaml:"features,omitempty"`

	// Dir is the template directory on disk, set by the catalog loader.
	Dir string `yaml:"-"`
}

// SupportsVersion reports whether the given language version is in the
// template's supported set. A template with no version list supports any.
func (t *TemplateDescriptor) SupportsVersion(version string) bool {
	if len(t.Versions) == 0 {
		return true
	}
	return slices.Contains(t.Versions, version)
}

// PresetDescriptor is a parsed preset document. A preset layers opinionated
// defaults (language version, tooling, plugins) on top of a template.
type PresetDescriptor struct {
	Name           string                     `yaml:"name"`
	Description    string                     `yaml:"description"`
	Template       string                     `yaml:"template"`
	LangVersion    string                     `yaml:"lang_version,omitempty"`
	Features       []string                   `yaml:"features,omitempty"`
	PackageManager string                     `yaml:"package_manager,omitempty"`
	Tools          []string                   `yaml:"tools,omitempty"`
	Marketplaces   map[string]MarketplaceSpec `yaml:"marketplaces,omitempty"`
	Plugins        []PluginSpec               `yaml:"plugins,omitempty"`
}

// Catalog locates templates, feature bundles, and presets under a single
// root directory.
type Catalog struct {
	Root string
}

// FindRoot locates the catalog root: the ISOLDE_ROOT environment variable if
// set, otherwise the nearest ancestor of the working directory containing
// both templates/ and features/.
func FindRoot() (string, error) {
	if root := os.Getenv(RootEnvVar); root != "" {
		if !isCatalogRoot(root) {
			return "", errors.New(errors.ExitNotFound, fmt.Sprintf("%s=%s does not contain %s/ and %s/ directories", RootEnvVar, root, templatesDir, featuresDir))
		}
		return root, nil
	}

	dir, err := os.Getwd()
	if err != nil {
		return "", errors.ConfigError("failed to determine working directory", err)
	}

	for i := 0; i < maxSearchDepth; i++ {
		if isCatalogRoot(dir) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", errors.New(errors.ExitNotFound, fmt.Sprintf("no catalog root found: set %s or run inside a directory tree containing %s/ and %s/", RootEnvVar, templatesDir, featuresDir))
}

func isCatalogRoot(dir string) bool {
	for _, sub := range []string{templatesDir, featuresDir} {
		info, err := os.Stat(filepath.Join(dir, sub))
		if err != nil || !info.IsDir() {
			return false
		}
	}
	return true
}

// NewCatalog returns a catalog over the discovered root.
func NewCatalog() (*Catalog, error) {
	root, err := FindRoot()
	if err != nil {
		return nil, err
	}
	return &Catalog{Root: root}, nil
}

// TemplatesDir returns the directory holding project templates.
func (c *Catalog) TemplatesDir() string {
	return filepath.Join(c.Root, templatesDir)
}

// FeaturesDir returns the directory holding feature bundles.
func (c *Catalog) FeaturesDir() string {
	return filepath.Join(c.Root, featuresDir)
}

// LoadTemplate loads the descriptor of a named template.
func (c *Catalog) LoadTemplate(name string) (*TemplateDescriptor, error) {
	if err := validateCatalogName(name); err != nil {
		return nil, err
	}

	dir := filepath.Join(c.TemplatesDir(), name)
	data, err := os.ReadFile(filepath.Join(dir, templateInfoFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.TemplateNotFound(name)
		}
		return nil, errors.ConfigError(fmt.Sprintf("failed to read template %s", name), err)
	}

	var desc TemplateDescriptor
	if err := yaml.Unmarshal(data, &desc); err != nil {
		return nil, errors.ConfigError(fmt.Sprintf("failed to parse %s for template %s", templateInfoFile, name), err)
	}
	if desc.Name == "" {
		desc.Name = name
	}
	desc.Dir = dir
	return &desc, nil
}

// ListTemplates loads every template descriptor, sorted by name.
func (c *Catalog) ListTemplates() ([]*TemplateDescriptor, error) {
	entries, err := os.ReadDir(c.TemplatesDir())
	if err != nil {
		return nil, errors.ConfigError("failed to list templates", err)
	}

	var templates []*TemplateDescriptor
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		desc, err := c.LoadTemplate(entry.Name())
		if err != nil {
			return nil, err
		}
		templates = append(templates, desc)
	}
	sort.Slice(templates, func(i, j int) bool { return templates[i].Name < templates[j].Name })
	return templates, nil
}

// LoadPreset loads a named preset document.
func (c *Catalog) LoadPreset(name string) (*PresetDescriptor, error) {
	if err := validateCatalogName(name); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(c.Root, presetsDir, name+".yaml"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.PresetNotFound(name)
		}
		return nil, errors.ConfigError(fmt.Sprintf("failed to read preset %s", name), err)
	}

	var desc PresetDescriptor
	if err := yaml.Unmarshal(data, &desc); err != nil {
		return nil, errors.ConfigError(fmt.Sprintf("failed to parse preset %s", name), err)
	}
	if desc.Name == "" {
		desc.Name = name
	}
	return &desc, nil
}

// ListPresets loads every preset descriptor, sorted by name. A missing
// presets directory is not an error.
func (c *Catalog) ListPresets() ([]*PresetDescriptor, error) {
	entries, err := os.ReadDir(filepath.Join(c.Root, presetsDir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.ConfigError("failed to list presets", err)
	}

	var presets []*PresetDescriptor
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		desc, err := c.LoadPreset(strings.TrimSuffix(entry.Name(), ".yaml"))
		if err != nil {
			return nil, err
		}
		presets = append(presets, desc)
	}
	sort.Slice(presets, func(i, j int) bool { return presets[i].Name < presets[j].Name })
	return presets, nil
}

func validateCatalogName(name string) error {
	if !catalogNameRegex.MatchString(name) {
		return errors.New(errors.ExitValidation, fmt.Sprintf("invalid catalog name %q: must contain only lowercase letters, digits, underscores, or hyphens", name))
	}
	return nil
}
