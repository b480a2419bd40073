package template

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/jubbon/isolde-sub000/internal/config"
	"github.com/jubbon/isolde-sub000/internal/errors"
)

// Table maps token names to their resolved string values. An empty string is
// a defined value; only tokens absent from the table are render errors.
type Table map[string]string

// languageVersionTokens maps a runtime language to the version token its
// Dockerfile templates use. Aliases share a token.
var languageVersionTokens = map[string]string{
	"python":     "PYTHON_VERSION",
	"node":       "NODE_VERSION",
	"nodejs":     "NODE_VERSION",
	"javascript": "NODE_VERSION",
	"rust":       "RUST_VERSION",
	"go":         "GO_VERSION",
	"golang":     "GO_VERSION",
}

// defaultPackageManagers maps a language to the tool-install command used
// when the spec does not name a package manager.
var defaultPackageManagers = map[string]string{
	"python":     "pip",
	"node":       "npm",
	"nodejs":     "npm",
	"javascript": "npm",
	"rust":       "cargo",
	"go":         "go",
}

// Feature bundle mount paths inside the generated .devcontainer directory.
const (
	featureClaudeCodePath    = "./features/claude-code"
	featureProxyPath         = "./features/proxy"
	featurePluginManagerPath = "./features/plugin-manager"
)

// BuildTable derives the full token resolution table from a resolved spec.
// The table is built once per generation run; rendering the same spec always
// yields byte-identical output because JSON values are marshalled with
// sorted keys and plugin arrays keep declaration order.
func BuildTable(spec *config.Spec) (Table, error) {
	table := Table{
		"PROJECT_NAME":            spec.Name,
		"DOCKER_IMAGE":            spec.Docker.Image,
		"CLAUDE_VERSION":          spec.Claude.Version,
		"CLAUDE_PROVIDER":         spec.Claude.Provider,
		"FEATURES_CLAUDE_CODE":    featureClaudeCodePath,
		"FEATURES_PROXY":          featureProxyPath,
		"FEATURES_PLUGIN_MANAGER": featurePluginManagerPath,
	}

	models, err := json.Marshal(spec.Claude.Models)
	if err != nil {
		return nil, errors.ConfigError("failed to encode claude.models", err)
	}
	if spec.Claude.Models == nil {
		models = []byte("{}")
	}
	table["CLAUDE_MODELS"] = string(models)

	activate, err := marshalNames(spec.ActivatePlugins())
	if err != nil {
		return nil, err
	}
	deactivate, err := marshalNames(spec.DeactivatePlugins())
	if err != nil {
		return nil, err
	}
	table["CLAUDE_ACTIVATE_PLUGINS"] = activate
	table["CLAUDE_DEACTIVATE_PLUGINS"] = deactivate

	if spec.Proxy != nil {
		table["PROXY_ENABLED"] = "true"
		table["HTTP_PROXY"] = spec.Proxy.HTTP
		table["HTTPS_PROXY"] = spec.Proxy.HTTPS
		table["NO_PROXY"] = spec.Proxy.NoProxy
	} else {
		table["PROXY_ENABLED"] = "false"
		table["HTTP_PROXY"] = ""
		table["HTTPS_PROXY"] = ""
		table["NO_PROXY"] = ""
	}

	if spec.Runtime != nil {
		token, ok := languageVersionTokens[spec.Runtime.Language]
		if !ok {
			return nil, errors.ConfigError(fmt.Sprintf("no version token for language %q", spec.Runtime.Language), nil)
		}
		table[token] = spec.Runtime.Version
		table["RUNTIME_SETUP"] = runtimeSetup(spec.Runtime)
	} else {
		table["RUNTIME_SETUP"] = ""
	}

	return table, nil
}

// runtimeSetup renders the Dockerfile lines that install the spec's extra
// tools. Every argument is shell-quoted, one RUN line per tool.
func runtimeSetup(rt *config.RuntimeSpec) string {
	if len(rt.Tools) == 0 {
		return ""
	}

	pm := rt.PackageManager
	if pm == "" {
		pm = defaultPackageManagers[rt.Language]
	}
	if pm == "" {
		pm = "apt-get"
	}

	lines := make([]string, 0, len(rt.Tools))
	for _, tool := range rt.Tools {
		lines = append(lines, "RUN "+shellquote.Join(pm, "install", tool))
	}
	return strings.Join(lines, "\n")
}

func marshalNames(names []string) (string, error) {
	if names == nil {
		names = []string{}
	}
	data, err := json.Marshal(names)
	if err != nil {
		return "", errors.ConfigError("failed to encode plugin names", err)
	}
	return string(data), nil
}
