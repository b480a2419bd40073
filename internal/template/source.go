package template

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jubbon/isolde-sub000/internal/errors"
)

//go:embed assets
var assets embed.FS

// Artifact names recognized by Source.
const (
	ArtifactDevcontainer = "devcontainer.json"
	ArtifactDockerfile   = "Dockerfile"
	ArtifactClaudeConfig = "claude-config.json"
	ArtifactReadme       = "README.md"
)

// Source returns the template text for a named artifact. A file of the same
// name in templateDir overrides the embedded default; templateDir may be
// empty to use the defaults only.
func Source(templateDir, name string) ([]byte, error) {
	if templateDir != "" {
		data, err := os.ReadFile(filepath.Join(templateDir, name))
		if err == nil {
			return data, nil
		}
		if !os.IsNotExist(err) {
			return nil, errors.ConfigError(fmt.Sprintf("failed to read template override %s", name), err)
		}
	}

	data, err := assets.ReadFile("assets/" + name)
	if err != nil {
		return nil, errors.New(errors.ExitNotFound, fmt.Sprintf("unknown template artifact: %s", name))
	}
	return data, nil
}
