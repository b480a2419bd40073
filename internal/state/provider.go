package state

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jubbon/isolde-sub000/internal/errors"
)

// markerDir is the state directory inside a generated .devcontainer tree.
const markerDir = ".isolde"

// markerFile holds the provider name chosen at generation time.
const markerFile = "provider"

// MarkerPath returns the provider marker location for a target directory.
// The marker is scoped to the target, not the user's home, so concurrent
// containers built from different targets never race on it.
func MarkerPath(targetDir string) string {
	return filepath.Join(targetDir, ".devcontainer", markerDir, markerFile)
}

// MarkerContent returns the on-disk form of a provider marker.
func MarkerContent(provider string) []byte {
	return []byte(provider + "\n")
}

// WriteMarker records the provider for a target. Written once at generation
// (build time); the container start sequence reads it back with ReadMarker.
func WriteMarker(targetDir, provider string) error {
	path := MarkerPath(targetDir)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.ConfigError("failed to create state directory", err)
	}
	if err := os.WriteFile(path, MarkerContent(provider), 0o644); err != nil {
		return errors.ConfigError("failed to write provider marker", err)
	}
	return nil
}

// ReadMarker returns the provider recorded for a target.
func ReadMarker(targetDir string) (string, error) {
	data, err := os.ReadFile(MarkerPath(targetDir))
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.New(errors.ExitNotFound, fmt.Sprintf("no provider marker in %s: project was not generated here", targetDir))
		}
		return "", errors.ConfigError("failed to read provider marker", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Credentials are the provider secrets read at container start.
type Credentials struct {
	Token   string
	BaseURL string
}

// LookupCredentials reads credentials for a provider from a credentials
// root. Each provider owns a subdirectory holding an auth file (required)
// and an optional base_url file.
func LookupCredentials(credentialsRoot, provider string) (*Credentials, error) {
	dir := filepath.Join(credentialsRoot, provider)

	token, err := os.ReadFile(filepath.Join(dir, "auth"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ExitNotFound, fmt.Sprintf("no credentials for provider %s under %s", provider, credentialsRoot))
		}
		return nil, errors.ConfigError("failed to read credentials", err)
	}

	creds := &Credentials{Token: strings.TrimSpace(string(token))}

	baseURL, err := os.ReadFile(filepath.Join(dir, "base_url"))
	if err == nil {
		creds.BaseURL = strings.TrimSpace(string(baseURL))
	} else if !os.IsNotExist(err) {
		return nil, errors.ConfigError("failed to read credentials", err)
	}

	return creds, nil
}
