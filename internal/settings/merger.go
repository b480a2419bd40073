package settings

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/jubbon/isolde-sub000/internal/errors"
	"github.com/jubbon/isolde-sub000/internal/plugin"
)

// EnabledPluginsKey is the settings document key owned by the generator.
const EnabledPluginsKey = "enabledPlugins"

// Merge computes the settings document that persists the activation plan
// into the file at path. The enabledPlugins key is replaced wholesale with
// the plan; every other top-level key of an existing document keeps its
// value (carried as raw JSON, so re-marshalling normalizes key order and
// indentation, not values). A missing file yields a document holding only
// the plan. An existing file that is not valid JSON is fatal and is never
// overwritten.
//
// Merge only computes; the caller decides whether to write (dry-run does
// not).
func Merge(path string, plan plugin.Plan) ([]byte, error) {
	doc := map[string]json.RawMessage{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, errors.SettingsParse(path, err)
		}
	case os.IsNotExist(err):
	default:
		return nil, errors.ConfigError("failed to read settings file", err)
	}

	planJSON, err := json.Marshal(plan)
	if err != nil {
		return nil, errors.ConfigError("failed to encode plugin activation plan", err)
	}
	doc[EnabledPluginsKey] = planJSON

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, errors.ConfigError("failed to encode settings file", err)
	}
	return append(out, '\n'), nil
}

// Write merges the plan into the settings file at path and writes the
// result, creating parent directories as needed.
func Write(path string, plan plugin.Plan) error {
	data, err := Merge(path, plan)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.ConfigError("failed to create settings directory", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.ConfigError("failed to write settings file", err)
	}
	return nil
}
