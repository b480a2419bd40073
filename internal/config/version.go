package config

import (
	"github.com/jubbon/isolde-sub000/internal/errors"
)

// SchemaVersion identifies a recognized isolde.yaml schema version.
// The version field distinguishes mutually incompatible document formats
// and selects which parsing and defaulting routine applies.
type SchemaVersion string

const (
	// SchemaV01 is the initial schema version.
	SchemaV01 SchemaVersion = "0.1"
)

// supportedSchemaVersions lists every recognized version, in release order.
var supportedSchemaVersions = []string{string(SchemaV01)}

// ParseSchemaVersion parses a version string like "0.1".
// An unrecognized version is a fatal, pre-flight error: no other field of the
// document is read and no files are written.
func ParseSchemaVersion(s string) (SchemaVersion, error) {
	switch s {
	case string(SchemaV01):
		return SchemaV01, nil
	default:
		return "", errors.UnsupportedSchemaVersion(s, supportedSchemaVersions)
	}
}

// SupportedSchemaVersions returns all recognized schema version strings.
func SupportedSchemaVersions() []string {
	out := make([]string, len(supportedSchemaVersions))
	copy(out, supportedSchemaVersions)
	return out
}

func (v SchemaVersion) String() string {
	return string(v)
}
