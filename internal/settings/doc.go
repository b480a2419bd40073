// Package settings persists plugin activation plans into the assistant's
// settings.json document.
//
// The generator owns exactly one key, enabledPlugins, and replaces it
// wholesale on every run. All other keys belong to the user; their values
// are carried through as raw JSON, though re-marshalling the document
// normalizes top-level key order and indentation. A settings file that
// cannot be parsed is never overwritten.
package settings
