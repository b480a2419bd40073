package state

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jubbon/isolde-sub000/internal/errors"
)

func TestMarkerRoundTrip(t *testing.T) {
	target := t.TempDir()

	if err := WriteMarker(target, "bedrock"); err != nil {
		t.Fatalf("WriteMarker() error = %v", err)
	}

	provider, err := ReadMarker(target)
	if err != nil {
		t.Fatalf("ReadMarker() error = %v", err)
	}
	if provider != "bedrock" {
		t.Errorf("ReadMarker() = %q, want bedrock", provider)
	}
}

func TestMarker_TargetScoped(t *testing.T) {
	a := t.TempDir()
	b := t.TempDir()

	if err := WriteMarker(a, "anthropic"); err != nil {
		t.Fatal(err)
	}
	if err := WriteMarker(b, "vertex"); err != nil {
		t.Fatal(err)
	}

	// Each target keeps its own marker.
	if p, _ := ReadMarker(a); p != "anthropic" {
		t.Errorf("target a marker = %q", p)
	}
	if p, _ := ReadMarker(b); p != "vertex" {
		t.Errorf("target b marker = %q", p)
	}
}

func TestWriteMarker_MatchesMarkerContent(t *testing.T) {
	target := t.TempDir()

	if err := WriteMarker(target, "openai"); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(MarkerPath(target))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != string(MarkerContent("openai")) {
		t.Errorf("marker on disk = %q, want %q", data, MarkerContent("openai"))
	}
}

func TestReadMarker_Missing(t *testing.T) {
	_, err := ReadMarker(t.TempDir())
	if err == nil {
		t.Fatal("ReadMarker() should fail without a marker")
	}
	if code := errors.GetExitCode(err); code != errors.ExitNotFound {
		t.Errorf("GetExitCode() = %d, want %d", code, errors.ExitNotFound)
	}
}

func TestLookupCredentials(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "openai")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "auth"), []byte("sk-test\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "base_url"), []byte("https://proxy.internal/v1\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	creds, err := LookupCredentials(root, "openai")
	if err != nil {
		t.Fatalf("LookupCredentials() error = %v", err)
	}
	if creds.Token != "sk-test" {
		t.Errorf("Token = %q", creds.Token)
	}
	if creds.BaseURL != "https://proxy.internal/v1" {
		t.Errorf("BaseURL = %q", creds.BaseURL)
	}
}

func TestLookupCredentials_BaseURLOptional(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "anthropic")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "auth"), []byte("token"), 0o600); err != nil {
		t.Fatal(err)
	}

	creds, err := LookupCredentials(root, "anthropic")
	if err != nil {
		t.Fatalf("LookupCredentials() error = %v", err)
	}
	if creds.BaseURL != "" {
		t.Errorf("BaseURL = %q, want empty", creds.BaseURL)
	}
}

func TestLookupCredentials_MissingAuth(t *testing.T) {
	_, err := LookupCredentials(t.TempDir(), "azure")
	if err == nil {
		t.Fatal("LookupCredentials() should fail without an auth file")
	}
	if code := errors.GetExitCode(err); code != errors.ExitNotFound {
		t.Errorf("GetExitCode() = %d, want %d", code, errors.ExitNotFound)
	}
}
