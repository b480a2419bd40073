package generator

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/jubbon/isolde-sub000/internal/config"
	"github.com/jubbon/isolde-sub000/internal/errors"
	"github.com/jubbon/isolde-sub000/internal/state"
	"github.com/jubbon/isolde-sub000/internal/system"
	"github.com/jubbon/isolde-sub000/internal/testutil"
	"github.com/jubbon/isolde-sub000/internal/workspace"
)

func testSpec() *config.Spec {
	return &config.Spec{
		Version:   "0.1",
		Name:      "demo",
		Workspace: config.WorkspaceSpec{Dir: "project"},
		Docker:    config.DockerSpec{Image: "python-dev:latest"},
		Claude:    config.ClaudeSpec{Version: "latest", Provider: "anthropic"},
		Runtime:   &config.RuntimeSpec{Language: "python", Version: "3.12"},
		Git:       config.GitSpec{Generated: config.GeneratedIgnored},
	}
}

func newTestGenerator(t *testing.T, env *testutil.Env, spec *config.Spec) (*Generator, *system.MockExecutor) {
	t.Helper()
	m := system.NewMockExecutor()
	g := New(spec, env.Target).
		WithRepositoryInitializer(workspace.NewRepositoryInitializerWith(m, system.DefaultFS()))
	g.FeaturesRoot = env.FeaturesDir()
	return g, m
}

func TestRun_GeneratesFullTree(t *testing.T) {
	env := testutil.NewEnv(t)
	g, m := newTestGenerator(t, env, testSpec())

	report, err := g.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	for _, rel := range []string{
		".devcontainer/devcontainer.json",
		".devcontainer/Dockerfile",
		".devcontainer/claude/config.json",
		".devcontainer/features/claude-code/install.sh",
		".devcontainer/features/proxy/install.sh",
		".devcontainer/features/plugin-manager/install.sh",
		".devcontainer/.isolde/provider",
		".claude/settings.json",
		"project/README.md",
		"isolde.yaml",
		".gitignore",
	} {
		if _, err := os.Stat(filepath.Join(env.Target, rel)); err != nil {
			t.Errorf("missing generated file %s: %v", rel, err)
		}
	}

	if !slices.Contains(report.Created, ".devcontainer/devcontainer.json") {
		t.Errorf("devcontainer.json should be reported created, report = %+v", report)
	}
	if len(report.Modified) != 0 || len(report.Skipped) != 0 {
		t.Errorf("fresh target should only create, report = %+v", report)
	}

	// Both repositories are initialized.
	var wsInit, devInit bool
	for _, line := range m.CommandLines() {
		if strings.Contains(line, filepath.Join(env.Target, "project")) && strings.Contains(line, "init") {
			wsInit = true
		}
		if strings.Contains(line, filepath.Join(env.Target, ".devcontainer")) && strings.Contains(line, "init") {
			devInit = true
		}
	}
	if !wsInit || !devInit {
		t.Errorf("both repositories should be initialized, commands = %v", m.CommandLines())
	}
}

func TestRun_RenderedContent(t *testing.T) {
	env := testutil.NewEnv(t)
	g, _ := newTestGenerator(t, env, testSpec())

	if _, err := g.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(env.Target, ".devcontainer", "devcontainer.json"))
	if err != nil {
		t.Fatal(err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("rendered devcontainer.json is not valid JSON: %v", err)
	}
	if doc["name"] != "demo" {
		t.Errorf("devcontainer name = %v", doc["name"])
	}
	if strings.Contains(string(data), "{{") {
		t.Errorf("rendered file still has placeholders: %s", data)
	}

	marker, err := os.ReadFile(filepath.Join(env.Target, ".devcontainer", ".isolde", "provider"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(string(marker)) != "anthropic" {
		t.Errorf("provider marker = %q", marker)
	}
}

func TestRun_SecondRunSkipsEverything(t *testing.T) {
	env := testutil.NewEnv(t)
	g, m := newTestGenerator(t, env, testSpec())

	if _, err := g.Run(context.Background()); err != nil {
		t.Fatalf("first Run() error = %v", err)
	}

	// Pretend the first run's repositories now have commits.
	m.Reset()
	m.AddResponse("rev-parse", []byte("abc"), nil)
	mkGitDirs(t, env.Target)

	report, err := g.Run(context.Background())
	if err != nil {
		t.Fatalf("second Run() error = %v", err)
	}

	if len(report.Created) != 0 {
		t.Errorf("second run should create nothing, created = %v", report.Created)
	}
	// Feature bundles are replaced wholesale every run, so they are the only
	// modified entries.
	for _, rel := range report.Modified {
		if !strings.HasPrefix(rel, ".devcontainer/features/") {
			t.Errorf("unexpected modification on unchanged target: %s", rel)
		}
	}
	if !slices.Contains(report.Skipped, ".devcontainer/devcontainer.json") {
		t.Errorf("unchanged devcontainer.json should be skipped, report = %+v", report)
	}
}

func mkGitDirs(t *testing.T, target string) {
	t.Helper()
	for _, dir := range []string{filepath.Join(target, "project", ".git"), filepath.Join(target, ".devcontainer", ".git")} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
	}
}

func TestRun_ProviderMarkerReadableByState(t *testing.T) {
	env := testutil.NewEnv(t)
	spec := testSpec()
	spec.Claude.Provider = "vertex"
	g, _ := newTestGenerator(t, env, spec)

	if _, err := g.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// The marker written during generation is the one the container start
	// sequence reads back.
	provider, err := state.ReadMarker(env.Target)
	if err != nil {
		t.Fatalf("ReadMarker() error = %v", err)
	}
	if provider != "vertex" {
		t.Errorf("ReadMarker() = %q, want vertex", provider)
	}
}

func TestRun_DryRunWritesNothing(t *testing.T) {
	env := testutil.NewEnv(t)
	g, m := newTestGenerator(t, env, testSpec())
	g.DryRun = true

	report, err := g.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if report.Total() == 0 {
		t.Error("dry run should still compute the full report")
	}
	if !slices.Contains(report.Created, ".devcontainer/devcontainer.json") {
		t.Errorf("dry run report = %+v", report)
	}

	entries, err := os.ReadDir(env.Target)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("dry run wrote into the target: %v", entries)
	}
	if len(m.Commands) != 0 {
		t.Errorf("dry run ran git commands: %v", m.CommandLines())
	}
}

func TestRun_ValidationFailsBeforeAnyWrite(t *testing.T) {
	env := testutil.NewEnv(t)
	spec := testSpec()
	spec.Claude.Provider = "gemini"
	g, _ := newTestGenerator(t, env, spec)

	_, err := g.Run(context.Background())
	if err == nil {
		t.Fatal("Run() should fail validation")
	}
	if code := errors.GetExitCode(err); code != errors.ExitValidation {
		t.Errorf("GetExitCode() = %d, want %d", code, errors.ExitValidation)
	}

	entries, _ := os.ReadDir(env.Target)
	if len(entries) != 0 {
		t.Errorf("validation failure must precede any write, target has %v", entries)
	}
}

func TestRun_MissingBundleAbortsButKeepsWrites(t *testing.T) {
	env := testutil.NewEnv(t)
	if err := os.RemoveAll(filepath.Join(env.FeaturesDir(), "proxy")); err != nil {
		t.Fatal(err)
	}
	g, m := newTestGenerator(t, env, testSpec())

	_, err := g.Run(context.Background())
	if err == nil {
		t.Fatal("Run() should fail on the missing bundle")
	}
	if code := errors.GetExitCode(err); code != errors.ExitFeatureMissing {
		t.Errorf("GetExitCode() = %d, want %d", code, errors.ExitFeatureMissing)
	}

	// Rendered artifacts before the failing step stay on disk; later steps
	// never ran.
	if _, err := os.Stat(filepath.Join(env.Target, ".devcontainer", "devcontainer.json")); err != nil {
		t.Error("artifacts written before the failure should remain")
	}
	if _, err := os.Stat(filepath.Join(env.Target, ".claude", "settings.json")); !os.IsNotExist(err) {
		t.Error("settings merge should not run after a fatal provisioning error")
	}
	if len(m.Commands) != 0 {
		t.Errorf("git should not run after a fatal error: %v", m.CommandLines())
	}
}

func TestRun_ExtraBundles(t *testing.T) {
	env := testutil.NewEnv(t)
	env.AddFeatureBundle(t, "docker-in-docker")
	g, _ := newTestGenerator(t, env, testSpec())
	g.ExtraBundles = []string{"docker-in-docker", "claude-code"}

	report, err := g.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(env.Target, ".devcontainer", "features", "docker-in-docker", "install.sh")); err != nil {
		t.Errorf("extra bundle not provisioned: %v", err)
	}

	// A duplicate of a core bundle is provisioned once.
	var count int
	for _, rel := range report.Created {
		if strings.HasPrefix(rel, ".devcontainer/features/claude-code") {
			count++
		}
	}
	if count != 1 {
		t.Errorf("claude-code reported %d times, want 1", count)
	}
}

func TestRun_PluginPlanInSettings(t *testing.T) {
	env := testutil.NewEnv(t)
	env.AddRegistry(t, `{"plugins": [{"id": "formatter@main"}, {"id": "linter@main"}]}`)

	spec := testSpec()
	spec.Marketplaces = map[string]config.MarketplaceSpec{"main": {URL: "https://example.com"}}
	spec.Plugins = []config.PluginSpec{
		{Marketplace: "main", Name: "formatter", Activate: true},
		{Marketplace: "main", Name: "linter", Activate: false},
		{Marketplace: "main", Name: "ghost", Activate: true},
	}
	g, _ := newTestGenerator(t, env, spec)

	report, err := g.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// The unresolvable name is a warning, never a failure.
	if len(report.Warnings) != 1 || !strings.Contains(report.Warnings[0], "ghost") {
		t.Errorf("warnings = %v", report.Warnings)
	}

	data, err := os.ReadFile(filepath.Join(env.Target, ".claude", "settings.json"))
	if err != nil {
		t.Fatal(err)
	}
	var doc struct {
		EnabledPlugins map[string]bool `json:"enabledPlugins"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	if !doc.EnabledPlugins["formatter@main"] {
		t.Errorf("formatter@main should be active, got %v", doc.EnabledPlugins)
	}
	if active, planned := doc.EnabledPlugins["linter@main"]; !planned || active {
		t.Errorf("linter@main should be planned inactive, got %v", doc.EnabledPlugins)
	}
	if _, planned := doc.EnabledPlugins["ghost"]; planned {
		t.Errorf("unresolved name must not appear in the plan, got %v", doc.EnabledPlugins)
	}
}

func TestRun_SettingsSiblingsPreserved(t *testing.T) {
	env := testutil.NewEnv(t)
	settingsPath := filepath.Join(env.Target, ".claude", "settings.json")
	if err := os.MkdirAll(filepath.Dir(settingsPath), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(settingsPath, []byte(`{"theme": "dark", "enabledPlugins": {"old@gone": true}}`), 0o644); err != nil {
		t.Fatal(err)
	}

	g, _ := newTestGenerator(t, env, testSpec())
	if _, err := g.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	data, _ := os.ReadFile(settingsPath)
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	if doc["theme"] != "dark" {
		t.Errorf("sibling key should survive, doc = %v", doc)
	}
	if enabled, ok := doc["enabledPlugins"].(map[string]any); !ok || len(enabled) != 0 {
		t.Errorf("enabledPlugins should be replaced wholesale, doc = %v", doc)
	}
}

func TestRun_UnparseableSettingsIsFatal(t *testing.T) {
	env := testutil.NewEnv(t)
	settingsPath := filepath.Join(env.Target, ".claude", "settings.json")
	if err := os.MkdirAll(filepath.Dir(settingsPath), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(settingsPath, []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}

	g, _ := newTestGenerator(t, env, testSpec())
	_, err := g.Run(context.Background())
	if code := errors.GetExitCode(err); code != errors.ExitSettingsParse {
		t.Errorf("GetExitCode() = %d, want %d (err = %v)", code, errors.ExitSettingsParse, err)
	}

	data, _ := os.ReadFile(settingsPath)
	if string(data) != "{broken" {
		t.Errorf("broken settings must never be overwritten, got %q", data)
	}
}
