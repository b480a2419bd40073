package plugin

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func testRegistry() *Registry {
	return NewRegistry([]RegistryEntry{
		{ID: "zeta-formatter@community"},
		{ID: "formatter@main"},
		{ID: "linter@main"},
		{ID: "formatter@community"},
	})
}

func TestRegistry_SortsIDs(t *testing.T) {
	ids := testRegistry().IDs()
	want := []string{"formatter@community", "formatter@main", "linter@main", "zeta-formatter@community"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("IDs() = %v, want %v", ids, want)
	}
}

func TestResolveName(t *testing.T) {
	r := NewResolver(testRegistry())

	tests := []struct {
		name  string
		input string
		want  string
	}{
		// Exact prefix match beats substring, and the lexicographically
		// first exact match wins.
		{"exact over substring", "formatter", "formatter@community"},
		{"full id", "linter@main", "linter@main"},
		{"substring fallback", "zeta", "zeta-formatter@community"},
		{"no match", "ghostwriter", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.ResolveName(tt.input); got != tt.want {
				t.Errorf("ResolveName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestBuildPlan(t *testing.T) {
	r := NewResolver(NewRegistry([]RegistryEntry{
		{ID: "a@m1"},
		{ID: "b@m2"},
	}))

	plan, warnings := r.BuildPlan([]string{"a"}, []string{"b"})
	if len(warnings) != 0 {
		t.Errorf("warnings = %v", warnings)
	}
	want := Plan{"a@m1": true, "b@m2": false}
	if !reflect.DeepEqual(plan, want) {
		t.Errorf("BuildPlan() = %v, want %v", plan, want)
	}
}

func TestBuildPlan_ActivationWins(t *testing.T) {
	r := NewResolver(NewRegistry([]RegistryEntry{{ID: "a@m1"}}))

	// The same ID in both lists stays active.
	plan, _ := r.BuildPlan([]string{"a"}, []string{"a@m1"})
	if !plan["a@m1"] {
		t.Errorf("activation should win over deactivation, plan = %v", plan)
	}
}

func TestBuildPlan_UnknownNameIsWarningNotError(t *testing.T) {
	r := NewResolver(NewRegistry([]RegistryEntry{{ID: "a@m1"}}))

	plan, warnings := r.BuildPlan([]string{"a", "ghost"}, nil)
	if len(warnings) != 1 || warnings[0].Name != "ghost" {
		t.Errorf("warnings = %v, want one for ghost", warnings)
	}
	if _, planned := plan["ghost"]; planned {
		t.Error("unresolved name must be dropped from the plan")
	}
	if !plan["a@m1"] {
		t.Error("resolution should continue past an unresolved name")
	}
}

func TestBuildPlan_FreshMapPerRun(t *testing.T) {
	r := NewResolver(NewRegistry([]RegistryEntry{{ID: "a@m1"}}))

	first, _ := r.BuildPlan([]string{"a"}, nil)
	second, _ := r.BuildPlan(nil, []string{"a"})

	if !first["a@m1"] {
		t.Error("first plan should keep its own state")
	}
	if second["a@m1"] {
		t.Error("second plan must not inherit the first plan's entries")
	}
}

func TestLoadRegistry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "installed.json")
	doc := `{"plugins": [{"id": "b@m", "scope": "user"}, {"id": "a@m", "installPath": "/opt/a"}]}`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry() error = %v", err)
	}
	if reg.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", reg.Len())
	}
	if ids := reg.IDs(); ids[0] != "a@m" {
		t.Errorf("IDs() = %v, want sorted", ids)
	}
}

func TestLoadRegistry_MissingFile(t *testing.T) {
	reg, err := LoadRegistry(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("LoadRegistry() error = %v", err)
	}
	if reg.Len() != 0 {
		t.Errorf("missing file should yield an empty registry, got %d entries", reg.Len())
	}
}

func TestLoadRegistry_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "installed.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadRegistry(path); err == nil {
		t.Fatal("LoadRegistry() should fail on malformed JSON")
	}
}
