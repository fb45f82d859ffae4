package manifest

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "package.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing manifest: %v", err)
	}
	return path
}

func TestRead_BaseFields(t *testing.T) {
	path := writeManifest(t, t.TempDir(), `{
		"name": "@acme/app",
		"version": "1.2.0",
		"private": true,
		"dependencies": {"lodash": "^4.0.0", "pkg-b": "*"}
	}`)

	m, err := Read(path)
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}
	if m.Name != "@acme/app" {
		t.Errorf("Name = %q, want %q", m.Name, "@acme/app")
	}
	if m.Version != "1.2.0" {
		t.Errorf("Version = %q, want %q", m.Version, "1.2.0")
	}
	if !m.Private {
		t.Error("Private = false, want true")
	}
	if len(m.Dependencies) != 2 {
		t.Errorf("len(Dependencies) = %d, want 2", len(m.Dependencies))
	}
}

func TestRead_FileNotFound(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "package.json"))
	if err == nil {
		t.Fatal("expected error for nonexistent file, got nil")
	}
}

func TestRead_InvalidJSON(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "not json at all")
	_, err := Read(path)
	if err == nil {
		t.Fatal("expected decode error, got nil")
	}
}

func TestRead_NoDependencies(t *testing.T) {
	path := writeManifest(t, t.TempDir(), `{"name": "leaf", "version": "0.0.1"}`)
	m, err := Read(path)
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}
	if m.Dependencies != nil {
		t.Errorf("Dependencies = %v, want nil", m.Dependencies)
	}
	if names := m.DependencyNames(); names != nil {
		t.Errorf("DependencyNames() = %v, want nil", names)
	}
}

func TestWorkspaceList_ArrayForm(t *testing.T) {
	path := writeManifest(t, t.TempDir(), `{
		"name": "root",
		"workspaces": ["pkgA", "pkgB"]
	}`)
	m, err := Read(path)
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}
	want := WorkspaceList{"pkgA", "pkgB"}
	if !reflect.DeepEqual(m.Workspaces, want) {
		t.Errorf("Workspaces = %v, want %v", m.Workspaces, want)
	}
}

func TestWorkspaceList_ObjectForm(t *testing.T) {
	path := writeManifest(t, t.TempDir(), `{
		"name": "root",
		"workspaces": {"packages": ["packages/a", "packages/b"]}
	}`)
	m, err := Read(path)
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}
	want := WorkspaceList{"packages/a", "packages/b"}
	if !reflect.DeepEqual(m.Workspaces, want) {
		t.Errorf("Workspaces = %v, want %v", m.Workspaces, want)
	}
}

func TestWorkspaceList_ObjectFormWithoutPackages(t *testing.T) {
	path := writeManifest(t, t.TempDir(), `{
		"name": "root",
		"workspaces": {"nohoist": ["**"]}
	}`)
	m, err := Read(path)
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}
	if len(m.Workspaces) != 0 {
		t.Errorf("Workspaces = %v, want empty", m.Workspaces)
	}
}

func TestDependencyNames_Sorted(t *testing.T) {
	m := &Manifest{Dependencies: map[string]string{
		"zlib": "*", "@scope/a": "^1.0.0", "lodash": "^4.0.0",
	}}
	want := []string{"@scope/a", "lodash", "zlib"}
	if got := m.DependencyNames(); !reflect.DeepEqual(got, want) {
		t.Errorf("DependencyNames() = %v, want %v", got, want)
	}
}

func TestReadDir(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `{"name": "pkg-a", "version": "1.0.0"}`)

	m, err := ReadDir(dir, "package.json")
	if err != nil {
		t.Fatalf("ReadDir error: %v", err)
	}
	if m.Name != "pkg-a" {
		t.Errorf("Name = %q, want %q", m.Name, "pkg-a")
	}
}

func TestRead_AlwaysFresh(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `{"name": "pkg-a", "dependencies": {"x": "*"}}`)

	if _, err := Read(path); err != nil {
		t.Fatalf("first Read error: %v", err)
	}

	writeManifest(t, dir, `{"name": "pkg-a", "dependencies": {"y": "*"}}`)

	second, err := Read(path)
	if err != nil {
		t.Fatalf("second Read error: %v", err)
	}
	if _, ok := second.Dependencies["y"]; !ok {
		t.Error("second read did not reflect updated disk state")
	}
	if _, ok := second.Dependencies["x"]; ok {
		t.Error("second read returned stale dependency x")
	}
}
