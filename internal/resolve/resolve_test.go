package resolve

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestResolver() *Resolver {
	return New("node_modules", "package.json")
}

func writePackage(t *testing.T, root, name, content string) string {
	t.Helper()
	dir := filepath.Join(root, "node_modules", filepath.FromSlash(name))
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "package.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	// Resolution evaluates symlinks, so compare against the real path
	// (temp dirs are symlinked on some platforms).
	real, err := filepath.EvalSymlinks(dir)
	if err != nil {
		t.Fatal(err)
	}
	return real
}

func TestCandidates_NearestFirst(t *testing.T) {
	r := newTestResolver()
	got := r.Candidates("/ws/pkgA/sub")

	want := []string{
		"/ws/pkgA/sub/node_modules",
		"/ws/pkgA/node_modules",
		"/ws/node_modules",
		"/node_modules",
	}
	if len(got) != len(want) {
		t.Fatalf("Candidates = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Candidates[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCandidates_SkipsModulesDirItself(t *testing.T) {
	r := newTestResolver()
	for _, c := range r.Candidates("/ws/node_modules/dep") {
		if strings.HasSuffix(c, "node_modules/node_modules") {
			t.Errorf("candidate %q nests the modules dir in itself", c)
		}
	}
}

func TestResolve_DirectDependency(t *testing.T) {
	ws := t.TempDir()
	dir := writePackage(t, ws, "lodash", `{"name": "lodash", "version": "4.17.21"}`)

	r := newTestResolver()
	resolved, err := r.Resolve("lodash", filepath.Join(ws, "pkgA"))
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if resolved.Dir != dir {
		t.Errorf("Dir = %q, want %q", resolved.Dir, dir)
	}
	if resolved.Depth != 1 {
		t.Errorf("Depth = %d, want 1", resolved.Depth)
	}
}

func TestResolve_NearestWins(t *testing.T) {
	ws := t.TempDir()
	writePackage(t, ws, "dep", `{"name": "dep", "version": "1.0.0"}`)
	pkgA := filepath.Join(ws, "pkgA")
	nearer := writePackage(t, pkgA, "dep", `{"name": "dep", "version": "2.0.0"}`)

	r := newTestResolver()
	resolved, err := r.Resolve("dep", pkgA)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if resolved.Dir != nearer {
		t.Errorf("Dir = %q, want nearer install %q", resolved.Dir, nearer)
	}
}

func TestResolve_ScopedPackage(t *testing.T) {
	ws := t.TempDir()
	dir := writePackage(t, ws, "@acme/util", `{"name": "@acme/util"}`)

	r := newTestResolver()
	resolved, err := r.Resolve("@acme/util", ws)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if resolved.Dir != dir {
		t.Errorf("Dir = %q, want %q", resolved.Dir, dir)
	}
}

func TestResolve_FallbackWhenExportsHideManifest(t *testing.T) {
	ws := t.TempDir()
	dir := writePackage(t, ws, "sealed", `{
		"name": "sealed",
		"exports": {".": "./index.js"}
	}`)

	r := newTestResolver()
	resolved, err := r.Resolve("sealed", ws)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if resolved.Dir != dir {
		t.Errorf("Dir = %q, want %q (fallback scan should find it)", resolved.Dir, dir)
	}
}

func TestResolve_NotFound(t *testing.T) {
	r := newTestResolver()
	from := t.TempDir()

	_, err := r.Resolve("ghost", from)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("error type = %T, want *NotFoundError", err)
	}
	if nf.Name != "ghost" || nf.FromDir != from {
		t.Errorf("NotFoundError = %+v", nf)
	}
	if len(nf.Candidates) == 0 {
		t.Error("NotFoundError lists no candidates")
	}
	if !strings.Contains(nf.Error(), "ghost") {
		t.Errorf("Error() = %q, does not name the package", nf.Error())
	}
}

func TestDepth(t *testing.T) {
	r := newTestResolver()
	tests := []struct {
		path string
		want int
	}{
		{"/ws/pkgA/package.json", 0},
		{"/ws/node_modules/dep/package.json", 1},
		{"/ws/node_modules/dep/node_modules/nested/package.json", 2},
	}
	for _, tt := range tests {
		if got := r.Depth(tt.path); got != tt.want {
			t.Errorf("Depth(%s) = %d, want %d", tt.path, got, tt.want)
		}
	}
}
