//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/depstage-labs/depstage/internal/linker"
	"github.com/depstage-labs/depstage/internal/workspace"
)

// testWorkspace holds the paths of a synthetic monorepo.
type testWorkspace struct {
	Root string
	PkgA string
	PkgB string
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func writePackageJSON(t *testing.T, dir, content string) {
	t.Helper()
	writeFile(t, filepath.Join(dir, "package.json"), content)
}

// setupTestWorkspace builds the canonical fixture: a root declaring pkgA
// and pkgB, pkgA depending on pkgB and third-party packages, and a shared
// node_modules the way an installer would leave it (including the member
// symlink for pkgB and a scoped and a nested package).
func setupTestWorkspace(t *testing.T) *testWorkspace {
	t.Helper()

	root := t.TempDir()
	ws := &testWorkspace{
		Root: root,
		PkgA: filepath.Join(root, "pkgA"),
		PkgB: filepath.Join(root, "pkgB"),
	}

	writePackageJSON(t, root, `{
		"name": "monorepo",
		"private": true,
		"workspaces": ["pkgA", "pkgB"]
	}`)
	writePackageJSON(t, ws.PkgA, `{
		"name": "pkgA",
		"version": "1.0.0",
		"dependencies": {
			"pkgB": "*",
			"lodash": "^4.0.0",
			"@acme/logger": "^2.0.0"
		}
	}`)
	writePackageJSON(t, ws.PkgB, `{
		"name": "pkgB",
		"version": "1.0.0",
		"dependencies": {"lodash": "^4.0.0"}
	}`)

	modules := filepath.Join(root, "node_modules")
	writePackageJSON(t, filepath.Join(modules, "lodash"), `{
		"name": "lodash",
		"version": "4.17.21"
	}`)
	writePackageJSON(t, filepath.Join(modules, "@acme", "logger"), `{
		"name": "@acme/logger",
		"version": "2.1.0",
		"dependencies": {"lodash": "^4.0.0", "tiny-emitter": "^1.0.0", "legacy-debug": "~0.5.0"}
	}`)
	writePackageJSON(t, filepath.Join(modules, "tiny-emitter"), `{
		"name": "tiny-emitter",
		"version": "1.1.0"
	}`)
	// A privately nested copy, two modules levels deep.
	writePackageJSON(t, filepath.Join(modules, "@acme", "logger", "node_modules", "legacy-debug"), `{
		"name": "legacy-debug",
		"version": "0.5.0"
	}`)

	if err := os.Symlink(filepath.Join("..", "pkgB"), filepath.Join(modules, "pkgB")); err != nil {
		t.Fatalf("installing member link: %v", err)
	}

	return ws
}

func newLinker(t *testing.T, ws *testWorkspace) *linker.Linker {
	t.Helper()
	ctx, err := workspace.Load(ws.Root, ws.PkgA, "package.json")
	if err != nil {
		t.Fatalf("loading workspace: %v", err)
	}
	return linker.New(ctx, linker.Options{
		ModulesDir:   "node_modules",
		ManifestName: "package.json",
	})
}

// snapshotLinks returns every symlink under dir (one level of @scope
// nesting included) as "name -> target" strings, sorted.
func snapshotLinks(t *testing.T, dir string) []string {
	t.Helper()
	var links []string

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		t.Fatal(err)
	}
	for _, e := range entries {
		path := filepath.Join(dir, e.Name())
		if e.Type()&os.ModeSymlink != 0 {
			target, err := os.Readlink(path)
			if err != nil {
				t.Fatal(err)
			}
			links = append(links, e.Name()+" -> "+target)
			continue
		}
		if e.IsDir() && e.Name()[0] == '@' {
			subs, err := os.ReadDir(path)
			if err != nil {
				t.Fatal(err)
			}
			for _, sub := range subs {
				if sub.Type()&os.ModeSymlink == 0 {
					continue
				}
				target, err := os.Readlink(filepath.Join(path, sub.Name()))
				if err != nil {
					t.Fatal(err)
				}
				links = append(links, e.Name()+"/"+sub.Name()+" -> "+target)
			}
		}
	}
	sort.Strings(links)
	return links
}
