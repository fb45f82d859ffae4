package workspace

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/depstage-labs/depstage/internal/manifest"
)

// Context identifies the two directories every operation needs: the
// workspace root (whose manifest declares the member list) and the target
// package being staged. Paths only — manifests are re-read from disk at
// every use.
type Context struct {
	Root         string // absolute workspace root
	TargetDir    string // absolute target package directory
	ManifestName string // manifest file name, normally "package.json"
}

// Load builds a Context for the given target directory. An empty root
// triggers upward discovery from the target; an explicit root is verified
// but otherwise trusted.
func Load(root, target, manifestName string) (*Context, error) {
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return nil, fmt.Errorf("resolving target path %s: %w", target, err)
	}
	if info, err := os.Stat(absTarget); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("target %s is not a directory", absTarget)
	}

	if root == "" {
		root, err = DiscoverRoot(absTarget, manifestName)
		if err != nil {
			return nil, err
		}
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving root path %s: %w", root, err)
	}
	if info, err := os.Stat(absRoot); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("workspace root %s is not a directory", absRoot)
	}

	return &Context{Root: absRoot, TargetDir: absTarget, ManifestName: manifestName}, nil
}

// DiscoverRoot walks upward from fromDir looking for a manifest that
// declares a non-empty workspace list. It fails with the list of
// directories consulted when the filesystem root is reached first.
func DiscoverRoot(fromDir, manifestName string) (string, error) {
	var consulted []string

	dir := filepath.Clean(fromDir)
	for {
		consulted = append(consulted, dir)

		m, err := manifest.ReadDir(dir, manifestName)
		switch {
		case err == nil && len(m.Workspaces) > 0:
			return dir, nil
		case err != nil && !errors.Is(err, fs.ErrNotExist):
			return "", fmt.Errorf("inspecting %s while discovering workspace root: %w", dir, err)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no manifest with a workspaces list found above %s (searched %s)",
				fromDir, strings.Join(consulted, ", "))
		}
		dir = parent
	}
}

// RootManifest reads the workspace root's manifest fresh from disk.
func (ws *Context) RootManifest() (*manifest.Manifest, error) {
	return manifest.ReadDir(ws.Root, ws.ManifestName)
}

// TargetManifest reads the target package's manifest fresh from disk.
func (ws *Context) TargetManifest() (*manifest.Manifest, error) {
	return manifest.ReadDir(ws.TargetDir, ws.ManifestName)
}

// SelectMembers returns, in workspace-list order, the absolute directory of
// every workspace member the target directly depends on. Membership is
// decided purely from the two manifests: a member path is selected when its
// final component names a dependency key of the target. Members' own
// manifests are not read here — the linking recursion covers their trees.
func (ws *Context) SelectMembers() ([]string, error) {
	root, err := ws.RootManifest()
	if err != nil {
		return nil, fmt.Errorf("reading root manifest: %w", err)
	}
	target, err := ws.TargetManifest()
	if err != nil {
		return nil, fmt.Errorf("reading target manifest: %w", err)
	}

	var selected []string
	for _, member := range root.Workspaces {
		if _, ok := target.Dependencies[filepath.Base(member)]; ok {
			selected = append(selected, filepath.Join(ws.Root, filepath.FromSlash(member)))
		}
	}
	return selected, nil
}
