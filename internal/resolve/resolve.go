package resolve

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/depstage-labs/depstage/internal/logging"
	"github.com/depstage-labs/depstage/internal/manifest"
)

// Resolver locates the on-disk install directory of a named package. It is
// built once per run and carries no mutable state; every call probes the
// filesystem fresh.
type Resolver struct {
	ModulesDir   string // modules directory name, normally "node_modules"
	ManifestName string // manifest file name, normally "package.json"

	log zerolog.Logger
}

// New returns a Resolver for the given modules directory and manifest names.
func New(modulesDir, manifestName string) *Resolver {
	return &Resolver{
		ModulesDir:   modulesDir,
		ManifestName: manifestName,
		log:          logging.GetLogger("resolve"),
	}
}

// Resolved describes a successfully located package.
type Resolved struct {
	Name         string
	ManifestPath string // absolute path of the manifest file
	Dir          string // package directory (manifest's parent)
	Depth        int    // modules-directory segments in ManifestPath
}

// NotFoundError reports that a package could not be located from a given
// directory by either resolution strategy.
type NotFoundError struct {
	Name       string
	FromDir    string
	Candidates []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("package %q not found from %s (searched %s)",
		e.Name, e.FromDir, strings.Join(e.Candidates, ", "))
}

// Candidates returns the ordered modules directories consulted when
// resolving from fromDir: fromDir's own modules dir first, then each
// ancestor's, up to the filesystem root.
func (r *Resolver) Candidates(fromDir string) []string {
	var candidates []string
	dir := filepath.Clean(fromDir)
	for {
		if filepath.Base(dir) != r.ModulesDir {
			candidates = append(candidates, filepath.Join(dir, r.ModulesDir))
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return candidates
		}
		dir = parent
	}
}

// Resolve locates the package called name, searching upward from fromDir.
//
// The primary strategy walks the candidate list honoring each package's
// exports map: a manifest hidden by its exports does not count as found.
// If that fails for any reason, a fallback linear scan of the same
// candidates tests bare manifest existence; the fallback trigger is logged
// rather than swallowed. When both strategies come up empty the result is
// a *NotFoundError naming every location consulted.
func (r *Resolver) Resolve(name, fromDir string) (Resolved, error) {
	candidates := r.Candidates(fromDir)

	resolved, primaryErr := r.resolvePrimary(name, candidates)
	if primaryErr == nil {
		return resolved, nil
	}

	r.log.Debug().
		Str("package", name).
		Str("from", fromDir).
		AnErr("primary", primaryErr).
		Msg("primary resolution failed, falling back to manifest scan")

	for _, candidate := range candidates {
		manifestPath := filepath.Join(candidate, name, r.ManifestName)
		if _, err := os.Stat(manifestPath); err == nil {
			return r.resolved(name, manifestPath), nil
		}
	}

	return Resolved{}, &NotFoundError{Name: name, FromDir: fromDir, Candidates: candidates}
}

// resolvePrimary is the exports-aware lookup: the manifest must exist and
// be visible through the package's exports map.
func (r *Resolver) resolvePrimary(name string, candidates []string) (Resolved, error) {
	for _, candidate := range candidates {
		manifestPath := filepath.Join(candidate, name, r.ManifestName)
		if _, err := os.Stat(manifestPath); err != nil {
			continue
		}

		m, err := manifest.Read(manifestPath)
		if err != nil {
			return Resolved{}, err
		}
		if !manifestVisible(m.Exports, r.ManifestName) {
			return Resolved{}, fmt.Errorf("manifest of %q at %s is hidden by its exports map", name, manifestPath)
		}
		return r.resolved(name, manifestPath), nil
	}
	return Resolved{}, fmt.Errorf("package %q has no manifest in any candidate directory", name)
}

func (r *Resolver) resolved(name, manifestPath string) Resolved {
	// Installers expose workspace members through symlinks in the shared
	// modules dir. Evaluating those here makes links point at a package's
	// real directory and makes the depth policy judge the real location.
	if real, err := filepath.EvalSymlinks(manifestPath); err == nil {
		manifestPath = real
	}
	return Resolved{
		Name:         name,
		ManifestPath: manifestPath,
		Dir:          filepath.Dir(manifestPath),
		Depth:        r.Depth(manifestPath),
	}
}

// Depth counts the modules-directory segments in path. Depth 0 is a
// workspace member, depth 1 a top-level installed package, depth 2+ a copy
// nested inside another package's modules dir.
func (r *Resolver) Depth(path string) int {
	depth := 0
	for _, segment := range strings.Split(filepath.ToSlash(path), "/") {
		if segment == r.ModulesDir {
			depth++
		}
	}
	return depth
}
