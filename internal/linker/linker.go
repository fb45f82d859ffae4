package linker

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/depstage-labs/depstage/internal/logging"
	"github.com/depstage-labs/depstage/internal/manifest"
	"github.com/depstage-labs/depstage/internal/platform"
	"github.com/depstage-labs/depstage/internal/resolve"
	"github.com/depstage-labs/depstage/internal/workspace"
)

// Options is the immutable run configuration, built once and threaded
// through every operation.
type Options struct {
	ModulesDir   string // modules directory name, normally "node_modules"
	ManifestName string // manifest file name, normally "package.json"
	Jobs         int    // concurrent link operations per pass; 0 = unbounded
}

// Linker stages a target package's dependency graph as a farm of relative
// symlinks and tears it down again.
type Linker struct {
	ws       *workspace.Context
	opts     Options
	resolver *resolve.Resolver
	log      zerolog.Logger
}

// New builds a Linker for one workspace context.
func New(ws *workspace.Context, opts Options) *Linker {
	return &Linker{
		ws:       ws,
		opts:     opts,
		resolver: resolve.New(opts.ModulesDir, opts.ManifestName),
		log:      logging.GetLogger("linker"),
	}
}

// createdSet records which package names have received a link during one
// pass. It is shared by pointer across all goroutines of that pass and
// never survives the pass.
type createdSet struct {
	mu    sync.Mutex
	names map[string]struct{}
}

func newCreatedSet() *createdSet {
	return &createdSet{names: make(map[string]struct{})}
}

// add records name and reports whether it was newly added. Exactly one
// caller per name sees true, which is what makes link creation race-free.
func (s *createdSet) add(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.names[name]; ok {
		return false
	}
	s.names[name] = struct{}{}
	return true
}

// Setup stages the target: one linking pass over the target's own
// dependencies, then one pass per workspace member the target depends on,
// in selection order. Each pass has its own dedup scope.
func (l *Linker) Setup(ctx context.Context) error {
	if err := l.linkRoot(ctx, l.ws.TargetDir); err != nil {
		return err
	}

	members, err := l.ws.SelectMembers()
	if err != nil {
		return err
	}
	for _, member := range members {
		if err := l.linkRoot(ctx, member); err != nil {
			return err
		}
	}
	return nil
}

// Teardown removes everything Setup created: the target's modules dir
// first, then each selected member's, members in parallel.
func (l *Linker) Teardown(ctx context.Context) error {
	if err := l.clean(ctx, filepath.Join(l.ws.TargetDir, l.opts.ModulesDir)); err != nil {
		return err
	}

	members, err := l.ws.SelectMembers()
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	if l.opts.Jobs > 0 {
		g.SetLimit(l.opts.Jobs)
	}
	for _, member := range members {
		dir := filepath.Join(member, l.opts.ModulesDir)
		g.Go(func() error {
			return l.clean(gctx, dir)
		})
	}
	return g.Wait()
}

// linkRoot runs one linking pass rooted at pkgDir: fresh dedup set, empty
// ancestry, fan-out over pkgDir's own manifest dependencies. The modules
// dir appears lazily with the first link; a leaf package creates nothing.
func (l *Linker) linkRoot(ctx context.Context, pkgDir string) error {
	m, err := manifest.ReadDir(pkgDir, l.opts.ManifestName)
	if err != nil {
		return err
	}

	destDir := filepath.Join(pkgDir, l.opts.ModulesDir)
	created := newCreatedSet()

	l.log.Debug().Str("dir", pkgDir).Int("deps", len(m.Dependencies)).Msg("linking pass")

	g, gctx := errgroup.WithContext(ctx)
	if l.opts.Jobs > 0 {
		g.SetLimit(l.opts.Jobs)
	}
	for _, dep := range m.DependencyNames() {
		g.Go(func() error {
			return l.linkPackage(gctx, dep, pkgDir, destDir, created, nil)
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("linking dependencies of %s: %w", pkgDir, err)
	}
	return nil
}

// linkPackage stages one dependency and its transitive closure.
//
// Cycle handling is per branch: a name already on the current recursion
// path returns immediately, its subtree covered by the earlier visit.
// Link creation is per pass: the shared created set arbitrates so two
// sibling branches wanting the same name produce one link, and both still
// recurse so the closure stays complete. Only hoisted packages (resolved
// at most one modules-dir segment deep) receive links; deeper copies stay
// private to the package that nests them and are reachable through its
// already-linked parent.
func (l *Linker) linkPackage(ctx context.Context, name, fromDir, destDir string, created *createdSet, ancestry []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if slices.Contains(ancestry, name) {
		l.log.Trace().Str("package", name).Strs("ancestry", ancestry).Msg("cycle broken")
		return nil
	}

	resolved, err := l.resolver.Resolve(name, fromDir)
	if err != nil {
		return err
	}

	if resolved.Depth <= 1 && created.add(name) {
		linkPath := filepath.Join(destDir, filepath.FromSlash(name))
		target, err := filepath.Rel(filepath.Dir(linkPath), resolved.Dir)
		if err != nil {
			return fmt.Errorf("computing relative target for %s: %w", name, err)
		}
		if err := platform.EnsureSymlink(target, linkPath); err != nil {
			return err
		}
		l.log.Debug().Str("package", name).Str("link", linkPath).Str("target", target).Msg("linked")
	}

	m, err := manifest.Read(resolved.ManifestPath)
	if err != nil {
		return err
	}

	childAncestry := append(slices.Clone(ancestry), name)

	g, gctx := errgroup.WithContext(ctx)
	if l.opts.Jobs > 0 {
		g.SetLimit(l.opts.Jobs)
	}
	for _, dep := range m.DependencyNames() {
		g.Go(func() error {
			return l.linkPackage(gctx, dep, resolved.Dir, destDir, created, childAncestry)
		})
	}
	return g.Wait()
}
