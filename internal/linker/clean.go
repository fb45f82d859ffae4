package linker

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/depstage-labs/depstage/internal/platform"
)

// clean removes staging artifacts under dir, a modules directory: every
// symlink goes, "@scope" subdirectories are cleaned recursively, and any
// directory left empty afterwards (dir itself included) is pruned. Real
// files and non-scope directories are never touched, so clean removes
// exactly the category of things Setup creates. A missing dir is a no-op.
func (l *Linker) clean(ctx context.Context, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("listing %s: %w", dir, err)
	}

	g, gctx := errgroup.WithContext(ctx)
	if l.opts.Jobs > 0 {
		g.SetLimit(l.opts.Jobs)
	}
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		switch {
		case entry.Type()&fs.ModeSymlink != 0:
			g.Go(func() error {
				return platform.RemoveSymlink(path)
			})
		case entry.IsDir() && strings.HasPrefix(entry.Name(), "@"):
			g.Go(func() error {
				return l.clean(gctx, path)
			})
		}
	}
	if err := g.Wait(); err != nil {
		return err
	}

	// Prune dir itself once it holds nothing but what we just removed.
	remaining, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("relisting %s: %w", dir, err)
	}
	if len(remaining) == 0 {
		if err := os.Remove(dir); err != nil {
			return fmt.Errorf("removing empty directory %s: %w", dir, err)
		}
		l.log.Debug().Str("dir", dir).Msg("pruned empty directory")
	}
	return nil
}
