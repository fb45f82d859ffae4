package linker

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/depstage-labs/depstage/internal/platform"
)

// LinkInfo describes one entry found in a staged modules directory.
type LinkInfo struct {
	Name     string // package name, scope-qualified for scoped packages
	Path     string // absolute path of the entry
	Target   string // literal symlink target; empty for foreign entries
	Resolved string // absolute path the target points at
	Broken   bool   // target does not exist
	Foreign  bool   // not a symlink, so not ours to manage
}

// Inventory inspects an existing modules directory and reports every entry:
// symlinks (including ones nested in @scope directories) with their targets
// and health, everything else as foreign. A missing directory yields an
// empty inventory.
func (l *Linker) Inventory(dir string) ([]LinkInfo, error) {
	var infos []LinkInfo
	if err := l.inventoryDir(dir, "", &infos); err != nil {
		return nil, err
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos, nil
}

func (l *Linker) inventoryDir(dir, scope string, infos *[]LinkInfo) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}

	for _, entry := range entries {
		name := entry.Name()
		if scope != "" {
			name = scope + "/" + name
		}
		path := filepath.Join(dir, entry.Name())

		switch {
		case entry.Type()&fs.ModeSymlink != 0:
			target, err := platform.ReadSymlinkTarget(path)
			if err != nil {
				return err
			}
			resolved := target
			if !filepath.IsAbs(resolved) {
				resolved = filepath.Join(filepath.Dir(path), target)
			}
			_, statErr := os.Stat(resolved)
			*infos = append(*infos, LinkInfo{
				Name:     name,
				Path:     path,
				Target:   target,
				Resolved: resolved,
				Broken:   statErr != nil,
			})
		case entry.IsDir() && scope == "" && strings.HasPrefix(entry.Name(), "@"):
			if err := l.inventoryDir(path, entry.Name(), infos); err != nil {
				return err
			}
		default:
			*infos = append(*infos, LinkInfo{Name: name, Path: path, Foreign: true})
		}
	}
	return nil
}
