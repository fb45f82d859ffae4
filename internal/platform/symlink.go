package platform

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// EnsureSymlink creates a symbolic link at linkPath pointing to target,
// creating any missing parent directories first. A link that already exists
// at linkPath is accepted silently, so repeated staging runs converge on the
// same layout instead of failing.
func EnsureSymlink(target, linkPath string) error {
	if err := os.MkdirAll(filepath.Dir(linkPath), 0755); err != nil {
		return fmt.Errorf("creating parent directory for %s: %w", linkPath, err)
	}

	err := os.Symlink(target, linkPath)
	if err == nil || errors.Is(err, fs.ErrExist) {
		return nil
	}
	return fmt.Errorf("creating symlink %s -> %s: %w", linkPath, target, err)
}

// ReadSymlinkTarget returns the literal (unresolved) target of a symlink.
func ReadSymlinkTarget(path string) (string, error) {
	target, err := os.Readlink(path)
	if err != nil {
		return "", fmt.Errorf("reading symlink %s: %w", path, err)
	}
	return target, nil
}

// IsSymlink reports whether path exists and is a symbolic link.
func IsSymlink(path string) (bool, error) {
	info, err := os.Lstat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return info.Mode()&os.ModeSymlink != 0, nil
}

// RemoveSymlink removes the symlink at path. It refuses to remove anything
// that is not a symlink, so cleanup can never delete real files through
// this door.
func RemoveSymlink(path string) error {
	isLink, err := IsSymlink(path)
	if err != nil {
		return fmt.Errorf("inspecting %s: %w", path, err)
	}
	if !isLink {
		return fmt.Errorf("refusing to remove %s: not a symlink", path)
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("removing symlink %s: %w", path, err)
	}
	return nil
}

// SymlinkSupported reports whether symlinks can be created inside dir by
// creating and removing a throwaway link. Windows without developer mode
// and some restricted mounts fail here.
func SymlinkSupported(dir string) bool {
	link := filepath.Join(dir, ".depstage-symlink-probe")
	defer os.Remove(link)

	if err := os.Symlink(dir, link); err != nil {
		return false
	}
	return true
}
