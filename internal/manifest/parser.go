package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Read loads and decodes one manifest file. It always reads fresh from
// disk — there is no caching anywhere in the system, so a manifest edited
// between two operations is picked up by the second one.
func Read(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}

	return &m, nil
}

// ReadDir loads the manifest inside dir, using the given manifest file name
// (normally "package.json").
func ReadDir(dir, manifestName string) (*Manifest, error) {
	return Read(filepath.Join(dir, manifestName))
}
