package manifest

import (
	"encoding/json"
	"sort"
)

// Manifest is a decoded package.json. Only the fields staging consults are
// modeled; everything else in the file is ignored.
type Manifest struct {
	Name         string            `json:"name"`
	Version      string            `json:"version"`
	Private      bool              `json:"private"`
	Workspaces   WorkspaceList     `json:"workspaces"`
	Dependencies map[string]string `json:"dependencies"`
	Exports      json.RawMessage   `json:"exports"`
}

// WorkspaceList is the root manifest's workspace declaration. package.json
// allows two spellings: a plain array of paths, or an object carrying the
// array under "packages".
type WorkspaceList []string

// UnmarshalJSON accepts both the array and the {"packages": [...]} forms.
func (w *WorkspaceList) UnmarshalJSON(data []byte) error {
	var paths []string
	if err := json.Unmarshal(data, &paths); err == nil {
		*w = paths
		return nil
	}

	var obj struct {
		Packages []string `json:"packages"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*w = obj.Packages
	return nil
}

// DependencyNames returns the declared dependency names in sorted order.
// Version specs are ignored beyond the key set; staging resolves whatever
// the installer already put on disk.
func (m *Manifest) DependencyNames() []string {
	if len(m.Dependencies) == 0 {
		return nil
	}
	names := make([]string, 0, len(m.Dependencies))
	for name := range m.Dependencies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
