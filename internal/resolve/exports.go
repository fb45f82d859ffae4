package resolve

import (
	"encoding/json"
	"strings"
)

// manifestVisible reports whether a package's manifest file can be reached
// through its exports map.
//
// Packages without an exports field expose every file, manifest included.
// Once an exports field is present, only the declared entry points are
// reachable: the string and array shorthands name code entry points only,
// and an object whose keys are conditions (not "./..." subpaths) is sugar
// for the root entry. An object with subpath keys exposes the manifest iff
// "./<manifestName>" maps to a non-null target, either literally or through
// a "*" pattern key — an explicit null always blocks.
func manifestVisible(exports json.RawMessage, manifestName string) bool {
	if len(exports) == 0 {
		return true
	}

	var generic interface{}
	if err := json.Unmarshal(exports, &generic); err != nil {
		return false
	}

	obj, ok := generic.(map[string]interface{})
	if !ok {
		// String or array shorthand: entry points only.
		return false
	}

	subpaths := true
	for key := range obj {
		if !strings.HasPrefix(key, ".") {
			subpaths = false
			break
		}
	}
	if !subpaths {
		// Condition keys at the top level describe the root entry.
		return false
	}

	want := "./" + manifestName

	// An exact key decides outright, null meaning blocked.
	if target, ok := obj[want]; ok {
		return target != nil
	}

	for key, target := range obj {
		if !strings.Contains(key, "*") {
			continue
		}
		if patternMatches(key, want) {
			return target != nil
		}
	}

	return false
}

// patternMatches reports whether an exports pattern key containing a single
// "*" matches the given subpath.
func patternMatches(pattern, subpath string) bool {
	star := strings.Index(pattern, "*")
	if star < 0 {
		return pattern == subpath
	}
	prefix, suffix := pattern[:star], pattern[star+1:]
	return len(subpath) >= len(prefix)+len(suffix) &&
		strings.HasPrefix(subpath, prefix) &&
		strings.HasSuffix(subpath, suffix)
}
