package resolve

import (
	"encoding/json"
	"testing"
)

func TestManifestVisible(t *testing.T) {
	tests := []struct {
		name    string
		exports string // empty string means no exports field
		want    bool
	}{
		{"no exports field", "", true},
		{"string shorthand", `"./index.js"`, false},
		{"array shorthand", `["./index.js", "./lib.js"]`, false},
		{"condition object", `{"import": "./index.mjs", "require": "./index.cjs"}`, false},
		{"subpaths without manifest", `{".": "./index.js"}`, false},
		{"manifest exported", `{".": "./index.js", "./package.json": "./package.json"}`, true},
		{"manifest blocked by null", `{"./*": "./*", "./package.json": null}`, false},
		{"star pattern exposes", `{".": "./index.js", "./*": "./*"}`, true},
		{"prefixed pattern misses", `{"./lib/*": "./lib/*"}`, false},
		{"malformed exports", `{"broken"`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var raw json.RawMessage
			if tt.exports != "" {
				raw = json.RawMessage(tt.exports)
			}
			if got := manifestVisible(raw, "package.json"); got != tt.want {
				t.Errorf("manifestVisible(%s) = %v, want %v", tt.exports, got, tt.want)
			}
		})
	}
}

func TestPatternMatches(t *testing.T) {
	tests := []struct {
		pattern string
		subpath string
		want    bool
	}{
		{"./*", "./package.json", true},
		{"./lib/*", "./package.json", false},
		{"./*.json", "./package.json", true},
		{"./exact", "./exact", true},
		{"./exact", "./other", false},
	}
	for _, tt := range tests {
		if got := patternMatches(tt.pattern, tt.subpath); got != tt.want {
			t.Errorf("patternMatches(%q, %q) = %v, want %v", tt.pattern, tt.subpath, got, tt.want)
		}
	}
}
