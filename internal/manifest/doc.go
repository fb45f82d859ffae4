// Package manifest models package.json files: decoding the fields staging
// consults (name, workspaces, dependencies, exports) and validating whole
// files against an embedded JSON schema. Reads are always fresh from disk;
// nothing in this package caches.
package manifest
