// Package workspace locates the workspace root, identifies the target
// package, and selects which workspace members participate in a staging
// run because the target depends on them directly.
package workspace
