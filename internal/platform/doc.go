// Package platform provides the symlink primitives the linker builds on:
// idempotent creation, literal target reads, type-checked removal, and a
// support probe for filesystems that cannot hold symlinks.
package platform
