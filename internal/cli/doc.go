// Package cli defines the depstage command tree: stage, unstage, plan,
// status, doctor, validate, config, and version.
package cli
