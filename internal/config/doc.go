// Package config manages persistent tool settings via Viper, stored at
// ~/.depstage/config.yaml and overridable through DEPSTAGE_* environment
// variables and command-line flags.
package config
