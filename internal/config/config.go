package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/depstage-labs/depstage/internal/branding"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Configuration keys understood by the tool. Anything else in the file is
// preserved but ignored.
const (
	KeyRoot       = "root"        // workspace root; empty means discover upward
	KeyModulesDir = "modules_dir" // shared modules directory name
	KeyManifest   = "manifest"    // manifest file name
	KeyJobs       = "jobs"        // concurrent link operations per pass; 0 = unbounded
	KeyLogFile    = "log_file"    // log file path; "-" disables file logging
)

// Dir returns the path to the config directory (~/.depstage/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.depstage/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
// Precedence is flags over environment over file over these defaults.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault(KeyModulesDir, "node_modules")
	viper.SetDefault(KeyManifest, "package.json")
	viper.SetDefault(KeyJobs, 0)

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// GetInt returns an integer config value by key.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// Keys returns the known configuration keys for listing.
func Keys() []string {
	return []string{KeyRoot, KeyModulesDir, KeyManifest, KeyJobs, KeyLogFile}
}
