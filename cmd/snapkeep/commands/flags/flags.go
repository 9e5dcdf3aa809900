// Package flags provides shared flag accessors for CLI commands.
// This package exists to avoid import cycles between the root command
// and noun subpackages (item, group).
package flags

import "github.com/thoreinstein/snapkeep/internal/config"

var (
	configPath   string
	registryPath string
	loaded       *config.Config
)

// ConfigPath returns the value of the --config flag.
func ConfigPath() string { return configPath }

// SetConfigPath sets the --config flag value.
func SetConfigPath(p string) { configPath = p }

// RegistryPath returns the value of the --registry flag.
func RegistryPath() string { return registryPath }

// SetRegistryPath sets the --registry flag value.
func SetRegistryPath(p string) { registryPath = p }

// Config returns the configuration loaded by the root command, or nil
// before it has run.
func Config() *config.Config { return loaded }

// SetConfig records the loaded configuration. Tests use it to inject one.
func SetConfig(cfg *config.Config) { loaded = cfg }
