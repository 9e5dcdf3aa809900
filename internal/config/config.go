// Package config provides configuration management for snapkeep using Viper.
package config

import (
	"time"

	"github.com/spf13/viper"

	"github.com/thoreinstein/snapkeep/internal/errors"
	"github.com/thoreinstein/snapkeep/internal/paths"
)

// EnvPrefix is the prefix for environment overrides (SNAPKEEP_BACKUP_ROOT, ...).
const EnvPrefix = "SNAPKEEP"

// Keys understood by snapkeep.
const (
	KeyVersion       = "version"
	KeyBackupRoot    = "backup_root"
	KeyRegistry      = "registry"
	KeyRetention     = "retention"
	KeyWatchDebounce = "watch.debounce"
)

// DefaultDebounce is the quiet period the watcher waits before backing up.
const DefaultDebounce = 2 * time.Second

// Config represents the top-level configuration structure.
type Config struct {
	Version int `mapstructure:"version" yaml:"version"`

	// BackupRoot is the default backup root for items added without one.
	BackupRoot string `mapstructure:"backup_root" yaml:"backup_root"`

	// Registry is the path of the item registry file. The extension selects
	// the format (.yaml, .yml, .toml, .json).
	Registry string `mapstructure:"registry" yaml:"registry"`

	// Retention is the number of snapshots kept per item after each backup.
	// Zero keeps everything.
	Retention int `mapstructure:"retention" yaml:"retention"`

	Watch WatchConfig `mapstructure:"watch" yaml:"watch"`
}

// WatchConfig configures `snapkeep watch`.
type WatchConfig struct {
	Debounce time.Duration `mapstructure:"debounce" yaml:"debounce"`
}

// Keys returns the known configuration keys in display order.
func Keys() []string {
	return []string{KeyVersion, KeyBackupRoot, KeyRegistry, KeyRetention, KeyWatchDebounce}
}

// Init initializes Viper with default configuration.
// Call this once at application startup before accessing config values.
func Init() {
	viper.Reset()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	viper.AddConfigPath(".")
	viper.AddConfigPath(paths.ConfigDir())

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(envReplacer)
	viper.AutomaticEnv()

	viper.SetDefault(KeyVersion, 1)
	viper.SetDefault(KeyBackupRoot, paths.DefaultBackupRoot())
	viper.SetDefault(KeyRegistry, paths.DefaultRegistryPath())
	viper.SetDefault(KeyRetention, 0)
	viper.SetDefault(KeyWatchDebounce, DefaultDebounce)
}

// Load reads the configuration file and validates the result.
// If path is provided, it reads from that specific file and a missing file
// is an error. If path is empty, the default locations are searched and a
// missing file falls back to defaults.
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound) && path == "":
			// implicit load falls back to defaults
		case errors.As(err, &notFound):
			return nil, errors.NewConfigError(errors.Wrapf(err, "config file not found at %s", path))
		default:
			if path != "" && isNotExist(err) {
				return nil, errors.NewConfigError(errors.Wrapf(err, "config file not found at %s", path))
			}
			return nil, errors.NewConfigError(errors.Wrap(err, "reading config file"))
		}
	}

	return Current()
}

// Current decodes and validates the configuration viper holds now, without
// reading any file.
func Current() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.NewConfigError(errors.Wrap(err, "unmarshaling config"))
	}

	cfg.BackupRoot = paths.ExpandHome(cfg.BackupRoot)
	cfg.Registry = paths.ExpandHome(cfg.Registry)

	if err := cfg.Validate(); err != nil {
		return nil, errors.NewConfigError(errors.Mark(err, errors.ErrInvalidConfig))
	}
	return &cfg, nil
}

// Get returns the effective value of key as viper resolves it.
func Get(key string) any {
	return viper.Get(key)
}

// Known reports whether key is a snapkeep configuration key.
func Known(key string) bool {
	for _, k := range Keys() {
		if k == key {
			return true
		}
	}
	return false
}

// Used returns the config file viper read, or "" when running on defaults.
func Used() string {
	return viper.ConfigFileUsed()
}
