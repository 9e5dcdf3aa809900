// Package cmdutil holds helpers shared by the snapkeep commands: opening
// the engine from flags and configuration, resolving scopes, and rendering
// reports.
package cmdutil

import (
	"context"
	"time"

	"github.com/thoreinstein/snapkeep/cmd/snapkeep/commands/flags"
	"github.com/thoreinstein/snapkeep/internal/config"
	"github.com/thoreinstein/snapkeep/internal/engine"
	"github.com/thoreinstein/snapkeep/internal/errors"
	"github.com/thoreinstein/snapkeep/internal/logging"
	"github.com/thoreinstein/snapkeep/internal/paths"
	"github.com/thoreinstein/snapkeep/internal/registry"
)

// Session bundles what a command needs to operate.
type Session struct {
	Config *config.Config
	Store  *registry.FileStore
	Engine *engine.Engine
}

// Open builds a Session from the loaded configuration and the --registry
// override.
func Open(ctx context.Context) (*Session, error) {
	cfg := flags.Config()
	if cfg == nil {
		cfg = Defaults()
	}

	regPath := flags.RegistryPath()
	if regPath == "" {
		regPath = cfg.Registry
	}
	regPath, err := paths.Normalize(regPath)
	if err != nil {
		return nil, errors.NewUserError(err, "Check the --registry flag or the registry config key")
	}

	store, err := registry.NewFileStore(regPath)
	if err != nil {
		return nil, errors.NewUserError(err, "Use a .yaml, .yml, .toml or .json registry path")
	}

	eng, err := engine.Open(store,
		engine.WithLogger(logging.FromContext(ctx)),
		engine.WithRetention(cfg.Retention),
	)
	if err != nil {
		return nil, errors.NewConfigError(err)
	}
	return &Session{Config: cfg, Store: store, Engine: eng}, nil
}

// Defaults returns the configuration used when none was loaded.
func Defaults() *config.Config {
	return &config.Config{
		Version:    1,
		BackupRoot: paths.DefaultBackupRoot(),
		Registry:   paths.DefaultRegistryPath(),
		Watch:      config.WatchConfig{Debounce: config.DefaultDebounce},
	}
}

// FormatTime renders a timestamp in local time for tables.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04:05")
}
