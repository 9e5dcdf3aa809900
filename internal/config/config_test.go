package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"

	"github.com/thoreinstein/snapkeep/internal/errors"
	"github.com/thoreinstein/snapkeep/internal/paths"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(home, "data"))
	paths.Reload()
	t.Cleanup(paths.Reload)
	t.Chdir(t.TempDir())
	t.Cleanup(viper.Reset)
	return home
}

func TestInit_Defaults(t *testing.T) {
	home := isolate(t)
	Init()

	if got := viper.GetInt(KeyVersion); got != 1 {
		t.Errorf("version = %d, want 1", got)
	}
	if got, want := viper.GetString(KeyBackupRoot), filepath.Join(home, "data", "snapkeep", "snapshots"); got != want {
		t.Errorf("backup_root = %q, want %q", got, want)
	}
	if got, want := viper.GetString(KeyRegistry), filepath.Join(home, "config", "snapkeep", "registry.yaml"); got != want {
		t.Errorf("registry = %q, want %q", got, want)
	}
	if got := viper.GetDuration(KeyWatchDebounce); got != DefaultDebounce {
		t.Errorf("watch.debounce = %v, want %v", got, DefaultDebounce)
	}
}

func TestLoad_NoConfigFile(t *testing.T) {
	isolate(t)
	Init()

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Retention != 0 {
		t.Errorf("Retention = %d, want 0", cfg.Retention)
	}
	if Used() != "" {
		t.Errorf("Used() = %q, want empty", Used())
	}
}

func TestLoad_WithConfigFile(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	content := []byte("retention: 3\nbackup_root: /srv/snaps\nwatch:\n  debounce: 500ms\n")
	if err := os.WriteFile(configPath, content, 0o600); err != nil {
		t.Fatal(err)
	}

	Init()
	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Retention != 3 {
		t.Errorf("Retention = %d, want 3", cfg.Retention)
	}
	if cfg.BackupRoot != "/srv/snaps" {
		t.Errorf("BackupRoot = %q", cfg.BackupRoot)
	}
	if cfg.Watch.Debounce != 500*time.Millisecond {
		t.Errorf("Watch.Debounce = %v", cfg.Watch.Debounce)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	isolate(t)
	t.Setenv("SNAPKEEP_RETENTION", "7")
	t.Setenv("SNAPKEEP_WATCH_DEBOUNCE", "10s")

	Init()
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Retention != 7 {
		t.Errorf("Retention = %d, want 7", cfg.Retention)
	}
	if cfg.Watch.Debounce != 10*time.Second {
		t.Errorf("Watch.Debounce = %v, want 10s", cfg.Watch.Debounce)
	}
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	isolate(t)
	Init()

	_, err := Load("/non/existent/path/config.yaml")
	if err == nil {
		t.Fatal("Load() with non-existent explicit path should error")
	}
	if code := errors.ExitCodeFor(err); code != errors.ExitUser {
		t.Errorf("exit code = %d, want %d", code, errors.ExitUser)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"negative retention", "retention: -1\n"},
		{"bad registry extension", "registry: /tmp/registry.ini\n"},
		{"zero version", "version: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0o600); err != nil {
				t.Fatal(err)
			}

			Init()
			_, err := Load(path)
			if !errors.Is(err, errors.ErrInvalidConfig) {
				t.Errorf("Load() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestKnown(t *testing.T) {
	for _, k := range Keys() {
		if !Known(k) {
			t.Errorf("Known(%q) = false", k)
		}
	}
	if Known("default_platforms") {
		t.Error("Known(default_platforms) = true")
	}
}

func TestCurrent_OverridesWithoutFile(t *testing.T) {
	isolate(t)
	Init()

	viper.Set(KeyRetention, "7")
	viper.Set(KeyWatchDebounce, "5s")
	cfg, err := Current()
	if err != nil {
		t.Fatalf("Current() error: %v", err)
	}
	if cfg.Retention != 7 {
		t.Errorf("Retention = %d, want 7", cfg.Retention)
	}
	if cfg.Watch.Debounce != 5*time.Second {
		t.Errorf("Debounce = %v, want 5s", cfg.Watch.Debounce)
	}

	viper.Set(KeyRetention, "-2")
	if _, err := Current(); !errors.Is(err, errors.ErrInvalidConfig) {
		t.Errorf("Current() error = %v, want ErrInvalidConfig", err)
	}
}
