package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/snapkeep/cmd/snapkeep/commands/cmdutil"
	"github.com/thoreinstein/snapkeep/cmd/snapkeep/commands/flags"
	"github.com/thoreinstein/snapkeep/internal/config"
	"github.com/thoreinstein/snapkeep/internal/registry"
)

// workspace is a temporary registry with two items in group "games":
// "cfg" is a directory, "notes" a single file.
type workspace struct {
	dir   string
	cfg   string
	notes string
	root  string
}

func newWorkspace(t *testing.T) *workspace {
	t.Helper()
	dir := t.TempDir()
	ws := &workspace{
		dir:   dir,
		cfg:   filepath.Join(dir, "live", "cfg"),
		notes: filepath.Join(dir, "live", "notes.txt"),
		root:  filepath.Join(dir, "snaps"),
	}

	require.NoError(t, os.MkdirAll(ws.cfg, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(ws.cfg, "settings.ini"), []byte("volume=5\n"), 0o644))
	require.NoError(t, os.WriteFile(ws.notes, []byte("remember\n"), 0o644))

	flags.SetConfig(&config.Config{
		Version:    1,
		BackupRoot: ws.root,
		Registry:   filepath.Join(dir, "registry.yaml"),
		Watch:      config.WatchConfig{Debounce: config.DefaultDebounce},
	})
	flags.SetRegistryPath("")
	flags.SetConfigPath("")
	t.Cleanup(func() {
		flags.SetConfig(nil)
		viper.Reset()
	})

	s, err := cmdutil.Open(t.Context())
	require.NoError(t, err)
	require.NoError(t, s.Engine.AddGroup(registry.SyncGroup{Name: "games", Enabled: true}))
	require.NoError(t, s.Engine.AddItem(registry.SyncItem{
		Name: "cfg", SourcePath: ws.cfg, BackupRoot: ws.root, Enabled: true, Group: "games",
	}))
	require.NoError(t, s.Engine.AddItem(registry.SyncItem{
		Name: "notes", SourcePath: ws.notes, BackupRoot: ws.root, Enabled: true, Group: "games",
	}))
	return ws
}
