package cmdutil

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/snapkeep/cmd/snapkeep/commands/flags"
	"github.com/thoreinstein/snapkeep/internal/config"
	"github.com/thoreinstein/snapkeep/internal/engine"
	"github.com/thoreinstein/snapkeep/internal/errors"
)

func TestScopeFlags_Resolve(t *testing.T) {
	tests := []struct {
		name    string
		flags   ScopeFlags
		args    []string
		item    string
		group   string
		wantErr bool
	}{
		{name: "item", args: []string{"cfg"}, item: "cfg"},
		{name: "all", flags: ScopeFlags{All: true}},
		{name: "group", flags: ScopeFlags{Group: "games"}, group: "games"},
		{name: "nothing", wantErr: true},
		{name: "item and all", flags: ScopeFlags{All: true}, args: []string{"cfg"}, wantErr: true},
		{name: "all and group", flags: ScopeFlags{All: true, Group: "games"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.flags.Resolve(tt.args)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, errors.ErrInvalidSelection)
				assert.Equal(t, errors.ExitUser, errors.ExitCodeFor(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.item, got.Item)
			assert.Equal(t, tt.item != "", got.Single())
			assert.Equal(t, tt.group, got.Scope.Group)
		})
	}
}

func TestPrintReport(t *testing.T) {
	r := &engine.Report{
		Operation: "backup",
		Scope:     "all items",
		Results: []engine.ItemResult{
			{Item: "cfg", Outcome: engine.OutcomeOK, Stage: engine.StageBackup, SnapshotID: "cfg_100", Destination: "/snaps/cfg_100"},
			{Item: "saves", Outcome: engine.OutcomeSkipped, Stage: engine.StageSource, Err: errors.ErrNotFound},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, PrintReport(&buf, r))
	out := buf.String()
	assert.Contains(t, out, "cfg_100")
	assert.Contains(t, out, "source: not found")
	assert.Contains(t, out, "1 ok, 1 skipped, 0 failed")

	r.Results = append(r.Results, engine.ItemResult{
		Item: "notes", Outcome: engine.OutcomeFailed, Stage: engine.StageBackup, Err: errors.ErrIOFailure,
	})
	buf.Reset()
	err := PrintReport(&buf, r)
	require.Error(t, err)
	assert.Equal(t, errors.ExitSystem, errors.ExitCodeFor(err))
}

func TestPrintReport_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintReport(&buf, &engine.Report{Operation: "restore", Scope: "group games"}))
	assert.Equal(t, "No items selected for restore (group games).\n", buf.String())
}

func TestConfirm(t *testing.T) {
	var out bytes.Buffer
	got, err := Confirm(strings.NewReader("y\n"), &out, false, "Proceed?")
	require.NoError(t, err)
	assert.Equal(t, engine.Confirmed, got)

	got, err = Confirm(strings.NewReader(""), &out, true, "Proceed?")
	require.NoError(t, err)
	assert.Equal(t, engine.Confirmed, got)

	got, err = Confirm(strings.NewReader("no\n"), &out, false, "Proceed?")
	assert.ErrorIs(t, err, errors.ErrUnconfirmed)
	assert.Equal(t, engine.Unconfirmed, got)
}

func TestOpen_RegistryOverride(t *testing.T) {
	dir := t.TempDir()
	flags.SetConfig(&config.Config{
		Version:    1,
		BackupRoot: filepath.Join(dir, "snaps"),
		Registry:   filepath.Join(dir, "registry.yaml"),
	})
	flags.SetRegistryPath(filepath.Join(dir, "other.toml"))
	t.Cleanup(func() {
		flags.SetConfig(nil)
		flags.SetRegistryPath("")
	})

	s, err := Open(t.Context())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "other.toml"), s.Store.Path())
	assert.Empty(t, s.Engine.Items())

	flags.SetRegistryPath(filepath.Join(dir, "registry.ini"))
	_, err = Open(t.Context())
	require.Error(t, err)
	assert.Equal(t, errors.ExitUser, errors.ExitCodeFor(err))
}

func TestRegistryError(t *testing.T) {
	assert.NoError(t, RegistryError(nil))
	assert.Equal(t, errors.ExitUser, errors.ExitCodeFor(RegistryError(errors.Wrap(errors.ErrInvalidSelection, "unknown item"))))
	assert.Equal(t, errors.ExitSystem, errors.ExitCodeFor(RegistryError(errors.NewIOError("write", "", "/r.yaml", errors.New("disk full")))))
}
