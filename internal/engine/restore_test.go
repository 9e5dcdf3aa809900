package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/snapkeep/internal/errors"
	"github.com/thoreinstein/snapkeep/internal/snapshot"
)

func TestRestoreAll_RequiresConfirmation(t *testing.T) {
	f := newFixture(t)
	_, err := f.eng.BackupAll(t.Context())
	require.NoError(t, err)

	settings := filepath.Join(f.src, "cfg", "settings.ini")
	write(t, settings, "edited")

	report, err := f.eng.RestoreAll(t.Context(), Unconfirmed)
	assert.ErrorIs(t, err, errors.ErrUnconfirmed)
	assert.Nil(t, report)
	assert.Equal(t, "edited", read(t, settings))

	_, err = f.eng.RestoreGroup(t.Context(), "games", Unconfirmed, GroupOptions{})
	assert.ErrorIs(t, err, errors.ErrUnconfirmed)
	assert.Equal(t, errors.ExitUser, errors.ExitCodeFor(err))
}

func TestRestoreAll(t *testing.T) {
	f := newFixture(t)
	_, err := f.eng.BackupAll(t.Context())
	require.NoError(t, err)

	settings := filepath.Join(f.src, "cfg", "settings.ini")
	notes := filepath.Join(f.src, "notes.txt")
	write(t, settings, "edited")
	write(t, filepath.Join(f.src, "cfg", "new.ini"), "new")
	require.NoError(t, os.Remove(notes))

	report, err := f.eng.RestoreAll(t.Context(), Confirmed)
	require.NoError(t, err)

	assert.Equal(t, map[string]Outcome{
		"cfg":   OutcomeOK,
		"saves": OutcomeSkipped,
		"notes": OutcomeOK,
	}, outcomes(report))
	assert.Equal(t, StageLocate, report.Results[1].Stage)

	assert.Equal(t, "v1", read(t, settings))
	assert.NoFileExists(t, filepath.Join(f.src, "cfg", "new.ini"))
	assert.Equal(t, "note", read(t, notes))
}

func TestRestoreGroup_Disabled(t *testing.T) {
	f := newFixture(t)

	_, err := f.eng.RestoreGroup(t.Context(), "idle", Confirmed, GroupOptions{})
	assert.ErrorIs(t, err, ErrGroupDisabled)

	report, err := f.eng.RestoreGroup(t.Context(), "idle", Confirmed, GroupOptions{Force: true})
	require.NoError(t, err)
	assert.Empty(t, report.Results)
}

func TestRestore_Single(t *testing.T) {
	f := newFixture(t)
	settings := filepath.Join(f.src, "cfg", "settings.ini")

	first, err := f.eng.Backup(t.Context(), "cfg")
	require.NoError(t, err)
	write(t, settings, "v2")
	_, err = f.eng.Backup(t.Context(), "cfg")
	require.NoError(t, err)
	write(t, settings, "v3")

	res, err := f.eng.Restore(t.Context(), "cfg", "")
	require.NoError(t, err)
	assert.Equal(t, snapshot.ShapeDir, res.Shape)
	assert.Equal(t, "v2", read(t, settings))

	res, err = f.eng.Restore(t.Context(), "cfg", first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, res.SnapshotID)
	assert.Equal(t, "v1", read(t, settings))
}

func TestRestore_SingleErrors(t *testing.T) {
	f := newFixture(t)
	notes := filepath.Join(f.src, "notes.txt")

	_, err := f.eng.Restore(t.Context(), "notes", "")
	assert.ErrorIs(t, err, errors.ErrNotFound)
	assert.Equal(t, "note", read(t, notes))

	_, err = f.eng.Restore(t.Context(), "notes", "notes_1")
	assert.ErrorIs(t, err, errors.ErrNotFound)

	_, err = f.eng.Restore(t.Context(), "notes", "cfg_1")
	assert.ErrorIs(t, err, errors.ErrInvalidSelection)

	_, err = f.eng.Restore(t.Context(), "ghost", "")
	assert.ErrorIs(t, err, errors.ErrInvalidSelection)
}

func TestPrune(t *testing.T) {
	f := newFixture(t)
	for range 3 {
		_, err := f.eng.BackupAll(t.Context())
		require.NoError(t, err)
	}

	_, err := f.eng.Prune(t.Context(), allScope(), -1, GroupOptions{})
	assert.ErrorIs(t, err, errors.ErrInvalidSelection)

	report, err := f.eng.Prune(t.Context(), allScope(), 1, GroupOptions{})
	require.NoError(t, err)
	assert.Equal(t, 3, report.Succeeded())
	assert.Len(t, report.Results[0].Pruned, 2)

	removed, err := f.eng.PruneItem(t.Context(), "notes", 0)
	require.NoError(t, err)
	assert.Len(t, removed, 1)

	snaps, err := f.eng.Snapshots("notes")
	require.NoError(t, err)
	assert.Empty(t, snaps)
}

func TestRestoreAll_RootInsideTargetSkipped(t *testing.T) {
	f := newFixture(t)

	cfg, err := f.eng.Item("cfg")
	require.NoError(t, err)
	cfg.BackupRoot = filepath.Join(cfg.SourcePath, ".snapkeep")
	f.reg.Items[0] = cfg
	stored := filepath.Join(cfg.BackupRoot, "cfg_100", "cfg", "settings.ini")
	write(t, stored, "old")

	report, err := f.eng.RestoreAll(t.Context(), Confirmed)
	require.NoError(t, err)

	res := report.Results[0]
	assert.Equal(t, OutcomeSkipped, res.Outcome)
	assert.Equal(t, StageRestore, res.Stage)
	assert.ErrorIs(t, res.Err, snapshot.ErrNestedRoot)

	assert.Equal(t, "v1", read(t, filepath.Join(cfg.SourcePath, "settings.ini")))
	assert.FileExists(t, stored)
	assert.NoError(t, report.Err())
}
