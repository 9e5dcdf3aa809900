package engine

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/snapkeep/internal/errors"
	"github.com/thoreinstein/snapkeep/internal/snapshot"
)

func outcomes(r *Report) map[string]Outcome {
	out := make(map[string]Outcome, len(r.Results))
	for _, res := range r.Results {
		out[res.Item] = res.Outcome
	}
	return out
}

func TestBackupAll_PartialSuccess(t *testing.T) {
	f := newFixture(t)

	report, err := f.eng.BackupAll(t.Context())
	require.NoError(t, err)

	assert.Equal(t, map[string]Outcome{
		"cfg":   OutcomeOK,
		"saves": OutcomeSkipped,
		"notes": OutcomeOK,
	}, outcomes(report))
	assert.Equal(t, []string{"cfg", "saves", "notes"}, []string{report.Results[0].Item, report.Results[1].Item, report.Results[2].Item})

	skipped := report.Results[1]
	assert.Equal(t, StageSource, skipped.Stage)
	assert.ErrorIs(t, skipped.Err, errors.ErrNotFound)
	assert.NoError(t, report.Err())

	for _, name := range []string{"cfg", "notes"} {
		snaps, err := f.eng.Snapshots(name)
		require.NoError(t, err)
		assert.Len(t, snaps, 1, name)
	}
	snaps, err := f.eng.Snapshots("old")
	require.NoError(t, err)
	assert.Empty(t, snaps, "disabled items are not backed up in bulk")

	f.store.AssertNotCalled(t, "Save", mock.Anything)
}

func TestBackupAll_FailureDoesNotStopSiblings(t *testing.T) {
	f := newFixture(t)

	// a file where cfg's snapshot root would be
	cfg, err := f.eng.Item("cfg")
	require.NoError(t, err)
	blocked := filepath.Join(t.TempDir(), "blocked")
	write(t, blocked, "x")
	cfg.BackupRoot = filepath.Join(blocked, "root")
	f.reg.Items[0] = cfg

	report, err := f.eng.BackupAll(t.Context())
	require.NoError(t, err)

	assert.Equal(t, OutcomeFailed, report.Results[0].Outcome)
	assert.ErrorIs(t, report.Results[0].Err, errors.ErrIOFailure)
	assert.Equal(t, OutcomeOK, report.Results[2].Outcome)
	assert.Equal(t, 1, report.Failed())
}

func TestBackupGroup(t *testing.T) {
	f := newFixture(t)

	report, err := f.eng.BackupGroup(t.Context(), "games", GroupOptions{})
	require.NoError(t, err)
	assert.Equal(t, map[string]Outcome{"cfg": OutcomeOK, "saves": OutcomeSkipped}, outcomes(report))
	assert.Equal(t, "group games", report.Scope)

	_, err = f.eng.BackupGroup(t.Context(), "idle", GroupOptions{})
	assert.ErrorIs(t, err, ErrGroupDisabled)

	report, err = f.eng.BackupGroup(t.Context(), "idle", GroupOptions{Force: true})
	require.NoError(t, err)
	assert.Empty(t, report.Results)

	_, err = f.eng.BackupGroup(t.Context(), "nope", GroupOptions{})
	assert.ErrorIs(t, err, errors.ErrInvalidSelection)
}

func TestBackup_SingleIgnoresEnabled(t *testing.T) {
	f := newFixture(t)

	snap, err := f.eng.Backup(t.Context(), "old")
	require.NoError(t, err)
	assert.Equal(t, "old", snap.Item)
	assert.Equal(t, "old", read(t, filepath.Join(snap.Path, "old.txt")))

	_, err = f.eng.Backup(t.Context(), "saves")
	assert.ErrorIs(t, err, errors.ErrNotFound)

	_, err = f.eng.Backup(t.Context(), "ghost")
	assert.ErrorIs(t, err, errors.ErrInvalidSelection)
}

func TestBackupAll_Cancelled(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	report, err := f.eng.BackupAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, report)
	assert.True(t, report.Cancelled)
	assert.Empty(t, report.Results)

	entries, _ := os.ReadDir(f.root)
	assert.Empty(t, entries)
}

func TestBackup_Retention(t *testing.T) {
	f := newFixture(t, WithRetention(2))

	var last []string
	for range 4 {
		report, err := f.eng.BackupGroup(t.Context(), "games", GroupOptions{})
		require.NoError(t, err)
		last = report.Results[0].Pruned
	}
	assert.Len(t, last, 1)

	snaps, err := f.eng.Snapshots("cfg")
	require.NoError(t, err)
	assert.Len(t, snaps, 2)
}

func TestBackupAll_RootInsideSourceSkipped(t *testing.T) {
	f := newFixture(t)

	cfg, err := f.eng.Item("cfg")
	require.NoError(t, err)
	cfg.BackupRoot = filepath.Join(cfg.SourcePath, ".snapkeep")
	f.reg.Items[0] = cfg

	report, err := f.eng.BackupAll(t.Context())
	require.NoError(t, err)

	res := report.Results[0]
	assert.Equal(t, OutcomeSkipped, res.Outcome)
	assert.Equal(t, StageSource, res.Stage)
	assert.ErrorIs(t, res.Err, snapshot.ErrNestedRoot)
	assert.Contains(t, res.Error, "inside")
	assert.NoDirExists(t, cfg.BackupRoot)

	assert.Equal(t, OutcomeOK, report.Results[2].Outcome)
	assert.NoError(t, report.Err())
}

func TestReport_JSONCarriesError(t *testing.T) {
	f := newFixture(t)

	report, err := f.eng.BackupAll(t.Context())
	require.NoError(t, err)

	data, err := json.Marshal(report)
	require.NoError(t, err)

	var decoded struct {
		Results []map[string]any `json:"results"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded.Results, 3)

	assert.NotContains(t, decoded.Results[0], "error")
	assert.Equal(t, "skipped", decoded.Results[1]["outcome"])
	assert.Contains(t, decoded.Results[1]["error"], "not found")
}
