package engine

import (
	"context"

	"github.com/thoreinstein/snapkeep/internal/errors"
	"github.com/thoreinstein/snapkeep/internal/registry"
	"github.com/thoreinstein/snapkeep/internal/selection"
	"github.com/thoreinstein/snapkeep/internal/snapshot"
)

// Backup snapshots one item by name, regardless of its enabled flag.
func (e *Engine) Backup(ctx context.Context, name string) (*snapshot.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	item, err := e.reg.Item(name)
	if err != nil {
		return nil, err
	}

	res, snap := e.backupItem(item)
	if res.Err != nil {
		return nil, res.Err
	}
	return snap, nil
}

// BackupAll snapshots every enabled item.
func (e *Engine) BackupAll(ctx context.Context) (*Report, error) {
	return e.backupScope(ctx, selection.All(), GroupOptions{})
}

// BackupGroup snapshots the enabled members of group.
func (e *Engine) BackupGroup(ctx context.Context, group string, opts GroupOptions) (*Report, error) {
	return e.backupScope(ctx, selection.Group(group), opts)
}

func (e *Engine) backupScope(ctx context.Context, scope selection.Scope, opts GroupOptions) (*Report, error) {
	items, err := e.Select(scope, opts)
	if err != nil {
		return nil, err
	}

	report := &Report{Operation: "backup", Scope: scope.String()}
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			report.Cancelled = true
			return report, errors.Wrap(err, "backup cancelled")
		}
		res, _ := e.backupItem(item)
		report.add(res)
	}
	return report, nil
}

func (e *Engine) backupItem(item registry.SyncItem) (ItemResult, *snapshot.Snapshot) {
	res := ItemResult{Item: item.Name, Stage: StageBackup, Source: item.SourcePath}

	snap, err := e.snaps.Backup(item)
	switch {
	case errors.Is(err, errors.ErrNotFound):
		res.Outcome = OutcomeSkipped
		res.Stage = StageSource
		res.Err = err
		e.logger.Warn("source missing, skipped", "item", item.Name, "source", item.SourcePath)
		return res, nil
	case errors.Is(err, snapshot.ErrNestedRoot):
		res.Outcome = OutcomeSkipped
		res.Stage = StageSource
		res.Err = err
		e.logger.Warn("backup root inside source, skipped", "item", item.Name, "source", item.SourcePath, "backup_root", item.BackupRoot)
		return res, nil
	case err != nil:
		res.Outcome = OutcomeFailed
		res.Err = err
		e.logFailure(res)
		return res, nil
	}

	res.Outcome = OutcomeOK
	res.SnapshotID = snap.ID
	res.Destination = snap.Path
	e.logger.Info("backed up", "item", item.Name, "snapshot", snap.ID, "source", item.SourcePath, "destination", snap.Path)

	if e.retention > 0 {
		removed, err := e.snaps.Prune(item.Name, item.BackupRoot, e.retention)
		for _, s := range removed {
			res.Pruned = append(res.Pruned, s.ID)
		}
		if err != nil {
			e.logger.Warn("retention prune failed", "item", item.Name, "stage", StagePrune, "error", err)
		}
	}
	return res, snap
}

func (e *Engine) logFailure(res ItemResult) {
	e.logger.Error("item failed",
		"item", res.Item,
		"stage", res.Stage,
		"source", res.Source,
		"destination", res.Destination,
		"snapshot", res.SnapshotID,
		"error", res.Err,
	)
}
