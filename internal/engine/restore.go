package engine

import (
	"context"

	"github.com/thoreinstein/snapkeep/internal/errors"
	"github.com/thoreinstein/snapkeep/internal/registry"
	"github.com/thoreinstein/snapkeep/internal/selection"
	"github.com/thoreinstein/snapkeep/internal/snapshot"
)

// Restore replaces one item's source with a snapshot, regardless of the
// item's enabled flag. An empty snapshotID selects the latest snapshot.
//
// The source is cleared before copying; a copy failure leaves it absent or
// partially written.
func (e *Engine) Restore(ctx context.Context, name, snapshotID string) (*snapshot.RestoreResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	item, err := e.reg.Item(name)
	if err != nil {
		return nil, err
	}

	res, out := e.restoreItem(item, snapshotID)
	if res.Err != nil {
		return nil, res.Err
	}
	return out, nil
}

// RestoreAll restores every enabled item to its latest snapshot.
func (e *Engine) RestoreAll(ctx context.Context, confirm Confirmation) (*Report, error) {
	return e.restoreScope(ctx, selection.All(), confirm, GroupOptions{})
}

// RestoreGroup restores the enabled members of group to their latest
// snapshots.
func (e *Engine) RestoreGroup(ctx context.Context, group string, confirm Confirmation, opts GroupOptions) (*Report, error) {
	return e.restoreScope(ctx, selection.Group(group), confirm, opts)
}

func (e *Engine) restoreScope(ctx context.Context, scope selection.Scope, confirm Confirmation, opts GroupOptions) (*Report, error) {
	if confirm != Confirmed {
		return nil, errors.Wrapf(errors.ErrUnconfirmed, "restore %s", scope)
	}
	items, err := e.Select(scope, opts)
	if err != nil {
		return nil, err
	}

	report := &Report{Operation: "restore", Scope: scope.String()}
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			report.Cancelled = true
			return report, errors.Wrap(err, "restore cancelled")
		}
		res, _ := e.restoreItem(item, "")
		report.add(res)
	}
	return report, nil
}

func (e *Engine) restoreItem(item registry.SyncItem, snapshotID string) (ItemResult, *snapshot.RestoreResult) {
	res := ItemResult{Item: item.Name, Stage: StageLocate, Destination: item.SourcePath}

	var snap *snapshot.Snapshot
	var err error
	if snapshotID == "" {
		snap, err = e.snaps.Latest(item.Name, item.BackupRoot)
	} else {
		snap, err = e.snaps.Get(item.Name, item.BackupRoot, snapshotID)
	}
	if err != nil {
		res.Err = err
		if errors.Is(err, errors.ErrNotFound) && snapshotID == "" {
			res.Outcome = OutcomeSkipped
			e.logger.Warn("no snapshots, skipped", "item", item.Name, "backup_root", item.BackupRoot)
			return res, nil
		}
		res.Outcome = OutcomeFailed
		e.logFailure(res)
		return res, nil
	}

	res.Stage = StageRestore
	res.SnapshotID = snap.ID
	res.Source = snap.Path

	out, err := e.snaps.Restore(item, *snap)
	switch {
	case errors.Is(err, snapshot.ErrNestedRoot):
		res.Outcome = OutcomeSkipped
		res.Err = err
		e.logger.Warn("backup root inside target, skipped", "item", item.Name, "destination", item.SourcePath, "backup_root", item.BackupRoot)
		return res, nil
	case err != nil:
		res.Outcome = OutcomeFailed
		res.Err = err
		e.logFailure(res)
		return res, nil
	}

	res.Outcome = OutcomeOK
	e.logger.Info("restored", "item", item.Name, "snapshot", snap.ID, "shape", out.Shape.String(), "source", out.From, "destination", out.To)
	return res, out
}

// Snapshots lists an item's snapshots, newest first.
func (e *Engine) Snapshots(name string) ([]snapshot.Snapshot, error) {
	item, err := e.reg.Item(name)
	if err != nil {
		return nil, err
	}
	return e.snaps.List(item.Name, item.BackupRoot)
}
