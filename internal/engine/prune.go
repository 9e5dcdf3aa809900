package engine

import (
	"context"

	"github.com/thoreinstein/snapkeep/internal/errors"
	"github.com/thoreinstein/snapkeep/internal/registry"
	"github.com/thoreinstein/snapkeep/internal/selection"
	"github.com/thoreinstein/snapkeep/internal/snapshot"
)

// PruneItem removes one item's snapshots beyond the newest keep.
func (e *Engine) PruneItem(ctx context.Context, name string, keep int) ([]snapshot.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	item, err := e.reg.Item(name)
	if err != nil {
		return nil, err
	}
	removed, err := e.snaps.Prune(item.Name, item.BackupRoot, keep)
	if err != nil {
		e.logFailure(ItemResult{Item: item.Name, Stage: StagePrune, Source: item.BackupRoot, Err: err})
		return removed, err
	}
	return removed, nil
}

// Prune removes snapshots beyond the newest keep for every item in scope.
func (e *Engine) Prune(ctx context.Context, scope selection.Scope, keep int, opts GroupOptions) (*Report, error) {
	if keep < 0 {
		return nil, errors.Wrapf(errors.ErrInvalidSelection, "keep must be non-negative, got %d", keep)
	}
	items, err := e.Select(scope, opts)
	if err != nil {
		return nil, err
	}

	report := &Report{Operation: "prune", Scope: scope.String()}
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			report.Cancelled = true
			return report, errors.Wrap(err, "prune cancelled")
		}
		report.add(e.pruneItem(item, keep))
	}
	return report, nil
}

func (e *Engine) pruneItem(item registry.SyncItem, keep int) ItemResult {
	res := ItemResult{Item: item.Name, Stage: StagePrune, Source: item.BackupRoot}

	removed, err := e.snaps.Prune(item.Name, item.BackupRoot, keep)
	for _, s := range removed {
		res.Pruned = append(res.Pruned, s.ID)
	}
	if err != nil {
		res.Outcome = OutcomeFailed
		res.Err = err
		e.logFailure(res)
		return res
	}

	res.Outcome = OutcomeOK
	if len(removed) > 0 {
		e.logger.Info("pruned", "item", item.Name, "removed", len(removed), "kept", keep)
	}
	return res
}
