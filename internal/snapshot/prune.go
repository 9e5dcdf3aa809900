package snapshot

import (
	"os"

	"github.com/thoreinstein/snapkeep/internal/errors"
)

// Prune removes the snapshots of item beyond the newest keep, in List
// order, and returns the removed snapshots. keep == 0 removes all of them.
func (m *Manager) Prune(item, root string, keep int) ([]Snapshot, error) {
	if keep < 0 {
		return nil, errors.Wrapf(errors.ErrInvalidSelection, "keep must be non-negative, got %d", keep)
	}

	snaps, err := m.List(item, root)
	if err != nil {
		return nil, err
	}
	if len(snaps) <= keep {
		return nil, nil
	}

	var removed []Snapshot
	for _, s := range snaps[keep:] {
		if err := os.RemoveAll(s.Path); err != nil {
			return removed, errors.NewIOError("remove", "", s.Path, err)
		}
		m.logger.Debug("pruned snapshot", "item", item, "snapshot", s.ID)
		removed = append(removed, s)
	}
	return removed, nil
}
