package engine

import (
	"os"

	"github.com/thoreinstein/snapkeep/internal/digest"
	"github.com/thoreinstein/snapkeep/internal/errors"
	"github.com/thoreinstein/snapkeep/internal/registry"
	"github.com/thoreinstein/snapkeep/internal/snapshot"
)

// ItemStatus compares an item's live source with its latest snapshot.
type ItemStatus struct {
	Item          registry.SyncItem  `json:"item"`
	SourceExists  bool               `json:"source_exists"`
	SnapshotCount int                `json:"snapshot_count"`
	Latest        *snapshot.Snapshot `json:"latest,omitempty"`

	// Compared is set when both the source and a snapshot exist and their
	// fingerprints were computed.
	Compared bool `json:"compared"`

	// Diff lists how the source differs from the latest snapshot.
	Diff digest.Diff `json:"diff"`
}

// UpToDate reports whether the latest snapshot matches the live source.
func (s ItemStatus) UpToDate() bool {
	return s.Compared && s.Diff.Equal()
}

// Status reports on one item.
func (e *Engine) Status(name string) (*ItemStatus, error) {
	item, err := e.reg.Item(name)
	if err != nil {
		return nil, err
	}
	return e.status(item)
}

// StatusAll reports on every registered item, enabled or not, in registry
// order.
func (e *Engine) StatusAll() ([]ItemStatus, error) {
	out := make([]ItemStatus, 0, len(e.reg.Items))
	for _, item := range e.reg.Items {
		st, err := e.status(item)
		if err != nil {
			return out, errors.Wrapf(err, "status of %s", item.Name)
		}
		out = append(out, *st)
	}
	return out, nil
}

func (e *Engine) status(item registry.SyncItem) (*ItemStatus, error) {
	st := &ItemStatus{Item: item}

	if _, err := os.Stat(item.SourcePath); err == nil {
		st.SourceExists = true
	} else if !os.IsNotExist(err) {
		return nil, errors.NewIOError("stat", item.SourcePath, "", err)
	}

	snaps, err := e.snaps.List(item.Name, item.BackupRoot)
	if err != nil {
		return nil, err
	}
	st.SnapshotCount = len(snaps)
	if len(snaps) == 0 {
		return st, nil
	}
	st.Latest = &snaps[0]

	if !st.SourceExists {
		return st, nil
	}

	plan, err := e.snaps.Plan(item, snaps[0])
	if err != nil {
		// An unusable snapshot is reported, not fatal.
		e.logger.Debug("cannot resolve latest snapshot", "item", item.Name, "snapshot", snaps[0].ID, "error", err)
		return st, nil
	}

	base, err := digest.Compute(plan.From)
	if err != nil {
		return nil, err
	}
	live, err := digest.Compute(item.SourcePath)
	if err != nil {
		return nil, err
	}
	st.Compared = true
	st.Diff = digest.Compare(base, live)
	return st, nil
}
