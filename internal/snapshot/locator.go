package snapshot

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/thoreinstein/snapkeep/internal/errors"
)

// List returns the snapshots of item under root, newest first.
//
// Every directory directly under root whose name starts with "{item}_" is a
// snapshot. Order is by modified time, descending, with ties broken by name,
// descending. A missing root is an empty list; any unreadable entry fails
// the whole listing.
//
// The prefix is the only filter, so an item named "cfg" also lists the
// snapshots of an item named "cfg_old" stored under the same root.
func (m *Manager) List(item, root string) ([]Snapshot, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return []Snapshot{}, nil
		}
		return nil, errors.NewIOError("read", root, "", err)
	}

	p := prefix(item)
	snaps := make([]Snapshot, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), p) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, errors.NewIOError("stat", filepath.Join(root, entry.Name()), "", err)
		}
		snaps = append(snaps, newSnapshot(item, root, entry.Name(), info))
	}

	slices.SortFunc(snaps, func(a, b Snapshot) int {
		if c := b.ModTime.Compare(a.ModTime); c != 0 {
			return c
		}
		return strings.Compare(b.ID, a.ID)
	})
	return snaps, nil
}

// Latest returns the newest snapshot of item, or ErrNotFound.
func (m *Manager) Latest(item, root string) (*Snapshot, error) {
	snaps, err := m.List(item, root)
	if err != nil {
		return nil, err
	}
	if len(snaps) == 0 {
		return nil, errors.Wrapf(errors.ErrNotFound, "no snapshots for item %q in %s", item, root)
	}
	return &snaps[0], nil
}

// Get resolves an explicit snapshot id of item.
func (m *Manager) Get(item, root, id string) (*Snapshot, error) {
	if !strings.HasPrefix(id, prefix(item)) || strings.ContainsAny(id, `/\`) {
		return nil, errors.Wrapf(errors.ErrInvalidSelection, "snapshot %q does not belong to item %q", id, item)
	}

	path := filepath.Join(root, id)
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(errors.ErrNotFound, "snapshot %s", path)
		}
		return nil, errors.NewIOError("stat", path, "", err)
	}
	if !info.IsDir() {
		return nil, errors.Wrapf(errors.ErrNotFound, "snapshot %s is not a directory", path)
	}

	snap := newSnapshot(item, root, id, info)
	return &snap, nil
}

func newSnapshot(item, root, id string, info os.FileInfo) Snapshot {
	s := Snapshot{
		ID:      id,
		Item:    item,
		Path:    filepath.Join(root, id),
		ModTime: info.ModTime(),
	}
	s.Timestamp, _ = parseTimestamp(item, id)
	return s
}
