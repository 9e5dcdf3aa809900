package snapshot

import (
	"os"
	"path/filepath"

	"github.com/thoreinstein/snapkeep/internal/errors"
	"github.com/thoreinstein/snapkeep/internal/registry"
)

// Backup copies item's source into a new snapshot under item.BackupRoot.
//
// A directory source is stored as root/{id}/{base(source)}/...; a file
// source as root/{id}/{base(source)}. The snapshot directory is created
// without merging, so an id collision fails with ErrSnapshotExists. On a
// copy failure the partial snapshot directory is removed. A backup root
// inside the source fails with ErrNestedRoot before anything is created.
func (m *Manager) Backup(item registry.SyncItem) (*Snapshot, error) {
	if err := checkRoot(item); err != nil {
		return nil, err
	}

	info, err := os.Stat(item.SourcePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(errors.ErrNotFound, "item %q: source %s", item.Name, item.SourcePath)
		}
		return nil, errors.NewIOError("stat", item.SourcePath, "", err)
	}

	if err := os.MkdirAll(item.BackupRoot, DirPerm); err != nil {
		return nil, errors.NewIOError("mkdir", "", item.BackupRoot, err)
	}

	id := NewID(item.Name, m.now())
	dir := filepath.Join(item.BackupRoot, id)
	if err := os.Mkdir(dir, DirPerm); err != nil {
		if os.IsExist(err) {
			return nil, errors.NewIOError("mkdir", "", dir, ErrSnapshotExists)
		}
		return nil, errors.NewIOError("mkdir", "", dir, err)
	}

	dst := filepath.Join(dir, filepath.Base(item.SourcePath))
	m.logger.Debug("copying source", "item", item.Name, "source", item.SourcePath, "destination", dst, "dir", info.IsDir())

	if err := copyEntry(item.SourcePath, dst); err != nil {
		if rmErr := os.RemoveAll(dir); rmErr != nil {
			m.logger.Warn("removing partial snapshot", "path", dir, "error", rmErr)
		}
		return nil, err
	}

	dirInfo, err := os.Stat(dir)
	if err != nil {
		return nil, errors.NewIOError("stat", dir, "", err)
	}

	snap := &Snapshot{
		ID:      id,
		Item:    item.Name,
		Path:    dir,
		ModTime: dirInfo.ModTime(),
	}
	snap.Timestamp, _ = parseTimestamp(item.Name, id)
	return snap, nil
}
