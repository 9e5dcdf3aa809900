package snapshot

import (
	"os"
	"path/filepath"

	"github.com/thoreinstein/snapkeep/internal/errors"
	"github.com/thoreinstein/snapkeep/internal/registry"
)

// Plan resolves how snap maps onto item.SourcePath without modifying
// anything. It fails with ErrNotFound for a missing or empty snapshot and
// with ErrShapeMismatch when a directory snapshot has no file to restore
// onto a file target.
//
// The target kind is the kind of the existing source path or, when it is
// absent, the kind the snapshot implies.
func (m *Manager) Plan(item registry.SyncItem, snap Snapshot) (*Plan, error) {
	entries, err := os.ReadDir(snap.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(errors.ErrNotFound, "snapshot %s", snap.Path)
		}
		return nil, errors.NewIOError("read", snap.Path, "", err)
	}
	if len(entries) == 0 {
		return nil, errors.Wrapf(errors.ErrNotFound, "snapshot %s is empty", snap.Path)
	}

	plan := &Plan{To: item.SourcePath}

	if len(entries) > 1 {
		plan.Shape = ShapeMulti
		plan.From = snap.Path
		plan.TargetIsDir = true
		return plan, nil
	}

	only := filepath.Join(snap.Path, entries[0].Name())
	if !entries[0].IsDir() {
		plan.Shape = ShapeFile
		plan.From = only
		return plan, nil
	}

	targetIsDir, err := targetKind(item.SourcePath, true)
	if err != nil {
		return nil, err
	}
	if targetIsDir {
		plan.Shape = ShapeDir
		plan.From = only
		plan.TargetIsDir = true
		return plan, nil
	}

	file, err := firstRegularFile(only)
	if err != nil {
		return nil, err
	}
	plan.Shape = ShapeDirToFile
	plan.From = file
	return plan, nil
}

// Restore replaces item.SourcePath with the content of snap.
//
// The target is cleared before copying and there is no rollback: if the copy
// fails the target is left absent or partially written, and the error is an
// *errors.IOError. A missing or empty snapshot fails with ErrNotFound, and a
// backup root inside the target with ErrNestedRoot, before anything is touched.
func (m *Manager) Restore(item registry.SyncItem, snap Snapshot) (*RestoreResult, error) {
	if err := checkRoot(item); err != nil {
		return nil, err
	}

	plan, err := m.Plan(item, snap)
	if err != nil {
		return nil, err
	}

	target := item.SourcePath
	parent := filepath.Dir(target)
	if err := os.MkdirAll(parent, DirPerm); err != nil {
		return nil, errors.NewIOError("mkdir", "", parent, err)
	}

	if err := os.RemoveAll(target); err != nil {
		return nil, errors.NewIOError("remove", "", target, err)
	}

	m.logger.Debug("restoring snapshot", "item", item.Name, "snapshot", snap.ID, "shape", plan.Shape.String(), "source", plan.From, "destination", target)

	switch plan.Shape {
	case ShapeFile, ShapeDirToFile:
		err = copyEntry(plan.From, target)
	case ShapeDir, ShapeMulti:
		if err = os.Mkdir(target, DirPerm); err != nil {
			err = errors.NewIOError("mkdir", "", target, err)
			break
		}
		err = copyDir(plan.From, target)
	}
	if err != nil {
		return nil, err
	}

	return &RestoreResult{
		Item:       item.Name,
		SnapshotID: snap.ID,
		Shape:      plan.Shape,
		From:       plan.From,
		To:         target,
	}, nil
}

// targetKind reports whether path is a directory, or fallback when absent.
func targetKind(path string, fallback bool) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fallback, nil
		}
		return false, errors.NewIOError("stat", path, "", err)
	}
	return info.IsDir(), nil
}

// firstRegularFile returns the first regular file directly inside dir in
// lexical order.
func firstRegularFile(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", errors.NewIOError("read", dir, "", err)
	}
	// os.ReadDir returns entries sorted by name
	for _, e := range entries {
		if e.Type().IsRegular() {
			return filepath.Join(dir, e.Name()), nil
		}
	}
	return "", errors.Wrapf(ErrShapeMismatch, "%s holds no regular file", dir)
}
