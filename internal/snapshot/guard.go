package snapshot

import (
	"path/filepath"
	"strings"

	"github.com/thoreinstein/snapkeep/internal/errors"
	"github.com/thoreinstein/snapkeep/internal/registry"
)

// Inside reports whether path is dir or lies below it. Both paths are made
// absolute and cleaned before comparing.
func Inside(path, dir string) bool {
	path, dir = absClean(path), absClean(dir)
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

func absClean(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}

// checkRoot rejects an item whose backup root lies inside its own source.
func checkRoot(item registry.SyncItem) error {
	if Inside(item.BackupRoot, item.SourcePath) {
		return errors.Wrapf(ErrNestedRoot, "item %q: backup root %s is inside source %s",
			item.Name, item.BackupRoot, item.SourcePath)
	}
	return nil
}
