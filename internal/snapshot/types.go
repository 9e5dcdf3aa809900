package snapshot

import (
	"time"

	"github.com/thoreinstein/snapkeep/internal/errors"
)

// Directory and file permissions for snapshot storage.
const (
	DirPerm = 0o755
)

// Sentinel errors for snapshot operations.
var (
	// ErrSnapshotExists indicates the snapshot directory is already present.
	// Snapshots are append-only and never merged or overwritten.
	ErrSnapshotExists = errors.Mark(errors.New("snapshot already exists"), errors.ErrIOFailure)

	// ErrShapeMismatch indicates a directory snapshot holds no regular file
	// to restore onto a file target.
	ErrShapeMismatch = errors.New("snapshot shape does not match target")

	// ErrNestedRoot indicates an item's backup root lies inside its source.
	ErrNestedRoot = errors.Mark(errors.New("backup root is inside the source"), errors.ErrInvalidSelection)
)

// Snapshot is one stored copy of an item.
type Snapshot struct {
	// ID is the directory name, {item}_{unix_seconds}.
	ID string `json:"id"`

	// Item is the item name the snapshot was listed for.
	Item string `json:"item"`

	// Path is the absolute snapshot directory.
	Path string `json:"path"`

	// ModTime is the directory's modified time, the ordering key.
	ModTime time.Time `json:"mod_time"`

	// Timestamp is the creation time encoded in the ID, or zero when the
	// suffix is not a number. It is informational only.
	Timestamp time.Time `json:"timestamp,omitzero"`
}

// Shape describes how a snapshot's content maps onto the live path.
type Shape int

const (
	// ShapeFile is a snapshot holding exactly one file.
	ShapeFile Shape = iota + 1

	// ShapeDir is a snapshot holding exactly one directory, restored as the
	// directory's contents.
	ShapeDir

	// ShapeDirToFile is a single-directory snapshot restored onto a file
	// target using the first regular file inside it.
	ShapeDirToFile

	// ShapeMulti is a snapshot with several top-level entries, restored
	// verbatim into a directory.
	ShapeMulti
)

func (s Shape) String() string {
	switch s {
	case ShapeFile:
		return "file"
	case ShapeDir:
		return "directory"
	case ShapeDirToFile:
		return "directory-to-file"
	case ShapeMulti:
		return "multi-entry"
	default:
		return "unknown"
	}
}

// Plan is the resolved mapping of a snapshot onto a target path.
type Plan struct {
	Shape Shape

	// From is the snapshot path whose content lands at the target: a file,
	// the wrapped directory, or the snapshot directory itself.
	From string

	// To is the live target path.
	To string

	// TargetIsDir records the kind the target will have after restore.
	TargetIsDir bool
}

// RestoreResult describes a completed restore.
type RestoreResult struct {
	Item       string `json:"item"`
	SnapshotID string `json:"snapshot_id"`
	Shape      Shape  `json:"shape"`
	From       string `json:"from"`
	To         string `json:"to"`
}
