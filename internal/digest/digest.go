// Package digest fingerprints file trees with xxh3 so live content can be
// compared against a snapshot.
package digest

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/zeebo/xxh3"

	"github.com/thoreinstein/snapkeep/internal/errors"
)

// dirMarker is the entry hash recorded for directories, so empty
// directories take part in comparisons.
const dirMarker = "dir"

// Tree is the fingerprint of a file or directory.
type Tree struct {
	// Files maps slash-separated paths relative to the root to their hash.
	// A single-file root is recorded under ".".
	Files map[string]string

	// Sum is the combined hash over the sorted entries.
	Sum string
}

// Compute fingerprints the file or directory at root.
func Compute(root string) (*Tree, error) {
	info, err := os.Lstat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(errors.ErrNotFound, "%s", root)
		}
		return nil, errors.NewIOError("stat", root, "", err)
	}

	t := &Tree{Files: make(map[string]string)}
	if !info.IsDir() {
		h, err := hashEntry(root, info.Mode())
		if err != nil {
			return nil, err
		}
		t.Files["."] = h
		t.Sum = sum(t.Files)
		return t, nil
	}

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.NewIOError("read", path, "", err)
		}
		if path == root {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return errors.Wrapf(err, "relative path of %s", path)
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			t.Files[rel] = dirMarker
			return nil
		}
		h, err := hashEntry(path, d.Type())
		if err != nil {
			return err
		}
		t.Files[rel] = h
		return nil
	})
	if err != nil {
		return nil, err
	}

	t.Sum = sum(t.Files)
	return t, nil
}

func hashEntry(path string, mode fs.FileMode) (string, error) {
	if mode&fs.ModeSymlink != 0 {
		target, err := os.Readlink(path)
		if err != nil {
			return "", errors.NewIOError("readlink", path, "", err)
		}
		return "link:" + target, nil
	}
	if !mode.IsRegular() {
		return "special", nil
	}

	f, err := os.Open(path)
	if err != nil {
		return "", errors.NewIOError("read", path, "", err)
	}
	defer f.Close()

	h := xxh3.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", errors.NewIOError("read", path, "", err)
	}
	return fmt.Sprintf("%x", h.Sum128().Bytes()), nil
}

// sum hashes the sorted (path, hash) pairs.
func sum(files map[string]string) string {
	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	slices.Sort(paths)

	data := make([]byte, 0, len(paths)*64)
	for _, p := range paths {
		data = append(data, p...)
		data = append(data, 0)
		data = append(data, files[p]...)
		data = append(data, '\n')
	}
	return fmt.Sprintf("%x", xxh3.Hash128(data).Bytes())
}

// Diff lists the paths that differ between two trees.
type Diff struct {
	Added   []string `json:"added,omitempty"`
	Removed []string `json:"removed,omitempty"`
	Changed []string `json:"changed,omitempty"`
}

// Equal reports whether the trees had identical content.
func (d Diff) Equal() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Changed) == 0
}

// Compare returns how current differs from base. Paths in current only are
// Added; paths in base only are Removed.
func Compare(base, current *Tree) Diff {
	var d Diff
	if base.Sum == current.Sum {
		return d
	}
	for p, h := range current.Files {
		bh, ok := base.Files[p]
		switch {
		case !ok:
			d.Added = append(d.Added, p)
		case bh != h:
			d.Changed = append(d.Changed, p)
		}
	}
	for p := range base.Files {
		if _, ok := current.Files[p]; !ok {
			d.Removed = append(d.Removed, p)
		}
	}
	slices.Sort(d.Added)
	slices.Sort(d.Removed)
	slices.Sort(d.Changed)
	return d
}
