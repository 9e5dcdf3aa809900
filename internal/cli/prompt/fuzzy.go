package prompt

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/thoreinstein/snapkeep/internal/errors"
	"github.com/thoreinstein/snapkeep/internal/logging"
	"github.com/thoreinstein/snapkeep/internal/snapshot"
)

// previewLimit caps the entries shown in the preview window.
const previewLimit = 40

// FuzzySnapshot opens a full-screen fuzzy finder over snaps with a preview
// of each snapshot's top-level content.
func FuzzySnapshot(item string, snaps []snapshot.Snapshot) (*snapshot.Snapshot, error) {
	if len(snaps) == 0 {
		return nil, errors.Wrapf(ErrNoSnapshots, "item %q", item)
	}

	idx, err := fuzzyfinder.Find(
		snaps,
		func(i int) string {
			return fmt.Sprintf("%s  %s", snaps[i].ID, snaps[i].ModTime.Local().Format(timeLayout))
		},
		fuzzyfinder.WithPromptString(item+"> "),
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return ""
			}
			return preview(snaps[i])
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil, ErrSelectionCancelled
		}
		return nil, errors.Wrap(err, "interactive selection failed")
	}
	return &snaps[idx], nil
}

// PickSnapshot uses the fuzzy finder when in and out are terminals and the
// numbered Selector otherwise.
func PickSnapshot(in io.Reader, out io.Writer, item string, snaps []snapshot.Snapshot) (*snapshot.Snapshot, error) {
	if logging.IsInteractive(in) && logging.IsTTY(out) {
		return FuzzySnapshot(item, snaps)
	}
	return NewSelectorWithIO(in, out).SelectSnapshot(item, snaps)
}

func preview(s snapshot.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "ID:       %s\nModified: %s\nPath:     %s\n\n", s.ID, s.ModTime.Local().Format(timeLayout), s.Path)

	n := 0
	err := filepath.WalkDir(s.Path, func(path string, d os.DirEntry, err error) error {
		if err != nil || path == s.Path {
			return err
		}
		if n >= previewLimit {
			return filepath.SkipAll
		}
		rel, _ := filepath.Rel(s.Path, path)
		if d.IsDir() {
			rel += string(filepath.Separator)
		}
		b.WriteString(rel)
		b.WriteByte('\n')
		n++
		return nil
	})
	if err != nil {
		fmt.Fprintf(&b, "(unreadable: %v)\n", err)
	}
	if n >= previewLimit {
		b.WriteString("...\n")
	}
	return b.String()
}
