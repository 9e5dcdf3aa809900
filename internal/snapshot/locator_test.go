package snapshot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/thoreinstein/snapkeep/internal/errors"
)

func makeSnapshotDir(t *testing.T, root, id string, mtime int64) {
	t.Helper()
	dir := filepath.Join(root, id)
	writeFile(t, filepath.Join(dir, "f"), id)
	setModTime(t, dir, mtime)
}

func ids(snaps []Snapshot) []string {
	out := make([]string, 0, len(snaps))
	for _, s := range snaps {
		out = append(out, s.ID)
	}
	return out
}

func TestList_Ordering(t *testing.T) {
	root := t.TempDir()
	makeSnapshotDir(t, root, "cfg_100", 100)
	makeSnapshotDir(t, root, "cfg_300", 300)
	makeSnapshotDir(t, root, "cfg_200", 200)
	// mtime wins over the encoded timestamp
	makeSnapshotDir(t, root, "cfg_050", 400)
	// ties break by name, descending
	makeSnapshotDir(t, root, "cfg_a", 250)
	makeSnapshotDir(t, root, "cfg_b", 250)
	// other items and stray files are ignored
	makeSnapshotDir(t, root, "saves_999", 999)
	writeFile(t, filepath.Join(root, "cfg_file"), "not a dir")

	m := NewManager()
	got, err := m.List("cfg", root)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}

	want := []string{"cfg_050", "cfg_300", "cfg_b", "cfg_a", "cfg_200", "cfg_100"}
	if len(got) != len(want) {
		t.Fatalf("List() = %v, want %v", ids(got), want)
	}
	for i := range want {
		if got[i].ID != want[i] {
			t.Fatalf("List() = %v, want %v", ids(got), want)
		}
	}

	// stable across calls
	again, err := m.List("cfg", root)
	if err != nil {
		t.Fatal(err)
	}
	for i := range got {
		if again[i].ID != got[i].ID {
			t.Fatalf("second List() = %v, first %v", ids(again), ids(got))
		}
	}
}

func TestList_MissingRoot(t *testing.T) {
	got, err := NewManager().List("cfg", filepath.Join(t.TempDir(), "missing"))
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("List() = %v, want empty non-nil slice", got)
	}
}

func TestLatest(t *testing.T) {
	root := t.TempDir()
	m := NewManager()

	if _, err := m.Latest("cfg", root); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("Latest() on empty root error = %v, want ErrNotFound", err)
	}

	makeSnapshotDir(t, root, "cfg_1", 1)
	makeSnapshotDir(t, root, "cfg_2", 2)

	snap, err := m.Latest("cfg", root)
	if err != nil {
		t.Fatalf("Latest() error: %v", err)
	}
	if snap.ID != "cfg_2" {
		t.Errorf("Latest().ID = %q, want cfg_2", snap.ID)
	}
}

func TestGet(t *testing.T) {
	root := t.TempDir()
	makeSnapshotDir(t, root, "cfg_1", 1)
	writeFile(t, filepath.Join(root, "cfg_file"), "x")
	m := NewManager()

	snap, err := m.Get("cfg", root, "cfg_1")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if snap.Path != filepath.Join(root, "cfg_1") {
		t.Errorf("Path = %q", snap.Path)
	}

	tests := []struct {
		id   string
		want error
	}{
		{"cfg_9", errors.ErrNotFound},
		{"cfg_file", errors.ErrNotFound},
		{"saves_1", errors.ErrInvalidSelection},
		{"cfg_1/../../etc", errors.ErrInvalidSelection},
	}
	for _, tt := range tests {
		if _, err := m.Get("cfg", root, tt.id); !errors.Is(err, tt.want) {
			t.Errorf("Get(%q) error = %v, want %v", tt.id, err, tt.want)
		}
	}
}

func TestPrune(t *testing.T) {
	root := t.TempDir()
	for i := int64(1); i <= 5; i++ {
		makeSnapshotDir(t, root, NewID("cfg", fixedClock(i)()), i)
	}
	m := NewManager()

	removed, err := m.Prune("cfg", root, 2)
	if err != nil {
		t.Fatalf("Prune() error: %v", err)
	}
	if got := ids(removed); len(got) != 3 || got[0] != "cfg_3" {
		t.Errorf("removed = %v, want [cfg_3 cfg_2 cfg_1]", got)
	}

	left, err := m.List("cfg", root)
	if err != nil {
		t.Fatal(err)
	}
	if got := ids(left); len(got) != 2 || got[0] != "cfg_5" || got[1] != "cfg_4" {
		t.Errorf("remaining = %v, want [cfg_5 cfg_4]", got)
	}

	if _, err := m.Prune("cfg", root, -1); !errors.Is(err, errors.ErrInvalidSelection) {
		t.Errorf("Prune(-1) error = %v, want ErrInvalidSelection", err)
	}

	removed, err = m.Prune("cfg", root, 0)
	if err != nil || len(removed) != 2 {
		t.Errorf("Prune(0) = %v, %v; want both removed", ids(removed), err)
	}
	if _, err := os.Stat(root); err != nil {
		t.Error("backup root itself must survive pruning")
	}
}

func TestList_UnreadableRoot(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}

	root := t.TempDir()
	makeSnapshotDir(t, root, "cfg_100", 100)
	if err := os.Chmod(root, 0o000); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chmod(root, 0o755) })

	snaps, err := NewManager().List("cfg", root)
	var ioErr *errors.IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("List() error = %v, want *IOError", err)
	}
	if ioErr.Src != root {
		t.Errorf("IOError.Src = %q, want %q", ioErr.Src, root)
	}
	if snaps != nil {
		t.Errorf("List() = %v, want no partial listing", ids(snaps))
	}
}
