package snapshot

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/thoreinstein/snapkeep/internal/registry"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

func fixedClock(unix int64) func() time.Time {
	return func() time.Time { return time.Unix(unix, 0) }
}

// tick returns a clock that advances one second per call.
func tick(start int64) func() time.Time {
	n := start
	return func() time.Time {
		n++
		return time.Unix(n, 0)
	}
}

func setModTime(t *testing.T, path string, unix int64) {
	t.Helper()
	ts := time.Unix(unix, 0)
	if err := os.Chtimes(path, ts, ts); err != nil {
		t.Fatal(err)
	}
}

func dirItem(t *testing.T, name string) registry.SyncItem {
	t.Helper()
	src := filepath.Join(t.TempDir(), name)
	writeFile(t, filepath.Join(src, "a.txt"), "alpha")
	writeFile(t, filepath.Join(src, "sub", "b.txt"), "beta")
	return registry.SyncItem{
		Name:       name,
		SourcePath: src,
		BackupRoot: filepath.Join(t.TempDir(), "backups"),
		Enabled:    true,
	}
}

func fileItem(t *testing.T, name string) registry.SyncItem {
	t.Helper()
	src := filepath.Join(t.TempDir(), name+".txt")
	writeFile(t, src, "content")
	return registry.SyncItem{
		Name:       name,
		SourcePath: src,
		BackupRoot: filepath.Join(t.TempDir(), "backups"),
		Enabled:    true,
	}
}
