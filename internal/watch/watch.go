// Package watch backs up items automatically when their sources change.
package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/thoreinstein/snapkeep/internal/errors"
	"github.com/thoreinstein/snapkeep/internal/logging"
	"github.com/thoreinstein/snapkeep/internal/registry"
	"github.com/thoreinstein/snapkeep/internal/snapshot"
)

// DefaultDebounce is the quiet period after the last change before an item
// is backed up.
const DefaultDebounce = 2 * time.Second

// Backuper takes a snapshot of a named item.
type Backuper interface {
	Backup(ctx context.Context, name string) (*snapshot.Snapshot, error)
}

// Event reports one watcher-driven backup.
type Event struct {
	Item     string
	Snapshot *snapshot.Snapshot
	Err      error
}

// Watcher runs debounced backups for a fixed set of items.
type Watcher struct {
	backup   Backuper
	debounce time.Duration
	logger   *slog.Logger
	onEvent  func(Event)
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period. Non-positive values keep the default.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// OnEvent registers a callback invoked after every backup attempt.
func OnEvent(fn func(Event)) Option {
	return func(w *Watcher) {
		w.onEvent = fn
	}
}

// New creates a Watcher that backs up through b.
func New(b Backuper, opts ...Option) *Watcher {
	w := &Watcher{
		backup:   b,
		debounce: DefaultDebounce,
		logger:   logging.NewDiscard(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run watches the sources of items until ctx is cancelled. Directory
// sources are watched recursively; file sources through their parent
// directory. Changes under any item's backup root are ignored. Backups run
// one at a time from this loop.
func (w *Watcher) Run(ctx context.Context, items []registry.SyncItem) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "creating watcher")
	}
	defer fw.Close()

	t := newTargets(items)
	watched := 0
	for _, it := range items {
		if err := w.add(fw, it); err != nil {
			w.logger.Warn("watch: skipping item", "item", it.Name, "source", it.SourcePath, "error", err)
			continue
		}
		watched++
	}
	if watched == 0 {
		return errors.Wrap(errors.ErrNotFound, "no watchable items")
	}

	w.logger.Info("watch: started", "items", watched, "debounce", w.debounce)

	fired := make(chan string)
	timers := make(map[string]*time.Timer)
	defer func() {
		for _, tm := range timers {
			tm.Stop()
		}
	}()

	schedule := func(name string) {
		if tm, ok := timers[name]; ok {
			tm.Reset(w.debounce)
			return
		}
		timers[name] = time.AfterFunc(w.debounce, func() {
			select {
			case fired <- name:
			case <-ctx.Done():
			}
		})
	}

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("watch: stopped")
			return nil

		case name := <-fired:
			snap, err := w.backup.Backup(ctx, name)
			if err != nil {
				w.logger.Error("watch: backup failed", "item", name, "error", err)
			} else {
				w.logger.Info("watch: backed up", "item", name, "snapshot", snap.ID)
			}
			if w.onEvent != nil {
				w.onEvent(Event{Item: name, Snapshot: snap, Err: err})
			}

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if t.ignored(ev.Name) {
				continue
			}

			if ev.Op&fsnotify.Create != 0 {
				if info, statErr := os.Stat(ev.Name); statErr == nil && info.IsDir() && t.insideDirItem(ev.Name) {
					if addErr := addDirsRecursive(fw, ev.Name); addErr != nil {
						w.logger.Warn("watch: add new dir failed", "path", ev.Name, "error", addErr)
					}
				}
			}

			if name, ok := t.match(ev.Name); ok {
				w.logger.Debug("watch: change", "item", name, "path", ev.Name, "op", ev.Op.String())
				schedule(name)
			}

		case watchErr, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watch: error", "error", watchErr)
		}
	}
}

func (w *Watcher) add(fw *fsnotify.Watcher, it registry.SyncItem) error {
	info, err := os.Stat(it.SourcePath)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return addDirsRecursive(fw, it.SourcePath)
	}
	return fw.Add(filepath.Dir(it.SourcePath))
}

// addDirsRecursive adds root and all its subdirectories to the watcher.
func addDirsRecursive(fw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return fw.Add(path)
		}
		return nil
	})
}

// targets maps event paths back to items.
type targets struct {
	dirs  map[string]string // source dir -> item
	files map[string]string // source file -> item
	roots []string
}

func newTargets(items []registry.SyncItem) *targets {
	t := &targets{dirs: map[string]string{}, files: map[string]string{}}
	for _, it := range items {
		src := filepath.Clean(it.SourcePath)
		if info, err := os.Stat(src); err == nil && info.IsDir() {
			t.dirs[src] = it.Name
		} else {
			t.files[src] = it.Name
		}
		t.roots = append(t.roots, filepath.Clean(it.BackupRoot))
	}
	return t
}

func within(path, dir string) bool {
	return path == dir || strings.HasPrefix(path, dir+string(filepath.Separator))
}

func (t *targets) ignored(path string) bool {
	path = filepath.Clean(path)
	for _, r := range t.roots {
		if within(path, r) {
			return true
		}
	}
	return false
}

func (t *targets) insideDirItem(path string) bool {
	_, ok := t.matchDir(filepath.Clean(path))
	return ok
}

func (t *targets) matchDir(path string) (string, bool) {
	for dir, name := range t.dirs {
		if within(path, dir) {
			return name, true
		}
	}
	return "", false
}

func (t *targets) match(path string) (string, bool) {
	path = filepath.Clean(path)
	if name, ok := t.files[path]; ok {
		return name, true
	}
	return t.matchDir(path)
}
