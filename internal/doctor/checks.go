package doctor

import (
	"fmt"
	"io/fs"
	"os"
	"runtime"

	"github.com/thoreinstein/snapkeep/internal/errors"
	"github.com/thoreinstein/snapkeep/internal/registry"
	"github.com/thoreinstein/snapkeep/internal/snapshot"
)

// RegistryCheck verifies the registry file parses and is private to the
// user.
type RegistryCheck struct {
	store *registry.FileStore
	loose bool
}

var (
	_ Check = (*RegistryCheck)(nil)
	_ Fixer = (*RegistryCheck)(nil)
)

// NewRegistryCheck creates a check for the registry behind store.
func NewRegistryCheck(store *registry.FileStore) *RegistryCheck {
	return &RegistryCheck{store: store}
}

func (c *RegistryCheck) Name() string     { return "registry" }
func (c *RegistryCheck) Category() string { return "registry" }

// Run loads the registry and inspects its permissions.
func (c *RegistryCheck) Run() *CheckResult {
	res := &CheckResult{Name: c.Name(), Category: c.Category()}
	c.loose = false

	info, err := os.Stat(c.store.Path())
	if errors.Is(err, fs.ErrNotExist) {
		res.Status = SeverityInfo
		res.Message = fmt.Sprintf("no registry at %s yet", c.store.Path())
		res.FixHint = "snapkeep item add <name> <path>"
		return res
	}
	if err != nil {
		res.Status = SeverityError
		res.Message = fmt.Sprintf("cannot stat %s: %v", c.store.Path(), err)
		return res
	}

	reg, err := c.store.Load()
	if err != nil {
		res.Status = SeverityError
		res.Message = fmt.Sprintf("%s (%s) is invalid: %v", c.store.Path(), c.store.Format(), err)
		return res
	}

	if runtime.GOOS != "windows" && info.Mode().Perm()&0o077 != 0 {
		c.loose = true
		res.Status = SeverityWarning
		res.Message = fmt.Sprintf("%s is readable by other users (%04o)", c.store.Path(), info.Mode().Perm())
		res.Fixable = true
		res.FixHint = fmt.Sprintf("chmod %04o %s", registry.FilePerm, c.store.Path())
		return res
	}

	res.Status = SeverityPass
	res.Message = fmt.Sprintf("%d items, %d groups", len(reg.Items), len(reg.Groups))
	return res
}

// CanFix reports whether Run found loose permissions.
func (c *RegistryCheck) CanFix() bool {
	return c.loose
}

// Fix restricts the registry file to its owner.
func (c *RegistryCheck) Fix() []FixResult {
	if !c.loose {
		return nil
	}
	res := FixResult{Path: c.store.Path()}
	if err := os.Chmod(c.store.Path(), registry.FilePerm); err != nil {
		res.Description = fmt.Sprintf("failed to chmod %04o: %v", registry.FilePerm, err)
		res.Error = errors.Wrapf(err, "chmod %s", c.store.Path())
		return []FixResult{res}
	}
	c.loose = false
	res.Fixed = true
	res.Description = fmt.Sprintf("chmod %04o", registry.FilePerm)
	return []FixResult{res}
}

// SourceCheck warns about enabled items whose source is missing. Bulk
// backups skip such items.
type SourceCheck struct {
	items []registry.SyncItem
}

var _ Check = (*SourceCheck)(nil)

// NewSourceCheck creates a check over items.
func NewSourceCheck(items []registry.SyncItem) *SourceCheck {
	return &SourceCheck{items: items}
}

func (c *SourceCheck) Name() string     { return "sources" }
func (c *SourceCheck) Category() string { return "filesystem" }

// Run stats every enabled item's source.
func (c *SourceCheck) Run() *CheckResult {
	res := &CheckResult{Name: c.Name(), Category: c.Category()}

	checked := 0
	status := SeverityPass
	for _, it := range c.items {
		if !it.Enabled {
			continue
		}
		checked++
		_, err := os.Lstat(it.SourcePath)
		switch {
		case err == nil:
		case errors.Is(err, fs.ErrNotExist):
			res.Problems = append(res.Problems, fmt.Sprintf("%s: %s does not exist", it.Name, it.SourcePath))
			status = max(status, SeverityWarning)
		default:
			res.Problems = append(res.Problems, fmt.Sprintf("%s: %v", it.Name, err))
			status = SeverityError
		}
	}

	res.Status = status
	if len(res.Problems) == 0 {
		res.Message = fmt.Sprintf("%d enabled sources present", checked)
		return res
	}
	res.Message = fmt.Sprintf("%d of %d enabled sources unavailable", len(res.Problems), checked)
	res.FixHint = "snapkeep item disable <name>, or restore the source"
	return res
}

// BackupRootCheck verifies every backup root is a writable directory
// outside the sources it stores snapshots of.
type BackupRootCheck struct {
	items   []registry.SyncItem
	missing []string
}

var (
	_ Check = (*BackupRootCheck)(nil)
	_ Fixer = (*BackupRootCheck)(nil)
)

// NewBackupRootCheck creates a check over the roots of items.
func NewBackupRootCheck(items []registry.SyncItem) *BackupRootCheck {
	return &BackupRootCheck{items: items}
}

func (c *BackupRootCheck) Name() string     { return "backup-roots" }
func (c *BackupRootCheck) Category() string { return "filesystem" }

// Run inspects each distinct backup root once.
func (c *BackupRootCheck) Run() *CheckResult {
	res := &CheckResult{Name: c.Name(), Category: c.Category()}
	c.missing = nil

	status := SeverityPass
	problem := func(sev Severity, format string, args ...any) {
		res.Problems = append(res.Problems, fmt.Sprintf(format, args...))
		status = max(status, sev)
	}

	for _, it := range c.items {
		if snapshot.Inside(it.BackupRoot, it.SourcePath) {
			problem(SeverityError, "%s: backup root %s is inside its source", it.Name, it.BackupRoot)
		}
	}

	seen := make(map[string]bool)
	for _, it := range c.items {
		root := it.BackupRoot
		if seen[root] {
			continue
		}
		seen[root] = true

		info, err := os.Stat(root)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			c.missing = append(c.missing, root)
			problem(SeverityWarning, "%s does not exist yet", root)
		case err != nil:
			problem(SeverityError, "%s: %v", root, err)
		case !info.IsDir():
			problem(SeverityError, "%s is not a directory", root)
		default:
			if err := tryWrite(root); err != nil {
				problem(SeverityError, "%s is not writable: %v", root, err)
			}
		}
	}

	res.Status = status
	if len(res.Problems) == 0 {
		res.Message = fmt.Sprintf("%d backup roots writable", len(seen))
		return res
	}
	res.Message = fmt.Sprintf("%d problems with backup roots", len(res.Problems))
	if len(c.missing) > 0 {
		res.Fixable = true
		res.FixHint = "snapkeep doctor --fix creates missing roots"
	}
	return res
}

// CanFix reports whether Run found missing roots.
func (c *BackupRootCheck) CanFix() bool {
	return len(c.missing) > 0
}

// Fix creates the missing roots.
func (c *BackupRootCheck) Fix() []FixResult {
	out := make([]FixResult, 0, len(c.missing))
	for _, root := range c.missing {
		r := FixResult{Path: root}
		if err := os.MkdirAll(root, snapshot.DirPerm); err != nil {
			r.Description = fmt.Sprintf("failed to create: %v", err)
			r.Error = errors.Wrapf(err, "creating %s", root)
		} else {
			r.Fixed = true
			r.Description = "created"
		}
		out = append(out, r)
	}
	c.missing = nil
	return out
}

func tryWrite(dir string) error {
	f, err := os.CreateTemp(dir, ".snapkeep-write-*")
	if err != nil {
		return err
	}
	name := f.Name()
	f.Close()
	return os.Remove(name)
}
