package snapshot

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/thoreinstein/snapkeep/internal/errors"
)

// copyEntry copies src to dst, recursing into directories. dst must not exist.
func copyEntry(src, dst string) error {
	info, err := os.Lstat(src)
	if err != nil {
		return errors.NewIOError("stat", src, "", err)
	}

	switch {
	case info.IsDir():
		if err := os.Mkdir(dst, info.Mode().Perm()|0o700); err != nil {
			return errors.NewIOError("mkdir", src, dst, err)
		}
		return copyDir(src, dst)
	case info.Mode()&fs.ModeSymlink != 0:
		return copySymlink(src, dst)
	case info.Mode().IsRegular():
		return copyFile(src, dst)
	default:
		// sockets, devices and pipes are not copied
		return nil
	}
}

// copyDir copies the contents of src into dst. dst is expected to already exist.
func copyDir(src, dst string) error {
	entries, err := os.ReadDir(src)
	if err != nil {
		return errors.NewIOError("read", src, "", err)
	}

	for _, entry := range entries {
		if err := copyEntry(filepath.Join(src, entry.Name()), filepath.Join(dst, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

// copyFile copies a single regular file, preserving its permission bits.
func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return errors.NewIOError("copy", src, dst, err)
	}
	defer srcFile.Close()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return errors.NewIOError("copy", src, dst, err)
	}

	dstFile, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, srcInfo.Mode().Perm())
	if err != nil {
		return errors.NewIOError("copy", src, dst, err)
	}

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		dstFile.Close()
		return errors.NewIOError("copy", src, dst, err)
	}
	if err := dstFile.Close(); err != nil {
		return errors.NewIOError("copy", src, dst, err)
	}

	// Preserve modification time so unchanged content compares equal by stat.
	if err := os.Chtimes(dst, srcInfo.ModTime(), srcInfo.ModTime()); err != nil {
		return errors.NewIOError("copy", src, dst, err)
	}
	return nil
}

func copySymlink(src, dst string) error {
	target, err := os.Readlink(src)
	if err != nil {
		return errors.NewIOError("readlink", src, "", err)
	}
	if err := os.Symlink(target, dst); err != nil {
		return errors.NewIOError("symlink", src, dst, err)
	}
	return nil
}
