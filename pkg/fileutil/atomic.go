// Package fileutil provides the atomic write and bounded read helpers used
// for snapkeep's own state files.
package fileutil

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/snapkeep/internal/errors"
)

// DefaultFilePerm is the permission applied by the format helpers.
const DefaultFilePerm = 0o644

// MarshalFunc encodes v for writing.
type MarshalFunc func(v any) ([]byte, error)

// AtomicWriteFile writes data to path through a temp file in the same
// directory followed by a rename, so an interrupted write leaves the previous
// content in place.
//
// The caller is responsible for ensuring the parent directory exists.
func AtomicWriteFile(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".snapkeep-atomic-*.tmp")
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}
	tmpName := tmp.Name()

	renamed := false
	defer func() {
		if !renamed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "writing temp file")
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return errors.Wrap(err, "setting file permissions")
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return errors.Wrap(err, "syncing temp file")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "closing temp file")
	}

	if err := os.Rename(tmpName, path); err != nil {
		return errors.Wrap(err, "renaming temp file")
	}
	renamed = true
	return nil
}

// AtomicWriteEncoded marshals v with marshal and writes the result atomically.
// A trailing newline is appended when the encoder omits one.
func AtomicWriteEncoded(path string, v any, perm os.FileMode, marshal MarshalFunc) (err error) {
	// yaml.Marshal panics on unmarshalable types
	defer func() {
		if r := recover(); r != nil {
			err = errors.Newf("marshaling %s: %v", filepath.Base(path), r)
		}
	}()

	data, err := marshal(v)
	if err != nil {
		return errors.Wrapf(err, "marshaling %s", filepath.Base(path))
	}
	if len(data) > 0 && data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}
	return AtomicWriteFile(path, data, perm)
}

// MarshalJSON encodes v as JSON with 2-space indentation.
func MarshalJSON(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

// AtomicWriteJSON writes v as indented JSON with DefaultFilePerm.
func AtomicWriteJSON(path string, v any) error {
	return AtomicWriteEncoded(path, v, DefaultFilePerm, MarshalJSON)
}

// AtomicWriteYAML writes v as YAML with DefaultFilePerm.
func AtomicWriteYAML(path string, v any) error {
	return AtomicWriteEncoded(path, v, DefaultFilePerm, yaml.Marshal)
}

// AtomicWriteTOML writes v as TOML with DefaultFilePerm.
func AtomicWriteTOML(path string, v any) error {
	return AtomicWriteEncoded(path, v, DefaultFilePerm, toml.Marshal)
}
