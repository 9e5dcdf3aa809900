package registry

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/snapkeep/internal/errors"
	"github.com/thoreinstein/snapkeep/internal/paths"
	"github.com/thoreinstein/snapkeep/pkg/fileutil"
)

// Store loads and persists a Registry.
type Store interface {
	Load() (*Registry, error)
	Save(*Registry) error
}

// ErrUnsupportedFormat indicates a registry path with an unknown extension.
var ErrUnsupportedFormat = errors.Mark(errors.New("unsupported registry format"), errors.ErrInvalidConfig)

// FilePerm is the permission of the registry file.
const FilePerm = 0o600

type codec struct {
	name      string
	marshal   fileutil.MarshalFunc
	unmarshal func([]byte, any) error
}

var codecs = map[string]codec{
	".yaml": {"yaml", yaml.Marshal, yaml.Unmarshal},
	".yml":  {"yaml", yaml.Marshal, yaml.Unmarshal},
	".toml": {"toml", toml.Marshal, toml.Unmarshal},
	".json": {"json", fileutil.MarshalJSON, json.Unmarshal},
}

// FileStore keeps the registry in a single file.
type FileStore struct {
	path  string
	codec codec
}

// NewFileStore returns a store for path. The extension selects the format.
func NewFileStore(path string) (*FileStore, error) {
	c, ok := codecs[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return nil, errors.Wrapf(ErrUnsupportedFormat, "%s", path)
	}
	return &FileStore{path: path, codec: c}, nil
}

// Path returns the registry file path.
func (s *FileStore) Path() string {
	return s.path
}

// Format returns the codec name ("yaml", "toml" or "json").
func (s *FileStore) Format() string {
	return s.codec.name
}

// Load reads and validates the registry. A missing file is an empty registry.
func (s *FileStore) Load() (*Registry, error) {
	data, err := fileutil.ReadFileWithLimit(s.path, 0)
	if errors.Is(err, fs.ErrNotExist) {
		return New(), nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "reading registry %s", s.path)
	}

	reg := New()
	if err := s.codec.unmarshal(data, reg); err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "parsing registry %s", s.path), errors.ErrInvalidConfig)
	}
	if reg.Version == 0 {
		reg.Version = CurrentVersion
	}
	if reg.Version > CurrentVersion {
		return nil, errors.Mark(errors.Newf("registry %s has version %d, newest supported is %d", s.path, reg.Version, CurrentVersion), errors.ErrInvalidConfig)
	}
	if err := reg.Validate(); err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "registry %s", s.path), errors.ErrInvalidConfig)
	}
	return reg, nil
}

// Save writes the registry atomically, creating the parent directory.
func (s *FileStore) Save(reg *Registry) error {
	if reg.Version == 0 {
		reg.Version = CurrentVersion
	}
	if err := paths.EnsureDir(filepath.Dir(s.path), paths.DefaultDirPerm); err != nil {
		return errors.NewIOError("mkdir", "", filepath.Dir(s.path), err)
	}
	if err := fileutil.AtomicWriteEncoded(s.path, reg, FilePerm, s.codec.marshal); err != nil {
		return errors.NewIOError("write", "", s.path, err)
	}
	return nil
}

// Exists reports whether the registry file is present.
func (s *FileStore) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}
