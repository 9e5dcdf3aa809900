package fileutil

import (
	"io"
	"os"

	"github.com/thoreinstein/snapkeep/internal/errors"
)

// MaxStateFileSize bounds reads of snapkeep state files (4MB).
const MaxStateFileSize = 4 << 20

// ErrFileTooLarge indicates that a file exceeded the read limit.
var ErrFileTooLarge = errors.New("file exceeds maximum size")

// ReadFileWithLimit reads path, failing with ErrFileTooLarge when it holds
// more than limit bytes. A non-positive limit means MaxStateFileSize.
// The returned error wraps the os error, so os.IsNotExist style checks via
// errors.Is(err, fs.ErrNotExist) keep working.
func ReadFileWithLimit(path string, limit int64) ([]byte, error) {
	if limit <= 0 {
		limit = MaxStateFileSize
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening file")
	}
	defer f.Close()

	if info, err := f.Stat(); err == nil && info.Size() > limit {
		return nil, errors.Wrapf(ErrFileTooLarge, "%s is %d bytes, limit %d", path, info.Size(), limit)
	}

	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, errors.Wrap(err, "reading file")
	}
	if int64(len(data)) > limit {
		return nil, errors.Wrapf(ErrFileTooLarge, "%s exceeds limit %d", path, limit)
	}
	return data, nil
}
