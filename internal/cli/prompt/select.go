package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/thoreinstein/snapkeep/internal/errors"
	"github.com/thoreinstein/snapkeep/internal/snapshot"
)

// Sentinel errors for snapshot selection.
var (
	ErrNoSnapshots        = errors.Wrap(errors.ErrNotFound, "no snapshots to select from")
	ErrSelectionCancelled = errors.New("selection cancelled")
)

const timeLayout = "2006-01-02 15:04:05"

// Selector prompts for a snapshot by number.
type Selector struct {
	reader io.Reader
	writer io.Writer
}

// NewSelector creates a new Selector using stdin and stdout.
func NewSelector() *Selector {
	return NewSelectorWithIO(os.Stdin, os.Stdout)
}

// NewSelectorWithIO creates a Selector with custom reader and writer for testing.
func NewSelectorWithIO(r io.Reader, w io.Writer) *Selector {
	return &Selector{reader: r, writer: w}
}

// SelectSnapshot lists snaps (newest first) and reads a 1-based choice.
// An empty answer picks the newest.
//
// Returns:
//   - ErrNoSnapshots if the list is empty
//   - errors.ErrInvalidSelection if the choice is not a number in range
//   - ErrSelectionCancelled on EOF
func (s *Selector) SelectSnapshot(item string, snaps []snapshot.Snapshot) (*snapshot.Snapshot, error) {
	if len(snaps) == 0 {
		return nil, errors.Wrapf(ErrNoSnapshots, "item %q", item)
	}

	fmt.Fprintf(s.writer, "Snapshots of %s:\n", item)
	for i, snap := range snaps {
		fmt.Fprintf(s.writer, "  [%d] %s  %s\n", i+1, snap.ID, snap.ModTime.Local().Format(timeLayout))
	}
	fmt.Fprintf(s.writer, "Select [1]: ")

	input, err := bufio.NewReader(s.reader).ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && strings.TrimSpace(input) == "" {
			return nil, ErrSelectionCancelled
		}
		if !errors.Is(err, io.EOF) {
			return nil, errors.Wrap(err, "reading selection")
		}
	}

	input = strings.TrimSpace(input)
	if input == "" {
		return &snaps[0], nil
	}

	n, err := strconv.Atoi(input)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidSelection, "%q is not a number", input)
	}
	if n < 1 || n > len(snaps) {
		return nil, errors.Wrapf(errors.ErrInvalidSelection, "%d is out of range [1-%d]", n, len(snaps))
	}
	return &snaps[n-1], nil
}
