// Package editor launches the user's text editor on snapkeep's files.
package editor

import (
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/thoreinstein/snapkeep/internal/errors"
)

// Streams are the terminal handles the editor process inherits.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Open runs the editor on path and waits for it to exit. The editor
// command may carry arguments, as in EDITOR="code --wait".
func Open(ctx context.Context, path string, s Streams) error {
	fields := strings.Fields(detectEditor())
	if len(fields) == 0 {
		return errors.New("no editor configured")
	}
	args := append(fields[1:], path)

	cmd := exec.CommandContext(ctx, fields[0], args...)
	cmd.Stdin = s.In
	cmd.Stdout = s.Out
	cmd.Stderr = s.Err

	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "running editor %s", fields[0])
	}
	return nil
}

// EditUntilValid opens path and runs validate after each edit. When
// validation fails, retry decides whether to open the file again; a false
// answer returns the validation error.
func EditUntilValid(ctx context.Context, path string, s Streams, validate func() error, retry func(error) bool) error {
	for {
		if err := Open(ctx, path, s); err != nil {
			return err
		}
		err := validate()
		if err == nil || !retry(err) {
			return err
		}
	}
}

// detectEditor walks $EDITOR, $VISUAL, nano, then vi.
func detectEditor() string {
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}
	if visual := os.Getenv("VISUAL"); visual != "" {
		return visual
	}
	if _, err := exec.LookPath("nano"); err == nil {
		return "nano"
	}
	return "vi"
}
