package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/thoreinstein/snapkeep/internal/errors"
)

// ConfirmOptions controls Confirm.
type ConfirmOptions struct {
	// Yes answers the question affirmatively without prompting.
	Yes bool
}

// Confirm asks question on out and reads a y/yes answer from in.
// Anything else, including EOF, is a refusal.
func Confirm(opts ConfirmOptions, in io.Reader, out io.Writer, question string) (bool, error) {
	if opts.Yes {
		return true, nil
	}
	if out != nil {
		fmt.Fprintf(out, "%s [y/N]: ", strings.TrimSpace(question))
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, errors.Wrap(err, "reading confirmation")
	}
	ans := strings.ToLower(strings.TrimSpace(line))
	return ans == "y" || ans == "yes", nil
}
