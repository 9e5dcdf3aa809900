package cmdutil

import (
	"io"

	"github.com/thoreinstein/snapkeep/internal/cli/prompt"
	"github.com/thoreinstein/snapkeep/internal/engine"
	"github.com/thoreinstein/snapkeep/internal/errors"
)

// Confirm asks question unless yes is set and converts the answer into the
// engine's confirmation token. A refusal is ErrUnconfirmed.
func Confirm(in io.Reader, out io.Writer, yes bool, question string) (engine.Confirmation, error) {
	ok, err := prompt.Confirm(prompt.ConfirmOptions{Yes: yes}, in, out, question)
	if err != nil {
		return engine.Unconfirmed, err
	}
	if !ok {
		return engine.Unconfirmed, errors.NewUserError(
			errors.Wrap(errors.ErrUnconfirmed, "aborted"),
			"Pass --yes to skip the confirmation",
		)
	}
	return engine.Confirmed, nil
}
